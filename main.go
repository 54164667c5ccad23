package main

import "cardkeep/cmd"

func main() {
	cmd.Execute()
}
