package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored cards",
	Long:  `Displays the stored cards ordered by creation time, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if appInstance.ItemService == nil {
			return fmt.Errorf("no database configured: set database.dsn or DATABASE_URL")
		}

		items, err := appInstance.ItemService.ListItems(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list cards: %w", err)
		}

		if len(items) == 0 {
			fmt.Println("No cards found.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Title", "Type", "Tags", "Created At"})
		table.SetBorder(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)

		for _, item := range items {
			table.Append([]string{
				item.ID.String(),
				item.Title,
				item.Type,
				strings.Join(item.Tags, ", "),
				item.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
