package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a stored card by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid card id '%s': %w", args[0], err)
		}

		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if appInstance.ItemService == nil {
			return fmt.Errorf("no database configured: set database.dsn or DATABASE_URL")
		}

		if err := appInstance.ItemService.DeleteItem(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete card %s: %w", id, err)
		}
		fmt.Printf("Deleted card %s\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
