package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cardkeep/internal/models"
	"cardkeep/pkg/tagger"
)

var (
	addType          string
	addURL           string
	addUsername      string
	addNote          string
	addAllowFallback bool
	addForce         bool
)

// addCmd tags a draft and persists the accepted result as a new card.
var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a new card from a draft",
	Long: `Runs tag inference for the draft, applies the acceptance gate and
stores the resulting card. Heuristic-only results are rejected unless
--allow-fallback is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if appInstance.ItemService == nil {
			return fmt.Errorf("no database configured: set database.dsn or DATABASE_URL")
		}

		draft := models.Draft{
			Title:    strings.Join(args, " "),
			Type:     addType,
			URL:      addURL,
			Username: addUsername,
			Note:     addNote,
		}

		item, err := appInstance.ItemService.CreateFromDraft(cmd.Context(), draft,
			addAllowFallback || appInstance.Config.Tagging.AllowFallback,
			tagger.Options{ForceHeuristic: addForce})
		if err != nil {
			return fmt.Errorf("failed to add card: %w", err)
		}

		fmt.Printf("%s %s\n", color.GreenString("Created"), item.ID)
		fmt.Printf("Tags: %s\n", strings.Join(item.Tags, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addType, "type", "memo", "Card type (account, todo, subscription, memo)")
	addCmd.Flags().StringVar(&addURL, "url", "", "Related URL")
	addCmd.Flags().StringVar(&addUsername, "username", "", "Account username")
	addCmd.Flags().StringVar(&addNote, "note", "", "Free-text note")
	addCmd.Flags().BoolVar(&addAllowFallback, "allow-fallback", false, "Accept heuristic-only tag results")
	addCmd.Flags().BoolVar(&addForce, "force", false, "Skip the model and use the heuristic path")
}
