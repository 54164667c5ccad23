package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cardkeep/internal/models"
	"cardkeep/pkg/tagger"
)

var (
	tagType     string
	tagURL      string
	tagUsername string
	tagNote     string
	tagForce    bool
	tagTrace    bool
	tagJSON     bool
)

// tagCmd previews tag inference for an ad-hoc draft without saving anything.
var tagCmd = &cobra.Command{
	Use:   "tag [title]",
	Short: "Run tag inference for a draft without persisting it",
	Long: `Runs the tagging pipeline (generative model with heuristic fallback)
for the given title and optional fields, and prints the result.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		draft := models.Draft{
			Title:    strings.Join(args, " "),
			Type:     tagType,
			URL:      tagURL,
			Username: tagUsername,
			Note:     tagNote,
		}

		res, err := appInstance.Tagger.Generate(cmd.Context(), draft, tagger.Options{
			Trace:          tagTrace,
			ForceHeuristic: tagForce,
		})
		if err != nil {
			return fmt.Errorf("tagging failed: %w", err)
		}

		if tagJSON {
			out, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		status := color.GreenString("model")
		if res.Fallback {
			status = color.YellowString("fallback")
		}
		fmt.Printf("Source:     %s (%s)\n", status, res.Model)
		fmt.Printf("Tags:       %s\n", strings.Join(res.Tags, ", "))
		fmt.Printf("Summary:    %s\n", res.Summary)
		fmt.Printf("Confidence: %.2f\n", res.Confidence)
		if res.Error != "" {
			fmt.Printf("%s:      %s\n", color.RedString("Error"), res.Error)
		}
		if tagTrace && res.Raw != nil {
			fmt.Printf("Raw:        %v\n", res.Raw)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tagCmd)
	tagCmd.Flags().StringVar(&tagType, "type", "memo", "Card type (account, todo, subscription, memo)")
	tagCmd.Flags().StringVar(&tagURL, "url", "", "Related URL")
	tagCmd.Flags().StringVar(&tagUsername, "username", "", "Account username")
	tagCmd.Flags().StringVar(&tagNote, "note", "", "Free-text note")
	tagCmd.Flags().BoolVar(&tagForce, "force", false, "Skip the model and use the heuristic path")
	tagCmd.Flags().BoolVar(&tagTrace, "trace", false, "Include the raw model output")
	tagCmd.Flags().BoolVar(&tagJSON, "json", false, "Print the full TagResult as JSON")
}
