package cmd

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/arcanaland/grimoire/internal/grimoire"
	"github.com/arcanaland/grimoire/internal/source"
	"github.com/arcanaland/grimoire/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a grimoire directory",
	Long: `Validate checks if a grimoire directory conforms to the Grimoire Format v1.0.
It verifies the manifest, the spell entries, and that every spell file exists.

With --fetch, each spell body is also retrieved, one at a time in manifest
order, and checked for retrievability and non-empty content.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		grimoirePath := args[0]

		// Check if path exists
		if _, err := os.Stat(grimoirePath); os.IsNotExist(err) {
			return fmt.Errorf("grimoire directory not found: %s", grimoirePath)
		}

		// Create validator and run validation
		v := validator.NewValidator(grimoirePath)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %v", err)
		}

		fetch, _ := cmd.Flags().GetBool("fetch")
		if fetch && len(results.Errors) == 0 {
			g, err := grimoire.LoadDir(cmd.Context(), grimoirePath)
			if err != nil {
				return fmt.Errorf("error loading grimoire: %v", err)
			}

			src := source.ForTarget(grimoirePath)

			bar := progressbar.NewOptions(len(g.Spells),
				progressbar.OptionSetDescription("fetching spells"),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
			err = v.ValidateContent(cmd.Context(), src, func(id string) {
				bar.Describe(fmt.Sprintf("fetching %s", id))
				_ = bar.Add(1)
			})
			_ = bar.Finish()
			if err != nil {
				return fmt.Errorf("content validation error: %v", err)
			}
			results = v.Results
		}

		// Display validation results
		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		if len(results.Errors) == 0 {
			fmt.Printf("✅ Grimoire '%s' is valid.\n", grimoirePath)
		} else {
			fmt.Printf("❌ Grimoire '%s' has %d validation errors:\n", grimoirePath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Printf("%d. %s\n", i+1, err)
			}
			return fmt.Errorf("validation failed")
		}

		if len(results.Warnings) > 0 {
			fmt.Println("\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Printf("%d. %s\n", i+1, warn)
			}
		}

		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)

	validateCmd.Flags().Bool("fetch", false, "Also fetch every spell body and validate its content")
}
