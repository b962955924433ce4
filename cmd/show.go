package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/grimoire/internal/grimoire"
	"github.com/arcanaland/grimoire/internal/source"
	"github.com/arcanaland/grimoire/internal/spell"
)

var showCmd = &cobra.Command{
	Use:   "show [spell_id]",
	Short: "Display a single spell without the interactive browser",
	Long: `Show prints one spell to stdout. By default the same preview the card
browser uses is shown; pass --full for the whole template, or --copy to
put it on the clipboard.

You can specify a grimoire with the --grimoire flag, which accepts a
library name, a local directory, or an HTTP URL. If no grimoire is
specified, the default grimoire from your config is used.

Examples:
  grimoire show code-review
  grimoire show --grimoire starter commit-message
  grimoire show --grimoire https://spells.example.com summarize --copy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spellID := args[0]

		grimoireFlag, _ := cmd.Flags().GetString("grimoire")
		full, _ := cmd.Flags().GetBool("full")
		copyFlag, _ := cmd.Flags().GetBool("copy")

		target, err := resolveTarget(grimoireFlag)
		if err != nil {
			return err
		}

		src := source.ForTarget(target)

		g, err := grimoire.Load(cmd.Context(), src)
		if err != nil {
			return fmt.Errorf("error loading grimoire: %v", err)
		}

		sp, err := g.GetSpell(spellID)
		if err != nil {
			return fmt.Errorf("error getting spell: %v", err)
		}

		body, err := src.Fetch(cmd.Context(), sp.Path)
		if err != nil {
			return fmt.Errorf("error fetching spell text: %v", err)
		}
		text := string(body)

		if copyFlag {
			if err := clipboard.WriteAll(text); err != nil {
				return fmt.Errorf("error copying to clipboard: %v", err)
			}
			fmt.Println(color.GreenString("Copied %q to clipboard", sp.Title))
			return nil
		}

		displaySpell(g, sp, text, full)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().StringP("grimoire", "g", "", "Specify a grimoire from your library, a path, or a URL")
	showCmd.Flags().Bool("full", false, "Print the whole template instead of the preview")
	showCmd.Flags().Bool("copy", false, "Copy the full template to the clipboard instead of printing")
}

// displaySpell prints the spell header and its text (preview or full).
func displaySpell(g *grimoire.Grimoire, sp *spell.Spell, text string, full bool) {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80 // Default if we can't get terminal width
	}

	fmt.Println()
	fmt.Println(color.CyanString("Spell:    ") + color.HiWhiteString("%s", sp.Title))
	fmt.Println(color.CyanString("Grimoire: ") + color.HiWhiteString(g.Name))
	fmt.Println(color.CyanString("ID:       ") + color.HiWhiteString(sp.ID))
	if sp.Description != "" {
		fmt.Println(color.CyanString("About:"))
		for _, line := range wrapText(sp.Description, width-4) {
			fmt.Println("  " + line)
		}
	}
	fmt.Println()

	display := text
	if !full {
		display = spell.Preview(text)
	}
	fmt.Println(display)

	if display != text {
		fmt.Println()
		fmt.Println(color.YellowString("(preview: run with --full for the whole spell)"))
	}
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	// Ensure width is reasonable
	if width < 10 {
		width = 40 // Use a sensible default if width is too small
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		// Check if adding this word would exceed the width
		if len(currentLine) == 0 {
			// First word on the line, always add it
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			// Word fits on current line with a space
			currentLine += " " + word
		} else {
			// Word doesn't fit, start a new line
			result = append(result, currentLine)
			currentLine = word
		}
	}

	// Add the last line if not empty
	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}
