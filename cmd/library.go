package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/arcanaland/grimoire/internal/builtin"
	"github.com/arcanaland/grimoire/internal/config"
	"github.com/arcanaland/grimoire/internal/grimoire"
	"github.com/arcanaland/grimoire/internal/source"
)

// libraryCmd represents the library command group
var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage grimoires in your grimoire library",
	Long:  `Commands for managing grimoires in your grimoire library.`,
}

// libraryListCmd represents the library ls command
var libraryListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List available grimoires in your library",
	Run: func(cmd *cobra.Command, args []string) {
		libraryPath, err := filepath.EvalSymlinks(config.GetLibraryPath())
		if err != nil {
			fmt.Printf("Error resolving symbolic link: %v\n", err)
			return
		}

		// Check if the library exists
		if _, err := os.Stat(libraryPath); os.IsNotExist(err) {
			fmt.Printf("Grimoire library at %s does not exist.\n", libraryPath)
			fmt.Println("Run 'grimoire library init' to create it.")
			return
		}

		// Get default grimoire
		defaultGrimoire, err := config.GetDefaultGrimoire()
		if err != nil {
			fmt.Printf("Error getting default grimoire: %v\n", err)
			return
		}

		// Read the library directory
		entries, err := os.ReadDir(libraryPath)
		if err != nil {
			fmt.Printf("Error reading grimoire library: %v\n", err)
			return
		}

		if len(entries) == 0 {
			fmt.Println("No grimoires found in your library.")
			fmt.Println("You can add grimoires by copying them to:", libraryPath)
			return
		}

		for _, entry := range entries {
			// Resolve the symbolic link or regular entry
			entryPath := filepath.Join(libraryPath, entry.Name())
			fileInfo, err := os.Stat(entryPath)
			if err != nil {
				fmt.Printf("Error resolving entry %s: %v\n", entry.Name(), err)
				continue
			}

			if !fileInfo.IsDir() {
				continue
			}

			g, err := grimoire.LoadDir(cmd.Context(), entryPath)
			if err != nil {
				// Not a valid grimoire, skip
				continue
			}

			if entry.Name() == defaultGrimoire {
				fmt.Printf("* %s (%s, %d spells) [DEFAULT]\n", entry.Name(), g.Name, len(g.Spells))
			} else {
				fmt.Printf("  %s (%s, %d spells)\n", entry.Name(), g.Name, len(g.Spells))
			}
		}
	},
}

// librarySetDefaultCmd represents the library set-default command
var librarySetDefaultCmd = &cobra.Command{
	Use:   "set-default [grimoire_name]",
	Short: "Set the default grimoire",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var name string
		if len(args) > 0 {
			name = args[0]
		} else {
			picked, err := pickGrimoire()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			name = picked
		}

		// Check if the grimoire exists
		target, err := config.GetGrimoireTarget(name)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		// Try to load the grimoire to make sure it's valid
		src := source.ForTarget(target)
		if _, err := grimoire.Load(cmd.Context(), src); err != nil {
			fmt.Printf("Error: Not a valid grimoire - %v\n", err)
			return
		}

		// Set as default
		if err := config.SetDefaultGrimoire(name); err != nil {
			fmt.Printf("Error setting default grimoire: %v\n", err)
			return
		}

		fmt.Printf("Default grimoire set to: %s\n", name)
	},
}

// libraryInitCmd represents the library init command
var libraryInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the grimoire library",
	Run: func(cmd *cobra.Command, args []string) {
		libraryPath := config.GetLibraryPath()

		// Create the library directory if it doesn't exist
		if err := os.MkdirAll(libraryPath, 0755); err != nil {
			fmt.Printf("Error creating grimoire library: %v\n", err)
			return
		}

		fmt.Println("Grimoire library initialized at:", libraryPath)

		withStarter, _ := cmd.Flags().GetBool("starter")
		if withStarter {
			dest := filepath.Join(libraryPath, builtin.Name)
			if err := builtin.Install(dest); err != nil {
				fmt.Printf("Error installing starter grimoire: %v\n", err)
				return
			}
			fmt.Println("Starter grimoire installed at:", dest)
		} else {
			fmt.Println("You can now add grimoires by copying them to this directory.")
		}

		// Initialize config
		_, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error initializing config: %v\n", err)
			return
		}

		configPath := config.GetConfigFilePath()
		fmt.Println("Config file initialized at:", configPath)
	},
}

// pickGrimoire prompts for one of the grimoires in the library.
func pickGrimoire() (string, error) {
	libraryPath, err := filepath.EvalSymlinks(config.GetLibraryPath())
	if err != nil {
		return "", err
	}

	entries, err := os.ReadDir(libraryPath)
	if err != nil {
		return "", err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no grimoires in the library")
	}

	prompt := promptui.Select{
		Label: "Select default grimoire",
		Items: names,
	}
	_, name, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return name, nil
}

func init() {
	RootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(librarySetDefaultCmd)
	libraryCmd.AddCommand(libraryInitCmd)

	libraryInitCmd.Flags().Bool("starter", false, "Also install the builtin starter grimoire")
}
