// Package builtin carries the starter grimoire that ships inside the
// binary, so a fresh install has something to browse before the user
// has collected any spells of their own.
package builtin

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed starter
var starterFS embed.FS

// Name is the library name the starter grimoire is installed under.
const Name = "starter"

// FS returns the embedded starter grimoire, rooted at the directory
// that holds its manifest.
func FS() (fs.FS, error) {
	sub, err := fs.Sub(starterFS, "starter")
	if err != nil {
		return nil, fmt.Errorf("error reading embedded grimoire: %v", err)
	}
	return sub, nil
}

// Install materializes the starter grimoire under destDir, creating
// directories as needed. Existing files are overwritten.
func Install(destDir string) error {
	root, err := FS()
	if err != nil {
		return err
	}

	return fs.WalkDir(root, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		target := filepath.Join(destDir, path)
		if d.IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("error creating directory: %v", err)
			}
			return nil
		}

		data, err := fs.ReadFile(root, path)
		if err != nil {
			return fmt.Errorf("error reading embedded file %s: %v", path, err)
		}
		if err := os.WriteFile(target, data, 0644); err != nil {
			return fmt.Errorf("error writing %s: %v", target, err)
		}
		return nil
	})
}
