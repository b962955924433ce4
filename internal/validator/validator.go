package validator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/grimoire/internal/source"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	GrimoirePath string
	Results      ValidationResults
}

func NewValidator(grimoirePath string) *Validator {
	return &Validator{
		GrimoirePath: grimoirePath,
		Results:      ValidationResults{},
	}
}

func (v *Validator) Validate() (ValidationResults, error) {
	manifest, err := v.validateManifest()
	if err != nil {
		return v.Results, err
	}

	v.validateSpells(manifest)
	v.validateSpellFiles(manifest)

	return v.Results, nil
}

func (v *Validator) validateManifest() (*ManifestConfig, error) {
	manifestPath := filepath.Join(v.GrimoirePath, "grimoire.toml")
	if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("grimoire.toml not found in %s", v.GrimoirePath)
	}

	var manifest ManifestConfig
	if _, err := toml.DecodeFile(manifestPath, &manifest); err != nil {
		return nil, fmt.Errorf("error parsing grimoire.toml: %v", err)
	}

	if manifest.Grimoire.ID == "" {
		v.Results.Errors = append(v.Results.Errors, "grimoire.id is required in grimoire.toml")
	}

	if manifest.Grimoire.Name == "" {
		v.Results.Errors = append(v.Results.Errors, "grimoire.name is required in grimoire.toml")
	}

	if manifest.Grimoire.Version == "" {
		v.Results.Errors = append(v.Results.Errors, "grimoire.version is required in grimoire.toml")
	}

	if manifest.Grimoire.SchemaVersion == "" {
		v.Results.Errors = append(v.Results.Errors, "grimoire.schema_version is required in grimoire.toml")
	} else if manifest.Grimoire.SchemaVersion != "1.0" {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("unsupported schema_version: %s (supported: 1.0)", manifest.Grimoire.SchemaVersion))
	}

	return &manifest, nil
}

// validateSpells checks the [[spells]] entries themselves, without
// touching the filesystem.
func (v *Validator) validateSpells(manifest *ManifestConfig) {
	if len(manifest.Spells) == 0 {
		v.Results.Errors = append(v.Results.Errors, "no spells defined in grimoire.toml")
		return
	}

	seenIDs := make(map[string]bool)
	for i, s := range manifest.Spells {
		if s.ID == "" {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("spells[%d] is missing an id", i))
			continue
		}

		if seenIDs[s.ID] {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("duplicate spell id: %s", s.ID))
		}
		seenIDs[s.ID] = true

		if s.Title == "" {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("spells.%s.title is missing", s.ID))
		}

		if s.Path == "" {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("spells.%s.path is required", s.ID))
			continue
		}

		if !filepath.IsLocal(s.Path) {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("spells.%s.path must stay inside the grimoire: %s", s.ID, s.Path))
		}
	}
}

// validateSpellFiles checks that each spell path resolves to a real
// file under the grimoire directory.
func (v *Validator) validateSpellFiles(manifest *ManifestConfig) {
	pathOwners := make(map[string]string)

	for _, s := range manifest.Spells {
		if s.ID == "" || s.Path == "" || !filepath.IsLocal(s.Path) {
			continue
		}

		if owner, ok := pathOwners[s.Path]; ok {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("spells %s and %s share the same file: %s", owner, s.ID, s.Path))
		} else {
			pathOwners[s.Path] = s.ID
		}

		spellPath := filepath.Join(v.GrimoirePath, s.Path)
		info, err := os.Stat(spellPath)
		if os.IsNotExist(err) {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("spell file not found: %s", s.Path))
			continue
		}
		if err != nil {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("error reading spell file %s: %v", s.Path, err))
			continue
		}

		if info.Size() == 0 {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("spell file is empty: %s", s.Path))
		}
	}
}

// ValidateContent fetches every spell body through src and records the
// spells whose content cannot be retrieved. Fetches run one at a time,
// in manifest order. The progress callback, if set, is invoked once
// per spell before its fetch starts.
func (v *Validator) ValidateContent(ctx context.Context, src source.Source, progress func(id string)) error {
	manifestPath := filepath.Join(v.GrimoirePath, "grimoire.toml")

	var manifest ManifestConfig
	if _, err := toml.DecodeFile(manifestPath, &manifest); err != nil {
		return fmt.Errorf("error parsing grimoire.toml: %v", err)
	}

	for _, s := range manifest.Spells {
		if progress != nil {
			progress(s.ID)
		}

		if s.ID == "" || s.Path == "" {
			continue
		}

		body, err := src.Fetch(ctx, s.Path)
		if err != nil {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("spell %s: content not retrievable: %v", s.ID, err))
			continue
		}

		if len(strings.TrimSpace(string(body))) == 0 {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("spell %s resolves to empty content", s.ID))
		}
	}

	return nil
}

// Manifest configuration structures
type ManifestConfig struct {
	Grimoire GrimoireSection `toml:"grimoire"`
	Spells   []SpellSection  `toml:"spells"`
}

type GrimoireSection struct {
	ID            string `toml:"id"`
	Name          string `toml:"name"`
	Version       string `toml:"version"`
	SchemaVersion string `toml:"schema_version"`
	Author        string `toml:"author"`
	Description   string `toml:"description"`
}

type SpellSection struct {
	ID          string `toml:"id"`
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Path        string `toml:"path"`
}
