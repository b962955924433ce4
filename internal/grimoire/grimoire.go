package grimoire

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/grimoire/internal/source"
	"github.com/arcanaland/grimoire/internal/spell"
)

// ManifestName is the file that describes a grimoire, relative to its root.
const ManifestName = "grimoire.toml"

// SchemaVersion is the manifest schema this build understands.
const SchemaVersion = "1.0"

// Grimoire represents a loaded collection of prompt templates
type Grimoire struct {
	ID          string
	Name        string
	Version     string
	Author      string
	Description string
	Root        string

	// Spells in manifest order; the browse UI renders one card per entry
	// in exactly this order.
	Spells []spell.Spell

	byID map[string]int

	// Raw manifest data
	manifest *Manifest
}

// Load fetches and decodes the manifest through a source (local directory or
// HTTP file server).
func Load(ctx context.Context, src source.Source) (*Grimoire, error) {
	data, err := src.Fetch(ctx, ManifestName)
	if err != nil {
		return nil, fmt.Errorf("error loading %s from %s: %v", ManifestName, src.Root(), err)
	}

	var manifest Manifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("error parsing %s: %v", ManifestName, err)
	}

	g := &Grimoire{
		ID:          manifest.Grimoire.ID,
		Name:        manifest.Grimoire.Name,
		Version:     manifest.Grimoire.Version,
		Author:      manifest.Grimoire.Author,
		Description: manifest.Grimoire.Description,
		Root:        src.Root(),
		byID:        make(map[string]int),
		manifest:    &manifest,
	}

	for _, entry := range manifest.Spells {
		s := spell.Spell{
			ID:          entry.ID,
			Title:       entry.Title,
			Description: entry.Description,
			Path:        entry.Path,
		}
		if s.Title == "" {
			s.Title = s.ID
		}
		g.byID[s.ID] = len(g.Spells)
		g.Spells = append(g.Spells, s)
	}

	return g, nil
}

// LoadDir loads a grimoire from a local directory.
func LoadDir(ctx context.Context, dir string) (*Grimoire, error) {
	manifestPath := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s not found in %s", ManifestName, dir)
	}

	return Load(ctx, source.NewDirSource(dir))
}

// GetSpell gets a spell by its identifier
func (g *Grimoire) GetSpell(id string) (*spell.Spell, error) {
	idx, ok := g.byID[id]
	if !ok {
		return nil, fmt.Errorf("spell not found: %s", id)
	}
	return &g.Spells[idx], nil
}

// Manifest structures

type Manifest struct {
	Grimoire GrimoireSection `toml:"grimoire"`
	Spells   []SpellSection  `toml:"spells"`
}

type GrimoireSection struct {
	ID            string   `toml:"id"`
	Name          string   `toml:"name"`
	Version       string   `toml:"version"`
	SchemaVersion string   `toml:"schema_version"`
	Author        string   `toml:"author"`
	License       string   `toml:"license"`
	Description   string   `toml:"description"`
	Website       string   `toml:"website"`
	Tags          []string `toml:"tags"`
}

type SpellSection struct {
	ID          string `toml:"id"`
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Path        string `toml:"path"`
}
