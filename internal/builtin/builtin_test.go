package builtin

import (
	"context"
	"io/fs"
	"testing"

	"github.com/arcanaland/grimoire/internal/grimoire"
	"github.com/arcanaland/grimoire/internal/validator"
)

func TestFSContainsManifest(t *testing.T) {
	root, err := FS()
	if err != nil {
		t.Fatalf("FS: %v", err)
	}

	if _, err := fs.Stat(root, "grimoire.toml"); err != nil {
		t.Fatalf("embedded grimoire has no manifest: %v", err)
	}
}

func TestInstallProducesValidGrimoire(t *testing.T) {
	dir := t.TempDir()

	if err := Install(dir); err != nil {
		t.Fatalf("Install: %v", err)
	}

	results, err := validator.NewValidator(dir).Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(results.Errors) != 0 {
		t.Errorf("installed grimoire has validation errors: %v", results.Errors)
	}
	if len(results.Warnings) != 0 {
		t.Errorf("installed grimoire has validation warnings: %v", results.Warnings)
	}
}

func TestInstalledGrimoireLoads(t *testing.T) {
	dir := t.TempDir()

	if err := Install(dir); err != nil {
		t.Fatalf("Install: %v", err)
	}

	g, err := grimoire.LoadDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	if len(g.Spells) != 5 {
		t.Fatalf("expected 5 spells, got %d", len(g.Spells))
	}
	if g.Spells[0].ID != "code-review" {
		t.Errorf("expected first spell to be code-review, got %s", g.Spells[0].ID)
	}
	if _, err := g.GetSpell("debugging-partner"); err != nil {
		t.Errorf("GetSpell(debugging-partner): %v", err)
	}
}
