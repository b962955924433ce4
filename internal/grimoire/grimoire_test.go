package grimoire

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const testManifest = `[grimoire]
id = "test-grimoire"
name = "Test Grimoire"
version = "0.1.0"
schema_version = "1.0"
author = "tester"
description = "Fixtures for the loader"

[[spells]]
id = "first"
title = "First Spell"
description = "Comes first"
path = "spells/first.md"

[[spells]]
id = "second"
title = "Second Spell"
description = "Comes second"
path = "spells/second.md"

[[spells]]
id = "untitled"
path = "spells/untitled.md"
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(content), 0644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	return dir
}

func TestLoadDirPreservesOrder(t *testing.T) {
	dir := writeManifest(t, testManifest)

	g, err := LoadDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	if g.Name != "Test Grimoire" {
		t.Errorf("expected name from manifest, got %q", g.Name)
	}
	if len(g.Spells) != 3 {
		t.Fatalf("expected 3 spells, got %d", len(g.Spells))
	}

	order := []string{"first", "second", "untitled"}
	for i, id := range order {
		if g.Spells[i].ID != id {
			t.Errorf("spell %d: expected %q, got %q", i, id, g.Spells[i].ID)
		}
	}
}

func TestLoadDirDefaultsTitleToID(t *testing.T) {
	dir := writeManifest(t, testManifest)

	g, err := LoadDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	s, err := g.GetSpell("untitled")
	if err != nil {
		t.Fatalf("GetSpell: %v", err)
	}
	if s.Title != "untitled" {
		t.Errorf("expected title to default to the ID, got %q", s.Title)
	}
}

func TestGetSpellNotFound(t *testing.T) {
	dir := writeManifest(t, testManifest)

	g, err := LoadDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	if _, err := g.GetSpell("no-such-spell"); err == nil {
		t.Fatal("expected an error for an unknown spell")
	}
}

func TestLoadDirMissingManifest(t *testing.T) {
	if _, err := LoadDir(context.Background(), t.TempDir()); err == nil {
		t.Fatal("expected an error when the manifest is missing")
	}
}

func TestLoadBadManifest(t *testing.T) {
	dir := writeManifest(t, "this is not toml [[[")

	if _, err := LoadDir(context.Background(), dir); err == nil {
		t.Fatal("expected a parse error")
	}
}
