package tui

import (
	"strings"
	"testing"
)

func TestDetectTheme(t *testing.T) {
	t.Setenv("GRIMOIRE_LIGHT_MODE", "1")
	if DetectTheme().IsDark {
		t.Fatal("expected light theme when GRIMOIRE_LIGHT_MODE=1")
	}

	t.Setenv("GRIMOIRE_LIGHT_MODE", "")
	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Fatal("expected dark theme for a dark terminal background")
	}

	t.Setenv("COLORFGBG", "0;15")
	if DetectTheme().IsDark {
		t.Fatal("expected light theme for a light terminal background")
	}

	t.Setenv("COLORFGBG", "")
	if !DetectTheme().IsDark {
		t.Fatal("expected dark theme by default")
	}
}

func TestRenderTitleKeepsText(t *testing.T) {
	s := NewStyles(DarkTheme())

	rendered := s.RenderTitle("Starter Grimoire")
	for _, r := range "Starter Grimoire" {
		if !strings.ContainsRune(rendered, r) {
			t.Fatalf("gradient title lost rune %q", r)
		}
	}

	if s.RenderTitle("X") == "" {
		t.Error("single-rune titles should still render")
	}
}
