package spell

import (
	"fmt"
	"strings"
)

const (
	// PreviewLines is how many lines of a spell are shown while collapsed.
	PreviewLines = 6
	// PreviewChars caps the preview for texts with fewer lines than
	// PreviewLines (long single-line templates).
	PreviewChars = 400
	// Ellipsis marks a preview that omits part of the full text.
	Ellipsis = "…"
)

// Preview derives the collapsed-card rendering of text: the first
// PreviewLines lines, or the first PreviewChars characters when the text
// has fewer lines than that. The ellipsis marker is appended only when the
// full text is longer than the preview.
func Preview(text string) string {
	lines := strings.Split(text, "\n")

	var preview string
	if len(lines) >= PreviewLines {
		preview = strings.Join(lines[:PreviewLines], "\n")
	} else if runes := []rune(text); len(runes) > PreviewChars {
		preview = string(runes[:PreviewChars])
	} else {
		preview = text
	}

	if len(preview) < len(text) {
		preview += Ellipsis
	}
	return preview
}

// FailurePreview renders the preview of a card whose load failed. The detail
// is embedded so the failure is diagnosable from the card itself.
func FailurePreview(detail string) string {
	return fmt.Sprintf("Failed to load spell: %s", detail)
}
