package spell

// Spell describes one prompt template in a grimoire. The fields come from
// the grimoire manifest and never change after loading.
type Spell struct {
	ID          string // Unique identifier within the grimoire (e.g. code-review)
	Title       string // Display title
	Description string // One-line summary shown under the title
	Path        string // Path of the template text, relative to the grimoire root
}

// CardState is the runtime state of one rendered card. It exists for the
// lifetime of a browse session and nothing is persisted. Content is set by
// exactly one load; Expanded is flipped only by the toggle interaction.
type CardState struct {
	Expanded      bool
	Loaded        bool
	Content       string // Full template text, verbatim; empty when the load failed
	Preview       string // Truncated rendering shown while collapsed
	Failed        bool
	FailureDetail string
}

// FinishLoad records a successful load. It reports whether the state was
// updated; once a card is loaded its content is immutable for the session,
// so a second call is ignored.
func (c *CardState) FinishLoad(text string) bool {
	if c.Loaded {
		return false
	}
	c.Loaded = true
	c.Content = text
	c.Preview = Preview(text)
	return true
}

// FinishLoadFailure records a failed load. The full text stays empty and the
// preview carries the failure message. Like FinishLoad, only the first load
// outcome counts.
func (c *CardState) FinishLoadFailure(detail string) bool {
	if c.Loaded {
		return false
	}
	c.Loaded = true
	c.Failed = true
	c.FailureDetail = detail
	c.Preview = FailurePreview(detail)
	return true
}

// Toggle flips the expanded flag and returns the new value.
func (c *CardState) Toggle() bool {
	c.Expanded = !c.Expanded
	return c.Expanded
}
