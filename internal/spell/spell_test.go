package spell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinishLoadSetsContentAndPreview(t *testing.T) {
	var c CardState

	ok := c.FinishLoad("line1\nline2")

	assert.True(t, ok)
	assert.True(t, c.Loaded)
	assert.False(t, c.Failed)
	assert.Equal(t, "line1\nline2", c.Content)
	assert.Equal(t, "line1\nline2", c.Preview)
}

func TestFinishLoadOnlyOnce(t *testing.T) {
	var c CardState
	c.FinishLoad("first")

	ok := c.FinishLoad("second")

	assert.False(t, ok)
	assert.Equal(t, "first", c.Content)

	ok = c.FinishLoadFailure("late failure")
	assert.False(t, ok)
	assert.False(t, c.Failed)
}

func TestFinishLoadFailureLeavesContentEmpty(t *testing.T) {
	var c CardState

	ok := c.FinishLoadFailure("connection refused")

	assert.True(t, ok)
	assert.True(t, c.Loaded)
	assert.True(t, c.Failed)
	assert.Equal(t, "", c.Content)
	assert.Contains(t, c.Preview, "connection refused")
}

func TestToggleParity(t *testing.T) {
	var c CardState

	// Odd number of toggles leaves the card expanded, even returns it to
	// collapsed.
	for i := 0; i < 5; i++ {
		c.Toggle()
	}
	assert.True(t, c.Expanded)

	c.Toggle()
	assert.False(t, c.Expanded)
}
