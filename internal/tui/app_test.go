package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bookwright/bookwright/internal/api"
)

func TestWrapText(t *testing.T) {
	wrapped := wrapText("the quick brown fox jumps over the lazy dog", 10)
	for _, line := range strings.Split(wrapped, "\n") {
		assert.LessOrEqual(t, len(line), 10)
	}

	assert.Equal(t, "short", wrapText("short", 0), "zero width returns input unchanged")
}

func TestOptionStepCursorRestore(t *testing.T) {
	opts := []api.Option{
		{ID: "romance", Name: "Romance"},
		{ID: "fantasy", Name: "Fantasy"},
		{ID: "mystery", Name: "Mystery"},
	}

	s := NewOptionStep(2, "Pick a genre", opts, "", "mystery")
	assert.Equal(t, "mystery", s.Selected())

	s = NewOptionStep(2, "Pick a genre", opts, "", "unknown")
	assert.Equal(t, "romance", s.Selected(), "unknown selection starts at the top")
}

func TestOptionStepViewShowsOptions(t *testing.T) {
	opts := []api.Option{
		{ID: "fantasy", Name: "Fantasy", Description: "Magic and quests", RecommendationScore: 90, MarketAppeal: "High"},
		{ID: "mystery", Name: "Mystery", RecommendationScore: 60},
	}
	s := NewOptionStep(2, "Pick a genre", opts, "", "")
	s.SetSize(60, 20)

	view := s.View()
	assert.Contains(t, view, "Pick a genre")
	assert.Contains(t, view, "Fantasy")
	assert.Contains(t, view, "Mystery")
	assert.Contains(t, view, "90")
	assert.Contains(t, view, "Magic and quests", "cursor row shows its description")
}

func TestOptionStepEmpty(t *testing.T) {
	s := NewOptionStep(2, "Pick a genre", nil, "", "")
	assert.Empty(t, s.Selected())
	assert.Nil(t, s.Submit())
	assert.Contains(t, s.View(), "No options available")
}

func TestConceptValidation(t *testing.T) {
	assert.Error(t, validateConceptInput("short"))
	assert.NoError(t, validateConceptInput("A full book concept sentence."))
}

func TestSummaryViewIncludesSelections(t *testing.T) {
	s := NewSummaryStep(map[string]string{
		"concept":            "A heist novel set on a generation ship.",
		"genre":              "science_fiction",
		"audience":           "adult",
		"contentPreferences": "no gore",
	})
	s.SetSize(60, 20)

	view := s.View()
	assert.Contains(t, view, "generation ship")
	assert.Contains(t, view, "Science Fiction")
	assert.Contains(t, view, "no gore")
	assert.NotContains(t, view, "Writing style", "empty keys are omitted")
}
