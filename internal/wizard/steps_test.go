package wizard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bookwright/bookwright/internal/catalog"
)

func TestStepForBounds(t *testing.T) {
	assert.Equal(t, Descriptor{}, StepFor(0))
	assert.Equal(t, Descriptor{}, StepFor(TotalSteps+1))
	assert.Equal(t, catalog.KeyConcept, StepFor(1).Key)
	assert.Equal(t, "summary", StepFor(TotalSteps).Key)
}

func TestStepKeys(t *testing.T) {
	want := map[int]string{
		StepConcept:   "concept",
		StepGenre:     "genre",
		StepAudience:  "audience",
		StepStyle:     "style",
		StepLength:    "length",
		StepStructure: "structure",
		StepWorld:     "world",
		StepContent:   "contentPreferences",
	}
	for n, key := range want {
		assert.Equal(t, key, StepKeyFor(n), "step %d", n)
	}
}

func TestConceptValidation(t *testing.T) {
	assert.False(t, conceptValid("short"))
	assert.False(t, conceptValid("         padded          "))
	assert.True(t, conceptValid("A ten char concept."))
	assert.True(t, conceptValid(strings.Repeat("a", MaxConceptLen)))
	assert.False(t, conceptValid(strings.Repeat("a", MaxConceptLen+1)))
}

func TestOnlyContentAndSummaryOptional(t *testing.T) {
	for n := 1; n <= TotalSteps; n++ {
		d := StepFor(n)
		if n == StepContent || n == StepSummary {
			assert.True(t, d.Optional, "step %d", n)
		} else {
			assert.False(t, d.Optional, "step %d", n)
		}
	}
}

func TestOptionStepsMatchCatalog(t *testing.T) {
	for n := StepGenre; n <= StepWorld; n++ {
		d := StepFor(n)
		assert.True(t, d.HasOptions, "step %d", n)
		assert.NotEmpty(t, catalog.OptionsFor(d.Key, map[string]string{catalog.KeyGenre: "fantasy"}), "step %d", n)
	}
}
