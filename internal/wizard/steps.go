package wizard

import (
	"strings"
	"unicode/utf8"

	"github.com/bookwright/bookwright/internal/catalog"
)

// TotalSteps is the number of steps in the book wizard.
const TotalSteps = 9

// Concept length bounds, enforced before any network call.
const (
	MinConceptLen = 10
	MaxConceptLen = 1000
	MaxNotesLen   = 500
	MaxExtraLen   = 500
)

// Step numbers. The summary step is display-only: the last backend-processed
// step is content preferences.
const (
	StepConcept   = 1
	StepGenre     = 2
	StepAudience  = 3
	StepStyle     = 4
	StepLength    = 5
	StepStructure = 6
	StepWorld     = 7
	StepContent   = 8
	StepSummary   = 9
)

// Descriptor declares everything step-specific in one row: the form-data key,
// the display title, whether the step may be skipped, and whether it presents
// a predefined option list. The controller and the TUI are both driven off
// this table so no step logic is duplicated per step.
type Descriptor struct {
	Number     int
	Key        string
	Title      string
	Question   string
	Optional   bool   // Step may be left empty (content preferences)
	HasOptions bool   // Step presents a selectable option list
	Validate   func(value string) bool
}

func nonEmpty(v string) bool { return strings.TrimSpace(v) != "" }

func conceptValid(v string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(v))
	return n >= MinConceptLen && n <= MaxConceptLen
}

func always(string) bool { return true }

var descriptors = [TotalSteps]Descriptor{
	{StepConcept, catalog.KeyConcept, "Book Concept", "Describe your book idea in 2-3 sentences:", false, false, conceptValid},
	{StepGenre, catalog.KeyGenre, "Genre Selection", "What genre best describes your book concept?", false, true, nonEmpty},
	{StepAudience, catalog.KeyAudience, "Target Audience", "Who is your target audience?", false, true, nonEmpty},
	{StepStyle, catalog.KeyStyle, "Writing Style", "What writing style appeals to you?", false, true, nonEmpty},
	{StepLength, catalog.KeyLength, "Book Length", "What length are you targeting?", false, true, nonEmpty},
	{StepStructure, catalog.KeyStructure, "Story Structure", "Which narrative structure do you prefer?", false, true, nonEmpty},
	{StepWorld, catalog.KeyWorld, "World Building", "What type of setting interests you?", false, true, nonEmpty},
	{StepContent, catalog.KeyContent, "Content Preferences", "Any content preferences, themes, or restrictions?", true, false, always},
	{StepSummary, "summary", "Summary", "Here's your book definition:", true, false, always},
}

// StepFor returns the descriptor for a step number. Step numbers outside
// [1, TotalSteps] return the zero Descriptor.
func StepFor(n int) Descriptor {
	if n < 1 || n > TotalSteps {
		return Descriptor{}
	}
	return descriptors[n-1]
}

// StepKeyFor maps a step number to its form-data key.
func StepKeyFor(n int) string {
	return StepFor(n).Key
}

// FormKeys lists every pre-declared form-data key. All keys are always
// present in a session's form data; an empty string means unset. The
// subgenre and notes slots exist on top of the step keys because the start
// call and genre enrichment write them.
func FormKeys() []string {
	return []string{
		catalog.KeyConcept,
		catalog.KeyGenre,
		catalog.KeySubgenre,
		catalog.KeyAudience,
		catalog.KeyStyle,
		catalog.KeyLength,
		catalog.KeyStructure,
		catalog.KeyWorld,
		catalog.KeyContent,
		KeyAdditionalNotes,
	}
}

// KeyAdditionalNotes stores the optional free-text notes captured at start.
const KeyAdditionalNotes = "additionalNotes"
