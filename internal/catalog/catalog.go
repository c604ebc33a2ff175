// Package catalog holds the curated option sets behind each wizard step.
// The lists favor commercially viable choices; the suggestion engine reorders
// them per concept, and the TUI falls back to them when the service is
// unreachable. Option sets for the style and world steps depend on the genre
// chosen earlier, so every accessor takes the selections recorded so far.
package catalog

import "github.com/bookwright/bookwright/internal/api"

// Step keys as they appear in wizard form data and server selections.
const (
	KeyConcept     = "concept"
	KeyGenre       = "genre"
	KeySubgenre    = "subgenre"
	KeyAudience    = "audience"
	KeyStyle       = "style"
	KeyLength      = "length"
	KeyStructure   = "structure"
	KeyWorld       = "world"
	KeyContent     = "contentPreferences"
	KeyServerNotes = "initial_notes"
)

// OptionsFor returns the static option set for a step key, taking earlier
// selections into account where the set is genre-conditional. Steps without
// predefined options (concept, content preferences) return nil.
func OptionsFor(stepKey string, selections map[string]string) []api.Option {
	genre := ""
	if selections != nil {
		genre = selections[KeyGenre]
	}

	switch stepKey {
	case KeyGenre:
		return Genres()
	case KeyAudience:
		return Audiences()
	case KeyStyle:
		return Styles(genre)
	case KeyLength:
		return Lengths()
	case KeyStructure:
		return Structures(genre)
	case KeyWorld:
		return Worlds(genre)
	default:
		return nil
	}
}
