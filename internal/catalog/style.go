package catalog

import (
	"fmt"

	"github.com/bookwright/bookwright/internal/api"
)

// baseStyles are the genre-neutral commercial writing styles.
var baseStyles = []string{
	"conversational", "contemporary", "accessible",
	"narrative", "classical", "informal",
}

// genreStyles are appended ahead of the tail of the base set when the genre
// calls for them.
var genreStyles = map[string][]string{
	GenreRomance:   {"romantic", "confessional"},
	GenreFantasy:   {"epic", "atmospheric"},
	GenreRomantasy: {"romantic", "atmospheric"},
	GenreMystery:   {"suspenseful", "noir"},
	GenreThriller:  {"suspenseful", "punchy"},
}

const maxStyleOptions = 6

// Styles returns the writing style options for a genre. Genre-specific styles
// displace the tail of the base set so the list stays at six entries.
func Styles(genre string) []api.Option {
	ids := make([]string, 0, maxStyleOptions)
	ids = append(ids, genreStyles[genre]...)
	for _, s := range baseStyles {
		if len(ids) >= maxStyleOptions {
			break
		}
		ids = append(ids, s)
	}

	context := "general"
	if genre != "" {
		context = DisplayName(genre)
	}

	opts := make([]api.Option, 0, len(ids))
	for _, id := range ids {
		opts = append(opts, api.Option{
			ID:          id,
			Name:        DisplayName(id),
			Description: fmt.Sprintf("Suitable for %s fiction", context),
		})
	}
	return opts
}
