package catalog

import "github.com/bookwright/bookwright/internal/api"

var structureDescriptions = map[string]string{
	"three_act":          "Setup, confrontation, resolution - the broadest-appeal framework",
	"hero_journey":       "Departure, initiation, return - suits quest and transformation arcs",
	"save_the_cat":       "Fifteen-beat screenplay structure adapted for novels",
	"seven_point":        "Hook to resolution via midpoint reversal - tight plotting",
	"romance_beat_sheet": "Meet-cute through dark moment to HEA - genre-expected beats",
	"mystery_structure":  "Crime, investigation, red herrings, reveal",
}

// Structures returns the story structure options. Romance and mystery genres
// surface their genre-specific beat sheets first.
func Structures(genre string) []api.Option {
	ids := []string{"three_act", "hero_journey", "save_the_cat", "seven_point"}
	switch genre {
	case GenreRomance, GenreRomantasy:
		ids = append([]string{"romance_beat_sheet"}, ids...)
	case GenreMystery, GenreThriller:
		ids = append([]string{"mystery_structure"}, ids...)
	}

	opts := make([]api.Option, 0, len(ids))
	for _, id := range ids {
		desc := structureDescriptions[id]
		if desc == "" {
			desc = "Proven narrative structure"
		}
		opts = append(opts, api.Option{
			ID:          id,
			Name:        DisplayName(id),
			Description: desc,
		})
	}
	return opts
}
