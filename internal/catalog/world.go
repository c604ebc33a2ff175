package catalog

import (
	"strings"

	"github.com/bookwright/bookwright/internal/api"
)

var worldDescriptions = map[string]string{
	"urban_fantasy":     "Modern world with hidden magic",
	"high_fantasy":      "Completely fictional magical world",
	"epic_fantasy":      "Grand-scale fantasy with heroes and wars",
	"low_fantasy":       "Real world with subtle magic",
	"cyberpunk":         "High tech, low life near-future",
	"space_opera":       "Interstellar scale, ships and empires",
	"dystopian":         "Broken society, systems of control",
	"contemporary":      "Modern-day realistic setting",
	"historical":        "A past period without fantastical elements",
	"alternate_history": "Real world with a changed past",
}

// Worlds returns the world/setting options for a genre. Fantasy and science
// fiction genres get speculative settings; everything else gets grounded ones.
func Worlds(genre string) []api.Option {
	var ids []string
	switch {
	case strings.Contains(genre, "fantasy") || genre == GenreRomantasy:
		ids = []string{"urban_fantasy", "high_fantasy", "epic_fantasy", "low_fantasy"}
	case strings.Contains(genre, "science"):
		ids = []string{"space_opera", "cyberpunk", "dystopian"}
	default:
		ids = []string{"contemporary", "historical", "alternate_history"}
	}

	opts := make([]api.Option, 0, len(ids))
	for _, id := range ids {
		opts = append(opts, api.Option{
			ID:          id,
			Name:        DisplayName(id),
			Description: worldDescriptions[id],
		})
	}
	return opts
}
