package catalog

import (
	"fmt"
	"strings"

	"github.com/bookwright/bookwright/internal/api"
)

// Genre identifiers. The wizard offers the high-demand commercial subset;
// the full list exists for snapshot display and subgenre lookups.
const (
	GenreRomance     = "romance"
	GenreFantasy     = "fantasy"
	GenreMystery     = "mystery"
	GenreThriller    = "thriller"
	GenreSciFi       = "science_fiction"
	GenreRomantasy   = "romantasy"
	GenreYoungAdult  = "young_adult"
	GenreCozyFantasy = "cozy_fantasy"
	GenreHorror      = "horror"
	GenreHistorical  = "historical_fiction"
)

var highDemandGenres = map[string]bool{
	GenreRomance:     true,
	GenreFantasy:     true,
	GenreMystery:     true,
	GenreThriller:    true,
	GenreSciFi:       true,
	GenreYoungAdult:  true,
	GenreRomantasy:   true,
	GenreCozyFantasy: true,
}

// subgenresByGenre maps a genre to its commercially relevant subgenres.
var subgenresByGenre = map[string][]string{
	GenreFantasy:    {"epic_fantasy", "urban_fantasy", "dark_fantasy", "sword_and_sorcery", "fairy_tale_retelling"},
	GenreRomance:    {"contemporary_romance", "historical_romance", "romantic_suspense", "paranormal_romance", "romcom"},
	GenreMystery:    {"cozy_mystery", "police_procedural", "amateur_sleuth", "noir"},
	GenreThriller:   {"psychological_thriller", "legal_thriller", "spy_thriller", "domestic_thriller"},
	GenreSciFi:      {"space_opera", "cyberpunk", "hard_sf", "dystopian", "time_travel"},
	GenreYoungAdult: {"ya_fantasy", "ya_contemporary", "ya_dystopian", "ya_romance"},
}

// IsHighDemand reports whether a genre is in high market demand.
func IsHighDemand(genre string) bool {
	return highDemandGenres[genre]
}

// Subgenres returns the subgenre identifiers for a genre, or nil when the
// genre has no curated subgenre list.
func Subgenres(genre string) []string {
	return subgenresByGenre[genre]
}

// Genres returns the genre options the wizard presents, ordered by market
// appeal.
func Genres() []api.Option {
	ids := []string{
		GenreRomance, GenreFantasy, GenreMystery,
		GenreThriller, GenreRomantasy, GenreYoungAdult,
		GenreSciFi, GenreCozyFantasy,
	}

	opts := make([]api.Option, 0, len(ids))
	for _, id := range ids {
		appeal := "Medium"
		if IsHighDemand(id) {
			appeal = "High"
		}
		opts = append(opts, api.Option{
			ID:           id,
			Name:         DisplayName(id),
			Description:  fmt.Sprintf("Commercial appeal: %s", appeal),
			MarketAppeal: appeal,
		})
	}
	return opts
}

// DisplayName converts a snake_case identifier to a title-cased label.
func DisplayName(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
