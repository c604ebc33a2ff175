package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenres(t *testing.T) {
	opts := Genres()
	require.GreaterOrEqual(t, len(opts), 3)

	for _, o := range opts {
		assert.NotEmpty(t, o.ID)
		assert.NotEmpty(t, o.Name)
		assert.NotEmpty(t, o.Description)
	}

	// Romance is a high-demand genre and must be flagged as such.
	assert.Equal(t, "romance", opts[0].ID)
	assert.Equal(t, "High", opts[0].MarketAppeal)
}

func TestIsHighDemand(t *testing.T) {
	assert.True(t, IsHighDemand(GenreRomance))
	assert.True(t, IsHighDemand(GenreRomantasy))
	assert.False(t, IsHighDemand(GenreHorror))
	assert.False(t, IsHighDemand("no_such_genre"))
}

func TestSubgenres(t *testing.T) {
	assert.Contains(t, Subgenres(GenreFantasy), "urban_fantasy")
	assert.Contains(t, Subgenres(GenreMystery), "cozy_mystery")
	assert.Nil(t, Subgenres("western"))
}

func TestStylesGenreConditional(t *testing.T) {
	neutral := Styles("")
	require.Len(t, neutral, 6)
	assert.Equal(t, "conversational", neutral[0].ID)

	romance := Styles(GenreRomance)
	require.Len(t, romance, 6)
	assert.Equal(t, "romantic", romance[0].ID)
	assert.Equal(t, "confessional", romance[1].ID)

	fantasy := Styles(GenreFantasy)
	assert.Equal(t, "epic", fantasy[0].ID)

	// Genre additions displace the tail, never grow the list.
	for _, genre := range []string{"", GenreRomance, GenreFantasy, GenreMystery, GenreThriller} {
		assert.Len(t, Styles(genre), 6, "genre %q", genre)
	}
}

func TestLengths(t *testing.T) {
	opts := Lengths()
	require.GreaterOrEqual(t, len(opts), 4)
	assert.Equal(t, "short_novel", opts[0].ID)
	assert.Contains(t, opts[1].Description, "60,000-90,000")
}

func TestStructuresGenreConditional(t *testing.T) {
	base := Structures("")
	require.GreaterOrEqual(t, len(base), 4)
	assert.Equal(t, "three_act", base[0].ID)

	romance := Structures(GenreRomance)
	assert.Equal(t, "romance_beat_sheet", romance[0].ID)

	mystery := Structures(GenreThriller)
	assert.Equal(t, "mystery_structure", mystery[0].ID)
}

func TestWorldsGenreConditional(t *testing.T) {
	tests := []struct {
		genre   string
		wantTop string
	}{
		{GenreFantasy, "urban_fantasy"},
		{GenreCozyFantasy, "urban_fantasy"},
		{GenreRomantasy, "urban_fantasy"},
		{GenreSciFi, "space_opera"},
		{GenreRomance, "contemporary"},
		{"", "contemporary"},
	}

	for _, tt := range tests {
		t.Run(tt.genre, func(t *testing.T) {
			opts := Worlds(tt.genre)
			require.GreaterOrEqual(t, len(opts), 3)
			assert.Equal(t, tt.wantTop, opts[0].ID)
		})
	}
}

func TestOptionsFor(t *testing.T) {
	selections := map[string]string{KeyGenre: GenreFantasy}

	assert.NotEmpty(t, OptionsFor(KeyGenre, nil))
	assert.NotEmpty(t, OptionsFor(KeyAudience, selections))
	assert.Equal(t, "epic", OptionsFor(KeyStyle, selections)[0].ID)
	assert.Equal(t, "urban_fantasy", OptionsFor(KeyWorld, selections)[0].ID)

	// Free-text steps have no predefined options.
	assert.Nil(t, OptionsFor(KeyConcept, selections))
	assert.Nil(t, OptionsFor(KeyContent, selections))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Science Fiction", DisplayName("science_fiction"))
	assert.Equal(t, "Romance", DisplayName("romance"))
	assert.Equal(t, "Save The Cat", DisplayName("save_the_cat"))
}

func TestFallbackOptions(t *testing.T) {
	fb := Fallback{}

	opts := fb.Options(KeyGenre, nil)
	assert.Len(t, opts, 3)
	for _, o := range opts {
		assert.Equal(t, float64(70), o.RecommendationScore)
	}

	assert.Empty(t, fb.Options(KeyConcept, nil))
}
