package catalog

import "github.com/bookwright/bookwright/internal/api"

// fallbackScore is assigned to every fallback option so the UI can still
// sort and badge them consistently.
const fallbackScore = 70

// fallbackLimit caps the number of options shown when no ranking is
// available.
const fallbackLimit = 3

// Fallback serves a short, unranked option list for a step from the static
// catalogs. It is used when the wizard service is unreachable or returns an
// empty option list, so a selection step always has something to offer.
type Fallback struct{}

// Options returns up to three catalog options for the step, each with a
// neutral recommendation score.
func (Fallback) Options(stepKey string, formData map[string]string) []api.Option {
	opts := OptionsFor(stepKey, formData)
	if len(opts) > fallbackLimit {
		opts = opts[:fallbackLimit]
	}
	out := make([]api.Option, len(opts))
	for i, o := range opts {
		o.RecommendationScore = fallbackScore
		out[i] = o
	}
	return out
}
