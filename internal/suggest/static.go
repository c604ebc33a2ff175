package suggest

import (
	"context"

	"github.com/bookwright/bookwright/internal/api"
)

const (
	staticScore = 70
	staticLimit = 3
)

const staticReasoning = "These are solid, broadly appealing choices for your concept. " +
	"Pick whichever resonates most with the book you want to write."

// Static is the no-model engine: it shortlists the first options of the
// catalog order with a flat score. Used when no API key is configured and
// as the fallback when the model call fails.
type Static struct{}

// Suggest returns up to three options, each scored 70.
func (Static) Suggest(_ context.Context, req Request) (Result, error) {
	opts := req.Options
	if len(opts) > staticLimit {
		opts = opts[:staticLimit]
	}
	out := make([]api.Option, len(opts))
	for i, o := range opts {
		o.RecommendationScore = staticScore
		out[i] = o
	}
	return Result{Options: out, Reasoning: staticReasoning}, nil
}
