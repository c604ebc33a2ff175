// Package suggest ranks wizard step options for a specific book concept.
// The OpenAI engine asks a chat model to score each option 0-100 and explain
// the ranking; Static serves a fixed shortlist when no model is available.
package suggest

import (
	"context"

	"github.com/bookwright/bookwright/internal/api"
)

// Request carries everything the engine needs to rank a step's options:
// the concept, the answers so far, and the candidate options.
type Request struct {
	StepKey    string
	Question   string
	Concept    string
	Selections map[string]string
	Options    []api.Option
}

// Result is the ranked option list plus the engine's advisory reasoning.
type Result struct {
	Options   []api.Option
	Reasoning string
}

// Suggester ranks the options of a wizard step.
type Suggester interface {
	Suggest(ctx context.Context, req Request) (Result, error)
}
