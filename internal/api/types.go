// Package api defines the wire types shared by the wizard service and its
// clients. The contract is deliberately soft: every field decodes to its zero
// value when absent, so older clients and servers stay compatible.
package api

import (
	"fmt"
	"time"
)

// StartRequest begins a new wizard session from a book concept.
type StartRequest struct {
	Concept         string `json:"concept"`
	AdditionalNotes string `json:"additional_notes,omitempty"`
}

// StepRequest submits a selection (or requests options) for a wizard step.
// Selection is a pointer so "no selection" (a prefetch) is distinguishable
// from an empty string.
type StepRequest struct {
	SessionID       string  `json:"session_id"`
	Selection       *string `json:"selection"`
	AdditionalInput string  `json:"additional_input,omitempty"`
}

// Option is a single selectable choice within a wizard step.
type Option struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name,omitempty"`
	Description         string  `json:"description,omitempty"`
	RecommendationScore float64 `json:"recommendation_score,omitempty"`
	MarketAppeal        string  `json:"market_appeal,omitempty"`
}

// StepMetadata describes the step currently being presented: the question,
// the selectable options, the advisory reasoning, and navigation flags.
type StepMetadata struct {
	SessionID    string   `json:"session_id,omitempty"`
	StepNumber   int      `json:"step_number,omitempty"`
	StepName     string   `json:"step_name,omitempty"`
	Question     string   `json:"question,omitempty"`
	Options      []Option `json:"options,omitempty"`
	LLMReasoning string   `json:"llm_reasoning,omitempty"`
	CanGoBack    bool     `json:"can_go_back,omitempty"`
	IsFinalStep  bool     `json:"is_final_step,omitempty"`
}

// StartResponse is returned by POST /wizard/start.
// FirstStep carries the metadata for the step the user will see next.
type StartResponse struct {
	SessionID string       `json:"session_id"`
	FirstStep StepMetadata `json:"first_step"`
}

// SessionSnapshot is the server-side view of a wizard session, returned by
// GET /wizard/session/{id}.
type SessionSnapshot struct {
	SessionID        string            `json:"session_id"`
	CreatedAt        time.Time         `json:"created_at"`
	CurrentStep      int               `json:"current_step"`
	Concept          string            `json:"concept"`
	Selections       map[string]string `json:"selections,omitempty"`
	AdditionalInputs map[string]string `json:"additional_inputs,omitempty"`
	IsComplete       bool              `json:"is_complete,omitempty"`
	BookSummary      map[string]string `json:"book_summary,omitempty"`
}

// ErrorResponse carries a human-readable failure detail on non-2xx responses.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Error is a backend failure surfaced to callers. StatusCode is zero for
// transport-level failures where no response arrived.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("wizard service returned status %d", e.StatusCode)
	}
	return "wizard service unreachable"
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
