package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bookwright/bookwright/internal/api"
	"github.com/bookwright/bookwright/internal/catalog"
	"github.com/bookwright/bookwright/internal/logger"
	"github.com/bookwright/bookwright/internal/natsbus"
	"github.com/bookwright/bookwright/internal/store"
	"github.com/bookwright/bookwright/internal/suggest"
	"github.com/bookwright/bookwright/internal/wizard"
)

var (
	// ErrSessionNotFound maps to 404 on the HTTP surface.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidStep rejects step numbers outside the processable range.
	ErrInvalidStep = errors.New("invalid step number")
)

// InputError reports invalid request input; it maps to 400 with its detail.
type InputError struct {
	Detail string
}

func (e *InputError) Error() string { return e.Detail }

// Processor implements the wizard service logic behind the HTTP handlers:
// session lifecycle, selection recording, and option ranking.
type Processor struct {
	sessions  *Sessions
	suggester suggest.Suggester
	pub       *natsbus.Publisher
	log       *logger.Logger
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithSuggester installs the option ranking engine. Defaults to the static
// shortlist.
func WithSuggester(s suggest.Suggester) ProcessorOption {
	return func(p *Processor) { p.suggester = s }
}

// WithPublisher installs the lifecycle event publisher.
func WithPublisher(pub *natsbus.Publisher) ProcessorOption {
	return func(p *Processor) { p.pub = pub }
}

// WithProcessorLogger overrides the package default logger.
func WithProcessorLogger(l *logger.Logger) ProcessorOption {
	return func(p *Processor) { p.log = l }
}

// NewProcessor creates a processor over st.
func NewProcessor(st store.Store, opts ...ProcessorOption) *Processor {
	p := &Processor{
		sessions:  NewSessions(st),
		suggester: suggest.Static{},
		log:       logger.Default,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start validates the concept, creates a session, and returns the first
// selection step.
func (p *Processor) Start(ctx context.Context, req api.StartRequest) (api.StartResponse, error) {
	concept := strings.TrimSpace(req.Concept)
	if n := utf8.RuneCountInString(concept); n < wizard.MinConceptLen {
		return api.StartResponse{}, &InputError{Detail: fmt.Sprintf("Concept must be at least %d characters", wizard.MinConceptLen)}
	} else if n > wizard.MaxConceptLen {
		return api.StartResponse{}, &InputError{Detail: fmt.Sprintf("Concept must be at most %d characters", wizard.MaxConceptLen)}
	}
	notes := strings.TrimSpace(req.AdditionalNotes)
	if utf8.RuneCountInString(notes) > wizard.MaxNotesLen {
		return api.StartResponse{}, &InputError{Detail: fmt.Sprintf("Notes must be at most %d characters", wizard.MaxNotesLen)}
	}

	sess, err := p.sessions.Create(ctx, concept, notes)
	if err != nil {
		return api.StartResponse{}, fmt.Errorf("create session: %w", err)
	}
	if notes != "" {
		sess.AdditionalInputs[catalog.KeyServerNotes] = notes
	}
	sess.CurrentStep = wizard.StepGenre
	if err := p.sessions.Save(ctx, sess); err != nil {
		return api.StartResponse{}, fmt.Errorf("save session: %w", err)
	}

	p.pub.Publish(ctx, natsbus.Event{SessionID: sess.ID, Type: natsbus.EventStarted})
	p.log.Info("server: session %s started", sess.ID)

	meta := p.stepMetadata(ctx, sess, wizard.StepGenre, true)
	return api.StartResponse{SessionID: sess.ID, FirstStep: meta}, nil
}

// ProcessStep records a selection for the step when one is present, then
// returns the step's metadata. A request without a selection is a pure
// fetch: options are ranked but nothing is written.
func (p *Processor) ProcessStep(ctx context.Context, step int, req api.StepRequest) (api.StepMetadata, error) {
	if step < wizard.StepGenre || step > wizard.StepContent {
		return api.StepMetadata{}, ErrInvalidStep
	}
	if utf8.RuneCountInString(req.AdditionalInput) > wizard.MaxExtraLen {
		return api.StepMetadata{}, &InputError{Detail: fmt.Sprintf("Additional input must be at most %d characters", wizard.MaxExtraLen)}
	}
	sess, err := p.sessions.Get(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return api.StepMetadata{}, ErrSessionNotFound
		}
		return api.StepMetadata{}, fmt.Errorf("load session: %w", err)
	}

	submitted := req.Selection != nil
	if submitted {
		if err := p.record(ctx, sess, step, req); err != nil {
			return api.StepMetadata{}, err
		}
	}
	return p.stepMetadata(ctx, sess, step, !submitted), nil
}

// record writes the step's answer into the session and advances its server-
// side progress marker.
func (p *Processor) record(ctx context.Context, sess *store.Session, step int, req api.StepRequest) error {
	key := wizard.StepKeyFor(step)
	if step == wizard.StepContent {
		sess.Selections[key] = req.AdditionalInput
		if req.AdditionalInput != "" {
			sess.AdditionalInputs[key] = req.AdditionalInput
		}
		sess.Complete = true
	} else {
		sess.Selections[key] = *req.Selection
		if key == catalog.KeyGenre {
			p.enrichSubgenre(sess, *req.Selection)
		}
	}
	if step >= sess.CurrentStep && step < wizard.StepSummary {
		sess.CurrentStep = step + 1
	}
	if err := p.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	if sess.Complete {
		p.pub.Publish(ctx, natsbus.Event{
			SessionID: sess.ID,
			Type:      natsbus.EventCompleted,
			Summary:   bookSummary(sess),
		})
		p.log.Info("server: session %s completed", sess.ID)
	} else {
		p.pub.Publish(ctx, natsbus.Event{
			SessionID: sess.ID,
			Type:      natsbus.EventStep,
			Step:      step,
			StepKey:   key,
			Selection: sess.Selections[key],
		})
	}
	return nil
}

// enrichSubgenre pre-fills the subgenre slot with the chosen genre's leading
// subgenre so downstream steps have it available.
func (p *Processor) enrichSubgenre(sess *store.Session, genre string) {
	if subs := catalog.Subgenres(genre); len(subs) > 0 {
		sess.Selections[catalog.KeySubgenre] = subs[0]
	}
}

// stepMetadata builds the step's presentation: question, options, and
// reasoning. Ranking runs only for fetches; submits reuse what the client
// already saw.
func (p *Processor) stepMetadata(ctx context.Context, sess *store.Session, step int, rank bool) api.StepMetadata {
	d := wizard.StepFor(step)
	meta := api.StepMetadata{
		SessionID:   sess.ID,
		StepNumber:  step,
		StepName:    d.Key,
		Question:    d.Question,
		CanGoBack:   step > wizard.StepGenre,
		IsFinalStep: step == wizard.StepContent,
	}
	if !d.HasOptions {
		return meta
	}

	opts := catalog.OptionsFor(d.Key, sess.Selections)
	if !rank {
		meta.Options = opts
		return meta
	}

	res, err := p.suggester.Suggest(ctx, suggest.Request{
		StepKey:    d.Key,
		Question:   d.Question,
		Concept:    sess.Concept,
		Selections: sess.Selections,
		Options:    opts,
	})
	if err != nil || len(res.Options) == 0 {
		if err != nil {
			p.log.Warn("server: ranking step %d for %s failed: %v", step, sess.ID, err)
		}
		res, _ = suggest.Static{}.Suggest(ctx, suggest.Request{Options: opts})
	}
	meta.Options = res.Options
	meta.LLMReasoning = res.Reasoning
	return meta
}

// Snapshot returns the authoritative view of a session.
func (p *Processor) Snapshot(ctx context.Context, id string) (api.SessionSnapshot, error) {
	sess, err := p.sessions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return api.SessionSnapshot{}, ErrSessionNotFound
		}
		return api.SessionSnapshot{}, fmt.Errorf("load session: %w", err)
	}
	snap := api.SessionSnapshot{
		SessionID:        sess.ID,
		CreatedAt:        sess.CreatedAt,
		CurrentStep:      sess.CurrentStep,
		Concept:          sess.Concept,
		Selections:       sess.Selections,
		AdditionalInputs: sess.AdditionalInputs,
		IsComplete:       sess.Complete,
	}
	if sess.Complete {
		snap.BookSummary = bookSummary(sess)
	}
	return snap, nil
}

// Health reports service liveness.
func (p *Processor) Health() api.HealthResponse {
	return api.HealthResponse{Status: "healthy", Timestamp: time.Now().UTC()}
}

// bookSummary renders the recorded selections with display names, ready to
// show as the finished book definition.
func bookSummary(sess *store.Session) map[string]string {
	out := map[string]string{catalog.KeyConcept: sess.Concept}
	for key, val := range sess.Selections {
		if val == "" {
			continue
		}
		switch key {
		case catalog.KeyContent:
			out[key] = val
		default:
			out[key] = catalog.DisplayName(val)
		}
	}
	return out
}
