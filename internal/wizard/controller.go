package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bookwright/bookwright/internal/api"
	"github.com/bookwright/bookwright/internal/logger"
)

// Backend is the wizard service the controller talks to. Implementations
// must be safe for concurrent use; the HTTP client in internal/client is
// the production one.
type Backend interface {
	Start(ctx context.Context, concept, notes string) (api.StepMetadata, error)
	ProcessStep(ctx context.Context, step int, req api.StepRequest) (api.StepMetadata, error)
	Session(ctx context.Context, sessionID string) (api.SessionSnapshot, error)
}

// FallbackProvider supplies static options for a step when the backend
// returns none, so an option step is never rendered empty.
type FallbackProvider interface {
	Options(stepKey string, formData map[string]string) []api.Option
}

var (
	// ErrBusy is returned when an action is attempted while a backend call
	// is already in flight.
	ErrBusy = errors.New("wizard: request already in flight")
	// ErrNoSession is returned by step operations before a session exists.
	ErrNoSession = errors.New("wizard: no active session")
)

// ValidationError reports local input validation failure. It carries no
// state change: the controller's status and form data are untouched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("wizard: invalid %s: %s", e.Field, e.Reason)
}

// Controller drives a single wizard session through its nine steps. All
// methods are safe for concurrent use. Backend calls run without the lock
// held; a generation counter discards responses that arrive after the
// session was reset or navigated away from.
type Controller struct {
	backend  Backend
	fallback FallbackProvider
	log      *logger.Logger

	mu  sync.Mutex
	s   *session
	gen uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithFallback installs a static option source used when a step fetch
// returns no options.
func WithFallback(fp FallbackProvider) Option {
	return func(c *Controller) { c.fallback = fp }
}

// WithLogger overrides the package default logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// New creates a controller bound to a backend.
func New(backend Backend, opts ...Option) *Controller {
	c := &Controller{
		backend: backend,
		log:     logger.Default,
		s:       newSession(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.snapshot()
}

// Status returns the controller lifecycle status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.status
}

// CurrentStep returns the 1-based current step number.
func (c *Controller) CurrentStep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.currentStep
}

// SessionID returns the backend session id, empty before StartSession
// succeeds.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.id
}

// FormValue returns the stored value for a form-data key.
func (c *Controller) FormValue(key string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.formData[key]
}

// LastError returns the most recent backend error message, empty when the
// last action succeeded.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.lastError
}

// StartSession validates the concept locally, then creates a backend
// session. On success the session id and first-step metadata are stored and
// the wizard moves to step 2. Validation failures return before any network
// call and leave the session untouched.
func (c *Controller) StartSession(ctx context.Context, concept, notes string) error {
	if err := validateConcept(concept); err != nil {
		return err
	}
	notes = strings.TrimSpace(notes)
	if utf8.RuneCountInString(notes) > MaxNotesLen {
		return &ValidationError{Field: "notes", Reason: fmt.Sprintf("must be at most %d characters", MaxNotesLen)}
	}

	c.mu.Lock()
	if c.s.status == StatusLoading {
		c.mu.Unlock()
		return ErrBusy
	}
	c.s.status = StatusLoading
	c.s.lastError = ""
	gen := c.gen
	c.mu.Unlock()

	meta, err := c.backend.Start(ctx, strings.TrimSpace(concept), notes)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.log.Debug("wizard: discarding stale start response")
		return nil
	}
	if err != nil {
		c.s.status = StatusError
		c.s.lastError = errorMessage(err)
		return err
	}
	c.s.id = meta.SessionID
	c.s.formData[StepKeyFor(StepConcept)] = strings.TrimSpace(concept)
	c.s.formData[KeyAdditionalNotes] = notes
	c.applyMetadata(meta, StepGenre)
	c.s.currentStep = StepGenre
	c.s.status = StatusReady
	c.log.Info("wizard: session started id=%s", c.s.id)
	return nil
}

// SubmitStep sends a step selection to the backend and, on success, records
// the selection and the returned metadata for the step. selection may be
// nil for a pure fetch (no selection recorded). A nil error with ok=false
// means the response arrived after the session moved on and was discarded.
func (c *Controller) SubmitStep(ctx context.Context, step int, selection *string, extra string) (ok bool, err error) {
	if utf8.RuneCountInString(extra) > MaxExtraLen {
		return false, &ValidationError{Field: "input", Reason: fmt.Sprintf("must be at most %d characters", MaxExtraLen)}
	}

	c.mu.Lock()
	if c.s.id == "" {
		c.mu.Unlock()
		return false, ErrNoSession
	}
	if c.s.status == StatusLoading {
		c.mu.Unlock()
		return false, ErrBusy
	}
	c.s.status = StatusLoading
	c.s.lastError = ""
	id := c.s.id
	gen := c.gen
	c.mu.Unlock()

	// A content-preferences submit carries its text as the selection too, so
	// the service can tell a submit from a metadata prefetch.
	wireSel := selection
	if step == StepContent && wireSel == nil {
		wireSel = &extra
	}
	meta, err := c.backend.ProcessStep(ctx, step, api.StepRequest{
		SessionID:       id,
		Selection:       wireSel,
		AdditionalInput: extra,
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.log.Debug("wizard: discarding stale response for step %d", step)
		return false, nil
	}
	if err != nil {
		c.s.status = StatusError
		c.s.lastError = errorMessage(err)
		return false, err
	}
	c.recordSubmission(step, selection, extra, meta)
	c.applyMetadata(meta, step)
	c.s.status = StatusReady
	return true, nil
}

// recordSubmission writes the user's answer into form data. Content
// preferences store the free text; every other step stores the selection
// under the step's key. Callers hold the lock.
func (c *Controller) recordSubmission(step int, selection *string, extra string, meta api.StepMetadata) {
	key := StepKeyFor(step)
	if key == "" {
		return
	}
	if stepKeyFromName(meta.StepName, step) == StepFor(StepContent).Key {
		c.s.formData[StepFor(StepContent).Key] = extra
		return
	}
	if selection != nil {
		c.s.formData[key] = *selection
	}
}

// applyMetadata stores step metadata, filling empty option lists from the
// fallback provider for steps that present options. Callers hold the lock.
func (c *Controller) applyMetadata(meta api.StepMetadata, step int) {
	d := StepFor(step)
	if d.HasOptions && len(meta.Options) == 0 && c.fallback != nil {
		meta.Options = c.fallback.Options(d.Key, c.s.formData)
		c.log.Debug("wizard: using fallback options for step %d", step)
	}
	c.s.metadata = meta
	c.s.metaStep = step
}

// CanProceed reports whether the current step's input satisfies its
// validation rule. At the summary step proceeding means finishing, so it
// reports true there.
func (c *Controller) CanProceed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canProceedLocked()
}

func (c *Controller) canProceedLocked() bool {
	if c.s.currentStep >= TotalSteps {
		return true
	}
	d := StepFor(c.s.currentStep)
	if d.Optional {
		return true
	}
	return d.Validate(c.s.formData[d.Key])
}

// Advance moves forward one step when the current step's input validates.
// The new step's metadata is prefetched best-effort; a prefetch failure
// does not block the transition, the step's own loader retries it.
func (c *Controller) Advance(ctx context.Context) bool {
	c.mu.Lock()
	if c.s.status == StatusLoading || c.s.currentStep >= TotalSteps || !c.canProceedLocked() {
		c.mu.Unlock()
		return false
	}
	c.s.currentStep++
	c.gen++
	step := c.s.currentStep
	needsFetch := c.s.metaStep != step && step < TotalSteps && c.s.id != ""
	c.mu.Unlock()

	if needsFetch {
		c.prefetch(ctx, step)
	}
	return true
}

// prefetch loads metadata for a step without recording a selection and
// without surfacing errors.
func (c *Controller) prefetch(ctx context.Context, step int) {
	c.mu.Lock()
	id := c.s.id
	gen := c.gen
	c.mu.Unlock()

	meta, err := c.backend.ProcessStep(ctx, step, api.StepRequest{SessionID: id})

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	if err != nil {
		c.log.Warn("wizard: prefetch for step %d failed: %v", step, err)
		return
	}
	c.applyMetadata(meta, step)
}

// Retreat moves back one step. Metadata from the later step stays in place
// but is reported as not current; answers are retained so re-advancing
// restores them.
func (c *Controller) Retreat() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.s.status == StatusLoading || c.s.currentStep <= 1 {
		return false
	}
	c.s.currentStep--
	c.gen++
	return true
}

// JumpToStep navigates directly to a previously visited step. Forward jumps
// past the current step are rejected.
func (c *Controller) JumpToStep(n int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.s.status == StatusLoading || n < 1 || n > c.s.currentStep {
		return false
	}
	c.s.currentStep = n
	c.gen++
	return true
}

// Finish marks the wizard complete. Only valid on the summary step.
func (c *Controller) Finish() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.s.currentStep != StepSummary {
		return false
	}
	c.s.finished = true
	c.log.Info("wizard: session %s finished", c.s.id)
	return true
}

// Reset discards the session and returns the wizard to step 1. Any
// in-flight response is invalidated and will be dropped on arrival.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.s = newSession()
	c.log.Debug("wizard: session reset")
}

// RefreshSession pulls the authoritative session snapshot from the backend
// and reconciles local form data with it. Used when resuming a session.
func (c *Controller) RefreshSession(ctx context.Context) error {
	c.mu.Lock()
	if c.s.id == "" {
		c.mu.Unlock()
		return ErrNoSession
	}
	if c.s.status == StatusLoading {
		c.mu.Unlock()
		return ErrBusy
	}
	c.s.status = StatusLoading
	c.s.lastError = ""
	id := c.s.id
	gen := c.gen
	c.mu.Unlock()

	snap, err := c.backend.Session(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil
	}
	if err != nil {
		c.s.status = StatusError
		c.s.lastError = errorMessage(err)
		return err
	}
	for k, v := range snap.Selections {
		if _, known := c.s.formData[k]; known {
			c.s.formData[k] = v
		}
	}
	if snap.Concept != "" {
		c.s.formData[StepFor(StepConcept).Key] = snap.Concept
	}
	c.s.status = StatusReady
	return nil
}

func validateConcept(concept string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(concept))
	if n < MinConceptLen {
		return &ValidationError{Field: "concept", Reason: fmt.Sprintf("must be at least %d characters", MinConceptLen)}
	}
	if n > MaxConceptLen {
		return &ValidationError{Field: "concept", Reason: fmt.Sprintf("must be at most %d characters", MaxConceptLen)}
	}
	return nil
}

// stepKeyFromName prefers the backend's reported step name when it is one
// of the known keys, falling back to the local table. Tolerates renames on
// the wire without misfiling answers.
func stepKeyFromName(name string, step int) string {
	for i := 1; i <= TotalSteps; i++ {
		if StepFor(i).Key == name {
			return name
		}
	}
	return StepKeyFor(step)
}

func errorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return "could not reach the wizard service"
}
