package wizard

import "github.com/bookwright/bookwright/internal/api"

// Status is the controller's lifecycle state. Loading doubles as the
// single-in-flight guard: while a backend call is pending no other
// state-mutating action may start.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// session holds the controller's mutable state. It is owned by the
// Controller and never escapes; accessors hand out copies.
type session struct {
	id          string
	currentStep int
	status      Status
	lastError   string
	formData    map[string]string
	metadata    api.StepMetadata
	metaStep    int // step the metadata was fetched for; 0 when none
	finished    bool
}

func newSession() *session {
	form := make(map[string]string, len(FormKeys()))
	for _, k := range FormKeys() {
		form[k] = ""
	}
	return &session{
		currentStep: 1,
		status:      StatusIdle,
		formData:    form,
	}
}

// Snapshot is a read-only copy of the controller state for display.
type Snapshot struct {
	SessionID   string
	CurrentStep int
	Status      Status
	LastError   string
	FormData    map[string]string
	Metadata    api.StepMetadata
	// MetadataCurrent reports whether Metadata was fetched for CurrentStep.
	// Backward navigation leaves metadata from a later step in place; the
	// view re-derives from FormData instead of trusting it.
	MetadataCurrent bool
	Finished        bool
}

func (s *session) snapshot() Snapshot {
	form := make(map[string]string, len(s.formData))
	for k, v := range s.formData {
		form[k] = v
	}
	meta := s.metadata
	meta.Options = append([]api.Option(nil), s.metadata.Options...)
	return Snapshot{
		SessionID:       s.id,
		CurrentStep:     s.currentStep,
		Status:          s.status,
		LastError:       s.lastError,
		FormData:        form,
		Metadata:        meta,
		MetadataCurrent: s.metaStep == s.currentStep,
		Finished:        s.finished,
	}
}
