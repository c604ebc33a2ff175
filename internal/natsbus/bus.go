// Package natsbus runs the embedded NATS server that backs session storage
// and publishes wizard lifecycle events. The server listens in-process only;
// no network ports are opened.
package natsbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/bookwright/bookwright/internal/logger"
)

const (
	streamName = "wizard_events"

	// Event types published under wizard.<session>.<event>.
	EventStarted   = "started"
	EventStep      = "step"
	EventCompleted = "completed"
)

// SubjectForSession returns the wildcard subject matching every event of a
// session, e.g. "wizard.abc123.>".
func SubjectForSession(session string) string {
	return fmt.Sprintf("wizard.%s.>", session)
}

// SubjectForEvent returns the subject for one event type of a session,
// e.g. "wizard.abc123.step".
func SubjectForEvent(session, event string) string {
	return fmt.Sprintf("wizard.%s.%s", session, event)
}

// StartEmbedded starts an embedded NATS server with JetStream enabled,
// storing stream and bucket data under dataDir.
func StartEmbedded(dataDir string) (*server.Server, error) {
	logger.Debug("natsbus: starting embedded server, data dir %s", dataDir)

	ns, err := server.NewServer(&server.Options{
		JetStream:  true,
		StoreDir:   dataDir,
		DontListen: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create nats server: %w", err)
	}

	go ns.Start()
	if !ns.ReadyForConnections(4 * time.Second) {
		return nil, errors.New("nats server failed to start within timeout")
	}
	logger.Debug("natsbus: server ready")
	return ns, nil
}

// ConnectInProcess opens an in-process connection to the embedded server.
func ConnectInProcess(ns *server.Server) (*nats.Conn, error) {
	conn, err := nats.Connect("", nats.InProcessServer(ns))
	if err != nil {
		return nil, fmt.Errorf("connect in-process: %w", err)
	}
	return conn, nil
}

// CreateJetStream wraps a connection in a JetStream context.
func CreateJetStream(nc *nats.Conn) (jetstream.JetStream, error) {
	return jetstream.New(nc)
}

// SetupStream creates or updates the wizard event stream. Events are kept
// for 30 days so completed definitions can be replayed or audited.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{"wizard.>"},
		Storage:  jetstream.FileStorage,
		MaxAge:   30 * 24 * time.Hour,
	})
}

// Event is one wizard lifecycle record on the stream.
type Event struct {
	SessionID string            `json:"session_id"`
	Type      string            `json:"type"`
	Step      int               `json:"step,omitempty"`
	StepKey   string            `json:"step_key,omitempty"`
	Selection string            `json:"selection,omitempty"`
	Summary   map[string]string `json:"summary,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Publisher emits wizard events onto the stream. A nil Publisher is valid
// and drops every event, so callers never need to guard.
type Publisher struct {
	js jetstream.JetStream
}

// NewPublisher creates a publisher on js.
func NewPublisher(js jetstream.JetStream) *Publisher {
	return &Publisher{js: js}
}

// Publish writes the event to its session subject. Failures are logged and
// swallowed: event emission never fails a wizard operation.
func (p *Publisher) Publish(ctx context.Context, ev Event) {
	if p == nil || p.js == nil {
		return
	}
	ev.Timestamp = time.Now().UTC()
	data, err := json.Marshal(ev)
	if err != nil {
		logger.Warn("natsbus: encode event: %v", err)
		return
	}
	if _, err := p.js.Publish(ctx, SubjectForEvent(ev.SessionID, ev.Type), data); err != nil {
		logger.Warn("natsbus: publish %s event for %s: %v", ev.Type, ev.SessionID, err)
	}
}

// Shutdown drains the connection and stops the server, each with a timeout
// so shutdown cannot hang.
func Shutdown(nc *nats.Conn, ns *server.Server) error {
	if nc != nil {
		drainDone := make(chan error, 1)
		go func() { drainDone <- nc.Drain() }()
		select {
		case err := <-drainDone:
			if err != nil {
				logger.Warn("natsbus: drain failed, forcing close: %v", err)
				nc.Close()
			}
		case <-time.After(2 * time.Second):
			logger.Warn("natsbus: drain timed out, forcing close")
			nc.Close()
		}
	}

	if ns != nil {
		ns.Shutdown()
		shutdownDone := make(chan struct{})
		go func() {
			ns.WaitForShutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(5 * time.Second):
			return errors.New("nats server shutdown timed out")
		}
	}
	return nil
}
