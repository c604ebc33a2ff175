// Package client implements the HTTP client for the book wizard service.
// It satisfies wizard.Backend; decoding is tolerant, unknown fields are
// ignored and absent fields zero out, so it stays compatible across service
// versions.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bookwright/bookwright/internal/api"
	"github.com/bookwright/bookwright/internal/logger"
)

const defaultTimeout = 60 * time.Second

// Client talks to a wizard service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying http.Client, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger overrides the package default logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		log:     logger.Default,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start creates a new wizard session. The returned metadata describes the
// first selection step and carries the new session id.
func (c *Client) Start(ctx context.Context, concept, notes string) (api.StepMetadata, error) {
	var resp api.StartResponse
	err := c.post(ctx, "/wizard/start", api.StartRequest{
		Concept:         concept,
		AdditionalNotes: notes,
	}, &resp)
	if err != nil {
		return api.StepMetadata{}, err
	}
	meta := resp.FirstStep
	if meta.SessionID == "" {
		meta.SessionID = resp.SessionID
	}
	return meta, nil
}

// ProcessStep submits a step answer (or requests the step's options when no
// selection is set) and returns the resulting step metadata.
func (c *Client) ProcessStep(ctx context.Context, step int, req api.StepRequest) (api.StepMetadata, error) {
	var meta api.StepMetadata
	err := c.post(ctx, fmt.Sprintf("/wizard/step/%d", step), req, &meta)
	if err != nil {
		return api.StepMetadata{}, err
	}
	return meta, nil
}

// Session fetches the server-side snapshot of a session.
func (c *Client) Session(ctx context.Context, sessionID string) (api.SessionSnapshot, error) {
	var snap api.SessionSnapshot
	err := c.get(ctx, "/wizard/session/"+url.PathEscape(sessionID), &snap)
	if err != nil {
		return api.SessionSnapshot{}, err
	}
	return snap, nil
}

// Health probes the service. A nil error means the service answered.
func (c *Client) Health(ctx context.Context) (api.HealthResponse, error) {
	var h api.HealthResponse
	err := c.get(ctx, "/health", &h)
	if err != nil {
		return api.HealthResponse{}, err
	}
	return h, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("client: %s %s failed: %v", req.Method, req.URL.Path, err)
		return fmt.Errorf("wizard service request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	c.log.Debug("client: %s %s -> %d in %s", req.Method, req.URL.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &api.Error{StatusCode: resp.StatusCode, Detail: errorDetail(body)}
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorDetail extracts the service's detail message from an error body.
// Non-JSON bodies yield an empty detail rather than an error.
func errorDetail(body []byte) string {
	var er api.ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return ""
	}
	return er.Detail
}
