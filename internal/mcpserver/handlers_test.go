package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bookwright/bookwright/internal/api"
	srv "github.com/bookwright/bookwright/internal/server"
	"github.com/bookwright/bookwright/internal/store"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()
	return New(srv.NewProcessor(store.NewMemory()))
}

// extractText extracts text from CallToolResult.Content[0]
func extractText(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	if textContent, ok := result.Content[0].(mcp.TextContent); ok {
		return textContent.Text
	}
	return ""
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
}

func TestHandleStartWizard_Success(t *testing.T) {
	s := setupTestServer(t)

	result, err := s.handleStartWizard(context.Background(), callRequest("start_wizard", map[string]any{
		"concept": "A retired assassin opens a bakery in a town full of old enemies.",
	}))
	if err != nil {
		t.Fatalf("handleStartWizard returned error: %v", err)
	}

	var resp api.StartResponse
	if err := json.Unmarshal([]byte(extractText(result)), &resp); err != nil {
		t.Fatalf("result is not valid JSON: %v", err)
	}
	if resp.SessionID == "" {
		t.Error("missing session id in result")
	}
	if resp.FirstStep.StepName != "genre" {
		t.Errorf("expected genre step, got %q", resp.FirstStep.StepName)
	}
	if len(resp.FirstStep.Options) == 0 {
		t.Error("first step has no options")
	}
}

func TestHandleStartWizard_ShortConcept(t *testing.T) {
	s := setupTestServer(t)

	result, err := s.handleStartWizard(context.Background(), callRequest("start_wizard", map[string]any{
		"concept": "short",
	}))
	if err != nil {
		t.Fatalf("handleStartWizard returned error: %v", err)
	}
	if text := extractText(result); !strings.Contains(text, "error:") {
		t.Errorf("expected validation error, got %s", text)
	}
}

func TestHandleSubmitStep_RecordsSelection(t *testing.T) {
	s := setupTestServer(t)

	startResult, err := s.handleStartWizard(context.Background(), callRequest("start_wizard", map[string]any{
		"concept": "A retired assassin opens a bakery in a town full of old enemies.",
	}))
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	var started api.StartResponse
	if err := json.Unmarshal([]byte(extractText(startResult)), &started); err != nil {
		t.Fatalf("decode start result: %v", err)
	}

	result, err := s.handleSubmitStep(context.Background(), callRequest("submit_step", map[string]any{
		"session_id": started.SessionID,
		"step":       float64(2),
		"selection":  "mystery",
	}))
	if err != nil {
		t.Fatalf("handleSubmitStep returned error: %v", err)
	}
	var meta api.StepMetadata
	if err := json.Unmarshal([]byte(extractText(result)), &meta); err != nil {
		t.Fatalf("decode step result: %v", err)
	}
	if meta.StepName != "genre" {
		t.Errorf("expected genre metadata, got %q", meta.StepName)
	}

	sessResult, err := s.handleGetSession(context.Background(), callRequest("get_session", map[string]any{
		"session_id": started.SessionID,
	}))
	if err != nil {
		t.Fatalf("handleGetSession returned error: %v", err)
	}
	var snap api.SessionSnapshot
	if err := json.Unmarshal([]byte(extractText(sessResult)), &snap); err != nil {
		t.Fatalf("decode session result: %v", err)
	}
	if snap.Selections["genre"] != "mystery" {
		t.Errorf("selection not recorded: %v", snap.Selections)
	}
}

func TestHandleSubmitStep_MissingSession(t *testing.T) {
	s := setupTestServer(t)

	result, err := s.handleSubmitStep(context.Background(), callRequest("submit_step", map[string]any{
		"session_id": "missing",
		"step":       float64(2),
		"selection":  "mystery",
	}))
	if err != nil {
		t.Fatalf("handleSubmitStep returned error: %v", err)
	}
	if text := extractText(result); !strings.Contains(text, "error:") {
		t.Errorf("expected error text, got %s", text)
	}
}

func TestHandleGetSession_MissingArgs(t *testing.T) {
	s := setupTestServer(t)

	result, err := s.handleGetSession(context.Background(), callRequest("get_session", map[string]any{}))
	if err != nil {
		t.Fatalf("handleGetSession returned error: %v", err)
	}
	if text := extractText(result); !strings.Contains(text, "missing 'session_id'") {
		t.Errorf("expected missing parameter error, got %s", text)
	}
}
