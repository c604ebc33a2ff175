package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bookwright/bookwright/internal/api"
)

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("start_wizard",
			mcp.WithDescription("Start a book creation wizard session from a concept. Returns the session id and the genre step with ranked options."),
			mcp.WithString("concept", mcp.Required(),
				mcp.Description("The book concept, 10 to 1000 characters")),
			mcp.WithString("notes",
				mcp.Description("Optional additional notes, up to 500 characters")),
		),
		s.handleStartWizard,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("submit_step",
			mcp.WithDescription("Submit a selection for a wizard step (2-8) or fetch a step's options by omitting the selection. Step 8 takes free-text content preferences and completes the session."),
			mcp.WithString("session_id", mcp.Required(),
				mcp.Description("Session id returned by start_wizard")),
			mcp.WithNumber("step", mcp.Required(),
				mcp.Description("Step number, 2 through 8")),
			mcp.WithString("selection",
				mcp.Description("Option id to select; omit to only fetch the step's options")),
			mcp.WithString("additional_input",
				mcp.Description("Free text for the content preferences step")),
		),
		s.handleSubmitStep,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_session",
			mcp.WithDescription("Get the current state of a wizard session, including all selections and, once complete, the book summary."),
			mcp.WithString("session_id", mcp.Required(),
				mcp.Description("Session id returned by start_wizard")),
		),
		s.handleGetSession,
	)
}

func (s *Server) handleStartWizard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if args == nil {
		return mcp.NewToolResultText("error: no arguments provided"), nil
	}
	concept, ok := args["concept"].(string)
	if !ok || concept == "" {
		return mcp.NewToolResultText("error: missing 'concept' parameter"), nil
	}
	notes, _ := args["notes"].(string)

	resp, err := s.proc.Start(ctx, api.StartRequest{Concept: concept, AdditionalNotes: notes})
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}
	return jsonResult(resp)
}

func (s *Server) handleSubmitStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if args == nil {
		return mcp.NewToolResultText("error: no arguments provided"), nil
	}
	sessionID, ok := args["session_id"].(string)
	if !ok || sessionID == "" {
		return mcp.NewToolResultText("error: missing 'session_id' parameter"), nil
	}
	stepNum, ok := args["step"].(float64)
	if !ok {
		return mcp.NewToolResultText("error: 'step' must be a number"), nil
	}

	req := api.StepRequest{SessionID: sessionID}
	if sel, ok := args["selection"].(string); ok {
		req.Selection = &sel
	}
	if extra, ok := args["additional_input"].(string); ok {
		req.AdditionalInput = extra
		// A content submit is carried by the selection field.
		if req.Selection == nil && int(stepNum) == 8 {
			req.Selection = &extra
		}
	}

	meta, err := s.proc.ProcessStep(ctx, int(stepNum), req)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}
	return jsonResult(meta)
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if args == nil {
		return mcp.NewToolResultText("error: no arguments provided"), nil
	}
	sessionID, ok := args["session_id"].(string)
	if !ok || sessionID == "" {
		return mcp.NewToolResultText("error: missing 'session_id' parameter"), nil
	}

	snap, err := s.proc.Snapshot(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}
	return jsonResult(snap)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(output)), nil
}
