// Package mcp exposes the inquiry dialog as an MCP server, so agent hosts
// can drive the conversational form programmatically: one tool per user
// input surface, plus a transcript resource.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/kinetic/pkg/domain"
)

// Dialog is the slice of the state machine the MCP surface needs.
type Dialog interface {
	Start(ctx context.Context) error
	SubmitWork(ctx context.Context, choice string) error
	ChooseSource(ctx context.Context, choice string) error
	SubmitDetails(ctx context.Context, name, email, note string) error
	Session() (domain.Session, bool)
	Busy() bool
}

// Server wraps the dialog engine and exposes it over MCP.
type Server struct {
	dialog    Dialog
	script    *domain.Script
	mcpServer *server.MCPServer
}

// StatusResponse reports the session after a tool call.
type StatusResponse struct {
	Step       domain.Step   `json:"step" jsonschema_description:"Current dialog step"`
	Busy       bool          `json:"busy" jsonschema_description:"True while a typing chain is in flight"`
	Transcript []domain.Turn `json:"transcript" jsonschema_description:"Dialog turns so far"`
	Refused    string        `json:"refused,omitempty" jsonschema_description:"Reason the input was refused, if any"`
}

// NewServer creates a new MCP server instance around the dialog.
func NewServer(dialog Dialog, script *domain.Script, version string) *Server {
	s := &Server{
		dialog:    dialog,
		script:    script,
		mcpServer: server.NewMCPServer("kinetic-mcp", version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("start_inquiry",
		mcp.WithDescription("Start the inquiry dialog. Only one session exists per page view."),
		mcp.WithOutputSchema[StatusResponse](),
	), mcp.NewStructuredToolHandler(func(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (StatusResponse, error) {
		return s.status(s.dialog.Start(ctx))
	}))

	s.mcpServer.AddTool(mcp.NewTool("choose_work",
		mcp.WithDescription("Answer the work-type question with one of the script's options."),
		mcp.WithString("choice", mcp.Required(), mcp.Description("Selected work type")),
		mcp.WithOutputSchema[StatusResponse](),
	), mcp.NewStructuredToolHandler(func(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (StatusResponse, error) {
		choice, _ := args["choice"].(string)
		return s.status(s.dialog.SubmitWork(ctx, choice))
	}))

	s.mcpServer.AddTool(mcp.NewTool("choose_source",
		mcp.WithDescription("Answer the how-did-you-find-me question with one of the script's options."),
		mcp.WithString("choice", mcp.Required(), mcp.Description("Selected source")),
		mcp.WithOutputSchema[StatusResponse](),
	), mcp.NewStructuredToolHandler(func(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (StatusResponse, error) {
		choice, _ := args["choice"].(string)
		return s.status(s.dialog.ChooseSource(ctx, choice))
	}))

	s.mcpServer.AddTool(mcp.NewTool("submit_details",
		mcp.WithDescription("Submit the terminal step: name and email are required, the note is optional."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Respondent name")),
		mcp.WithString("email", mcp.Required(), mcp.Description("Respondent email address")),
		mcp.WithString("note", mcp.Description("Optional free-text note")),
		mcp.WithOutputSchema[StatusResponse](),
	), mcp.NewStructuredToolHandler(func(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (StatusResponse, error) {
		name, _ := args["name"].(string)
		email, _ := args["email"].(string)
		note, _ := args["note"].(string)
		return s.status(s.dialog.SubmitDetails(ctx, name, email, note))
	}))

	s.mcpServer.AddTool(mcp.NewTool("get_transcript",
		mcp.WithDescription("Read the current session step and transcript."),
		mcp.WithOutputSchema[StatusResponse](),
	), mcp.NewStructuredToolHandler(func(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (StatusResponse, error) {
		return s.status(nil)
	}))
}

// status snapshots the session. Validation and ordering refusals are part
// of the dialog contract, so they come back as data, not tool errors.
func (s *Server) status(err error) (StatusResponse, error) {
	resp := StatusResponse{Step: domain.StepIdle}
	if session, ok := s.dialog.Session(); ok {
		resp.Step = session.Step
		resp.Transcript = session.Transcript
	}
	resp.Busy = s.dialog.Busy()
	if err != nil {
		resp.Refused = err.Error()
	}
	return resp, nil
}

func (s *Server) registerResources() {
	// EXPOSE: kinetic://script
	s.mcpServer.AddResource(mcp.NewResource("kinetic://script", "Inquiry Dialog Script",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.script)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal script: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "kinetic://script",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
