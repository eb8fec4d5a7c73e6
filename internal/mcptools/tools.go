// Package mcptools exposes job matching and the assistant as MCP tools over stdio.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/spigell/job-tracker/internal/assistant"
	"github.com/spigell/job-tracker/internal/board"
	"github.com/spigell/job-tracker/internal/jobs"
	"github.com/spigell/job-tracker/internal/logger"
)

const serverName = "job-tracker"

type Tools struct {
	board     *board.Board
	assistant *assistant.Assistant
	logger    *zap.Logger
}

func New(b *board.Board, a *assistant.Assistant, log *zap.Logger) *Tools {
	return &Tools{board: b, assistant: a, logger: logger.Named(log, "mcp")}
}

// Server registers every tool on a new MCP server.
func (t *Tools) Server(version string) *server.MCPServer {
	s := server.NewMCPServer(serverName, version)

	tool := mcp.NewTool("score_job",
		mcp.WithDescription("Score how well a resume matches one job from the feed"),
	)
	tool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"job_id":      map[string]interface{}{"type": "string", "description": "The job id from the feed"},
			"resume_text": map[string]interface{}{"type": "string", "description": "Plain text of the resume"},
		},
		Required: []string{"job_id", "resume_text"},
	}
	s.AddTool(tool, t.ScoreJob)

	tool = mcp.NewTool("best_matches",
		mcp.WithDescription("Return the best matching jobs for a resume, highest score first"),
	)
	tool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"resume_text": map[string]interface{}{"type": "string", "description": "Plain text of the resume"},
		},
		Required: []string{"resume_text"},
	}
	s.AddTool(tool, t.BestMatches)

	props := map[string]interface{}{
		"resume_text": map[string]interface{}{"type": "string", "description": "Plain text of the resume, optional"},
	}
	for _, key := range jobs.Keys {
		props[key] = map[string]interface{}{"type": "string", "description": "Filter: " + key}
	}
	tool = mcp.NewTool("list_jobs",
		mcp.WithDescription("List jobs from the feed with optional filters, scored against the resume"),
	)
	tool.InputSchema = mcp.ToolInputSchema{Type: "object", Properties: props}
	s.AddTool(tool, t.ListJobs)

	tool = mcp.NewTool("assistant_chat",
		mcp.WithDescription("Ask the job search assistant; returns intent, filters and a reply"),
	)
	tool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"message": map[string]interface{}{"type": "string", "description": "The user's message"},
		},
		Required: []string{"message"},
	}
	s.AddTool(tool, t.AssistantChat)

	return s
}

// Serve blocks serving tools on stdin/stdout.
func (t *Tools) Serve(version string) error {
	return server.ServeStdio(t.Server(version))
}

func (t *Tools) ScoreJob(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	jobID := stringArg(args, "job_id")
	if jobID == "" {
		return mcp.NewToolResultError("missing required field: job_id"), nil
	}

	listing, err := t.board.Score(ctx, jobID, stringArg(args, "resume_text"))
	if errors.Is(err, jobs.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("job %q not found", jobID)), nil
	}
	if err != nil {
		return t.failed("score_job", err), nil
	}

	return jsonResult(listing)
}

func (t *Tools) BestMatches(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	listings, err := t.board.BestMatches(ctx, stringArg(args, "resume_text"))
	if err != nil {
		return t.failed("best_matches", err), nil
	}

	return jsonResult(map[string]any{"jobs": listings, "total": len(listings)})
}

func (t *Tools) ListJobs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		args = map[string]interface{}{}
	}

	filters := jobs.FromLookup(func(key string) string { return stringArg(args, key) })

	listings, err := t.board.List(ctx, stringArg(args, "resume_text"), filters)
	if err != nil {
		return t.failed("list_jobs", err), nil
	}

	return jsonResult(map[string]any{"jobs": listings, "total": len(listings)})
}

func (t *Tools) AssistantChat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	message := stringArg(args, "message")
	if message == "" {
		return mcp.NewToolResultError("missing required field: message"), nil
	}

	return jsonResult(t.assistant.Respond(ctx, message, nil))
}

func (t *Tools) failed(tool string, err error) *mcp.CallToolResult {
	t.logger.Warn("tool failed", zap.String("tool", tool), zap.Error(err))
	return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", tool, err))
}

func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return strings.TrimSpace(v)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
