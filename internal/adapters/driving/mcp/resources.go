package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for screener resources.
	uriScheme = "screener://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "workspaces/{workspaceId}/stats",
		Name:        "workspace-stats",
		Description: "Chunk count and sample passages of a workspace collection",
		MIMEType:    "application/json",
	}, s.handleStatsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sessions/{workspaceId}/{chatId}",
		Name:        "conversation-history",
		Description: "Turns of a recruiter conversation",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

// handleStatsResource returns the stats of one workspace.
func (s *Server) handleStatsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Ingest == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// screener://workspaces/{workspaceId}/stats
	workspaceID := extractWorkspaceID(req.Params.URI)
	if workspaceID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	stats, err := s.ports.Ingest.Stats(ctx, workspaceID, "")
	if err != nil {
		return nil, fmt.Errorf("reading stats: %w", err)
	}

	return jsonResource(req.Params.URI, stats)
}

// handleHistoryResource returns the turns of one conversation.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	workspaceID, chatID := extractSessionKey(req.Params.URI)
	if workspaceID == "" || chatID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	turns, err := s.ports.Query.History(ctx, workspaceID, chatID)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	type turnInfo struct {
		Role string `json:"role"`
		Text string `json:"text"`
		At   string `json:"at"`
	}
	infos := make([]turnInfo, len(turns))
	for i, t := range turns {
		infos[i] = turnInfo{Role: string(t.Role), Text: t.Text, At: t.At.UTC().Format(time.RFC3339)}
	}

	return jsonResource(req.Params.URI, infos)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractWorkspaceID extracts the workspace ID from a URI like screener://workspaces/{workspaceId}/stats.
func extractWorkspaceID(uri string) string {
	const prefix = uriScheme + "workspaces/"
	const suffix = "/stats"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}

// extractSessionKey extracts the workspace and chat IDs from a URI like
// screener://sessions/{workspaceId}/{chatId}.
func extractSessionKey(uri string) (string, string) {
	const prefix = uriScheme + "sessions/"

	if !strings.HasPrefix(uri, prefix) {
		return "", ""
	}

	workspaceID, chatID, ok := strings.Cut(strings.TrimPrefix(uri, prefix), "/")
	if !ok || strings.Contains(chatID, "/") {
		return "", ""
	}
	return workspaceID, chatID
}
