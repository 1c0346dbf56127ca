package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

func TestExtractWorkspaceID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid stats URI",
			uri:      "screener://workspaces/ws-123/stats",
			expected: "ws-123",
		},
		{
			name:     "invalid prefix",
			uri:      "file://workspaces/ws-123/stats",
			expected: "",
		},
		{
			name:     "missing stats suffix",
			uri:      "screener://workspaces/ws-123",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractWorkspaceID(tt.uri))
		})
	}
}

func TestExtractSessionKey(t *testing.T) {
	tests := []struct {
		name      string
		uri       string
		workspace string
		chat      string
	}{
		{"valid session URI", "screener://sessions/ws1/chat-9", "ws1", "chat-9"},
		{"missing chat", "screener://sessions/ws1", "", ""},
		{"extra segment", "screener://sessions/ws1/chat/x", "", ""},
		{"invalid prefix", "screener://workspaces/ws1/chat", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws, chat := extractSessionKey(tt.uri)
			assert.Equal(t, tt.workspace, ws)
			assert.Equal(t, tt.chat, chat)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleStatsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil ingest service returns not found", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		_, err := server.handleStatsResource(ctx, makeReadResourceRequest("screener://workspaces/ws1/stats"))

		require.Error(t, err)
	})

	t.Run("returns stats", func(t *testing.T) {
		ingest := &mockIngestService{stats: &domain.WorkspaceStats{
			WorkspaceID:    "ws1",
			ChunksCount:    7,
			SampleSnippets: []string{"Go developer"},
		}}
		server := newTestServer(t, &Ports{Ingest: ingest})

		result, err := server.handleStatsResource(ctx, makeReadResourceRequest("screener://workspaces/ws1/stats"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"chunks_count": 7`)
		assert.Contains(t, result.Contents[0].Text, "Go developer")
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server := newTestServer(t, &Ports{Ingest: &mockIngestService{}})

		_, err := server.handleStatsResource(ctx, makeReadResourceRequest("screener://invalid/uri"))

		require.Error(t, err)
	})

	t.Run("returns error on stats failure", func(t *testing.T) {
		ingest := &mockIngestService{err: errors.New("database error")}
		server := newTestServer(t, &Ports{Ingest: ingest})

		_, err := server.handleStatsResource(ctx, makeReadResourceRequest("screener://workspaces/ws1/stats"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading stats")
	})
}

func TestServer_handleHistoryResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns turns", func(t *testing.T) {
		query := &mockQueryService{turns: []domain.Turn{
			{Role: domain.RoleUser, Text: "who knows Go?", At: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)},
			{Role: domain.RoleAssistant, Text: "Ada.", At: time.Date(2025, 3, 10, 9, 0, 1, 0, time.UTC)},
		}}
		server := newTestServer(t, &Ports{Query: query})

		result, err := server.handleHistoryResource(ctx, makeReadResourceRequest("screener://sessions/ws1/chat-1"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		text := result.Contents[0].Text
		assert.Contains(t, text, `"role": "user"`)
		assert.Contains(t, text, `"role": "assistant"`)
		assert.Contains(t, text, "2025-03-10T09:00:01Z")
	})

	t.Run("empty history is an empty list", func(t *testing.T) {
		server := newTestServer(t, &Ports{Query: &mockQueryService{}})

		result, err := server.handleHistoryResource(ctx, makeReadResourceRequest("screener://sessions/ws1/chat-1"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		_, err := server.handleHistoryResource(ctx, makeReadResourceRequest("screener://sessions/ws1"))

		require.Error(t, err)
	})
}
