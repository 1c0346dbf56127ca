package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

func newTestService(t *testing.T, h http.HandlerFunc) *LLMService {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	svc, err := NewLLMService(Config{APIKey: "key", BaseURL: srv.URL})
	require.NoError(t, err)
	return svc
}

func TestNewLLMService_RequiresKey(t *testing.T) {
	_, err := NewLLMService(Config{})
	assert.Error(t, err)
}

func TestLLMService_Generate(t *testing.T) {
	var got request
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"Strong "},{"type":"text","text":"fit."}],"stop_reason":"end_turn"}`))
	})

	out, err := svc.Generate(context.Background(), "assess", driven.GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Strong fit.", out)
	assert.Equal(t, DefaultMaxTokens, got.MaxTokens)
	assert.Equal(t, DefaultModel, got.Model)
}

func TestLLMService_Generate_EmptyContent(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	})

	_, err := svc.Generate(context.Background(), "x", driven.GenerateOptions{MaxTokens: 10})
	assert.Error(t, err)
}

func TestLLMService_Generate_Overloaded(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(529)
	})

	_, err := svc.Generate(context.Background(), "x", driven.GenerateOptions{})
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}
