package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *EmbeddingService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := NewEmbeddingService(context.Background(), Config{
		APIKey:  "test-key",
		Options: []option.ClientOption{option.WithEndpoint(srv.URL), option.WithHTTPClient(srv.Client())},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestNewEmbeddingService_RequiresKey(t *testing.T) {
	_, err := NewEmbeddingService(context.Background(), Config{})
	assert.Error(t, err)
}

func TestEmbeddingService_Embed(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/text-embedding-004:embedContent", r.URL.Path)
		_, _ = w.Write([]byte(`{"embedding":{"values":[0.25,0.5,1]}}`))
	})

	vec, err := svc.Embed(context.Background(), "Go developer")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, 0.5, 1}, vec)
	assert.Equal(t, 768, svc.Dimensions())
	assert.Equal(t, DefaultModel, svc.ModelName())
}

func TestEmbeddingService_EmbedBatch_SplitsRequests(t *testing.T) {
	var calls atomic.Int32
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.True(t, strings.HasSuffix(r.URL.Path, ":batchEmbedContents"), r.URL.Path)

		var req struct {
			Requests []json.RawMessage `json:"requests"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		embeddings := make([]map[string][]float32, len(req.Requests))
		for i := range embeddings {
			embeddings[i] = map[string][]float32{"values": {float32(len(req.Requests))}}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"embeddings": embeddings})
	})
	texts := make([]string, 150)
	for i := range texts {
		texts[i] = "chunk"
	}

	vectors, err := svc.EmbedBatch(context.Background(), texts)

	require.NoError(t, err)
	require.Len(t, vectors, 150)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, []float32{100}, vectors[0])
	assert.Equal(t, []float32{50}, vectors[149])
}

func TestEmbeddingService_EmbedBatch_ShortResponse(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"embeddings":[{"values":[1]}]}`))
	})

	_, err := svc.EmbedBatch(context.Background(), []string{"a", "b"})

	assert.ErrorContains(t, err, "expected 2 embeddings, got 1")
}

func TestEmbeddingService_Embed_ProviderError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	})

	_, err := svc.Embed(context.Background(), "x")

	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestEmbeddingService_Embed_Cancelled(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"embedding":{"values":[1]}}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Embed(ctx, "x")

	assert.ErrorIs(t, err, context.Canceled)
}
