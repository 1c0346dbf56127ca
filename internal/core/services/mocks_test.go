package services

import (
	"context"
	"sync"
	"time"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
// Texts without an explicit vector embed to defaultVec.
type mockEmbeddingService struct {
	mu         sync.Mutex
	vectors    map[string][]float32
	defaultVec []float32
	embedErr   error
	batchErr   error
	batchShort bool
	calls      []string
}

func newMockEmbedding() *mockEmbeddingService {
	return &mockEmbeddingService{
		vectors:    map[string][]float32{},
		defaultVec: []float32{1, 0},
	}
}

func (m *mockEmbeddingService) vectorFor(text string) []float32 {
	if v, ok := m.vectors[text]; ok {
		return v
	}
	return m.defaultVec
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, text)
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vectorFor(text), nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	out := make([][]float32, 0, len(texts))
	for _, t := range texts {
		out = append(out, m.vectorFor(t))
	}
	if m.batchShort && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int { return len(m.defaultVec) }
func (m *mockEmbeddingService) ModelName() string { return "mock-embed" }
func (m *mockEmbeddingService) Ping(context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error { return nil }

// mockLLMService implements driven.LLMService for testing.
// Responses are returned in order; the last one repeats.
type mockLLMService struct {
	mu        sync.Mutex
	responses []string
	err       error
	prompts   []string
	options   []driven.GenerateOptions
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	m.options = append(m.options, opts)
	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "", nil
	}
	resp := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return resp, nil
}

func (m *mockLLMService) ModelName() string { return "mock-llm" }
func (m *mockLLMService) Ping(context.Context) error { return nil }
func (m *mockLLMService) Close() error { return nil }

// mockCalendarService implements driven.CalendarService for testing.
type mockCalendarService struct {
	mu        sync.Mutex
	busy      map[string][]domain.Interval
	listErr   error
	createErr error
	created   []domain.EventRequest
	queried   []time.Time
}

func (m *mockCalendarService) ListBusy(_ context.Context, start, _ time.Time) ([]domain.Interval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queried = append(m.queried, start)
	if m.listErr != nil {
		return nil, m.listErr
	}
	busy := m.busy[start.Format(time.DateOnly)]
	out := make([]domain.Interval, len(busy))
	copy(out, busy)
	return out, nil
}

func (m *mockCalendarService) CreateEvent(_ context.Context, req domain.EventRequest) (*domain.BookingResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = append(m.created, req)
	return &domain.BookingResult{
		EventID:      "evt-1",
		MeetingLink:  "https://meet.example.com/evt-1",
		CalendarLink: "https://calendar.example.com/evt-1",
	}, nil
}

// mockEmailTransport implements driven.EmailTransport for testing.
type mockEmailTransport struct {
	err  error
	sent []domain.EmailData
}

func (m *mockEmailTransport) Send(_ context.Context, email domain.EmailData) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

// stubVectorStore implements driven.VectorStore with scripted query results.
// Queries with a Contains filter return containsMatches; others return matches.
type stubVectorStore struct {
	matches         []driven.VectorMatch
	containsMatches []driven.VectorMatch
	queryErr        error
	containsErr     error
	queries         []driven.VectorQuery
}

func (s *stubVectorStore) Upsert(context.Context, string, []domain.Chunk) error { return nil }

func (s *stubVectorStore) Query(_ context.Context, _ string, q driven.VectorQuery) ([]driven.VectorMatch, error) {
	s.queries = append(s.queries, q)
	if q.Contains != "" {
		return s.containsMatches, s.containsErr
	}
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return s.matches, nil
}

func (s *stubVectorStore) Get(context.Context, string, driven.ChunkFilter) ([]domain.Chunk, error) {
	return nil, nil
}

func (s *stubVectorStore) Count(context.Context, string, driven.ChunkFilter) (int, error) {
	return 0, nil
}

func (s *stubVectorStore) Close() error { return nil }

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	p, ok := m.prompts[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return p, nil
}

func (m *mockPromptStore) Reload() {}

// testTimeouts keeps capability calls bounded without slowing tests down.
func testTimeouts() domain.Timeouts {
	return domain.Timeouts{
		LLM:       time.Second,
		Embedding: time.Second,
		Vector:    time.Second,
		Calendar:  time.Second,
		Email:     time.Second,
	}
}
