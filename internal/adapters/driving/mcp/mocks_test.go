package mcp

import (
	"context"
	"time"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driving"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	answer    *domain.QueryAnswer
	turns     []domain.Turn
	err       error
	lastOpts  domain.QueryOptions
	lastQuery string
}

func (m *mockQueryService) Query(
	_ context.Context,
	_, message string,
	opts domain.QueryOptions,
) (*domain.QueryAnswer, error) {
	m.lastQuery = message
	m.lastOpts = opts
	return m.answer, m.err
}

func (m *mockQueryService) Retrieve(
	_ context.Context,
	_, _ string,
	_ domain.RetrieveOptions,
) ([]domain.RetrievalCandidate, error) {
	return nil, m.err
}

func (m *mockQueryService) Suggest(_ context.Context, _, _ string) ([]string, error) {
	return nil, m.err
}

func (m *mockQueryService) StoreJobDescription(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockQueryService) History(_ context.Context, _, _ string) ([]domain.Turn, error) {
	return m.turns, m.err
}

func (m *mockQueryService) ClearHistory(_ context.Context, _, _ string) error {
	return m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	chunks     int
	stats      *domain.WorkspaceStats
	err        error
	candidates []domain.Candidate
}

func (m *mockIngestService) Ingest(_ context.Context, _ string, candidates []domain.Candidate) (int, error) {
	m.candidates = candidates
	return m.chunks, m.err
}

func (m *mockIngestService) Stats(_ context.Context, _, _ string) (*domain.WorkspaceStats, error) {
	return m.stats, m.err
}

// mockIntentService is a mock implementation of driving.IntentService.
type mockIntentService struct {
	intent domain.Intent
}

func (m *mockIntentService) Classify(_ string) domain.Intent {
	return m.intent
}

func (m *mockIntentService) HasSchedulingIntent(_ string) bool {
	return m.intent.Kind() == domain.IntentSchedule
}

// mockSchedulingService is a mock implementation of driving.SchedulingService.
type mockSchedulingService struct {
	availability *domain.Availability
	result       *domain.WorkflowResult
	email        *domain.EmailData
	err          error

	nextCalled  bool
	lastDay     time.Time
	lastRequest driving.ScheduleRequest
	lastBooking domain.BookingResult
}

func (m *mockSchedulingService) AvailableSlots(_ context.Context, day time.Time) (*domain.Availability, error) {
	m.lastDay = day
	return m.availability, m.err
}

func (m *mockSchedulingService) NextAvailable(_ context.Context, from time.Time) (*domain.Availability, error) {
	m.nextCalled = true
	m.lastDay = from
	return m.availability, m.err
}

func (m *mockSchedulingService) Schedule(_ context.Context, req driving.ScheduleRequest) (*domain.WorkflowResult, error) {
	m.lastRequest = req
	return m.result, m.err
}

func (m *mockSchedulingService) ManualEmail(
	_ context.Context,
	_ domain.CandidateContact,
	_ domain.JobInfo,
	booking domain.BookingResult,
) (*domain.EmailData, error) {
	m.lastBooking = booking
	return m.email, m.err
}
