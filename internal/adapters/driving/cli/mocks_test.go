package cli

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driving"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	answer    *domain.QueryAnswer
	turns     []domain.Turn
	err       error
	passages  []domain.RetrievalCandidate
	questions []string

	lastOpts     domain.QueryOptions
	lastRetrieve domain.RetrieveOptions
	lastQuery    string
	lastJD       string
	lastChat     string
	cleared      bool
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
	opts domain.RetrieveOptions,
) ([]domain.RetrievalCandidate, error) {
	m.lastRetrieve = opts
	return m.passages, m.err
}

func (m *mockQueryService) Suggest(_ context.Context, _, _ string) ([]string, error) {
	return m.questions, m.err
}

func (m *mockQueryService) StoreJobDescription(_ context.Context, _, jd string) error {
	m.lastJD = jd
	return m.err
}

func (m *mockQueryService) History(_ context.Context, _, chat string) ([]domain.Turn, error) {
	m.lastChat = chat
	return m.turns, m.err
}

func (m *mockQueryService) ClearHistory(_ context.Context, _, chat string) error {
	m.lastChat = chat
	m.cleared = m.err == nil
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

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.AppSettings
	err      error
	setKey   string
	setValue any
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultAppSettings()}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = *settings
	return m.err
}

func (m *mockSettingsService) Set(key string, value any) error {
	m.setKey = key
	m.setValue = value
	return m.err
}

func (m *mockSettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	m.settings.Embedding.Provider = provider
	m.settings.Embedding.Model = model
	m.settings.Embedding.APIKey = apiKey
	return m.err
}

func (m *mockSettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	m.settings.LLM.Provider = provider
	m.settings.LLM.Model = model
	m.settings.LLM.APIKey = apiKey
	return m.err
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) PipelineConfig() domain.PipelineConfig {
	return domain.PipelineConfig{}
}

func (m *mockSettingsService) ValidateEmbeddingConfig() error { return nil }

func (m *mockSettingsService) ValidateLLMConfig() error { return nil }

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	query      *mockQueryService
	ingest     *mockIngestService
	intent     *mockIntentService
	scheduling *mockSchedulingService
	settings   *mockSettingsService
}

// setupTestServices installs mock services and returns a function restoring
// the previous ones.
func setupTestServices() (*testServices, func()) {
	prev := Services{
		Ingest:     ingestService,
		Query:      queryService,
		Intent:     intentService,
		Scheduling: schedulingService,
		Settings:   settingsService,
		Background: backgroundTasks,
	}

	ts := &testServices{
		query:      &mockQueryService{answer: &domain.QueryAnswer{}},
		ingest:     &mockIngestService{stats: &domain.WorkspaceStats{}},
		intent:     &mockIntentService{intent: domain.GeneralQuery{}},
		scheduling: &mockSchedulingService{availability: &domain.Availability{}},
		settings:   newMockSettingsService(),
	}
	SetServices(Services{
		Ingest:     ts.ingest,
		Query:      ts.query,
		Intent:     ts.intent,
		Scheduling: ts.scheduling,
		Settings:   ts.settings,
	})

	return ts, func() {
		SetServices(prev)
		resetFlags()
	}
}

// resetFlags restores flag variables, which persist across Execute calls.
func resetFlags() {
	statsJSON, versionJSON = false, false
	queryResumeID, queryChatID = "", ""
	queryK = domain.DefaultTopK
	queryJSON, queryPassagesOnly, historyJSON, historyClear = false, false, false, false
	interviewJSON = false
	scheduleName, scheduleEmail, scheduleJobTitle, scheduleCompany, scheduleDate = "", "", "", "", ""
	manualStart, manualCalendar, manualMeeting = "", "", ""
	serveAddr, serveMCP, serveTracing = "", false, false
	googlePort, googleTimeout, googleNoBrowser = 0, 5*time.Minute, false
}

// execute runs the root command with args and returns its combined output.
func execute(args ...string) (string, error) {
	return executeWithInput("", args...)
}

// executeWithInput runs the root command with stdin set to input.
func executeWithInput(input string, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
