package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEmbedProvider     = "embedding.provider"
	keyEmbedModel        = "embedding.model"
	keyEmbedBaseURL      = "embedding.base_url"
	keyEmbedAPIKey       = "embedding.api_key"
	keyLLMProvider       = "llm.provider"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMAPIKey         = "llm.api_key"
	keyLLMRPM            = "llm.requests_per_minute"
	keyRetrievalK        = "retrieval.k"
	keyStorageBackend    = "storage.backend"
	keyStoragePath       = "storage.path"
	keySessionBackend    = "session.backend"
	keySessionTTL        = "session.ttl"
	keySessionMax        = "session.max_sessions"
	keySessionMaxTurns   = "session.max_turns"
	keyRedisURL          = "redis.url"
	keySchedWorkStart    = "scheduler.work_start"
	keySchedWorkEnd      = "scheduler.work_end"
	keySchedDuration     = "scheduler.duration_minutes"
	keySchedStep         = "scheduler.step_minutes"
	keySchedMaxSlots     = "scheduler.max_slots"
	keySchedLookahead    = "scheduler.lookahead_days"
	keySchedTimezone     = "scheduler.timezone"
	keyTimeoutLLM        = "timeouts.llm"
	keyTimeoutEmbedding  = "timeouts.embedding"
	keyTimeoutVector     = "timeouts.vector"
	keyTimeoutCalendar   = "timeouts.calendar"
	keyTimeoutEmail      = "timeouts.email"
	keyGoogleCredentials = "google.credentials_file"
	keyGoogleToken       = "google.token_file"
	keyGoogleCalendar    = "google.calendar_id"
	keyEmailTransport    = "email.transport"
	keySMTPHost          = "smtp.host"
	keySMTPPort          = "smtp.port"
	keySMTPUsername      = "smtp.username"
	keySMTPPassword      = "smtp.password"
	keySMTPFrom          = "smtp.from"
	keyJobTitle          = "job.title"
	keyJobCompany        = "job.company"
	keyHTTPAddr          = "http.addr"
	keyHTTPCORSOrigins   = "http.cors_origins"
	keyPipelineProcs     = "pipeline.processors"
)

// Environment variables that override secrets from the config file.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvLLMAPIKey       = "SCREENER_LLM_API_KEY"
	EnvEmbeddingAPIKey = "SCREENER_EMBEDDING_API_KEY"
	EnvSMTPPassword    = "SCREENER_SMTP_PASSWORD"
	EnvRedisURL        = "SCREENER_REDIS_URL"
)

// knownKeys lists every key accepted by Set.
var knownKeys = map[string]bool{
	keyEmbedProvider: true, keyEmbedModel: true, keyEmbedBaseURL: true, keyEmbedAPIKey: true,
	keyLLMProvider: true, keyLLMModel: true, keyLLMBaseURL: true, keyLLMAPIKey: true, keyLLMRPM: true,
	keyRetrievalK: true, keyStorageBackend: true, keyStoragePath: true,
	keySessionBackend: true, keySessionTTL: true, keySessionMax: true, keySessionMaxTurns: true,
	keyRedisURL: true,
	keySchedWorkStart: true, keySchedWorkEnd: true, keySchedDuration: true, keySchedStep: true,
	keySchedMaxSlots: true, keySchedLookahead: true, keySchedTimezone: true,
	keyTimeoutLLM: true, keyTimeoutEmbedding: true, keyTimeoutVector: true,
	keyTimeoutCalendar: true, keyTimeoutEmail: true,
	keyGoogleCredentials: true, keyGoogleToken: true, keyGoogleCalendar: true,
	keyEmailTransport: true,
	keySMTPHost: true, keySMTPPort: true, keySMTPUsername: true, keySMTPPassword: true, keySMTPFrom: true,
	keyJobTitle: true, keyJobCompany: true,
	keyHTTPAddr: true, keyHTTPCORSOrigins: true,
	keyPipelineProcs: true,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
// Secrets set in the environment take precedence over the config file.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		lookupEnv:   os.LookupEnv,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	loc, err := s.getLocation(defaults.Scheduler.Location)
	if err != nil {
		return nil, err
	}
	workStart, err := s.getClock(keySchedWorkStart, defaults.Scheduler.Window.Start)
	if err != nil {
		return nil, err
	}
	workEnd, err := s.getClock(keySchedWorkEnd, defaults.Scheduler.Window.End)
	if err != nil {
		return nil, err
	}
	if workEnd <= workStart {
		return nil, fmt.Errorf("%w: %s must be after %s", domain.ErrInvalidInput, keySchedWorkEnd, keySchedWorkStart)
	}

	settings := &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider: s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:    s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.secret(EnvEmbeddingAPIKey, keyEmbedAPIKey),
		},
		LLM: domain.LLMSettings{
			Provider:          s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:             s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:           s.configStore.GetString(keyLLMBaseURL),
			APIKey:            s.secret(EnvLLMAPIKey, keyLLMAPIKey),
			RequestsPerMinute: s.getInt(keyLLMRPM, defaults.LLM.RequestsPerMinute),
		},
		TopK:           s.getInt(keyRetrievalK, defaults.TopK),
		Storage:        s.getBackend(keyStorageBackend, defaults.Storage),
		StoragePath:    s.getString(keyStoragePath, defaults.StoragePath),
		SessionBackend: s.getBackend(keySessionBackend, defaults.SessionBackend),
		Session: domain.SessionPolicy{
			TTL:         s.getDuration(keySessionTTL, defaults.Session.TTL),
			MaxSessions: s.getInt(keySessionMax, defaults.Session.MaxSessions),
			MaxTurns:    s.getInt(keySessionMaxTurns, defaults.Session.MaxTurns),
		},
		RedisURL: s.secret(EnvRedisURL, keyRedisURL),
		Scheduler: domain.SchedulerConfig{
			Window:        domain.WorkWindow{Start: workStart, End: workEnd},
			Duration:      time.Duration(s.getInt(keySchedDuration, int(defaults.Scheduler.Duration/time.Minute))) * time.Minute,
			Step:          time.Duration(s.getInt(keySchedStep, int(defaults.Scheduler.Step/time.Minute))) * time.Minute,
			MaxSlots:      s.getInt(keySchedMaxSlots, defaults.Scheduler.MaxSlots),
			LookaheadDays: s.getInt(keySchedLookahead, defaults.Scheduler.LookaheadDays),
			Location:      loc,
		},
		Timeouts: domain.Timeouts{
			LLM:       s.getDuration(keyTimeoutLLM, defaults.Timeouts.LLM),
			Embedding: s.getDuration(keyTimeoutEmbedding, defaults.Timeouts.Embedding),
			Vector:    s.getDuration(keyTimeoutVector, defaults.Timeouts.Vector),
			Calendar:  s.getDuration(keyTimeoutCalendar, defaults.Timeouts.Calendar),
			Email:     s.getDuration(keyTimeoutEmail, defaults.Timeouts.Email),
		},
		Google: domain.GoogleSettings{
			CredentialsFile: s.configStore.GetString(keyGoogleCredentials),
			TokenFile:       s.configStore.GetString(keyGoogleToken),
			CalendarID:      s.getString(keyGoogleCalendar, defaults.Google.CalendarID),
		},
		EmailTransport: domain.EmailTransportKind(s.getString(keyEmailTransport, string(defaults.EmailTransport))),
		SMTP: domain.SMTPSettings{
			Host:     s.getString(keySMTPHost, defaults.SMTP.Host),
			Port:     s.getInt(keySMTPPort, defaults.SMTP.Port),
			Username: s.configStore.GetString(keySMTPUsername),
			Password: s.secret(EnvSMTPPassword, keySMTPPassword),
			From:     s.configStore.GetString(keySMTPFrom),
		},
		Job: domain.JobInfo{
			Title:   s.getString(keyJobTitle, defaults.Job.Title),
			Company: s.getString(keyJobCompany, defaults.Job.Company),
		},
		HTTPAddr:    s.getString(keyHTTPAddr, defaults.HTTPAddr),
		CORSOrigins: s.configStore.GetStringSlice(keyHTTPCORSOrigins),
	}

	return settings, nil
}

// Save persists application settings.
// Secrets are only written when set, so an environment override is never
// copied into the config file by a round trip.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key string
		val any
	}{
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyLLMRPM, settings.LLM.RequestsPerMinute},
		{keyRetrievalK, settings.TopK},
		{keyStorageBackend, string(settings.Storage)},
		{keyStoragePath, settings.StoragePath},
		{keySessionBackend, string(settings.SessionBackend)},
		{keySessionTTL, settings.Session.TTL.String()},
		{keySessionMax, settings.Session.MaxSessions},
		{keySessionMaxTurns, settings.Session.MaxTurns},
		{keyGoogleCredentials, settings.Google.CredentialsFile},
		{keyGoogleToken, settings.Google.TokenFile},
		{keyGoogleCalendar, settings.Google.CalendarID},
		{keyEmailTransport, string(settings.EmailTransport)},
		{keySMTPHost, settings.SMTP.Host},
		{keySMTPPort, settings.SMTP.Port},
		{keySMTPUsername, settings.SMTP.Username},
		{keySMTPFrom, settings.SMTP.From},
		{keyJobTitle, settings.Job.Title},
		{keyJobCompany, settings.Job.Company},
		{keyHTTPAddr, settings.HTTPAddr},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.val); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	secrets := []struct {
		env, key, val string
	}{
		{EnvEmbeddingAPIKey, keyEmbedAPIKey, settings.Embedding.APIKey},
		{EnvLLMAPIKey, keyLLMAPIKey, settings.LLM.APIKey},
		{EnvSMTPPassword, keySMTPPassword, settings.SMTP.Password},
		{EnvRedisURL, keyRedisURL, settings.RedisURL},
	}
	for _, sec := range secrets {
		if sec.val == "" {
			continue
		}
		if env, ok := s.lookupEnv(sec.env); ok && env == sec.val {
			continue
		}
		if err := s.configStore.Set(sec.key, sec.val); err != nil {
			return fmt.Errorf("save %s: %w", sec.key, err)
		}
	}

	return nil
}

// Set updates a single known key.
func (s *SettingsService) Set(key string, value any) error {
	if !knownKeys[key] && !strings.HasPrefix(key, "pipeline.") {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return s.configStore.Set(key, value)
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid embedding provider: %s", provider)
	}
	if !provider.SupportsEmbeddings() {
		return fmt.Errorf("provider %s does not support embeddings", provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider
	settings.Embedding.Model = modelOrDefault(model, domain.DefaultEmbeddingModels()[provider])
	settings.Embedding.BaseURL = baseURLFor(provider, settings.Embedding.BaseURL)
	settings.Embedding.APIKey = apiKey

	return s.Save(settings)
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider
	settings.LLM.Model = modelOrDefault(model, domain.DefaultLLMModels()[provider])
	settings.LLM.BaseURL = baseURLFor(provider, settings.LLM.BaseURL)
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// PipelineConfig returns the chunk pipeline configuration.
// Returns default configuration if nothing is configured.
func (s *SettingsService) PipelineConfig() domain.PipelineConfig {
	cfg := domain.DefaultPipelineConfig()

	if processors := s.configStore.GetStringSlice(keyPipelineProcs); len(processors) > 0 {
		cfg.Processors = processors
	}

	for _, name := range cfg.Processors {
		overrides := s.loadProcessorConfig("pipeline." + name + ".")
		if len(overrides) == 0 {
			continue
		}
		existing := cfg.ProcessorConfigs[name]
		if existing == nil {
			existing = make(map[string]any)
		}
		for k, v := range overrides {
			existing[k] = v
		}
		cfg.ProcessorConfigs[name] = existing
	}

	return cfg
}

// loadProcessorConfig loads config keys with a given prefix into a map.
func (s *SettingsService) loadProcessorConfig(prefix string) map[string]any {
	cfg := make(map[string]any)

	knownKeys := []string{"chunk_size", "overlap", "prefix_length"}
	for _, key := range knownKeys {
		if val, exists := s.configStore.Get(prefix + key); exists {
			cfg[key] = val
		}
	}

	return cfg
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

// getClock parses a "15:04" wall clock into an offset from midnight.
func (s *SettingsService) getClock(key string, defaultVal time.Duration) (time.Duration, error) {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal, nil
	}
	t, err := time.Parse("15:04", val)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func (s *SettingsService) getLocation(defaultVal *time.Location) (*time.Location, error) {
	val := s.configStore.GetString(keySchedTimezone)
	if val == "" {
		return defaultVal, nil
	}
	loc, err := time.LoadLocation(val)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, keySchedTimezone, err)
	}
	return loc, nil
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	provider := domain.AIProvider(s.configStore.GetString(key))
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getBackend(key string, defaultVal domain.StorageBackend) domain.StorageBackend {
	backend := domain.StorageBackend(s.configStore.GetString(key))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

// secret returns the environment override when present, else the config value.
func (s *SettingsService) secret(env, key string) string {
	if v, ok := s.lookupEnv(env); ok && v != "" {
		return v
	}
	return s.configStore.GetString(key)
}

func modelOrDefault(model, fallback string) string {
	if model != "" {
		return model
	}
	return fallback
}

// baseURLFor keeps a custom endpoint for Ollama and OpenAI-compatible servers.
func baseURLFor(provider domain.AIProvider, current string) string {
	switch provider {
	case domain.AIProviderOllama:
		if current == "" {
			return "http://localhost:11434"
		}
		return current
	case domain.AIProviderOpenAI:
		return current
	default:
		return ""
	}
}
