package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API (or any compatible endpoint).
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderGemini is Google Gemini cloud API.
	AIProviderGemini AIProvider = "gemini"
)

// AllEmbeddingProviders returns the providers that can embed text, local first.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{AIProviderOllama, AIProviderOpenAI, AIProviderGemini}
}

// AllLLMProviders returns the providers that can generate text, local first.
func AllLLMProviders() []AIProvider {
	return []AIProvider{AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic, AIProviderGemini}
}

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic, AIProviderGemini:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic || p == AIProviderGemini
}

// SupportsEmbeddings returns true if the provider offers an embedding endpoint.
func (p AIProvider) SupportsEmbeddings() bool {
	return p == AIProviderOllama || p == AIProviderOpenAI || p == AIProviderGemini
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderGemini:
		return "Gemini (cloud)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama and OpenAI-compatible servers).
	BaseURL string

	// APIKey is the API key (for cloud providers).
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() || !e.Provider.SupportsEmbeddings() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama and OpenAI-compatible servers).
	BaseURL string

	// APIKey is the API key (for cloud providers).
	APIKey string

	// RequestsPerMinute throttles outgoing generation calls. Zero disables throttling.
	RequestsPerMinute int
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// StorageBackend selects where chunks, vectors and job descriptions live.
type StorageBackend string

// Storage backends.
const (
	StorageMemory StorageBackend = "memory"
	StorageSQLite StorageBackend = "sqlite"
	StorageRedis  StorageBackend = "redis"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageMemory, StorageSQLite, StorageRedis:
		return true
	default:
		return false
	}
}

// EmailTransportKind selects how invitations are delivered.
type EmailTransportKind string

// Email transports.
const (
	EmailNone  EmailTransportKind = "none"
	EmailGmail EmailTransportKind = "gmail"
	EmailSMTP  EmailTransportKind = "smtp"
)

// Timeouts bound every external capability call.
type Timeouts struct {
	LLM       time.Duration
	Embedding time.Duration
	Vector    time.Duration
	Calendar  time.Duration
	Email     time.Duration
}

// SMTPSettings configures the SMTP email transport.
type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// IsConfigured returns true if SMTP credentials are present.
func (s SMTPSettings) IsConfigured() bool {
	return s.Host != "" && s.Username != "" && s.Password != ""
}

// GoogleSettings configures Google Calendar and Gmail access.
type GoogleSettings struct {
	// CredentialsFile is the OAuth client JSON downloaded from the Google console.
	CredentialsFile string

	// TokenFile holds the authorised OAuth token.
	TokenFile string

	// CalendarID is the calendar interviews are booked on (default "primary").
	CalendarID string
}

// IsConfigured returns true if Google credentials are set.
func (g GoogleSettings) IsConfigured() bool {
	return g.CredentialsFile != "" && g.TokenFile != ""
}

// AppSettings holds all application settings.
type AppSettings struct {
	Embedding EmbeddingSettings
	LLM       LLMSettings

	// TopK is the default number of passages returned by a query.
	TopK int

	// Storage selects the chunk and vector backend.
	Storage StorageBackend

	// StoragePath is the directory of the SQLite database.
	StoragePath string

	// SessionBackend selects the session memory backend.
	SessionBackend StorageBackend

	// Session bounds conversation memory.
	Session SessionPolicy

	// RedisURL is the redis address or URL for the redis session backend.
	RedisURL string

	Scheduler SchedulerConfig
	Timeouts  Timeouts
	Google    GoogleSettings

	EmailTransport EmailTransportKind
	SMTP           SMTPSettings

	// Job is the default position interviews are booked for.
	Job JobInfo

	// HTTPAddr is the listen address of the HTTP API.
	HTTPAddr string

	// CORSOrigins are the browser origins allowed to call the HTTP API. Empty disables CORS.
	CORSOrigins []string
}

// DefaultTimeouts returns the default capability call bounds.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		LLM:       20 * time.Second,
		Embedding: 15 * time.Second,
		Vector:    10 * time.Second,
		Calendar:  15 * time.Second,
		Email:     20 * time.Second,
	}
}

// DefaultAppSettings returns settings with sensible defaults.
// AI providers are left unconfigured; the user sets them explicitly.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		TopK:           DefaultTopK,
		Storage:        StorageMemory,
		SessionBackend: StorageMemory,
		Session:        DefaultSessionPolicy(),
		Scheduler:      DefaultSchedulerConfig(),
		Timeouts:       DefaultTimeouts(),
		Google:         GoogleSettings{CalendarID: "primary"},
		EmailTransport: EmailNone,
		SMTP:           SMTPSettings{Host: "smtp.gmail.com", Port: 587},
		Job:            DefaultJobInfo(),
		HTTPAddr:       ":8080",
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
		AIProviderGemini: "text-embedding-004",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
		AIProviderGemini:    "gemini-2.0-flash",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		"nomic-embed-text":       768,
		"mxbai-embed-large":      1024,
		"all-minilm":             384,
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
		"text-embedding-004":     768,
	}
}

// PipelineConfig holds chunk pipeline configuration.
// Uses generic map-based config so processors can be added
// without modifying this struct.
type PipelineConfig struct {
	// Processors is the ordered list of processor names to run.
	Processors []string

	// ProcessorConfigs holds per-processor configuration as generic maps.
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns config for a specific processor, or nil if not set.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	if c.ProcessorConfigs == nil {
		return nil
	}
	return c.ProcessorConfigs[name]
}

// DefaultPipelineConfig returns the default chunk pipeline:
// 800-rune windows with 120 runes of overlap, prefix dedupe, then annotation.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Processors: []string{"chunker", "dedupe", "annotate"},
		ProcessorConfigs: map[string]map[string]any{
			"chunker": {
				"chunk_size": 800,
				"overlap":    120,
			},
			"dedupe": {
				"prefix_length": 200,
			},
		},
	}
}
