package driving

import "github.com/vishwapandiyan/Resume-screener/internal/core/domain"

// SettingsService reads and edits the persisted settings. Provider changes
// are probed before they are saved.
type SettingsService interface {
	Get() (*domain.AppSettings, error)
	Save(settings *domain.AppSettings) error

	// Set writes one dotted key such as "retrieval.k". Unknown keys are
	// rejected; pipeline.* keys are free-form.
	Set(key string, value any) error

	SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	GetDefaults() domain.AppSettings
	PipelineConfig() domain.PipelineConfig

	ValidateEmbeddingConfig() error
	ValidateLLMConfig() error
}
