package driven

import "github.com/vishwapandiyan/Resume-screener/internal/core/domain"

// AIConfigValidator probes a provider before its settings are saved. A
// provider that is not selected passes.
type AIConfigValidator interface {
	ValidateEmbedding(config *domain.EmbeddingSettings) error
	ValidateLLM(config *domain.LLMSettings) error
}
