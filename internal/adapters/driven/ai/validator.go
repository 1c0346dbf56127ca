package ai

import (
	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator probes provider settings before the settings service
// saves them. The probed service is always closed.
type ConfigValidator struct{}

func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

func (v *ConfigValidator) ValidateEmbedding(config *domain.EmbeddingSettings) error {
	svc, err := CreateEmbeddingService(config)
	if err != nil || svc == nil {
		return err
	}
	svc, err = probe(svc)
	if err == nil {
		_ = svc.Close()
	}
	return err
}

func (v *ConfigValidator) ValidateLLM(config *domain.LLMSettings) error {
	svc, err := CreateLLMService(config)
	if err != nil || svc == nil {
		return err
	}
	svc, err = probe(svc)
	if err == nil {
		_ = svc.Close()
	}
	return err
}
