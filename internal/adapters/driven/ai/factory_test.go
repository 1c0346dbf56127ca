package ai

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/llm/guard"
	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

func TestInitResult_Close(t *testing.T) {
	t.Run("close with nil services", func(t *testing.T) {
		result := &InitResult{}
		// Should not panic
		result.Close()
	})
}

func TestCreateEmbeddingService(t *testing.T) {
	tests := []struct {
		name     string
		settings *domain.EmbeddingSettings
		wantNil  bool
		wantErr  bool
	}{
		{
			name:     "nil settings returns nil",
			settings: nil,
			wantNil:  true,
		},
		{
			name:     "unconfigured settings returns nil",
			settings: &domain.EmbeddingSettings{},
			wantNil:  true,
		},
		{
			name: "ollama provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOllama,
				BaseURL:  "http://localhost:11434",
				Model:    "nomic-embed-text",
			},
		},
		{
			name: "openai provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
				APIKey:   "test-key",
				Model:    "text-embedding-3-small",
			},
		},
		{
			name: "anthropic has no embeddings so is not configured",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderAnthropic,
				APIKey:   "test-key",
			},
			wantNil: true,
		},
		{
			name: "openai without key is not configured",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(tt.settings)

			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantNil && svc != nil {
				t.Error("expected nil service, got non-nil")
			}
			if !tt.wantNil && svc == nil {
				t.Error("expected non-nil service, got nil")
			}
			if svc != nil {
				svc.Close()
			}
		})
	}
}

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name     string
		settings *domain.LLMSettings
		wantNil  bool
	}{
		{name: "nil settings returns nil", settings: nil, wantNil: true},
		{name: "unconfigured settings returns nil", settings: &domain.LLMSettings{}, wantNil: true},
		{
			name:     "ollama provider creates service",
			settings: &domain.LLMSettings{Provider: domain.AIProviderOllama},
		},
		{
			name:     "openai provider creates service",
			settings: &domain.LLMSettings{Provider: domain.AIProviderOpenAI, APIKey: "k"},
		},
		{
			name:     "anthropic provider creates service",
			settings: &domain.LLMSettings{Provider: domain.AIProviderAnthropic, APIKey: "k"},
		},
		{
			name:     "unknown provider returns nil (not configured)",
			settings: &domain.LLMSettings{Provider: "unknown", APIKey: "k"},
			wantNil:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if svc != nil {
					t.Error("expected nil service, got non-nil")
				}
				return
			}
			if _, ok := svc.(*guard.LLMService); !ok {
				t.Errorf("expected guarded service, got %T", svc)
			}
			svc.Close()
		})
	}
}

func TestCreateAndValidateLLMService_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	svc, err := CreateAndValidateLLMService(&domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  url,
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if svc != nil {
		t.Error("expected nil service")
	}
	if !strings.Contains(err.Error(), "screener settings") {
		t.Errorf("error %q should point at the settings command", err.Error())
	}
}

func TestCreateAndValidateEmbeddingService_Reachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	svc, err := CreateAndValidateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  srv.URL,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc == nil {
		t.Fatal("expected service")
	}
	if svc.Dimensions() != 768 {
		t.Errorf("dimensions = %d, want 768", svc.Dimensions())
	}
	svc.Close()
}

func TestInit_DegradesWithWarnings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	settings := domain.DefaultAppSettings()
	settings.LLM = domain.LLMSettings{Provider: domain.AIProviderOllama, BaseURL: url}

	result := Init(&settings)
	defer result.Close()

	if result.LLMService != nil {
		t.Error("expected LLM to be disabled")
	}
	if result.EmbeddingService != nil {
		t.Error("expected no embedding service when unconfigured")
	}
	if len(result.Warnings) != 1 {
		t.Errorf("warnings = %v, want 1", result.Warnings)
	}
}
