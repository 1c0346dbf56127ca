package driven

import "context"

// LLMService completes prompts for query expansion, answers and interview
// question suggestions. It may be nil; callers then use deterministic
// fallbacks. Adapters exist for OpenAI-compatible servers, Anthropic,
// Gemini and Ollama.
type LLMService interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	ModelName() string

	// Ping checks reachability without running a full completion where the
	// provider allows it.
	Ping(ctx context.Context) error
	Close() error
}

// GenerateOptions tunes a single completion. Zero values leave the
// provider defaults in place, except Temperature which is always sent.
type GenerateOptions struct {
	MaxTokens   int
	Temperature float64
	StopWords   []string
}
