package postprocessors

import (
	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
	"github.com/vishwapandiyan/Resume-screener/internal/postprocessors/annotate"
	"github.com/vishwapandiyan/Resume-screener/internal/postprocessors/chunker"
	"github.com/vishwapandiyan/Resume-screener/internal/postprocessors/dedupe"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register("chunker", buildChunker)
	r.Register("dedupe", buildDedupe)
	r.Register("annotate", buildAnnotate)
}

// DefaultPipeline builds the standard chunker, dedupe, annotate pipeline.
func DefaultPipeline() *Pipeline {
	r := NewRegistry()
	RegisterDefaults(r)
	p, err := r.BuildPipeline(domain.DefaultPipelineConfig())
	if err != nil {
		// Built-in processors are always registered.
		panic(err)
	}
	return p
}

// buildChunker creates a chunker processor from generic config.
// Supported config keys:
//   - chunk_size (int): Runes per chunk (default: 800)
//   - overlap (int): Overlapping runes between chunks (default: 120)
func buildChunker(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option

	if cfg != nil {
		if size := getIntFromConfig(cfg, "chunk_size"); size > 0 {
			opts = append(opts, chunker.WithChunkSize(size))
		}
		if _, ok := cfg["overlap"]; ok {
			opts = append(opts, chunker.WithOverlap(getIntFromConfig(cfg, "overlap")))
		}
	}

	return chunker.New(opts...), nil
}

// buildDedupe creates a dedupe processor.
// Supported config keys:
//   - prefix_length (int): Runes compared between chunks (default: 200)
func buildDedupe(cfg map[string]any) (driven.PostProcessor, error) {
	if cfg != nil {
		if n := getIntFromConfig(cfg, "prefix_length"); n > 0 {
			return dedupe.New(n), nil
		}
	}
	return dedupe.New(dedupe.DefaultPrefixLength), nil
}

func buildAnnotate(_ map[string]any) (driven.PostProcessor, error) {
	return annotate.New(), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
