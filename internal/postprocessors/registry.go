package postprocessors

import (
	"fmt"
	"maps"
	"slices"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

// BuilderFunc makes a processor from its [pipeline.<name>] settings.
type BuilderFunc func(cfg map[string]any) (driven.PostProcessor, error)

// Registry resolves the processor names listed in pipeline.processors.
type Registry struct {
	builders map[string]BuilderFunc
}

func NewRegistry() *Registry {
	return &Registry{builders: map[string]BuilderFunc{}}
}

// Register binds name to builder, replacing any earlier binding.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

func (r *Registry) Build(name string, cfg map[string]any) (driven.PostProcessor, error) {
	if b, ok := r.builders[name]; ok {
		return b(cfg)
	}
	return nil, fmt.Errorf("unknown processor: %s", name)
}

// BuildPipeline builds cfg.Processors in order. The first unknown or
// misconfigured name fails the whole pipeline.
func (r *Registry) BuildPipeline(cfg domain.PipelineConfig) (*Pipeline, error) {
	procs := make([]driven.PostProcessor, 0, len(cfg.Processors))
	for _, name := range cfg.Processors {
		p, err := r.Build(name, cfg.GetProcessorConfig(name))
		if err != nil {
			return nil, err
		}
		procs = append(procs, p)
	}
	return NewPipeline(procs...), nil
}

// Names lists the registered processors alphabetically.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.builders))
}
