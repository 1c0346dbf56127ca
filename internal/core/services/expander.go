package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
	"github.com/vishwapandiyan/Resume-screener/internal/logger"
)

// Expansion limits.
const (
	maxExpansions         = 4
	fallbackKeywordTokens = 6
	expansionTemperature  = 0.2
	expansionMaxTokens    = 150
)

// termPattern matches the tokens used for fallback expansion and lexical scoring.
var termPattern = regexp.MustCompile(`[A-Za-z0-9_#+.\-]+`)

// QueryExpander rewrites a recruiter question into up to four search queries.
type QueryExpander struct {
	llm     driven.LLMService
	prompts driven.PromptStore
	timeout time.Duration
}

// NewQueryExpander creates an expander. llm may be nil.
func NewQueryExpander(llm driven.LLMService, timeout time.Duration) *QueryExpander {
	return &QueryExpander{llm: llm, timeout: timeout}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (e *QueryExpander) SetPromptStore(store driven.PromptStore) {
	e.prompts = store
}

// Expand returns the original query followed by LLM rewrites, or a keyword
// rewrite when the LLM is missing, fails or answers with nothing usable.
// The result is never empty and always starts with the verbatim query.
func (e *QueryExpander) Expand(ctx context.Context, query string) domain.ExpansionSet {
	rewrites, err := e.generate(ctx, query)
	if err != nil {
		logger.Debug("Query expansion fallback (%s): %v", domain.KindOf(err), err)
		return domain.ExpansionSet{
			Queries: []string{query, keywordQuery(query)},
			Source:  domain.ExpansionFromFallback,
		}
	}

	queries := append([]string{query}, rewrites...)
	if len(queries) > maxExpansions {
		queries = queries[:maxExpansions]
	}
	logger.Debug("Query expansions: %q", queries)
	return domain.ExpansionSet{Queries: queries, Source: domain.ExpansionFromLLM}
}

// generate asks the LLM for comma separated rewrites.
func (e *QueryExpander) generate(ctx context.Context, query string) ([]string, error) {
	if e.llm == nil {
		return nil, domain.NewCapabilityError(domain.CapabilityLLM, domain.ErrLLMUnavailable)
	}

	tmpl := loadPrompt(e.prompts, driven.PromptQueryExpansion, defaultExpansionPrompt)

	llmCtx, cancel := withTimeout(ctx, e.timeout)
	defer cancel()
	text, err := e.llm.Generate(llmCtx, fmt.Sprintf(tmpl, query), driven.GenerateOptions{
		MaxTokens:   expansionMaxTokens,
		Temperature: expansionTemperature,
	})
	if err != nil {
		return nil, domain.NewCapabilityError(domain.CapabilityLLM, err)
	}

	rewrites := splitList(text)
	if len(rewrites) == 0 {
		return nil, domain.Malformed(domain.CapabilityLLM, "no expansions in %q", text)
	}
	return rewrites, nil
}

// keywordQuery joins the first six tokens of query with single spaces.
func keywordQuery(query string) string {
	words := termPattern.FindAllString(query, -1)
	if len(words) > fallbackKeywordTokens {
		words = words[:fallbackKeywordTokens]
	}
	return strings.Join(words, " ")
}

// queryTerms returns the lowercased tokens of all expansions, in order.
// Repeated tokens are kept; each occurrence contributes to the lexical score.
func queryTerms(expansions []string) []string {
	words := termPattern.FindAllString(strings.Join(expansions, " "), -1)
	terms := make([]string, len(words))
	for i, w := range words {
		terms[i] = strings.ToLower(w)
	}
	return terms
}

// splitList splits comma separated LLM output into trimmed non-empty items.
func splitList(text string) []string {
	parts := strings.Split(strings.TrimSpace(text), ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}
