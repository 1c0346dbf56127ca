package driven

// PromptStore serves prompt templates by name. Load falls back to the
// built-in template when no override exists.
type PromptStore interface {
	Load(name string) (string, error)

	// Reload drops cached templates after an edit on disk.
	Reload()
}

// Prompt names. Each template is a fmt format string.
const (
	// PromptQueryExpansion asks for comma separated query rewrites.
	// The prompt template expects a %s placeholder for the original query.
	PromptQueryExpansion = "query_expansion"

	// PromptAnswer is the HR assistant answer template.
	// The template expects five %s placeholders: job description block,
	// candidate block, conversation block, question and résumé context.
	PromptAnswer = "answer"

	// PromptSuggestQuestions asks for interview questions about a candidate.
	// The template expects one %s placeholder for the candidate block.
	PromptSuggestQuestions = "suggest_questions"
)

// PromptStoreAware services accept prompt overrides after construction.
type PromptStoreAware interface {
	SetPromptStore(store PromptStore)
}
