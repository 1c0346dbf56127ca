package domain

// DefaultTopK is the number of passages returned when the caller does not ask.
const DefaultTopK = 5

// WidenedTopK is the minimum result count of the unscoped and contains passes.
const WidenedTopK = 8

// Score weights of the fused ranking.
const (
	SemanticWeight = 0.7
	LexicalWeight  = 0.3
)

// ExpansionSource records which branch produced an expansion set.
type ExpansionSource string

// Expansion sources.
const (
	ExpansionFromLLM      ExpansionSource = "llm"
	ExpansionFromFallback ExpansionSource = "fallback"
)

// ExpansionSet is the ordered list of query rewrites, original query first.
type ExpansionSet struct {
	Queries []string
	Source  ExpansionSource
}

// RetrieveOptions configures one ranking call.
type RetrieveOptions struct {
	// CandidateID scopes the first retrieval pass to one résumé.
	CandidateID string

	// K is the result count (DefaultTopK when zero or negative).
	K int
}

// RetrievalCandidate is a ranked passage.
type RetrievalCandidate struct {
	ChunkID            string        `json:"id"`
	Text               string        `json:"text"`
	Metadata           ChunkMetadata `json:"metadata"`
	SemanticSimilarity float64       `json:"semantic_similarity"`
	LexicalScore       float64       `json:"lexical_score"`
	FusedScore         float64       `json:"score"`
}

// QueryOptions configures a recruiter question.
type QueryOptions struct {
	// CandidateID scopes retrieval to one résumé.
	CandidateID string

	// K is the number of passages to retrieve.
	K int

	// ConversationID selects the session. Defaults to CandidateID or "global".
	ConversationID string
}

// GlobalConversation is the conversation used when no chat or résumé id is given.
const GlobalConversation = "global"

// ConversationFor resolves the conversation id of a query.
func (o QueryOptions) ConversationFor() string {
	if o.ConversationID != "" {
		return o.ConversationID
	}
	if o.CandidateID != "" {
		return o.CandidateID
	}
	return GlobalConversation
}

// QueryAnswer is the response to a recruiter question.
type QueryAnswer struct {
	WorkspaceID    string               `json:"workspace_id"`
	CandidateID    string               `json:"resume_id,omitempty"`
	ConversationID string               `json:"chat_id"`
	Answer         string               `json:"answer"`
	Snippets       []RetrievalCandidate `json:"snippets"`
	Intent         IntentKind           `json:"intent"`
	Synthesised    bool                 `json:"synthesised"`

	// Workflow is set when the message triggered interview booking.
	Workflow *WorkflowResult `json:"workflow,omitempty"`

	// Availability is set when the message asked for free slots.
	Availability *Availability `json:"availability,omitempty"`
}
