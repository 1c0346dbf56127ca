package driving

import (
	"context"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

// QueryService answers recruiter questions about indexed candidates.
type QueryService interface {
	// Query ranks passages for the message and synthesises an answer,
	// recording both turns in the conversation session.
	Query(ctx context.Context, workspaceID, message string, opts domain.QueryOptions) (*domain.QueryAnswer, error)

	// Retrieve ranks passages without answering or touching session memory.
	Retrieve(ctx context.Context, workspaceID, query string, opts domain.RetrieveOptions) ([]domain.RetrievalCandidate, error)

	// Suggest returns four interview questions for a candidate.
	Suggest(ctx context.Context, workspaceID, candidateID string) ([]string, error)

	// StoreJobDescription saves the job description used as answer context.
	StoreJobDescription(ctx context.Context, workspaceID, text string) error

	// History returns the turns of a conversation.
	History(ctx context.Context, workspaceID, conversationID string) ([]domain.Turn, error)

	// ClearHistory deletes a conversation's turns.
	ClearHistory(ctx context.Context, workspaceID, conversationID string) error
}

// IntentService classifies recruiter messages.
type IntentService interface {
	// Classify returns the intent of a message.
	Classify(message string) domain.Intent

	// HasSchedulingIntent reports whether the message asks to book an interview.
	HasSchedulingIntent(message string) bool
}
