package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

func TestQueryCmd_Long(t *testing.T) {
	assert.Contains(t, queryCmd.Long, "hybrid semantic and keyword retrieval")
}

func TestQueryCmd_HasTopKFlag(t *testing.T) {
	flag := queryCmd.Flags().Lookup("top-k")
	require.NotNil(t, flag, "top-k flag should exist")
	assert.Equal(t, "k", flag.Shorthand)
	assert.Equal(t, "5", flag.DefValue)
}

func TestQueryCmd_RequiresTwoArgs(t *testing.T) {
	_, err := execute("query", "ws1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestQueryCmd_PrintsAnswerAndPassages(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.query.answer = &domain.QueryAnswer{
		WorkspaceID:    "ws1",
		ConversationID: "r1",
		Answer:         "Ada has six years of Go.",
		Snippets: []domain.RetrievalCandidate{{
			Text:       "Six years building Go services",
			Metadata:   domain.ChunkMetadata{CandidateID: "r1", CandidateName: "Ada"},
			FusedScore: 0.82,
		}},
	}

	out, err := execute("query", "-r", "r1", "-k", "3", "ws1", "How much Go?")

	require.NoError(t, err)
	assert.Contains(t, out, "Ada has six years of Go.")
	assert.Contains(t, out, "[1] Ada (0.82)")
	assert.Contains(t, out, "Chat: r1")
	assert.Equal(t, "How much Go?", ts.query.lastQuery)
	assert.Equal(t, "r1", ts.query.lastOpts.CandidateID)
	assert.Equal(t, 3, ts.query.lastOpts.K)
}

func TestQueryCmd_PrintsWorkflow(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.query.answer = &domain.QueryAnswer{
		Answer:         "Interview booked.",
		ConversationID: "global",
		Workflow: &domain.WorkflowResult{
			Success: true,
			Stages: []domain.StageRecord{
				{Stage: domain.StageBookingInterview, Status: domain.StatusCompleted, Message: "Event created"},
			},
			Booking: &domain.BookingResult{EventTitle: "Interview: Ada", MeetingLink: "https://meet.example/abc"},
		},
	}

	out, err := execute("query", "ws1", "schedule an interview")

	require.NoError(t, err)
	assert.Contains(t, out, "[completed] booking_interview: Event created")
	assert.Contains(t, out, "Booked: Interview: Ada")
	assert.Contains(t, out, "Meeting: https://meet.example/abc")
}

func TestQueryCmd_PassagesOnly(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.query.passages = []domain.RetrievalCandidate{{
		Text:     "Kubernetes operator",
		Metadata: domain.ChunkMetadata{CandidateID: "r2"},
	}}

	out, err := execute("query", "--passages-only", "ws1", "kubernetes")

	require.NoError(t, err)
	assert.Contains(t, out, "[1] r2")
	assert.Contains(t, out, "Kubernetes operator")
	assert.Empty(t, ts.query.lastQuery, "answering should be skipped")
	assert.Equal(t, domain.DefaultTopK, ts.query.lastRetrieve.K)
}

func TestQueryCmd_JSON(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.query.answer = &domain.QueryAnswer{Answer: "Yes.", ConversationID: "c1", Snippets: []domain.RetrievalCandidate{}}

	out, err := execute("query", "--json", "--chat", "c1", "ws1", "Any Go?")

	require.NoError(t, err)
	assert.Contains(t, out, `"answer": "Yes."`)
	assert.Equal(t, "c1", ts.query.lastOpts.ConversationID)
}

func TestQueryCmd_ServiceError(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.query.err = errors.New("llm down")

	_, err := execute("query", "ws1", "hello")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "query failed")
}

func TestHistoryCmd_DefaultsToGlobal(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("history", "ws1")

	require.NoError(t, err)
	assert.Contains(t, out, "No turns recorded.")
	assert.Equal(t, domain.GlobalConversation, ts.query.lastChat)
}

func TestHistoryCmd_PrintsTurns(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	at := time.Date(2025, 3, 10, 14, 5, 0, 0, time.UTC)
	ts.query.turns = []domain.Turn{
		{Role: domain.RoleUser, Text: "Who knows Go?", At: at},
		{Role: domain.RoleAssistant, Text: "Ada.", At: at},
	}

	out, err := execute("history", "ws1", "r1")

	require.NoError(t, err)
	assert.Equal(t, "r1", ts.query.lastChat)
	assert.Contains(t, out, "[14:05:00] user: Who knows Go?")
	assert.Contains(t, out, "assistant: Ada.")
}

func TestHistoryCmd_Clear(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("history", "ws1", "r1", "--clear")

	require.NoError(t, err)
	assert.True(t, ts.query.cleared)
	assert.Equal(t, "r1", ts.query.lastChat)
	assert.Contains(t, out, "Cleared conversation r1.")
}

func TestSuggestCmd_NumbersQuestions(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.query.questions = []string{"Describe a Go project.", "How do you test?"}

	out, err := execute("suggest", "ws1", "r1")

	require.NoError(t, err)
	assert.Contains(t, out, "1. Describe a Go project.")
	assert.Contains(t, out, "2. How do you test?")
}

func TestIntentCmd_PrintsKeyword(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.intent.intent = domain.ScheduleIntent{Keyword: "book an interview"}

	out, err := execute("intent", "please book an interview")

	require.NoError(t, err)
	assert.Contains(t, out, "Intent: "+string(domain.IntentSchedule))
	assert.Contains(t, out, "Keyword: book an interview")
}

func TestIntentCmd_ErrorsWithoutServices(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	intentService = nil

	_, err := execute("intent", "hello")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
