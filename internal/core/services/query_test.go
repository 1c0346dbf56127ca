package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/storage/memory"
	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

type queryFixture struct {
	service *QueryService
	llm     *mockLLMService
	store   *memory.VectorStore
	jds     *memory.JobDescriptionStore
	cal     *mockCalendarService
}

func newQueryFixture(t *testing.T, llm *mockLLMService) *queryFixture {
	t.Helper()
	store := candidateStore(t)
	jds := memory.NewJobDescriptionStore()
	cal := &mockCalendarService{}
	booking := newTestBooking(cal, &mockEmailTransport{}, store)

	var gen driven.LLMService
	if llm != nil {
		gen = llm
	}
	ranker := NewRanker(newMockEmbedding(), store, NewQueryExpander(nil, 0), testTimeouts())
	service := NewQueryService(ranker, gen, newTestMemory(), booking, jds, store, testTimeouts())
	service.now = booking.now

	return &queryFixture{service: service, llm: llm, store: store, jds: jds, cal: cal}
}

func TestQueryService_Query_SynthesisedAnswer(t *testing.T) {
	llm := &mockLLMService{responses: []string{"She has strong Go experience."}}
	f := newQueryFixture(t, llm)
	ctx := context.Background()
	require.NoError(t, f.service.StoreJobDescription(ctx, "ws", "We need a Go engineer."))

	answer, err := f.service.Query(ctx, "ws", "Does she know Go?", domain.QueryOptions{CandidateID: "r1"})

	require.NoError(t, err)
	assert.Equal(t, "She has strong Go experience.", answer.Answer)
	assert.True(t, answer.Synthesised)
	assert.Equal(t, domain.IntentGeneral, answer.Intent)
	assert.Equal(t, "r1", answer.ConversationID)
	require.Len(t, answer.Snippets, 1)

	require.Len(t, llm.prompts, 1)
	prompt := llm.prompts[0]
	assert.Contains(t, prompt, "JOB DESCRIPTION:\nWe need a Go engineer.")
	assert.Contains(t, prompt, "Candidate: Asha Rao (asha@example.com)\nKey Skills: Go, Kubernetes")
	assert.Contains(t, prompt, "HR Question: Does she know Go?")
	assert.Contains(t, prompt, "Resume Content:\nGo developer")
	assert.NotContains(t, prompt, "Previous conversation")
	assert.Equal(t, 600, llm.options[0].MaxTokens)

	history, err := f.service.History(ctx, "ws", "r1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.RoleUser, history[0].Role)
	assert.Equal(t, domain.RoleAssistant, history[1].Role)
}

func TestQueryService_Query_IncludesPreviousConversation(t *testing.T) {
	llm := &mockLLMService{responses: []string{"First answer.", "Second answer."}}
	f := newQueryFixture(t, llm)
	ctx := context.Background()

	_, err := f.service.Query(ctx, "ws", "Does she know Go?", domain.QueryOptions{CandidateID: "r1"})
	require.NoError(t, err)
	_, err = f.service.Query(ctx, "ws", "And Kubernetes?", domain.QueryOptions{CandidateID: "r1"})
	require.NoError(t, err)

	require.Len(t, llm.prompts, 2)
	assert.Contains(t, llm.prompts[1], "Previous conversation:\nHR: Does she know Go?\nAssistant: First answer.\n")
	assert.NotContains(t, llm.prompts[1], "HR: And Kubernetes?")
}

func TestQueryService_Query_FallbackAnswer(t *testing.T) {
	f := newQueryFixture(t, &mockLLMService{err: errors.New("503")})
	ctx := context.Background()
	require.NoError(t, f.service.StoreJobDescription(ctx, "ws", strings.Repeat("x", 310)))

	answer, err := f.service.Query(ctx, "ws", "Summarise her profile", domain.QueryOptions{CandidateID: "r1"})

	require.NoError(t, err)
	assert.False(t, answer.Synthesised)
	assert.Contains(t, answer.Answer, "**Job Requirements:** "+strings.Repeat("x", 300)+"...")
	assert.Contains(t, answer.Answer, "**Candidate:** Asha Rao\n**Skills:** Go, Kubernetes")
	assert.Contains(t, answer.Answer, "**Resume Summary:** Go developer\n\n**Analysis:**")
}

func TestQueryService_Query_NoSnippets(t *testing.T) {
	f := newQueryFixture(t, nil)

	answer, err := f.service.Query(context.Background(), "empty", "Summarise", domain.QueryOptions{})

	require.NoError(t, err)
	assert.Equal(t, noInformationAnswer, answer.Answer)
	assert.Equal(t, domain.GlobalConversation, answer.ConversationID)
	assert.Empty(t, answer.Snippets)
}

func TestQueryService_Query_ScheduleIntent(t *testing.T) {
	f := newQueryFixture(t, &mockLLMService{})

	answer, err := f.service.Query(context.Background(), "ws", "Please schedule interview", domain.QueryOptions{CandidateID: "r1"})

	require.NoError(t, err)
	assert.Equal(t, domain.IntentSchedule, answer.Intent)
	require.NotNil(t, answer.Workflow)
	assert.True(t, answer.Workflow.Success)
	assert.Contains(t, answer.Answer, "Interview booked for 2025-03-11 09:00")
	assert.Len(t, f.cal.created, 1)
	assert.Empty(t, f.llm.prompts)
}

func TestQueryService_Query_ScheduleWithoutCandidate(t *testing.T) {
	f := newQueryFixture(t, nil)

	answer, err := f.service.Query(context.Background(), "ws", "book interview", domain.QueryOptions{})

	require.NoError(t, err)
	assert.Nil(t, answer.Workflow)
	assert.Equal(t, "Please select a candidate to schedule an interview.", answer.Answer)
	assert.Empty(t, f.cal.created)
}

func TestQueryService_Query_AvailabilityIntent(t *testing.T) {
	f := newQueryFixture(t, nil)

	answer, err := f.service.Query(context.Background(), "ws", "Which slots are free?", domain.QueryOptions{})

	require.NoError(t, err)
	assert.Equal(t, domain.IntentAvailability, answer.Intent)
	require.NotNil(t, answer.Availability)
	assert.Equal(t, "2025-03-11", answer.Availability.Date)
	assert.Equal(t, "Available interview slots on 2025-03-11: 09:00, 09:30, 10:00, 10:30, 11:00", answer.Answer)
}

func TestQueryService_Query_Validation(t *testing.T) {
	f := newQueryFixture(t, nil)

	_, err := f.service.Query(context.Background(), "", "hello", domain.QueryOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.service.Query(context.Background(), "ws", "  ", domain.QueryOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQueryService_Suggest(t *testing.T) {
	llm := &mockLLMService{responses: []string{"Q1?, Q2?, Q3?, Q4?, Q5?"}}
	f := newQueryFixture(t, llm)

	questions, err := f.service.Suggest(context.Background(), "ws", "r1")

	require.NoError(t, err)
	assert.Equal(t, []string{"Q1?", "Q2?", "Q3?", "Q4?"}, questions)
	require.Len(t, llm.prompts, 1)
	assert.True(t, strings.HasPrefix(llm.prompts[0], "Candidate: Asha Rao\nSkills: Go, Kubernetes\nResume snippet: Go developer...\n\n"))
	assert.InDelta(t, 0.4, llm.options[0].Temperature, 1e-9)
}

func TestQueryService_Suggest_Defaults(t *testing.T) {
	f := newQueryFixture(t, nil)

	questions, err := f.service.Suggest(context.Background(), "ws", "r1")

	require.NoError(t, err)
	assert.Equal(t, defaultQuestions, questions)

	_, err = f.service.Suggest(context.Background(), "ws", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQueryService_StoreJobDescription_Validation(t *testing.T) {
	f := newQueryFixture(t, nil)

	err := f.service.StoreJobDescription(context.Background(), "ws", " ")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQueryService_Retrieve(t *testing.T) {
	f := newQueryFixture(t, nil)

	got, err := f.service.Retrieve(context.Background(), "ws", "Go developer", domain.RetrieveOptions{})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r1::c0", got[0].ChunkID)

	history, err := f.service.History(context.Background(), "ws", "")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestQueryService_ClearHistory(t *testing.T) {
	f := newQueryFixture(t, &mockLLMService{responses: []string{"Yes."}})
	ctx := context.Background()

	_, err := f.service.Query(ctx, "ws", "Does she know Go?", domain.QueryOptions{CandidateID: "r1"})
	require.NoError(t, err)

	require.NoError(t, f.service.ClearHistory(ctx, "ws", "r1"))

	history, err := f.service.History(ctx, "ws", "r1")
	require.NoError(t, err)
	assert.Empty(t, history)

	assert.ErrorIs(t, f.service.ClearHistory(ctx, " ", "r1"), domain.ErrInvalidInput)
}
