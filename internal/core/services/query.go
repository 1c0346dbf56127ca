package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driving"
	"github.com/vishwapandiyan/Resume-screener/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// Answer synthesis limits.
const (
	answerContexts       = 5
	answerTemperature    = 0.3
	answerMaxTokens      = 600
	suggestTemperature   = 0.4
	suggestMaxTokens     = 200
	suggestCount         = 4
	historyTurns         = 6
	fallbackSummaryRunes = 300
	snippetPreviewRunes  = 200
)

const noInformationAnswer = "I don't have enough information about this candidate to provide a helpful response. " +
	"Could you try asking a more specific question about their skills, experience, or qualifications?"

const fallbackAnalysis = "**Analysis:** Based on the available information, I can see this candidate's background. " +
	"For a more detailed evaluation, please ask specific questions about their technical skills, " +
	"project experience, or how they might fit the role requirements."

// defaultQuestions are suggested when the LLM is unavailable.
var defaultQuestions = []string{
	"What are this candidate's strongest technical skills and how do they apply to our role?",
	"What specific projects or achievements demonstrate their problem-solving abilities?",
	"How well does their experience align with our team's needs and company culture?",
	"Are there any gaps in their background that we should address in the interview?",
}

// QueryService answers recruiter questions from ranked résumé passages.
// Scheduling and availability requests are handed to the scheduling service.
type QueryService struct {
	ranker     *Ranker
	llm        driven.LLMService
	prompts    driven.PromptStore
	memory     *SessionMemory
	intents    *IntentClassifier
	scheduling driving.SchedulingService
	jds        driven.JobDescriptionStore
	candidates candidateDirectory
	timeouts   domain.Timeouts
	now        func() time.Time
}

// NewQueryService creates a query service.
// llm and scheduling may be nil.
func NewQueryService(
	ranker *Ranker,
	llm driven.LLMService,
	memory *SessionMemory,
	scheduling driving.SchedulingService,
	jds driven.JobDescriptionStore,
	store driven.VectorStore,
	timeouts domain.Timeouts,
) *QueryService {
	return &QueryService{
		ranker:     ranker,
		llm:        llm,
		memory:     memory,
		intents:    NewIntentClassifier(),
		scheduling: scheduling,
		jds:        jds,
		candidates: candidateDirectory{store: store, timeout: timeouts.Vector},
		timeouts:   timeouts,
		now:        time.Now,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *QueryService) SetPromptStore(store driven.PromptStore) {
	s.prompts = store
	s.ranker.expander.SetPromptStore(store)
}

// Query answers message and records both turns of the exchange.
func (s *QueryService) Query(ctx context.Context, workspaceID, message string, opts domain.QueryOptions) (*domain.QueryAnswer, error) {
	workspaceID = strings.TrimSpace(workspaceID)
	message = strings.TrimSpace(message)
	if workspaceID == "" || message == "" {
		return nil, fmt.Errorf("%w: workspace_id and message are required", domain.ErrInvalidInput)
	}

	opts.CandidateID = strings.TrimSpace(opts.CandidateID)
	key := domain.SessionKey{WorkspaceID: workspaceID, ConversationID: strings.TrimSpace(opts.ConversationFor())}
	if err := s.memory.RecordTurn(ctx, key, domain.RoleUser, message); err != nil {
		return nil, err
	}

	answer := &domain.QueryAnswer{
		WorkspaceID:    workspaceID,
		CandidateID:    opts.CandidateID,
		ConversationID: key.ConversationID,
	}

	intent := s.intents.Classify(message)
	answer.Intent = intent.Kind()
	logger.Debug("Intent: %s", intent.Kind())

	var err error
	switch in := intent.(type) {
	case domain.ScheduleIntent:
		err = s.schedule(ctx, workspaceID, opts.CandidateID, answer)
	case domain.AvailabilityIntent:
		logger.Debug("Availability requested (%q)", in.Keyword)
		err = s.availability(ctx, answer)
	default:
		err = s.answer(ctx, workspaceID, message, key, opts, answer)
	}
	if err != nil {
		return nil, err
	}

	if err := s.memory.RecordTurn(ctx, key, domain.RoleAssistant, answer.Answer); err != nil {
		logger.Warn("Failed to record assistant turn: %v", err)
	}
	return answer, nil
}

// answer ranks passages and synthesises a reply, falling back to a summary.
func (s *QueryService) answer(
	ctx context.Context,
	workspaceID, message string,
	key domain.SessionKey,
	opts domain.QueryOptions,
	out *domain.QueryAnswer,
) error {
	snippets, err := s.ranker.Rank(ctx, workspaceID, message, domain.RetrieveOptions{CandidateID: opts.CandidateID, K: opts.K})
	if err != nil {
		return err
	}
	out.Snippets = snippets

	jd := s.jobDescription(ctx, workspaceID)

	if len(snippets) > 0 {
		turns, err := s.memory.History(ctx, key)
		if err != nil {
			logger.Warn("Failed to load conversation history: %v", err)
		}
		text, err := s.synthesise(ctx, message, jd, snippets, turns)
		if err == nil {
			out.Answer = text
			out.Synthesised = true
			return nil
		}
		logger.Debug("Answer fallback (%s): %v", domain.KindOf(err), err)
	}

	out.Answer = fallbackAnswer(jd, snippets)
	return nil
}

func (s *QueryService) synthesise(
	ctx context.Context,
	message, jd string,
	snippets []domain.RetrievalCandidate,
	turns []domain.Turn,
) (string, error) {
	if s.llm == nil {
		return "", domain.NewCapabilityError(domain.CapabilityLLM, domain.ErrLLMUnavailable)
	}

	contexts := make([]string, 0, answerContexts)
	for i := 0; i < len(snippets) && i < answerContexts; i++ {
		contexts = append(contexts, snippets[i].Text)
	}

	tmpl := loadPrompt(s.prompts, driven.PromptAnswer, defaultAnswerPrompt)
	prompt := fmt.Sprintf(tmpl,
		jobDescriptionBlock(jd),
		candidateBlock(snippets[0].Metadata),
		conversationBlock(turns),
		message,
		strings.Join(contexts, "\n---\n"),
	)

	llmCtx, cancel := withTimeout(ctx, s.timeouts.LLM)
	defer cancel()
	text, err := s.llm.Generate(llmCtx, prompt, driven.GenerateOptions{
		MaxTokens:   answerMaxTokens,
		Temperature: answerTemperature,
	})
	if err != nil {
		return "", domain.NewCapabilityError(domain.CapabilityLLM, err)
	}
	if text = strings.TrimSpace(text); text == "" {
		return "", domain.Malformed(domain.CapabilityLLM, "empty answer")
	}
	return text, nil
}

// schedule runs the booking workflow for the selected candidate.
func (s *QueryService) schedule(ctx context.Context, workspaceID, candidateID string, out *domain.QueryAnswer) error {
	if s.scheduling == nil {
		out.Answer = "Interview scheduling is not configured. Connect a calendar to book interviews."
		return nil
	}
	if candidateID == "" {
		out.Answer = "Please select a candidate to schedule an interview."
		return nil
	}

	result, err := s.scheduling.Schedule(ctx, driving.ScheduleRequest{WorkspaceID: workspaceID, CandidateID: candidateID})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			out.Answer = "I couldn't find that candidate in this workspace."
			return nil
		}
		return err
	}

	out.Workflow = result
	switch {
	case !result.Success:
		out.Answer = "I couldn't schedule the interview: " + result.Error
	case result.EmailResult != nil && result.EmailResult.Success:
		out.Answer = fmt.Sprintf("Interview booked for %s and the invitation was sent to %s.",
			result.Booking.StartTime, result.Email.To)
	default:
		out.Answer = fmt.Sprintf("Interview booked for %s. The invitation email could not be sent, "+
			"you can send it manually.", result.Booking.StartTime)
	}
	return nil
}

// availability reports the next day with free interview slots.
func (s *QueryService) availability(ctx context.Context, out *domain.QueryAnswer) error {
	if s.scheduling == nil {
		out.Answer = "Calendar availability is not configured."
		return nil
	}

	av, err := s.scheduling.NextAvailable(ctx, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrNoSlots) {
			out.Answer = "There are no free interview slots in the coming days."
			return nil
		}
		out.Answer = "I couldn't check the calendar right now: " + err.Error()
		return nil
	}

	out.Availability = av
	labels := make([]string, len(av.Slots))
	for i, slot := range av.Slots {
		labels[i] = slot.StartLabel
	}
	out.Answer = fmt.Sprintf("Available interview slots on %s: %s", av.Date, strings.Join(labels, ", "))
	return nil
}

// Retrieve ranks passages without answering.
func (s *QueryService) Retrieve(ctx context.Context, workspaceID, query string, opts domain.RetrieveOptions) ([]domain.RetrievalCandidate, error) {
	workspaceID = strings.TrimSpace(workspaceID)
	query = strings.TrimSpace(query)
	if workspaceID == "" || query == "" {
		return nil, fmt.Errorf("%w: workspace_id and query are required", domain.ErrInvalidInput)
	}
	return s.ranker.Rank(ctx, workspaceID, query, opts)
}

// Suggest returns four interview questions tailored to the candidate.
func (s *QueryService) Suggest(ctx context.Context, workspaceID, candidateID string) ([]string, error) {
	workspaceID = strings.TrimSpace(workspaceID)
	candidateID = strings.TrimSpace(candidateID)
	if workspaceID == "" || candidateID == "" {
		return nil, fmt.Errorf("%w: workspace_id and resume_id are required", domain.ErrInvalidInput)
	}

	questions, err := s.generateQuestions(ctx, workspaceID, candidateID)
	if err != nil {
		logger.Debug("Suggest fallback (%s): %v", domain.KindOf(err), err)
		return append([]string(nil), defaultQuestions...), nil
	}
	if len(questions) > suggestCount {
		questions = questions[:suggestCount]
	}
	return questions, nil
}

func (s *QueryService) generateQuestions(ctx context.Context, workspaceID, candidateID string) ([]string, error) {
	if s.llm == nil {
		return nil, domain.NewCapabilityError(domain.CapabilityLLM, domain.ErrLLMUnavailable)
	}

	var candidateContext string
	_, chunk, err := s.candidates.lookup(ctx, workspaceID, candidateID)
	switch {
	case err == nil:
		candidateContext = suggestionBlock(*chunk)
	case errors.Is(err, domain.ErrNotFound):
	default:
		logger.Debug("Candidate lookup failed: %v", err)
	}

	tmpl := loadPrompt(s.prompts, driven.PromptSuggestQuestions, defaultSuggestPrompt)

	llmCtx, cancel := withTimeout(ctx, s.timeouts.LLM)
	defer cancel()
	text, err := s.llm.Generate(llmCtx, fmt.Sprintf(tmpl, candidateContext), driven.GenerateOptions{
		MaxTokens:   suggestMaxTokens,
		Temperature: suggestTemperature,
	})
	if err != nil {
		return nil, domain.NewCapabilityError(domain.CapabilityLLM, err)
	}

	questions := splitList(text)
	if len(questions) == 0 {
		return nil, domain.Malformed(domain.CapabilityLLM, "no questions in %q", text)
	}
	return questions, nil
}

// StoreJobDescription saves the workspace job description.
func (s *QueryService) StoreJobDescription(ctx context.Context, workspaceID, text string) error {
	workspaceID = strings.TrimSpace(workspaceID)
	text = strings.TrimSpace(text)
	if workspaceID == "" || text == "" {
		return fmt.Errorf("%w: workspace_id and job_description are required", domain.ErrInvalidInput)
	}
	if err := s.jds.Save(ctx, workspaceID, text); err != nil {
		return fmt.Errorf("save job description: %w", err)
	}
	logger.Info("Stored job description for %s (%d chars)", workspaceID, len(text))
	return nil
}

// History returns the turns of a conversation.
func (s *QueryService) History(ctx context.Context, workspaceID, conversationID string) ([]domain.Turn, error) {
	if conversationID == "" {
		conversationID = domain.GlobalConversation
	}
	return s.memory.History(ctx, domain.SessionKey{WorkspaceID: workspaceID, ConversationID: conversationID})
}

// ClearHistory deletes the turns of a conversation.
func (s *QueryService) ClearHistory(ctx context.Context, workspaceID, conversationID string) error {
	if strings.TrimSpace(workspaceID) == "" {
		return fmt.Errorf("%w: workspace_id is required", domain.ErrInvalidInput)
	}
	if conversationID == "" {
		conversationID = domain.GlobalConversation
	}
	return s.memory.Clear(ctx, domain.SessionKey{WorkspaceID: workspaceID, ConversationID: conversationID})
}

func (s *QueryService) jobDescription(ctx context.Context, workspaceID string) string {
	if s.jds == nil {
		return ""
	}
	jd, err := s.jds.Get(ctx, workspaceID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Failed to load job description: %v", err)
		}
		return ""
	}
	return jd
}

func jobDescriptionBlock(jd string) string {
	if jd == "" {
		return ""
	}
	return "JOB DESCRIPTION:\n" + jd + "\n\n"
}

func candidateBlock(m domain.ChunkMetadata) string {
	var b strings.Builder
	b.WriteString("Candidate: " + orDefault(m.CandidateName, "This candidate"))
	if m.Email != "" {
		b.WriteString(" (" + m.Email + ")")
	}
	if m.Skills != "" {
		b.WriteString("\nKey Skills: " + m.Skills)
	}
	if m.ExperienceSummary != "" {
		b.WriteString("\nExperience: " + m.ExperienceSummary)
	}
	b.WriteString("\n\n")
	return b.String()
}

// conversationBlock renders the turns before the current question.
// A conversation with only the current turn renders nothing.
func conversationBlock(turns []domain.Turn) string {
	if len(turns) <= 1 {
		return ""
	}
	previous := turns[:len(turns)-1]
	if len(previous) > historyTurns {
		previous = previous[len(previous)-historyTurns:]
	}

	var b strings.Builder
	b.WriteString("Previous conversation:\n")
	for _, t := range previous {
		speaker := "HR"
		if t.Role == domain.RoleAssistant {
			speaker = "Assistant"
		}
		b.WriteString(speaker + ": " + t.Text + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func suggestionBlock(c domain.Chunk) string {
	var b strings.Builder
	b.WriteString("Candidate: " + orDefault(c.Metadata.CandidateName, "This candidate"))
	if c.Metadata.Skills != "" {
		b.WriteString("\nSkills: " + c.Metadata.Skills)
	}
	if c.Metadata.ExperienceSummary != "" {
		b.WriteString("\nExperience: " + c.Metadata.ExperienceSummary)
	}
	b.WriteString("\nResume snippet: " + truncateRunes(c.Text, snippetPreviewRunes) + "...")
	b.WriteString("\n\n")
	return b.String()
}

// fallbackAnswer summarises the top passage when no answer could be synthesised.
func fallbackAnswer(jd string, snippets []domain.RetrievalCandidate) string {
	if len(snippets) == 0 {
		return noInformationAnswer
	}

	var b strings.Builder
	if jd != "" {
		b.WriteString("**Job Requirements:** " + truncateRunes(jd, fallbackSummaryRunes))
		if len([]rune(jd)) > fallbackSummaryRunes {
			b.WriteString("...")
		}
		b.WriteString("\n\n")
	}

	m := snippets[0].Metadata
	b.WriteString("**Candidate:** " + orDefault(m.CandidateName, "This candidate"))
	if m.Skills != "" {
		b.WriteString("\n**Skills:** " + m.Skills)
	}
	if m.ExperienceSummary != "" {
		b.WriteString("\n**Experience:** " + m.ExperienceSummary)
	}
	b.WriteString("\n\n")

	summary := truncateRunes(snippets[0].Text, fallbackSummaryRunes)
	b.WriteString("**Resume Summary:** " + summary)
	if len([]rune(summary)) == fallbackSummaryRunes {
		b.WriteString("...")
	}
	b.WriteString("\n\n" + fallbackAnalysis)
	return b.String()
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
