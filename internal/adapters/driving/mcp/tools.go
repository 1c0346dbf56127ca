package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driving"
)

// ResumeInput is one résumé submitted to ingest_resumes.
type ResumeInput struct {
	ResumeID   string   `json:"resume_id" jsonschema:"stable identifier of the résumé"`
	Candidate  string   `json:"candidate,omitempty" jsonschema:"candidate display name"`
	Email      string   `json:"email,omitempty" jsonschema:"candidate email address"`
	Skills     []string `json:"skills,omitempty" jsonschema:"extracted skills"`
	Experience string   `json:"experience,omitempty" jsonschema:"short experience summary"`
	Rank       int      `json:"rank,omitempty" jsonschema:"screening rank assigned upstream"`
	Text       string   `json:"text" jsonschema:"extracted résumé text"`
}

// IngestInput is the input schema for the ingest_resumes tool.
type IngestInput struct {
	WorkspaceID string        `json:"workspace_id" jsonschema:"workspace the résumés belong to"`
	Resumes     []ResumeInput `json:"resumes" jsonschema:"résumés to index"`
}

// IngestOutput is the output schema for the ingest_resumes tool.
type IngestOutput struct {
	WorkspaceID   string `json:"workspace_id"`
	ChunksIndexed int    `json:"chunks_indexed"`
}

// QueryInput is the input schema for the query_resumes tool.
type QueryInput struct {
	WorkspaceID string `json:"workspace_id" jsonschema:"workspace to search"`
	Query       string `json:"query" jsonschema:"recruiter question or instruction"`
	ResumeID    string `json:"resume_id,omitempty" jsonschema:"restrict the search to one résumé"`
	K           int    `json:"k,omitempty" jsonschema:"number of passages to retrieve (default 5)"`
	ChatID      string `json:"chat_id,omitempty" jsonschema:"conversation to continue"`
}

// SnippetOutput is a ranked résumé passage.
type SnippetOutput struct {
	ChunkID            string  `json:"id"`
	ResumeID           string  `json:"resume_id"`
	Candidate          string  `json:"candidate"`
	Text               string  `json:"text"`
	Score              float64 `json:"score"`
	SemanticSimilarity float64 `json:"semantic_similarity"`
	LexicalScore       float64 `json:"lexical_score"`
}

// SlotOutput is a free interview slot.
type SlotOutput struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	StartTime string `json:"start_str"`
	EndTime   string `json:"end_str"`
	Date      string `json:"date"`
}

// AvailabilityOutput lists free slots on one day.
type AvailabilityOutput struct {
	Date  string       `json:"date"`
	Slots []SlotOutput `json:"available_slots"`
}

// WorkflowOutput is the outcome of a booking workflow run.
type WorkflowOutput struct {
	Success           bool                  `json:"success"`
	Error             string                `json:"error,omitempty"`
	Stages            []domain.StageRecord  `json:"stages"`
	Booking           *domain.BookingResult `json:"booking_result,omitempty"`
	Email             *domain.EmailData     `json:"email_data,omitempty"`
	EmailResult       *domain.EmailResult   `json:"email_result,omitempty"`
	ManualEmailOption bool                  `json:"manual_email_option"`
}

// QueryOutput is the output schema for the query_resumes tool.
type QueryOutput struct {
	Answer       string              `json:"answer"`
	ChatID       string              `json:"chat_id"`
	Intent       string              `json:"intent"`
	Synthesised  bool                `json:"synthesised"`
	Snippets     []SnippetOutput     `json:"snippets"`
	Workflow     *WorkflowOutput     `json:"workflow,omitempty"`
	Availability *AvailabilityOutput `json:"availability,omitempty"`
}

// IntentInput is the input schema for the check_intent tool.
type IntentInput struct {
	Message string `json:"message" jsonschema:"recruiter message to classify"`
}

// IntentOutput is the output schema for the check_intent tool.
type IntentOutput struct {
	HasSchedulingIntent bool   `json:"has_scheduling_intent"`
	Intent              string `json:"intent"`
	Keyword             string `json:"keyword,omitempty"`
}

// SlotsInput is the input schema for the available_slots tool.
type SlotsInput struct {
	Date string `json:"date,omitempty" jsonschema:"day to check as YYYY-MM-DD; omitted searches from tomorrow"`
}

// ScheduleInput is the input schema for the schedule_interview tool.
type ScheduleInput struct {
	WorkspaceID string `json:"workspace_id" jsonschema:"workspace holding the résumé"`
	ResumeID    string `json:"resume_id" jsonschema:"résumé of the candidate to invite"`
	Candidate   string `json:"candidate,omitempty" jsonschema:"candidate name override"`
	Email       string `json:"email,omitempty" jsonschema:"candidate email override"`
	JobTitle    string `json:"job_title,omitempty" jsonschema:"position title"`
	Company     string `json:"company,omitempty" jsonschema:"company name"`
	Date        string `json:"date,omitempty" jsonschema:"interview day as YYYY-MM-DD; omitted picks the next free day"`
}

// ManualEmailInput is the input schema for the get_manual_email tool.
type ManualEmailInput struct {
	Candidate    string `json:"candidate" jsonschema:"candidate name"`
	Email        string `json:"email" jsonschema:"candidate email address"`
	JobTitle     string `json:"job_title,omitempty" jsonschema:"position title"`
	Company      string `json:"company,omitempty" jsonschema:"company name"`
	StartTime    string `json:"start_time" jsonschema:"interview start as YYYY-MM-DD HH:MM"`
	MeetingLink  string `json:"meeting_link,omitempty" jsonschema:"video meeting link"`
	CalendarLink string `json:"calendar_link,omitempty" jsonschema:"calendar event link"`
}

// StatsInput is the input schema for the resume_stats tool.
type StatsInput struct {
	WorkspaceID string `json:"workspace_id" jsonschema:"workspace to summarise"`
	ResumeID    string `json:"resume_id,omitempty" jsonschema:"restrict the summary to one résumé"`
}

// StatsOutput is the output schema for the resume_stats tool.
type StatsOutput struct {
	WorkspaceID    string   `json:"workspace_id"`
	ResumeID       string   `json:"resume_id,omitempty"`
	ChunksCount    int      `json:"chunks_count"`
	SampleSnippets []string `json:"sample_snippets"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_resumes",
		Description: "Chunk, embed and index résumés into a workspace",
	}, s.handleIngest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_resumes",
		Description: "Ask a question about indexed candidates, or ask to schedule an interview",
	}, s.handleQuery)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "check_intent",
		Description: "Classify whether a message asks to schedule, check availability or query",
	}, s.handleCheckIntent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "available_slots",
		Description: "List free interview slots on a day",
	}, s.handleAvailableSlots)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "schedule_interview",
		Description: "Book an interview with a candidate and email the invitation",
	}, s.handleSchedule)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_manual_email",
		Description: "Render the invitation email for a booked interview so it can be sent by hand",
	}, s.handleManualEmail)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resume_stats",
		Description: "Summarise what a workspace has indexed",
	}, s.handleStats)
}

func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	if s.ports.Ingest == nil {
		return nil, IngestOutput{}, fmt.Errorf("ingest_resumes: %w", errNotConfigured)
	}

	candidates := make([]domain.Candidate, len(input.Resumes))
	for i, r := range input.Resumes {
		candidates[i] = domain.Candidate{
			ID:         r.ResumeID,
			Name:       r.Candidate,
			Email:      r.Email,
			Skills:     r.Skills,
			Experience: r.Experience,
			Rank:       r.Rank,
			Text:       r.Text,
		}
	}

	n, err := s.ports.Ingest.Ingest(ctx, input.WorkspaceID, candidates)
	if err != nil {
		return nil, IngestOutput{}, err
	}
	return nil, IngestOutput{WorkspaceID: input.WorkspaceID, ChunksIndexed: n}, nil
}

func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	opts := domain.QueryOptions{
		CandidateID:    input.ResumeID,
		K:              input.K,
		ConversationID: input.ChatID,
	}
	answer, err := s.ports.Query.Query(ctx, input.WorkspaceID, input.Query, opts)
	if err != nil {
		return nil, QueryOutput{}, err
	}

	output := QueryOutput{
		Answer:      answer.Answer,
		ChatID:      answer.ConversationID,
		Intent:      string(answer.Intent),
		Synthesised: answer.Synthesised,
		Snippets:    make([]SnippetOutput, len(answer.Snippets)),
	}
	for i, c := range answer.Snippets {
		output.Snippets[i] = SnippetOutput{
			ChunkID:            c.ChunkID,
			ResumeID:           c.Metadata.CandidateID,
			Candidate:          c.Metadata.CandidateName,
			Text:               c.Text,
			Score:              c.FusedScore,
			SemanticSimilarity: c.SemanticSimilarity,
			LexicalScore:       c.LexicalScore,
		}
	}
	if answer.Workflow != nil {
		wf := toWorkflowOutput(answer.Workflow)
		output.Workflow = &wf
	}
	if answer.Availability != nil {
		av := toAvailabilityOutput(answer.Availability)
		output.Availability = &av
	}

	return nil, output, nil
}

func (s *Server) handleCheckIntent(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input IntentInput,
) (*mcp.CallToolResult, IntentOutput, error) {
	if s.ports.Intent == nil {
		return nil, IntentOutput{}, fmt.Errorf("check_intent: %w", errNotConfigured)
	}

	intent := s.ports.Intent.Classify(input.Message)
	output := IntentOutput{
		HasSchedulingIntent: intent.Kind() == domain.IntentSchedule,
		Intent:              string(intent.Kind()),
	}
	switch in := intent.(type) {
	case domain.ScheduleIntent:
		output.Keyword = in.Keyword
	case domain.AvailabilityIntent:
		output.Keyword = in.Keyword
	}

	return nil, output, nil
}

func (s *Server) handleAvailableSlots(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SlotsInput,
) (*mcp.CallToolResult, AvailabilityOutput, error) {
	if s.ports.Scheduling == nil {
		return nil, AvailabilityOutput{}, fmt.Errorf("available_slots: %w", errNotConfigured)
	}

	day, err := domain.ParseDay(input.Date)
	if err != nil {
		return nil, AvailabilityOutput{}, err
	}

	var av *domain.Availability
	if day.IsZero() {
		av, err = s.ports.Scheduling.NextAvailable(ctx, s.now())
	} else {
		av, err = s.ports.Scheduling.AvailableSlots(ctx, day)
	}
	if err != nil {
		return nil, AvailabilityOutput{}, err
	}

	return nil, toAvailabilityOutput(av), nil
}

func (s *Server) handleSchedule(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ScheduleInput,
) (*mcp.CallToolResult, WorkflowOutput, error) {
	if s.ports.Scheduling == nil {
		return nil, WorkflowOutput{}, fmt.Errorf("schedule_interview: %w", errNotConfigured)
	}

	day, err := domain.ParseDay(input.Date)
	if err != nil {
		return nil, WorkflowOutput{}, err
	}

	req := driving.ScheduleRequest{
		WorkspaceID: input.WorkspaceID,
		CandidateID: input.ResumeID,
		Job:         domain.JobInfo{Title: input.JobTitle, Company: input.Company},
		Date:        day,
	}
	if input.Candidate != "" || input.Email != "" {
		req.Candidate = &domain.CandidateContact{
			ID:    input.ResumeID,
			Name:  input.Candidate,
			Email: input.Email,
		}
	}

	result, err := s.ports.Scheduling.Schedule(ctx, req)
	if err != nil {
		return nil, WorkflowOutput{}, err
	}

	return nil, toWorkflowOutput(result), nil
}

func (s *Server) handleManualEmail(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ManualEmailInput,
) (*mcp.CallToolResult, domain.EmailData, error) {
	if s.ports.Scheduling == nil {
		return nil, domain.EmailData{}, fmt.Errorf("get_manual_email: %w", errNotConfigured)
	}

	candidate := domain.CandidateContact{Name: input.Candidate, Email: input.Email}
	job := domain.JobInfo{Title: input.JobTitle, Company: input.Company}
	booking := domain.BookingResult{
		StartTime:    input.StartTime,
		MeetingLink:  input.MeetingLink,
		CalendarLink: input.CalendarLink,
	}

	email, err := s.ports.Scheduling.ManualEmail(ctx, candidate, job, booking)
	if err != nil {
		return nil, domain.EmailData{}, err
	}
	return nil, *email, nil
}

func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input StatsInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	if s.ports.Ingest == nil {
		return nil, StatsOutput{}, fmt.Errorf("resume_stats: %w", errNotConfigured)
	}

	stats, err := s.ports.Ingest.Stats(ctx, input.WorkspaceID, input.ResumeID)
	if err != nil {
		return nil, StatsOutput{}, err
	}

	output := StatsOutput{
		WorkspaceID:    stats.WorkspaceID,
		ResumeID:       stats.CandidateID,
		ChunksCount:    stats.ChunksCount,
		SampleSnippets: stats.SampleSnippets,
	}
	if output.SampleSnippets == nil {
		output.SampleSnippets = []string{}
	}
	return nil, output, nil
}

func toAvailabilityOutput(av *domain.Availability) AvailabilityOutput {
	out := AvailabilityOutput{
		Date:  av.Date,
		Slots: make([]SlotOutput, len(av.Slots)),
	}
	for i, slot := range av.Slots {
		out.Slots[i] = SlotOutput{
			Start:     slot.Start.Format(time.RFC3339),
			End:       slot.End.Format(time.RFC3339),
			StartTime: slot.StartLabel,
			EndTime:   slot.EndLabel,
			Date:      slot.Date,
		}
	}
	return out
}

func toWorkflowOutput(r *domain.WorkflowResult) WorkflowOutput {
	out := WorkflowOutput{
		Success:           r.Success,
		Error:             r.Error,
		Stages:            r.Stages,
		Booking:           r.Booking,
		Email:             r.Email,
		EmailResult:       r.EmailResult,
		ManualEmailOption: r.ManualEmailOption,
	}
	if out.Stages == nil {
		out.Stages = []domain.StageRecord{}
	}
	return out
}
