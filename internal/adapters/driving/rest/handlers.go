package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driving"
)

type ingestRequest struct {
	WorkspaceID string             `json:"workspace_id"`
	Resumes     []domain.Candidate `json:"resumes"`
}

type queryRequest struct {
	WorkspaceID string `json:"workspace_id"`
	Message     string `json:"message"`
	ResumeID    string `json:"resume_id"`
	K           int    `json:"k"`
	ChatID      string `json:"chat_id"`
}

type workspaceRequest struct {
	WorkspaceID    string `json:"workspace_id"`
	ResumeID       string `json:"resume_id"`
	JobDescription string `json:"job_description"`
	ChatID         string `json:"chat_id"`
}

type intentRequest struct {
	Message string `json:"message"`
}

type slotsRequest struct {
	Date string `json:"date"`
}

type scheduleRequest struct {
	WorkspaceID string                   `json:"workspace_id"`
	ResumeID    string                   `json:"resume_id"`
	Candidate   *domain.CandidateContact `json:"candidate_info"`
	Job         domain.JobInfo           `json:"job_info"`
	Date        string                   `json:"date"`
}

type manualEmailRequest struct {
	Candidate domain.CandidateContact `json:"candidate_info"`
	Job       domain.JobInfo          `json:"job_info"`
	Booking   domain.BookingResult    `json:"booking_result"`
}

// bind decodes the JSON body into req, answering 400 on failure.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": s.now().UTC()})
}

func (s *Server) handleIngest(c *gin.Context) {
	if s.ports.Ingest == nil {
		respondError(c, errNotConfigured)
		return
	}
	var req ingestRequest
	if !bind(c, &req) {
		return
	}
	req.WorkspaceID = strings.TrimSpace(req.WorkspaceID)
	if req.WorkspaceID == "" || len(req.Resumes) == 0 {
		respondBadRequest(c, "workspace_id and resumes are required")
		return
	}

	n, err := s.ports.Ingest.Ingest(c.Request.Context(), req.WorkspaceID, req.Resumes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "workspace_id": req.WorkspaceID, "chunks_added": n})
}

func (s *Server) handleQuery(c *gin.Context) {
	var req queryRequest
	if !bind(c, &req) {
		return
	}

	opts := domain.QueryOptions{
		CandidateID:    strings.TrimSpace(req.ResumeID),
		K:              req.K,
		ConversationID: strings.TrimSpace(req.ChatID),
	}
	answer, err := s.ports.Query.Query(c.Request.Context(), strings.TrimSpace(req.WorkspaceID), strings.TrimSpace(req.Message), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	if answer.Snippets == nil {
		answer.Snippets = []domain.RetrievalCandidate{}
	}

	c.JSON(http.StatusOK, struct {
		Success bool `json:"success"`
		*domain.QueryAnswer
	}{true, answer})
}

func (s *Server) handleStats(c *gin.Context) {
	if s.ports.Ingest == nil {
		respondError(c, errNotConfigured)
		return
	}
	var req workspaceRequest
	if !bind(c, &req) {
		return
	}
	req.WorkspaceID = strings.TrimSpace(req.WorkspaceID)
	if req.WorkspaceID == "" {
		respondBadRequest(c, "workspace_id is required")
		return
	}

	stats, err := s.ports.Ingest.Stats(c.Request.Context(), req.WorkspaceID, strings.TrimSpace(req.ResumeID))
	if err != nil {
		respondError(c, err)
		return
	}
	if stats.SampleSnippets == nil {
		stats.SampleSnippets = []string{}
	}

	c.JSON(http.StatusOK, struct {
		Success bool `json:"success"`
		*domain.WorkspaceStats
	}{true, stats})
}

func (s *Server) handleStoreJD(c *gin.Context) {
	var req workspaceRequest
	if !bind(c, &req) {
		return
	}

	ws := strings.TrimSpace(req.WorkspaceID)
	if err := s.ports.Query.StoreJobDescription(c.Request.Context(), ws, strings.TrimSpace(req.JobDescription)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"workspace_id": ws,
		"message":      "Job description stored successfully",
	})
}

func (s *Server) handleSuggest(c *gin.Context) {
	var req workspaceRequest
	if !bind(c, &req) {
		return
	}

	ws, rid := strings.TrimSpace(req.WorkspaceID), strings.TrimSpace(req.ResumeID)
	questions, err := s.ports.Query.Suggest(c.Request.Context(), ws, rid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"workspace_id": ws,
		"resume_id":    rid,
		"questions":    questions,
	})
}

func (s *Server) handleClearHistory(c *gin.Context) {
	var req workspaceRequest
	if !bind(c, &req) {
		return
	}

	ws, chat := strings.TrimSpace(req.WorkspaceID), strings.TrimSpace(req.ChatID)
	if chat == "" {
		chat = domain.GlobalConversation
	}
	if err := s.ports.Query.ClearHistory(c.Request.Context(), ws, chat); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"workspace_id": ws,
		"chat_id":      chat,
	})
}

func (s *Server) handleCheckIntent(c *gin.Context) {
	if s.ports.Intent == nil {
		respondError(c, errNotConfigured)
		return
	}
	var req intentRequest
	if !bind(c, &req) {
		return
	}

	intent := s.ports.Intent.Classify(req.Message)
	keyword := ""
	switch in := intent.(type) {
	case domain.ScheduleIntent:
		keyword = in.Keyword
	case domain.AvailabilityIntent:
		keyword = in.Keyword
	}

	c.JSON(http.StatusOK, gin.H{
		"success":               true,
		"has_scheduling_intent": intent.Kind() == domain.IntentSchedule,
		"intent":                intent.Kind(),
		"keyword":               keyword,
	})
}

func (s *Server) handleAvailableSlots(c *gin.Context) {
	if s.ports.Scheduling == nil {
		respondError(c, errNotConfigured)
		return
	}
	var req slotsRequest
	if !bind(c, &req) {
		return
	}
	day, err := domain.ParseDay(strings.TrimSpace(req.Date))
	if err != nil {
		respondError(c, err)
		return
	}

	var av *domain.Availability
	if day.IsZero() {
		av, err = s.ports.Scheduling.NextAvailable(c.Request.Context(), s.now())
	} else {
		av, err = s.ports.Scheduling.AvailableSlots(c.Request.Context(), day)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	if av.Slots == nil {
		av.Slots = []domain.Slot{}
	}

	c.JSON(http.StatusOK, struct {
		Success bool `json:"success"`
		*domain.Availability
	}{true, av})
}

func (s *Server) handleSchedule(c *gin.Context) {
	if s.ports.Scheduling == nil {
		respondError(c, errNotConfigured)
		return
	}
	var req scheduleRequest
	if !bind(c, &req) {
		return
	}
	day, err := domain.ParseDay(strings.TrimSpace(req.Date))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := s.ports.Scheduling.Schedule(c.Request.Context(), driving.ScheduleRequest{
		WorkspaceID: strings.TrimSpace(req.WorkspaceID),
		CandidateID: strings.TrimSpace(req.ResumeID),
		Candidate:   req.Candidate,
		Job:         req.Job,
		Date:        day,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if result.Stages == nil {
		result.Stages = []domain.StageRecord{}
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleManualEmail(c *gin.Context) {
	if s.ports.Scheduling == nil {
		respondError(c, errNotConfigured)
		return
	}
	var req manualEmailRequest
	if !bind(c, &req) {
		return
	}
	if strings.TrimSpace(req.Candidate.Email) == "" {
		respondBadRequest(c, "candidate_info.email is required")
		return
	}

	email, err := s.ports.Scheduling.ManualEmail(c.Request.Context(), req.Candidate, req.Job, req.Booking)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "email_data": email})
}
