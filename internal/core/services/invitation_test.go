package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

func TestRenderInvitation(t *testing.T) {
	candidate := domain.CandidateContact{Name: "Asha Rao", Email: "asha@example.com"}
	job := domain.JobInfo{Title: "Backend Engineer", Company: "Acme"}
	start := time.Date(2025, 3, 11, 14, 30, 0, 0, time.UTC)

	email := RenderInvitation(candidate, job, start, "https://calendar.example.com/evt")

	assert.Equal(t, "asha@example.com", email.To)
	assert.Equal(t, "Interview Invitation - Backend Engineer at Acme", email.Subject)
	assert.Equal(t, "Asha Rao", email.CandidateName)
	assert.Equal(t, "Tuesday, March 11, 2025", email.InterviewDate)
	assert.Equal(t, "02:30 PM", email.InterviewTime)
	assert.Contains(t, email.Body, "Dear Asha Rao,")
	assert.Contains(t, email.Body, "• Date: Tuesday, March 11, 2025")
	assert.Contains(t, email.Body, "• Time: 02:30 PM")
	assert.Contains(t, email.Body, "Calendar Event: https://calendar.example.com/evt")
	assert.Contains(t, email.Body, "Best regards,\nHR Team")
}

func TestRenderInvitation_Defaults(t *testing.T) {
	email := RenderInvitation(domain.CandidateContact{}, domain.JobInfo{}, time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC), "")

	assert.Equal(t, "Interview Invitation - Software Developer at Our Company", email.Subject)
	assert.Contains(t, email.Body, "Dear Candidate,")
	assert.NotContains(t, email.Body, "Calendar Event")
}

func TestEventDescription(t *testing.T) {
	desc := eventDescription(domain.CandidateContact{Name: "Lee"}, domain.JobInfo{Title: "SRE", Company: "Acme"})

	assert.Contains(t, desc, "• Candidate: Lee")
	assert.Contains(t, desc, "• Position: SRE")
	assert.Contains(t, desc, "• Email: N/A")
}
