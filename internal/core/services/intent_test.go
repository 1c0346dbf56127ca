package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

func TestIntentClassifier_Classify(t *testing.T) {
	classifier := NewIntentClassifier()

	tests := []struct {
		message string
		want    domain.Intent
	}{
		{"Please schedule interview with her", domain.ScheduleIntent{Keyword: "interview"}},
		{"Set up a PHONE INTERVIEW tomorrow", domain.ScheduleIntent{Keyword: "interview"}},
		{"Can we meet candidate next week?", domain.ScheduleIntent{Keyword: "meet candidate"}},
		{"Is the interviewer free for an interview?", domain.ScheduleIntent{Keyword: "interview"}},
		{"What slots are available?", domain.AvailabilityIntent{Keyword: "available"}},
		{"show my availability", domain.AvailabilityIntent{Keyword: "availability"}},
		{"Does she know Kubernetes?", domain.GeneralQuery{}},
		{"does she have freelance experience?", domain.GeneralQuery{}},
		{"Any interviews lined up?", domain.ScheduleIntent{Keyword: "interview"}},
		{"free slots on monday?", domain.AvailabilityIntent{Keyword: "free"}},
		{"Is she available?", domain.AvailabilityIntent{Keyword: "available"}},
		{"unavailable until june", domain.GeneralQuery{}},
		{"", domain.GeneralQuery{}},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got := classifier.Classify(tt.message)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Kind(), got.Kind())
		})
	}
}

func TestIntentClassifier_HasSchedulingIntent(t *testing.T) {
	classifier := NewIntentClassifier()

	assert.True(t, classifier.HasSchedulingIntent("book interview for Asha"))
	assert.False(t, classifier.HasSchedulingIntent("any free slots on Monday?"))
	assert.False(t, classifier.HasSchedulingIntent("summarise her experience"))
}
