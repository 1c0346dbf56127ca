package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driving"
)

// Ensure IntentClassifier implements the interface.
var _ driving.IntentService = (*IntentClassifier)(nil)

// scheduleKeywords trigger interview booking.
var scheduleKeywords = []string{
	"interview",
	"schedule interview",
	"call for interview",
	"interview call",
	"book interview",
	"arrange interview",
	"set up interview",
	"meet candidate",
	"interview candidate",
	"call candidate",
	"invite for interview",
	"interview scheduling",
	"interview appointment",
	"interview meeting",
	"technical interview",
	"hr interview",
	"final interview",
	"phone interview",
	"video interview",
	"onsite interview",
	"interview process",
}

// availabilityKeywords ask for free slots without booking.
var availabilityKeywords = []string{"available", "free", "slots", "availability"}

// IntentClassifier maps recruiter messages to intents by case-insensitive
// whole-word keyword matches; a trailing plural "s" still matches.
// Scheduling wins over availability.
type IntentClassifier struct{}

// NewIntentClassifier creates a classifier.
func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{}
}

// Classify returns the intent of message.
func (c *IntentClassifier) Classify(message string) domain.Intent {
	lower := strings.ToLower(message)
	if kw, ok := firstContained(lower, scheduleKeywords); ok {
		return domain.ScheduleIntent{Keyword: kw}
	}
	if kw, ok := firstContained(lower, availabilityKeywords); ok {
		return domain.AvailabilityIntent{Keyword: kw}
	}
	return domain.GeneralQuery{}
}

// HasSchedulingIntent reports whether message asks to book an interview.
func (c *IntentClassifier) HasSchedulingIntent(message string) bool {
	_, ok := c.Classify(message).(domain.ScheduleIntent)
	return ok
}

func firstContained(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if containsWord(text, kw) {
			return kw, true
		}
	}
	return "", false
}

// containsWord reports whether kw occurs in text between word boundaries.
func containsWord(text, kw string) bool {
	for from := 0; from < len(text); {
		i := strings.Index(text[from:], kw)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(kw)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		from = start + 1
	}
	return false
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i == len(text) {
		return true
	}
	r, size := utf8.DecodeRuneInString(text[i:])
	if r == 's' {
		if i += size; i == len(text) {
			return true
		}
		r, _ = utf8.DecodeRuneInString(text[i:])
	}
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
