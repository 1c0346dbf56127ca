package domain

// IntentKind is the tag of an Intent.
type IntentKind string

// Intent kinds.
const (
	IntentSchedule     IntentKind = "schedule"
	IntentAvailability IntentKind = "availability"
	IntentGeneral      IntentKind = "general"
)

// Intent is what a recruiter message asks for.
// The set of implementations is closed: ScheduleIntent, AvailabilityIntent, GeneralQuery.
type Intent interface {
	Kind() IntentKind
	intent()
}

// ScheduleIntent asks the assistant to book an interview.
type ScheduleIntent struct {
	// Keyword is the phrase that triggered the classification.
	Keyword string
}

// AvailabilityIntent asks which interview slots are free.
type AvailabilityIntent struct {
	Keyword string
}

// GeneralQuery is a question answered from résumé passages.
type GeneralQuery struct{}

// Kind returns IntentSchedule.
func (ScheduleIntent) Kind() IntentKind { return IntentSchedule }

// Kind returns IntentAvailability.
func (AvailabilityIntent) Kind() IntentKind { return IntentAvailability }

// Kind returns IntentGeneral.
func (GeneralQuery) Kind() IntentKind { return IntentGeneral }

func (ScheduleIntent) intent()     {}
func (AvailabilityIntent) intent() {}
func (GeneralQuery) intent()       {}
