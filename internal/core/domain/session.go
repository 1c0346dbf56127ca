package domain

import "time"

// Role identifies who authored a conversation turn.
type Role string

// Conversation roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// SessionKey identifies a conversation within a workspace.
type SessionKey struct {
	WorkspaceID    string
	ConversationID string
}

// String returns the canonical "workspace/conversation" form of the key.
func (k SessionKey) String() string {
	return k.WorkspaceID + "/" + k.ConversationID
}

// Turn is one message in a conversation session.
type Turn struct {
	Role Role      `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// SessionPolicy bounds the growth of session memory.
type SessionPolicy struct {
	// TTL expires a session after this long without activity. Zero disables expiry.
	TTL time.Duration

	// MaxSessions caps the number of live sessions. Zero means unbounded.
	MaxSessions int

	// MaxTurns caps turns kept per session; the oldest are dropped. Zero means unbounded.
	MaxTurns int
}

// DefaultSessionPolicy returns the default session bounds.
func DefaultSessionPolicy() SessionPolicy {
	return SessionPolicy{
		TTL:         24 * time.Hour,
		MaxSessions: 1000,
		MaxTurns:    200,
	}
}
