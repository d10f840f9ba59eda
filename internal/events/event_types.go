package events

import (
	"time"

	"github.com/spec-kit/clothing-shop/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventUserDeactivated EventType = "user_deactivated"
	EventUserReactivated EventType = "user_reactivated"
	EventPasswordChanged EventType = "password_changed"
)

// Actor identifies who triggered an event. SubjectID is zero for
// unauthenticated flows such as registration.
type Actor struct {
	SubjectID int64           `json:"subject_id,omitempty"`
	Role      domain.RoleName `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Username string          `json:"username"`
	Role     domain.RoleName `json:"role"`
}

// AccountStateChangedPayload payload for deactivate/reactivate.
type AccountStateChangedPayload struct {
	Deactivated bool `json:"deactivated"`
}
