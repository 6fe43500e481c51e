package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded EventType = "login_succeeded"
	EventLoginFailed    EventType = "login_failed"
	EventLogout         EventType = "logout"
	EventTokenRejected  EventType = "token_rejected"
)

// Event represents an authentication event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Username  string      `json:"username,omitempty"`
	Email     string      `json:"email,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// LoginFailedPayload records why a login attempt was refused.
type LoginFailedPayload struct {
	Reason string `json:"reason"`
}

// TokenRejectedPayload records why a presented token did not authenticate.
type TokenRejectedPayload struct {
	Reason string `json:"reason"`
}
