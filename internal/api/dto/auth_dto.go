package dto

import "time"

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token pair and the user summary.
type LoginResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	TokenType    string       `json:"tokenType"`
	ExpiresIn    int64        `json:"expiresIn"`
	User         UserResponse `json:"user"`
	Message      string       `json:"message"`
}

// LogoutResponse confirms a completed logout.
type LogoutResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username"`
	Success   bool      `json:"success"`
}

// PrincipalResponse describes the caller resolved from the bearer token.
type PrincipalResponse struct {
	Username    string   `json:"username"`
	UserID      int64    `json:"userId"`
	Authorities []string `json:"authorities"`
}

// AuthEventResponse is one entry of the authentication audit trail.
type AuthEventResponse struct {
	ID         string    `json:"id"`
	EventType  string    `json:"eventType"`
	Username   string    `json:"username,omitempty"`
	Email      string    `json:"email,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
