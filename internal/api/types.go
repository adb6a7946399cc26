// Package api defines the JSON types shared across HTTP handlers.
package api

// ErrorResponse is the uniform error body returned by every endpoint.
// Error carries optional detail and is omitted when empty.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MessageResponse is the body for operations that only acknowledge.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse is the public snapshot of a user. The password hash is
// never part of any response type.
type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResponse carries a freshly issued token pair after register/login.
type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

// RefreshResponse carries the new access token from a refresh exchange.
type RefreshResponse struct {
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user"`
}

// DeleteResponse acknowledges a single delete.
type DeleteResponse struct {
	OK bool `json:"ok"`
}

// DeleteAllResponse reports the outcome of a bulk delete.
type DeleteAllResponse struct {
	OK           bool  `json:"ok"`
	DeletedCount int64 `json:"deletedCount"`
}
