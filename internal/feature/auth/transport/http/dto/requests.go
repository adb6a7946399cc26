// Package dto defines data transfer objects for the auth feature's HTTP
// transport layer. Gin binding tags carry the boundary validation.
package dto

// RegisterReq is the request body for /api/auth/register.
type RegisterReq struct {
	Name     string `json:"name" binding:"max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginReq is the request body for /api/auth/login.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshReq is the request body for /api/auth/refresh-token.
type RefreshReq struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutReq is the request body for /api/auth/logout.
type LogoutReq struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RequestResetReq is the request body for /api/auth/request-password-reset.
type RequestResetReq struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetWithTokenReq is the request body for /api/auth/reset-password-with-token.
type ResetWithTokenReq struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=128"`
}
