// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"bugdash_backend/internal/api"
	"bugdash_backend/internal/feature/auth/domain/entity"
	"bugdash_backend/internal/feature/auth/transport/http/dto"
	"bugdash_backend/internal/feature/auth/usecase"
)

// AuthUsecase defines the auth operations the handler depends on.
// Following Go convention, the interface is defined by the consumer
// (handler), not the provider (usecase).
type AuthUsecase interface {
	Register(ctx context.Context, name, email, password string) (*usecase.Result, error)
	Login(ctx context.Context, email, password string) (*usecase.Result, error)
	Refresh(ctx context.Context, refreshToken string) (string, *entity.User, error)
	Logout(ctx context.Context, refreshToken string) error
}

// AuthHandler handles HTTP requests for registration, login and the
// refresh-token lifecycle.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func userResponse(user *entity.User) api.UserResponse {
	return api.UserResponse{ID: user.ID, Email: user.Email, Name: user.Name}
}

// Register handles POST /api/auth/register.
// 201 with a token pair on success, 409 when the email is taken.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Validation error", Error: err.Error()})
		return
	}

	result, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			c.JSON(http.StatusConflict, api.ErrorResponse{Message: "User already exists"})
		case errors.Is(err, usecase.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		default:
			slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Server error"})
		}
		return
	}

	slog.Info("user registered", "user_id", result.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.AuthResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User:         userResponse(result.User),
	})
}

// Login handles POST /api/auth/login.
// The failure message never distinguishes a wrong password from an
// unknown email.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Validation error", Error: err.Error()})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Invalid credentials"})
			return
		}
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Server error"})
		return
	}

	slog.Info("user login successful", "user_id", result.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.AuthResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User:         userResponse(result.User),
	})
}

// Refresh handles POST /api/auth/refresh-token, exchanging a live
// refresh token for a new access token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Validation error", Error: err.Error()})
		return
	}

	access, user, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidRefreshToken) {
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Invalid or expired refresh token"})
			return
		}
		slog.Error("refresh failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Server error"})
		return
	}

	c.JSON(http.StatusOK, api.RefreshResponse{
		AccessToken: access,
		User:        userResponse(user),
	})
}

// Logout handles POST /api/auth/logout. Logging out a token that is
// already gone still answers 200.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Validation error", Error: err.Error()})
		return
	}

	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		slog.Error("logout failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Server error"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Logged out successfully"})
}
