package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"bugdash_backend/internal/api"
	"bugdash_backend/internal/feature/auth/transport/http/dto"
	"bugdash_backend/internal/feature/auth/usecase"
)

// genericResetMessage is returned whether or not the email is known, so
// the endpoint cannot be used to enumerate accounts. The two cases must
// stay byte-identical.
const genericResetMessage = "If an account with that email exists, a password reset link has been sent."

// ResetUsecase defines the password-reset operations the handler depends on.
type ResetUsecase interface {
	RequestReset(ctx context.Context, email string) error
	VerifyResetToken(ctx context.Context, resetToken string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}

// PasswordResetHandler handles the reset-by-email endpoints.
type PasswordResetHandler struct {
	reset ResetUsecase
}

// NewPasswordResetHandler creates a new PasswordResetHandler.
func NewPasswordResetHandler(reset ResetUsecase) *PasswordResetHandler {
	return &PasswordResetHandler{reset: reset}
}

// RequestReset handles POST /api/auth/request-password-reset.
func (h *PasswordResetHandler) RequestReset(c *gin.Context) {
	var req dto.RequestResetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Validation error", Error: err.Error()})
		return
	}

	if err := h.reset.RequestReset(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, usecase.ErrMailDelivery) {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Failed to send reset email. Please try again later."})
			return
		}
		slog.Error("request password reset failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Server error"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: genericResetMessage})
}

// VerifyResetToken handles GET /api/auth/verify-reset-token/:token,
// letting the frontend validate a link before showing the form.
func (h *PasswordResetHandler) VerifyResetToken(c *gin.Context) {
	if err := h.reset.VerifyResetToken(c.Request.Context(), c.Param("token")); err != nil {
		if errors.Is(err, usecase.ErrInvalidResetToken) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid or expired reset token"})
			return
		}
		slog.Error("verify reset token failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Server error"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Token is valid"})
}

// ResetPassword handles POST /api/auth/reset-password-with-token.
// A consumed or expired token answers 400.
func (h *PasswordResetHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetWithTokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Validation error", Error: err.Error()})
		return
	}

	if err := h.reset.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidResetToken):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid or expired reset token"})
		case errors.Is(err, usecase.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		default:
			slog.Error("reset password failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Password updated successfully"})
}
