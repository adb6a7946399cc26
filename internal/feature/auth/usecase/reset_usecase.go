package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// resetTokenTTL bounds how long a pending reset token is honored.
const resetTokenTTL = time.Hour

// PasswordResetUsecase drives the per-user reset state machine:
// no pending token -> pending (token, expiry) -> no pending token.
type PasswordResetUsecase struct {
	users  UserRepository
	mailer Mailer
}

// NewPasswordResetUsecase creates a new PasswordResetUsecase.
func NewPasswordResetUsecase(users UserRepository, mailer Mailer) *PasswordResetUsecase {
	return &PasswordResetUsecase{users: users, mailer: mailer}
}

// RequestReset issues a pending reset token and mails it. An unknown
// email is not an error, so the endpoint cannot be used to enumerate
// accounts; only the logs tell the two cases apart.
func (u *PasswordResetUsecase) RequestReset(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			slog.Info("password reset requested for unknown email")
			return nil
		}
		return err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	resetToken := hex.EncodeToString(buf)

	if err := u.users.SetResetToken(ctx, user.ID, resetToken, time.Now().Add(resetTokenTTL)); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := u.mailer.SendPasswordReset(user.Email, resetToken); err != nil {
		slog.Error("failed to send password reset email", "error", err, "user_id", user.ID)
		return ErrMailDelivery
	}
	return nil
}

// VerifyResetToken reports whether a reset token is still exchangeable.
func (u *PasswordResetUsecase) VerifyResetToken(ctx context.Context, resetToken string) error {
	if _, err := u.users.FindByValidResetToken(ctx, resetToken); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	return nil
}

// ResetPassword exchanges a pending token for a new password. The token
// is single-use: the password swap and the token clear happen in one
// conditional update, so a second consume with the same token fails with
// ErrInvalidResetToken.
func (u *PasswordResetUsecase) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return u.users.ConsumeResetToken(ctx, resetToken, string(hashed))
}
