package usecase

import (
	"context"
	"time"

	"bugdash_backend/internal/feature/auth/domain/entity"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention, interfaces are defined by the consumer
// (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. Returns ErrEmailAlreadyExists when the
	// email is taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user by email. Returns ErrUserNotFound if absent.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user by ID. Returns ErrUserNotFound if absent.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// SetResetToken stores the pending password-reset token and its
	// expiry, overwriting any prior pending token.
	SetResetToken(ctx context.Context, userID uint, token string, expiresAt time.Time) error

	// FindByValidResetToken retrieves the user whose pending reset token
	// equals the given value and has not expired. Returns ErrUserNotFound
	// otherwise.
	FindByValidResetToken(ctx context.Context, token string) (*entity.User, error)

	// ConsumeResetToken atomically replaces the password hash and clears
	// the reset token fields, but only while the token is still valid.
	// Returns ErrInvalidResetToken when nothing matched, which is how a
	// concurrent second consume loses the race.
	ConsumeResetToken(ctx context.Context, token, passwordHash string) error
}

// RefreshTokenRepository abstracts the persistence layer for refresh
// token records.
type RefreshTokenRepository interface {
	// Create persists a new refresh token record.
	Create(ctx context.Context, record *entity.RefreshToken) error

	// FindByToken retrieves a record by its exact token string.
	// Returns ErrRefreshTokenNotFound if absent.
	FindByToken(ctx context.Context, token string) (*entity.RefreshToken, error)

	// Delete removes a record. Returns ErrRefreshTokenNotFound when no
	// record matched.
	Delete(ctx context.Context, token string) error

	// DeleteExpiredByUser removes the user's expired records and returns
	// how many were deleted.
	DeleteExpiredByUser(ctx context.Context, userID uint) (int64, error)

	// CountByUser returns the number of live records for a user.
	CountByUser(ctx context.Context, userID uint) (int64, error)

	// DeleteOldestByUser removes the user's oldest live record.
	DeleteOldestByUser(ctx context.Context, userID uint) error
}

// TokenIssuer mints and verifies the JWT credentials handed to clients.
type TokenIssuer interface {
	// IssueAccessToken creates a short-lived access token.
	IssueAccessToken(userID uint) (string, error)

	// IssueRefreshToken creates a long-lived refresh token.
	IssueRefreshToken(userID uint) (string, error)

	// RefreshTokenUserID verifies a refresh token's signature, expiry and
	// type, returning the user id it was issued to.
	RefreshTokenUserID(token string) (uint, error)
}

// Mailer delivers transactional email. Implemented by platform/mail.
type Mailer interface {
	// SendPasswordReset mails the reset link for the given token.
	SendPasswordReset(to, resetToken string) error
}
