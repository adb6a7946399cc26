package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"bugdash_backend/internal/feature/auth/domain/entity"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 128
)

// dummyPasswordHash is compared when the user does not exist, so login
// latency does not reveal whether an email is registered.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Result is what register/login hand back to the transport layer.
type Result struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// AuthUsecase implements registration, login and the refresh-token
// lifecycle.
type AuthUsecase struct {
	users           UserRepository
	tokens          RefreshTokenRepository
	issuer          TokenIssuer
	refreshTTL      time.Duration
	maxActiveTokens int64
}

// NewAuthUsecase creates a new AuthUsecase. maxActiveTokens caps the live
// refresh tokens per user; the oldest is evicted when a login exceeds it.
func NewAuthUsecase(users UserRepository, tokens RefreshTokenRepository, issuer TokenIssuer,
	refreshTTL time.Duration, maxActiveTokens int64) *AuthUsecase {
	return &AuthUsecase{
		users:           users,
		tokens:          tokens,
		issuer:          issuer,
		refreshTTL:      refreshTTL,
		maxActiveTokens: maxActiveTokens,
	}
}

// NormalizeEmail lowercases and trims an email so lookups and the unique
// constraint agree on one canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// Register creates a new account and logs it in, returning a token pair.
func (u *AuthUsecase) Register(ctx context.Context, name, email, password string) (*Result, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:     name,
		Email:    NormalizeEmail(email),
		Password: string(hashed),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return u.issueFor(ctx, user)
}

// Login authenticates a user and returns a token pair.
// A bcrypt comparison runs even when the user does not exist, to keep
// response timing uniform.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (*Result, error) {
	user, err := u.users.FindByEmail(ctx, NormalizeEmail(email))

	passwordHash := dummyPasswordHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueFor(ctx, user)
}

// issueFor mints a token pair, stores the refresh record, and performs
// the per-user housekeeping: expired records are pruned and the oldest
// live record is evicted once the cap is exceeded.
func (u *AuthUsecase) issueFor(ctx context.Context, user *entity.User) (*Result, error) {
	access, err := u.issuer.IssueAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refresh, err := u.issuer.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	now := time.Now()
	record := &entity.RefreshToken{
		Token:     refresh,
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(u.refreshTTL),
	}
	if err := u.tokens.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	// Housekeeping failures must not fail the login itself.
	if _, err := u.tokens.DeleteExpiredByUser(ctx, user.ID); err != nil {
		slog.Warn("failed to prune expired refresh tokens", "error", err, "user_id", user.ID)
	}
	if count, err := u.tokens.CountByUser(ctx, user.ID); err == nil && count > u.maxActiveTokens {
		if err := u.tokens.DeleteOldestByUser(ctx, user.ID); err != nil {
			slog.Warn("failed to evict oldest refresh token", "error", err, "user_id", user.ID)
		}
	}

	return &Result{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

// Refresh exchanges a live refresh token for a new access token.
// The JWT check alone is not enough: the stored record is the arbiter,
// so a token that was logged out or evicted is no longer honored even
// though its signature still verifies.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (string, *entity.User, error) {
	userID, err := u.issuer.RefreshTokenUserID(refreshToken)
	if err != nil {
		return "", nil, ErrInvalidRefreshToken
	}

	record, err := u.tokens.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrRefreshTokenNotFound) {
			return "", nil, ErrInvalidRefreshToken
		}
		return "", nil, err
	}
	if record.IsExpired() || record.UserID != userID {
		return "", nil, ErrInvalidRefreshToken
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, ErrInvalidRefreshToken
		}
		return "", nil, err
	}

	access, err := u.issuer.IssueAccessToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	return access, user, nil
}

// Logout removes the stored refresh token record. Deleting a token that
// is already gone is not an error; logout is idempotent.
func (u *AuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	if err := u.tokens.Delete(ctx, refreshToken); err != nil && !errors.Is(err, ErrRefreshTokenNotFound) {
		return err
	}
	return nil
}
