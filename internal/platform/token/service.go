// Package token issues and verifies the two JWT kinds used by the API.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token type discriminators embedded in the signed payload. The verifier
// checks this claim in addition to the signature, so a leaked refresh
// token can never be presented where an access token is expected.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// ErrInvalidToken is returned when a token fails the signature, expiry
// or type check.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the signed payload shared by both token kinds.
type Claims struct {
	// TokenType discriminates access from refresh tokens.
	TokenType string `json:"type"`

	// TokenID is a random 128-bit hex id stamped on refresh tokens so
	// that tokens minted for the same user in the same second remain
	// distinguishable. Empty on access tokens.
	TokenID string `json:"token_id,omitempty"`

	jwt.RegisteredClaims
}

// UserID returns the numeric subject of the claims.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

// Service mints and validates access and refresh tokens. The two kinds
// are signed with distinct secrets.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewService creates a token service with the provided secrets and
// lifetimes.
func NewService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccessToken creates a short-lived access token for the user.
func (s *Service) IssueAccessToken(userID uint) (string, error) {
	return s.sign(userID, TypeAccess, "", s.accessSecret, s.accessTTL)
}

// IssueRefreshToken creates a long-lived refresh token for the user.
func (s *Service) IssueRefreshToken(userID uint) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token id: %w", err)
	}
	return s.sign(userID, TypeRefresh, hex.EncodeToString(buf), s.refreshSecret, s.refreshTTL)
}

func (s *Service) sign(userID uint, kind, tokenID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		TokenType: kind,
		TokenID:   tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyAccessToken validates an access token and returns its claims.
func (s *Service) VerifyAccessToken(token string) (*Claims, error) {
	return s.verify(token, TypeAccess, s.accessSecret)
}

// VerifyRefreshToken validates a refresh token and returns its claims.
func (s *Service) VerifyRefreshToken(token string) (*Claims, error) {
	return s.verify(token, TypeRefresh, s.refreshSecret)
}

// RefreshTokenUserID verifies a refresh token and returns its subject.
func (s *Service) RefreshTokenUserID(token string) (uint, error) {
	claims, err := s.VerifyRefreshToken(token)
	if err != nil {
		return 0, err
	}
	return claims.UserID()
}

func (s *Service) verify(tokenStr, kind string, secret []byte) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid || claims.TokenType != kind {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// ExtractBearer parses an Authorization header value of the form
// "Bearer <token>". It returns "" when the header is absent or
// malformed; the caller decides whether that warrants a 401.
func ExtractBearer(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}
