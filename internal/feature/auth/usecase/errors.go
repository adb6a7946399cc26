// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to register an email that already exists.
	ErrEmailAlreadyExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrPasswordTooShort is returned when a password fails the minimum length requirement.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")

	// ErrInvalidRefreshToken is returned when a refresh token fails verification
	// or has no live stored record.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")

	// ErrRefreshTokenNotFound is returned when no stored record matches a refresh token.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")

	// ErrInvalidResetToken is returned when a password-reset token is unknown,
	// expired, or already consumed.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")

	// ErrMailDelivery is returned when the reset email could not be sent.
	ErrMailDelivery = errors.New("failed to send reset email")
)
