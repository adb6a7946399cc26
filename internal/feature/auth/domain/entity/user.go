// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Name is an optional display name.
	Name string `gorm:"size:100"`

	// Email is the login identifier, stored lowercase and trimmed.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash. Plaintext is never stored.
	Password string `gorm:"size:255;not null"`

	// ResetToken and ResetTokenExpiresAt describe the single pending
	// password-reset token. A new reset request overwrites the previous
	// one; consuming the token clears both fields.
	ResetToken          *string `gorm:"index;size:64"`
	ResetTokenExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
