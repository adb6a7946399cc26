package entity

import "time"

// RefreshToken is one active long-lived credential belonging to a user.
// The signed token string itself is the key: lookups are by exact match,
// and the record must pass the expiry check before the token is honored.
type RefreshToken struct {
	Token     string `gorm:"primaryKey;size:512"`
	UserID    uint   `gorm:"index;not null"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index;not null"`
}

// IsExpired returns true if the record has passed its expiration time.
func (t *RefreshToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
