// Package di wires implementations whose selection depends on runtime
// availability.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"bugdash_backend/internal/feature/auth/adapters"
	"bugdash_backend/internal/feature/auth/usecase"
	"bugdash_backend/internal/platform/tokenstore"
)

// NewRefreshTokenRepository creates a RefreshTokenRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the database.
func NewRefreshTokenRepository(rdb *redis.Client, db *gorm.DB) usecase.RefreshTokenRepository {
	if rdb != nil {
		return tokenstore.NewRefreshTokenRedis(rdb, "refresh")
	}
	return adapters.NewRefreshTokenGorm(db)
}
