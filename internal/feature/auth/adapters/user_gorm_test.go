package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"bugdash_backend/internal/feature/auth/domain/entity"
	"bugdash_backend/internal/feature/auth/usecase"
)

// setupTestDB opens an isolated in-memory SQLite database.
// TranslateError makes GORM report duplicate keys the same way the
// postgres driver does, so the mapping under test matches production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.User{}, &entity.RefreshToken{}))
	return db
}

func TestUserGorm_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserGorm(db)
	ctx := context.Background()

	u := &entity.User{Name: "Alice", Email: "alice@example.com", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)

	t.Run("duplicate email", func(t *testing.T) {
		dup := &entity.User{Name: "Other Alice", Email: "alice@example.com", Password: "hashed2"}
		err := repo.Create(ctx, dup)
		assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)
	})
}

func TestUserGorm_FindByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserGorm(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.User{Name: "Bob", Email: "bob@example.com", Password: "hashed"}))

	found, err := repo.FindByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Bob", found.Name)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}

func TestUserGorm_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserGorm(db)
	ctx := context.Background()

	u := &entity.User{Name: "Carol", Email: "carol@example.com", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, u))

	found, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", found.Email)

	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}

func TestUserGorm_SetResetToken(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserGorm(db)
	ctx := context.Background()

	u := &entity.User{Name: "Dave", Email: "dave@example.com", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, u))

	expiry := time.Now().Add(time.Hour)
	require.NoError(t, repo.SetResetToken(ctx, u.ID, "token-1", expiry))

	found, err := repo.FindByValidResetToken(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	// A second request overwrites the pending token.
	require.NoError(t, repo.SetResetToken(ctx, u.ID, "token-2", expiry))
	_, err = repo.FindByValidResetToken(ctx, "token-1")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)

	t.Run("unknown user", func(t *testing.T) {
		err := repo.SetResetToken(ctx, 9999, "token-x", expiry)
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserGorm_FindByValidResetToken_Expired(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserGorm(db)
	ctx := context.Background()

	u := &entity.User{Name: "Eve", Email: "eve@example.com", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, u))
	require.NoError(t, repo.SetResetToken(ctx, u.ID, "stale-token", time.Now().Add(-time.Minute)))

	_, err := repo.FindByValidResetToken(ctx, "stale-token")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}

func TestUserGorm_ConsumeResetToken(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserGorm(db)
	ctx := context.Background()

	u := &entity.User{Name: "Frank", Email: "frank@example.com", Password: "old-hash"}
	require.NoError(t, repo.Create(ctx, u))
	require.NoError(t, repo.SetResetToken(ctx, u.ID, "one-shot", time.Now().Add(time.Hour)))

	require.NoError(t, repo.ConsumeResetToken(ctx, "one-shot", "new-hash"))

	updated, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", updated.Password)
	assert.Nil(t, updated.ResetToken)
	assert.Nil(t, updated.ResetTokenExpiresAt)

	t.Run("token is single use", func(t *testing.T) {
		err := repo.ConsumeResetToken(ctx, "one-shot", "another-hash")
		assert.ErrorIs(t, err, usecase.ErrInvalidResetToken)
	})

	t.Run("expired token", func(t *testing.T) {
		require.NoError(t, repo.SetResetToken(ctx, u.ID, "expired", time.Now().Add(-time.Minute)))
		err := repo.ConsumeResetToken(ctx, "expired", "x")
		assert.ErrorIs(t, err, usecase.ErrInvalidResetToken)
	})
}
