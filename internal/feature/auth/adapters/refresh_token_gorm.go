package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"bugdash_backend/internal/feature/auth/domain/entity"
	"bugdash_backend/internal/feature/auth/usecase"
)

// refreshTokenGorm is the GORM implementation of
// usecase.RefreshTokenRepository.
type refreshTokenGorm struct {
	db *gorm.DB
}

// Compile-time check that refreshTokenGorm implements RefreshTokenRepository.
var _ usecase.RefreshTokenRepository = (*refreshTokenGorm)(nil)

// NewRefreshTokenGorm creates a new refreshTokenGorm with the given connection.
func NewRefreshTokenGorm(db *gorm.DB) *refreshTokenGorm {
	return &refreshTokenGorm{db: db}
}

// Create persists a new refresh token record.
func (r *refreshTokenGorm) Create(ctx context.Context, record *entity.RefreshToken) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByToken retrieves a record by its exact token string.
func (r *refreshTokenGorm) FindByToken(ctx context.Context, token string) (*entity.RefreshToken, error) {
	var record entity.RefreshToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrRefreshTokenNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Delete removes a record by its token string.
func (r *refreshTokenGorm) Delete(ctx context.Context, token string) error {
	result := r.db.WithContext(ctx).Where("token = ?", token).Delete(&entity.RefreshToken{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrRefreshTokenNotFound
	}
	return nil
}

// DeleteExpiredByUser removes the user's expired records.
func (r *refreshTokenGorm) DeleteExpiredByUser(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND expires_at < ?", userID, time.Now()).
		Delete(&entity.RefreshToken{})
	return result.RowsAffected, result.Error
}

// CountByUser returns the number of live records for a user.
func (r *refreshTokenGorm) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.RefreshToken{}).
		Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Count(&count).Error
	return count, err
}

// DeleteOldestByUser removes the user's oldest live record.
func (r *refreshTokenGorm) DeleteOldestByUser(ctx context.Context, userID uint) error {
	var oldest entity.RefreshToken
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Order("created_at ASC").
		First(&oldest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // nothing to evict
		}
		return err
	}
	return r.db.WithContext(ctx).Where("token = ?", oldest.Token).Delete(&entity.RefreshToken{}).Error
}
