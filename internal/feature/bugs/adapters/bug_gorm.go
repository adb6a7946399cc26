// Package adapters provides repository implementations for the bugs feature.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"bugdash_backend/internal/feature/bugs/domain/entity"
	"bugdash_backend/internal/feature/bugs/usecase"
)

// bugGorm is the GORM implementation of usecase.BugRepository.
type bugGorm struct {
	db *gorm.DB
}

// Compile-time check that bugGorm implements BugRepository.
var _ usecase.BugRepository = (*bugGorm)(nil)

// NewBugGorm creates a new bugGorm with the given connection.
func NewBugGorm(db *gorm.DB) *bugGorm {
	return &bugGorm{db: db}
}

// isDuplicateKey recognizes the storage layer's uniqueness violation,
// either as GORM's translated sentinel or as the raw Postgres SQLSTATE.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// groupColumn maps a GroupField to its column. Only known fields pass,
// so no caller-provided string ever reaches the SQL text.
func groupColumn(field usecase.GroupField) (string, error) {
	switch field {
	case usecase.GroupByStatus:
		return "status", nil
	case usecase.GroupByPriority:
		return "priority", nil
	case usecase.GroupBySeverity:
		return "severity", nil
	case usecase.GroupByCategory:
		return "category", nil
	default:
		return "", fmt.Errorf("unknown group field %q", field)
	}
}

// Create persists a new bug record. The partial unique index on
// (device_id, scenario_id, created_by) is the backstop for the
// check-then-insert race; its violation maps to usecase.ErrDuplicateBug.
func (r *bugGorm) Create(ctx context.Context, bug *entity.BugRecord) error {
	if err := r.db.WithContext(ctx).Create(bug).Error; err != nil {
		if isDuplicateKey(err) {
			return usecase.ErrDuplicateBug
		}
		return err
	}
	return nil
}

// FindByID retrieves a record by ID.
func (r *bugGorm) FindByID(ctx context.Context, id uint) (*entity.BugRecord, error) {
	var bug entity.BugRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&bug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrBugNotFound
		}
		return nil, err
	}
	return &bug, nil
}

// ListByDevice returns the owner's records for a device, scenario id ascending.
func (r *bugGorm) ListByDevice(ctx context.Context, deviceID string, ownerID uint) ([]*entity.BugRecord, error) {
	var bugs []*entity.BugRecord
	err := r.db.WithContext(ctx).
		Where("device_id = ? AND created_by = ?", deviceID, ownerID).
		Order("scenario_id ASC").
		Find(&bugs).Error
	if err != nil {
		return nil, err
	}
	return bugs, nil
}

// ExistsScenario reports whether another record holds the same
// (device, scenario, owner) triple.
func (r *bugGorm) ExistsScenario(ctx context.Context, deviceID, scenarioID string, ownerID, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.BugRecord{}).
		Where("device_id = ? AND scenario_id = ? AND created_by = ?", deviceID, scenarioID, ownerID)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update persists the full record.
func (r *bugGorm) Update(ctx context.Context, bug *entity.BugRecord) error {
	if err := r.db.WithContext(ctx).Save(bug).Error; err != nil {
		if isDuplicateKey(err) {
			return usecase.ErrDuplicateBug
		}
		return err
	}
	return nil
}

// Delete removes a record by ID.
func (r *bugGorm) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.BugRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrBugNotFound
	}
	return nil
}

// DeleteByDevice removes the owner's records for a device.
func (r *bugGorm) DeleteByDevice(ctx context.Context, deviceID string, ownerID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("device_id = ? AND created_by = ?", deviceID, ownerID).
		Delete(&entity.BugRecord{})
	return result.RowsAffected, result.Error
}

// CountByDevice counts the owner's records for a device.
func (r *bugGorm) CountByDevice(ctx context.Context, deviceID string, ownerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.BugRecord{}).
		Where("device_id = ? AND created_by = ?", deviceID, ownerID).
		Count(&count).Error
	return count, err
}

// GroupCount aggregates occurrences per distinct field value within the
// device+owner scope. NULL and '' collapse into 'Unknown'; buckets come
// back count-descending.
func (r *bugGorm) GroupCount(ctx context.Context, deviceID string, ownerID uint, field usecase.GroupField) ([]usecase.FieldCount, error) {
	column, err := groupColumn(field)
	if err != nil {
		return nil, err
	}

	var rows []usecase.FieldCount
	err = r.db.WithContext(ctx).
		Model(&entity.BugRecord{}).
		Select(fmt.Sprintf("COALESCE(NULLIF(%s, ''), 'Unknown') AS value, COUNT(*) AS count", column)).
		Where("device_id = ? AND created_by = ?", deviceID, ownerID).
		Group("value").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
