// Package db opens the GORM database handle and owns the schema.
package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "bugdash_backend/internal/feature/auth/domain/entity"
	bugentity "bugdash_backend/internal/feature/bugs/domain/entity"
	"bugdash_backend/internal/platform/config"
)

// OpenDB connects to Postgres, retrying for up to a minute, and runs
// migrations when configured to.
func OpenDB(cfg *config.Config) *gorm.DB {
	dsn := cfg.DSN()

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		// TranslateError lets duplicate-key violations surface as
		// gorm.ErrDuplicatedKey regardless of driver.
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}

// Migrate creates the schema plus the partial unique index guarding the
// (device_id, scenario_id, created_by) triple. The index is the final
// arbiter for the duplicate-scenario race; the usecase pre-check only
// exists to produce the friendlier error first. Records with an empty
// scenario id stay outside the constraint.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&authentity.User{},
		&authentity.RefreshToken{},
		&bugentity.BugRecord{},
	); err != nil {
		return err
	}

	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_bugs_device_scenario_owner
		ON bugs (device_id, scenario_id, created_by) WHERE scenario_id <> ''`).Error
}
