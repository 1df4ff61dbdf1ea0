package migrations

import (
	"context"
	"fmt"

	"github.com/mwantia/switchcraft/pkg/db/models"
	"gorm.io/gorm"
)

// Migration is one versioned schema change
type Migration struct {
	Version     int
	Description string
	Up          func(*gorm.DB) error
	Down        func(*gorm.DB) error
}

// MigrationStatus reports whether a migration has been applied
type MigrationStatus struct {
	Version     int
	Description string
	Applied     bool
}

type schemaVersion struct {
	ID          uint   `gorm:"primaryKey"`
	Version     int    `gorm:"uniqueIndex;not null"`
	Description string `gorm:"type:text"`
	AppliedAt   int64  `gorm:"autoCreateTime"`
}

func (schemaVersion) TableName() string {
	return "schema_versions"
}

// Migrator applies and rolls back the catalog schema
type Migrator struct {
	db         *gorm.DB
	migrations []Migration
}

func NewMigrator(db *gorm.DB) *Migrator {
	return &Migrator{
		db:         db,
		migrations: allMigrations(),
	}
}

// Migrate applies every migration that has not been recorded yet
func (m *Migrator) Migrate(ctx context.Context) error {
	if err := m.db.WithContext(ctx).AutoMigrate(&schemaVersion{}); err != nil {
		return fmt.Errorf("failed to create schema version table: %w", err)
	}

	applied, err := m.applied(ctx)
	if err != nil {
		return err
	}

	for _, migration := range m.migrations {
		if applied[migration.Version] {
			continue
		}

		if err := m.apply(ctx, migration); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Description, err)
		}
	}

	return nil
}

// Rollback reverts the most recently applied migration
func (m *Migrator) Rollback(ctx context.Context) error {
	var last schemaVersion
	if err := m.db.WithContext(ctx).Order("version DESC").First(&last).Error; err != nil {
		return fmt.Errorf("no migrations to rollback: %w", err)
	}

	for _, migration := range m.migrations {
		if migration.Version != last.Version {
			continue
		}

		return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := migration.Down(tx); err != nil {
				return fmt.Errorf("rollback of migration %d failed: %w", migration.Version, err)
			}
			return tx.Delete(&last).Error
		})
	}

	return fmt.Errorf("migration %d not found", last.Version)
}

// Status lists all known migrations in order
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]MigrationStatus, 0, len(m.migrations))
	for _, migration := range m.migrations {
		statuses = append(statuses, MigrationStatus{
			Version:     migration.Version,
			Description: migration.Description,
			Applied:     applied[migration.Version],
		})
	}

	return statuses, nil
}

func (m *Migrator) applied(ctx context.Context) (map[int]bool, error) {
	var versions []schemaVersion
	if err := m.db.WithContext(ctx).Find(&versions).Error; err != nil {
		return nil, fmt.Errorf("failed to query schema versions: %w", err)
	}

	applied := make(map[int]bool, len(versions))
	for _, v := range versions {
		applied[v.Version] = true
	}
	return applied, nil
}

func (m *Migrator) apply(ctx context.Context, migration Migration) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := migration.Up(tx); err != nil {
			return err
		}

		return tx.Create(&schemaVersion{
			Version:     migration.Version,
			Description: migration.Description,
		}).Error
	})
}

func allMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create key-value entries table",
			Up: func(db *gorm.DB) error {
				return db.AutoMigrate(&models.Entry{})
			},
			Down: func(db *gorm.DB) error {
				return db.Migrator().DropTable(&models.Entry{})
			},
		},
	}
}
