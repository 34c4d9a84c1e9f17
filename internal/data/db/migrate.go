package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/edutax/edutax-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.User{},
		&types.Course{},
		&types.Module{},
		&types.Lesson{},
		&types.Enrollment{},
	)
}

// EnsureCatalogIndexes adds the lookup indexes struct tags cannot express. The
// statements are valid on both Postgres and SQLite.
func EnsureCatalogIndexes(db *gorm.DB) error {
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_enrollment_user_created_at ON enrollment(user_id, created_at);`).Error; err != nil {
		return fmt.Errorf("create idx_enrollment_user_created_at: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_course_created_at ON course(created_at);`).Error; err != nil {
		return fmt.Errorf("create idx_course_created_at: %w", err)
	}
	return nil
}

func Migrate(db *gorm.DB) error {
	if err := AutoMigrateAll(db); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	if err := EnsureCatalogIndexes(db); err != nil {
		return fmt.Errorf("catalog indexes: %w", err)
	}
	return nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	if err := Migrate(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}
