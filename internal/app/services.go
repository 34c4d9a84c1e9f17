package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/edutax/edutax-backend/internal/platform/keys"
	"github.com/edutax/edutax-backend/internal/platform/logger"
	"github.com/edutax/edutax-backend/internal/services"
)

type Services struct {
	Course     services.CourseService
	Enrollment services.EnrollmentService
	User       services.UserService
	Auth       services.AuthService
	Seed       services.SeedService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	catalog, err := loadSeedCatalog(cfg)
	if err != nil {
		return Services{}, err
	}
	stateKey, err := keys.Derive([]byte(cfg.SessionSecret), keys.PurposeOAuthState, 32)
	if err != nil {
		return Services{}, err
	}

	user := services.NewUserService(log, repos.User)
	return Services{
		Course:     services.NewCourseService(log, repos.Course, repos.Module, repos.Lesson),
		Enrollment: services.NewEnrollmentService(db, log, repos.Course, repos.Enrollment),
		User:       user,
		Auth:       services.NewAuthService(log, clients.OIDC, clients.KV, stateKey, user),
		Seed:       services.NewSeedService(db, log, catalog, repos.Course, repos.Module, repos.Lesson),
	}, nil
}

func loadSeedCatalog(cfg Config) (*services.SeedCatalog, error) {
	if cfg.SeedCatalogPath == "" {
		return services.DefaultSeedCatalog()
	}
	catalog, err := services.LoadSeedCatalog(cfg.SeedCatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load seed catalog %s: %w", cfg.SeedCatalogPath, err)
	}
	return catalog, nil
}
