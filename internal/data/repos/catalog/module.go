package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/edutax/edutax-backend/internal/domain"
	"github.com/edutax/edutax-backend/internal/platform/dbctx"
	"github.com/edutax/edutax-backend/internal/platform/logger"
)

type ModuleRepo interface {
	Create(dbc dbctx.Context, modules []*types.Module) ([]*types.Module, error)
	ListByCourseIDs(dbc dbctx.Context, courseIDs []uuid.UUID) ([]*types.Module, error)
}

type moduleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewModuleRepo(db *gorm.DB, baseLog *logger.Logger) ModuleRepo {
	return &moduleRepo{db: db, log: baseLog.With("repo", "ModuleRepo")}
}

func (r *moduleRepo) Create(dbc dbctx.Context, modules []*types.Module) ([]*types.Module, error) {
	if len(modules) == 0 {
		return []*types.Module{}, nil
	}
	if err := dbc.DB(r.db).Omit("Lessons").Create(&modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

// ListByCourseIDs orders by course then module_number.
func (r *moduleRepo) ListByCourseIDs(dbc dbctx.Context, courseIDs []uuid.UUID) ([]*types.Module, error) {
	results := []*types.Module{}
	if len(courseIDs) == 0 {
		return results, nil
	}
	if err := dbc.DB(r.db).
		Where("course_id IN ?", courseIDs).
		Order("course_id ASC").
		Order("module_number ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
