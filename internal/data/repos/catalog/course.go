package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/edutax/edutax-backend/internal/domain"
	"github.com/edutax/edutax-backend/internal/platform/dbctx"
	"github.com/edutax/edutax-backend/internal/platform/logger"
)

type CourseRepo interface {
	Create(dbc dbctx.Context, courses []*types.Course) ([]*types.Course, error)
	List(dbc dbctx.Context) ([]*types.Course, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Course, error)
	GetBySlug(dbc dbctx.Context, slug string) (*types.Course, error)
	Exists(dbc dbctx.Context, id uuid.UUID) (bool, error)
	Count(dbc dbctx.Context) (int64, error)
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return &courseRepo{db: db, log: baseLog.With("repo", "CourseRepo")}
}

func (r *courseRepo) Create(dbc dbctx.Context, courses []*types.Course) ([]*types.Course, error) {
	if len(courses) == 0 {
		return []*types.Course{}, nil
	}
	if err := dbc.DB(r.db).Omit("Modules").Create(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) List(dbc dbctx.Context) ([]*types.Course, error) {
	results := []*types.Course{}
	if err := dbc.DB(r.db).
		Order("created_at ASC").
		Order("slug ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Course, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return r.first(dbc.DB(r.db).Where("id = ?", id))
}

func (r *courseRepo) GetBySlug(dbc dbctx.Context, slug string) (*types.Course, error) {
	if slug == "" {
		return nil, nil
	}
	return r.first(dbc.DB(r.db).Where("slug = ?", slug))
}

// first returns nil, nil when the query matches nothing.
func (r *courseRepo) first(q *gorm.DB) (*types.Course, error) {
	var rows []*types.Course
	if err := q.Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *courseRepo) Exists(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, nil
	}
	var n int64
	if err := dbc.DB(r.db).Model(&types.Course{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *courseRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	err := dbc.DB(r.db).Model(&types.Course{}).Count(&n).Error
	return n, err
}
