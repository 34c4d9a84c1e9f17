package user

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/edutax/edutax-backend/internal/domain"
	"github.com/edutax/edutax-backend/internal/platform/dbctx"
	"github.com/edutax/edutax-backend/internal/platform/logger"
)

type UserRepo interface {
	GetByID(dbc dbctx.Context, id string) (*types.User, error)
	Upsert(dbc dbctx.Context, row *types.User) (*types.User, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

// GetByID returns nil, nil when no row exists.
func (r *userRepo) GetByID(dbc dbctx.Context, id string) (*types.User, error) {
	if id == "" {
		return nil, nil
	}
	var rows []types.User
	if err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Upsert inserts row or overwrites its profile columns, then re-reads it so the
// caller sees the stored created_at.
func (r *userRepo) Upsert(dbc dbctx.Context, row *types.User) (*types.User, error) {
	if row == nil || row.ID == "" {
		return nil, nil
	}
	now := time.Now().UTC()
	row.UpdatedAt = now
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	err := dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"email",
				"first_name",
				"last_name",
				"profile_image_url",
				"updated_at",
			}),
		}).
		Create(row).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(dbc, row.ID)
}
