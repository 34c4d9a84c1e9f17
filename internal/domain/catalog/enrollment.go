package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edutax/edutax-backend/internal/domain/user"
)

// Enrollment links a user to a course. The composite unique index makes
// (user_id, course_id) an insert-if-absent key.
type Enrollment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	UserID    string    `gorm:"column:user_id;size:255;not null;uniqueIndex:idx_enrollment_user_course,priority:1" json:"userId"`
	CourseID  uuid.UUID `gorm:"type:uuid;column:course_id;not null;uniqueIndex:idx_enrollment_user_course,priority:2;index" json:"courseId"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"createdAt"`

	User   *user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Course *Course    `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Enrollment) TableName() string { return "enrollment" }

func (e *Enrollment) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
