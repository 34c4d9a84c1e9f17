package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Module is a numbered chapter of a course. ModuleNumber is unique per course and
// defines curriculum order.
type Module struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	CourseID     uuid.UUID `gorm:"type:uuid;column:course_id;not null;uniqueIndex:idx_module_course_number,priority:1" json:"courseId"`
	ModuleNumber int       `gorm:"column:module_number;not null;uniqueIndex:idx_module_course_number,priority:2" json:"moduleNumber"`
	Title        string    `gorm:"column:title;size:255;not null" json:"title"`
	Description  string    `gorm:"column:description;type:text;not null" json:"description"`
	CreatedAt    time.Time `gorm:"column:created_at;not null" json:"createdAt"`

	Lessons []Lesson `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Module) TableName() string { return "module" }

func (m *Module) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
