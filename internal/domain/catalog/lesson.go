package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Lesson struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	ModuleID     uuid.UUID `gorm:"type:uuid;column:module_id;not null;uniqueIndex:idx_lesson_module_number,priority:1" json:"moduleId"`
	LessonNumber int       `gorm:"column:lesson_number;not null;uniqueIndex:idx_lesson_module_number,priority:2" json:"lessonNumber"`
	Title        string    `gorm:"column:title;size:255;not null" json:"title"`
	Description  string    `gorm:"column:description;type:text;not null" json:"description"`
	Duration     string    `gorm:"column:duration;size:64;not null" json:"duration"`
	Content      *string   `gorm:"column:content;type:text" json:"content"`
	DriveURL     *string   `gorm:"column:drive_url;size:1024" json:"driveUrl"`
	ZoomURL      *string   `gorm:"column:zoom_url;size:1024" json:"zoomUrl"`
	CreatedAt    time.Time `gorm:"column:created_at;not null" json:"createdAt"`
}

func (Lesson) TableName() string { return "lesson" }

func (l *Lesson) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
