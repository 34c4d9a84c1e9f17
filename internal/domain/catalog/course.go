package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	Slug         string    `gorm:"column:slug;size:255;not null;uniqueIndex:idx_course_slug" json:"slug"`
	Title        string    `gorm:"column:title;size:255;not null" json:"title"`
	Description  string    `gorm:"column:description;type:text;not null" json:"description"`
	Level        string    `gorm:"column:level;size:64;not null" json:"level"`
	Duration     string    `gorm:"column:duration;size:64;not null" json:"duration"`
	Instructor   string    `gorm:"column:instructor;size:255;not null" json:"instructor"`
	ThumbnailURL *string   `gorm:"column:thumbnail_url;size:1024" json:"thumbnailUrl"`
	CreatedAt    time.Time `gorm:"column:created_at;not null" json:"createdAt"`

	Modules []Module `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Course) TableName() string { return "course" }

func (c *Course) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
