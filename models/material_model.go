package models

import (
	"time"

	"github.com/google/uuid"
)

type Material struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CourseID uuid.UUID `gorm:"not null;index" json:"course_id"`
	Title    string    `gorm:"size:255;not null" json:"title"`
	Content  string    `gorm:"type:text" json:"content"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
