package models

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Level       string    `gorm:"size:50" json:"level"`
	Description string    `gorm:"type:text" json:"description"`

	Materials []Material `gorm:"foreignkey:CourseID" json:"materials,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
