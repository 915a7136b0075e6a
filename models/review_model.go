package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID  uuid.UUID `gorm:"not null;uniqueIndex:idx_reviews_user_tutor" json:"user_id"`
	TutorID uuid.UUID `gorm:"not null;uniqueIndex:idx_reviews_user_tutor" json:"tutor_id"`

	Rating   float64 `gorm:"not null" json:"rating"`
	Text     string  `gorm:"type:text" json:"text"`
	Featured bool    `gorm:"default:false" json:"featured"`

	User  User  `gorm:"foreignkey:UserID" json:"user,omitempty"`
	Tutor Tutor `gorm:"foreignkey:TutorID" json:"tutor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
