package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTutorRating is the neutral midpoint a tutor starts from before
// any review has been recorded.
const DefaultTutorRating = 2.5

type Tutor struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username     string    `gorm:"size:255;not null;unique" json:"username"`
	FullName     string    `gorm:"size:255;not null" json:"full_name"`
	Email        string    `gorm:"size:255;not null;unique" json:"email"`
	Password     string    `gorm:"not null" json:"-"`
	Headline     *string   `gorm:"size:255" json:"headline"`
	Presentation *string   `gorm:"type:text" json:"presentation"`
	Language     string    `gorm:"size:50;default:'en'" json:"language"`
	Country      string    `gorm:"size:50" json:"country"`
	Accepted     bool      `gorm:"default:false" json:"accepted"`

	// Rating and ReviewCount are mutated only by the rating aggregator.
	Rating      float64 `gorm:"type:numeric(4,2);default:2.5" json:"rating"`
	ReviewCount int     `gorm:"default:0" json:"review_count"`

	Schedules    []Schedule    `gorm:"foreignkey:TutorID" json:"schedules,omitempty"`
	Appointments []Appointment `gorm:"foreignkey:TutorID" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
