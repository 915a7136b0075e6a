package models

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"not null;index" json:"user_id"`
	TutorID   uuid.UUID `gorm:"not null;index" json:"tutor_id"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Material string     `gorm:"size:255" json:"material"`
	Request  string     `gorm:"type:text;default:''" json:"request"`
	CourseID *uuid.UUID `json:"course_id"`

	User     User      `gorm:"foreignkey:UserID" json:"user,omitempty"`
	Tutor    Tutor     `gorm:"foreignkey:TutorID" json:"tutor,omitempty"`
	Feedback *Feedback `gorm:"foreignkey:AppointmentID" json:"feedback,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
