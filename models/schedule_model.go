package models

import (
	"time"

	"github.com/google/uuid"
)

// Schedule is a single bookable slot owned by one tutor. At most one
// appointment may occupy it, tracked through AppointmentID. The
// reserved/closed view flags are never persisted; they are computed at the
// response boundary from the persisted times and "now".
type Schedule struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TutorID   uuid.UUID `gorm:"not null;uniqueIndex:idx_schedules_tutor_start" json:"tutor_id"`
	StartTime time.Time `gorm:"not null;uniqueIndex:idx_schedules_tutor_start" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	AppointmentID *uuid.UUID `gorm:"unique" json:"appointment_id"`

	Tutor       Tutor        `gorm:"foreignkey:TutorID" json:"-"`
	Appointment *Appointment `gorm:"foreignkey:AppointmentID" json:"appointment,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
