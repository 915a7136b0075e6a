package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is the tutor's note on a finished appointment. Created once,
// never updated or deleted.
type Feedback struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AppointmentID uuid.UUID `gorm:"not null;unique" json:"appointment_id"`
	Text          string    `gorm:"type:text;not null" json:"text"`

	CreatedAt time.Time `json:"created_at"`
}
