package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tutormarket/models"
)

// ScheduleService owns the bookable slots of every tutor. Methods that must
// share a transaction with the booking engine take the transaction handle
// explicitly, so the atomicity boundary is visible at the call site.
type ScheduleService struct {
	db     *gorm.DB
	policy TimePolicy
	now    func() time.Time
}

func NewScheduleService(db *gorm.DB, policy TimePolicy) *ScheduleService {
	return &ScheduleService{db: db, policy: policy, now: time.Now}
}

// ScheduleView is the listing shape consumed by the schedule endpoint:
// the persisted slot plus its derived flags, and the viewer's own occupying
// appointment when there is one.
type ScheduleView struct {
	ID          uuid.UUID           `json:"id"`
	StartTime   time.Time           `json:"start_time"`
	EndTime     time.Time           `json:"end_time"`
	Reserved    bool                `json:"reserved"`
	Closed      bool                `json:"closed"`
	Appointment *models.Appointment `json:"appointment,omitempty"`
}

// AddSlots inserts one slot per requested instant, truncated to the minute.
// Instants that collide with an existing slot of the same tutor are silently
// skipped, which makes the batch idempotent. Returns the tutor's refreshed
// upcoming slots.
func (s *ScheduleService) AddSlots(tutorID uuid.UUID, starts []time.Time) ([]models.Schedule, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var tutor models.Tutor
		if err := tx.First(&tutor, "id = ?", tutorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Tutor not found", "tutorId")
			}
			return err
		}

		for _, start := range starts {
			start = TruncateMinute(start)

			existing, err := s.FindByStart(tx, tutorID, start)
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}

			slot := models.Schedule{
				TutorID:   tutorID,
				StartTime: start,
				EndTime:   s.policy.SlotEnd(start),
			}
			if err := tx.Create(&slot).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.upcoming(tutorID)
}

// RemoveSlots deletes the slots matching the given instants. If any matched
// slot is occupied the whole batch is rejected and nothing is deleted.
func (s *ScheduleService) RemoveSlots(tutorID uuid.UUID, starts []time.Time) ([]models.Schedule, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var matched []models.Schedule
		for _, start := range starts {
			slot, err := s.FindByStart(tx, tutorID, TruncateMinute(start))
			if err != nil {
				return err
			}
			if slot == nil {
				continue
			}
			if slot.AppointmentID != nil {
				return Conflict("Reserved schedule cannot be deleted", "schedule")
			}
			matched = append(matched, *slot)
		}

		for _, slot := range matched {
			if err := tx.Delete(&models.Schedule{}, "id = ?", slot.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.upcoming(tutorID)
}

// FindByStart matches a slot by exact truncated-minute start time,
// regardless of occupancy. Callers pass whichever handle (plain or tx) the
// lookup should run on.
func (s *ScheduleService) FindByStart(tx *gorm.DB, tutorID uuid.UUID, start time.Time) (*models.Schedule, error) {
	var slot models.Schedule
	err := tx.Where("tutor_id = ? AND start_time = ?", tutorID, TruncateMinute(start)).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// FindUnoccupiedForUpdate locks and returns the unoccupied slot at the given
// instant. The row lock keeps two concurrent bookings from both observing
// the slot as free; it must run inside the booking transaction.
func (s *ScheduleService) FindUnoccupiedForUpdate(tx *gorm.DB, tutorID uuid.UUID, start time.Time) (*models.Schedule, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		// SQLite has no row locks; its single-writer transactions
		// serialize on their own.
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var slot models.Schedule
	err := q.
		Where("tutor_id = ? AND start_time = ? AND appointment_id IS NULL", tutorID, TruncateMinute(start)).
		First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// Occupy links the slot to its appointment. Must run inside the same
// transaction that inserts the appointment.
func (s *ScheduleService) Occupy(tx *gorm.DB, slot *models.Schedule, appointmentID uuid.UUID) error {
	slot.AppointmentID = &appointmentID
	return tx.Save(slot).Error
}

// Release clears the occupant. Must run inside the same transaction that
// deletes the appointment.
func (s *ScheduleService) Release(tx *gorm.DB, slot *models.Schedule) error {
	slot.AppointmentID = nil
	return tx.Save(slot).Error
}

// ListFromToday returns a tutor's slots starting today or later, annotated
// with the derived flags. When a slot is occupied by the viewer's own
// appointment, that appointment is included; other users' bookings stay
// hidden.
func (s *ScheduleService) ListFromToday(tutorID uuid.UUID, viewerUserID *uuid.UUID) ([]ScheduleView, error) {
	now := s.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var slots []models.Schedule
	if err := s.db.
		Where("tutor_id = ? AND start_time >= ?", tutorID, todayStart).
		Order("start_time asc").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	views := make([]ScheduleView, 0, len(slots))
	for _, slot := range slots {
		view := ScheduleView{
			ID:        slot.ID,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Reserved:  slot.AppointmentID != nil,
			Closed:    s.policy.Closed(slot.StartTime, now),
		}

		if slot.AppointmentID != nil && viewerUserID != nil {
			var appointment models.Appointment
			err := s.db.First(&appointment, "id = ? AND user_id = ?", *slot.AppointmentID, *viewerUserID).Error
			if err == nil {
				view.Appointment = &appointment
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}

		views = append(views, view)
	}
	return views, nil
}

func (s *ScheduleService) upcoming(tutorID uuid.UUID) ([]models.Schedule, error) {
	now := s.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var slots []models.Schedule
	err := s.db.
		Where("tutor_id = ? AND start_time >= ?", tutorID, todayStart).
		Order("start_time asc").
		Find(&slots).Error
	return slots, err
}
