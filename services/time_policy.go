package services

import (
	"time"

	config "tutormarket/configs"
	"tutormarket/models"
)

// TimePolicy answers the time-window questions of the booking engine. It is
// stateless and always takes "now" as an explicit argument so the rules stay
// unit-testable without touching the wall clock.
type TimePolicy struct {
	AppointmentDuration time.Duration
	MinBookLead         time.Duration
	MinCancelLead       time.Duration
	MaxOutstanding      int
}

func NewTimePolicy(cfg config.SchedulingConfig) TimePolicy {
	return TimePolicy{
		AppointmentDuration: cfg.AppointmentDuration,
		MinBookLead:         cfg.MinBookLead,
		MinCancelLead:       cfg.MinCancelLead,
		MaxOutstanding:      cfg.MaxOutstanding,
	}
}

// TruncateMinute zeroes seconds and sub-seconds. All schedule and
// appointment start times are stored truncated, so lookups by instant are
// exact matches rather than range scans.
func TruncateMinute(t time.Time) time.Time {
	return t.UTC().Truncate(time.Minute)
}

func (p TimePolicy) CanBook(start, now time.Time) bool {
	return start.Sub(now) >= p.MinBookLead
}

func (p TimePolicy) CanCancel(start, now time.Time) bool {
	return start.Sub(now) >= p.MinCancelLead
}

func (p TimePolicy) IsFinished(end, now time.Time) bool {
	return !now.Before(end)
}

// SlotEnd derives a slot's end from its start: minute truncation plus the
// configured appointment duration.
func (p TimePolicy) SlotEnd(start time.Time) time.Time {
	return TruncateMinute(start).Add(p.AppointmentDuration)
}

// Closed reports whether a slot's start is already inside the booking lead
// window, independent of occupancy.
func (p TimePolicy) Closed(start, now time.Time) bool {
	return !p.CanBook(start, now)
}

// Cancelable and Finished compute the appointment view flags at the read
// boundary instead of mutating loaded rows.
func (p TimePolicy) Cancelable(a *models.Appointment, now time.Time) bool {
	return p.CanCancel(a.StartTime, now)
}

func (p TimePolicy) Finished(a *models.Appointment, now time.Time) bool {
	return p.IsFinished(a.EndTime, now)
}
