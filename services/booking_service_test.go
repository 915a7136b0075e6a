package services

import (
	"testing"
	"time"

	"tutormarket/models"
)

func TestMakeAppointmentHappyPath(t *testing.T) {
	db, schedules, bookings := newTestServices(t)
	tutor := createTestTutor(t, db)
	user := createTestUser(t, db)

	start := testNow.Add(2 * time.Hour)
	slot := mustAddSlot(t, schedules, tutor.ID, start)

	appointment, err := bookings.MakeAppointment(MakeAppointmentInput{
		UserID:    user.ID,
		TutorID:   tutor.ID,
		StartTime: start,
		Material:  "travel phrases",
		Request:   "please speak slowly",
	})
	if err != nil {
		t.Fatalf("MakeAppointment: %v", err)
	}

	if !appointment.StartTime.Equal(TruncateMinute(start)) {
		t.Fatalf("start = %v, want truncated %v", appointment.StartTime, TruncateMinute(start))
	}
	if !appointment.EndTime.Equal(TruncateMinute(start).Add(25 * time.Minute)) {
		t.Fatalf("end = %v, want start+25m", appointment.EndTime)
	}

	var occupied models.Schedule
	if err := db.First(&occupied, "id = ?", slot.ID).Error; err != nil {
		t.Fatalf("reload slot: %v", err)
	}
	if occupied.AppointmentID == nil || *occupied.AppointmentID != appointment.ID {
		t.Fatalf("slot not linked to appointment: %+v", occupied.AppointmentID)
	}
}

func TestMakeAppointmentRejectsDoubleBooking(t *testing.T) {
	db, schedules, bookings := newTestServices(t)
	tutor := createTestTutor(t, db)
	first := createTestUser(t, db)
	second := createTestUser(t, db)

	start := testNow.Add(2 * time.Hour)
	mustAddSlot(t, schedules, tutor.ID, start)

	if _, err := bookings.MakeAppointment(MakeAppointmentInput{
		UserID: first.ID, TutorID: tutor.ID, StartTime: start, Material: "reading",
	}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := bookings.MakeAppointment(MakeAppointmentInput{
		UserID: second.ID, TutorID: tutor.ID, StartTime: start, Material: "reading",
	})
	if !IsKind(err, KindNotAvailable) {
		t.Fatalf("err = %v, want NotAvailable", err)
	}

	var count int64
	if err := db.Model(&models.Appointment{}).Where("tutor_id = ?", tutor.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("appointment count = %d, want 1", count)
	}
}

func TestMakeAppointmentTruncationTargetsSameSlot(t *testing.T) {
	db, schedules, bookings := newTestServices(t)
	tutor := createTestTutor(t, db)
	first := createTestUser(t, db)
	second := createTestUser(t, db)

	start := testNow.Add(2 * time.Hour)
	mustAddSlot(t, schedules, tutor.ID, start)

	// 10:00:00.000 and 10:00:00.999 address the same slot
	if _, err := bookings.MakeAppointment(MakeAppointmentInput{
		UserID: first.ID, TutorID: tutor.ID, StartTime: start, Material: "writing",
	}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := bookings.MakeAppointment(MakeAppointmentInput{
		UserID:    second.ID,
		TutorID:   tutor.ID,
		StartTime: start.Add(999 * time.Millisecond),
		Material:  "writing",
	})
	if !IsKind(err, KindNotAvailable) {
		t.Fatalf("err = %v, want NotAvailable", err)
	}
}

func TestMakeAppointmentTooEarlyBoundary(t *testing.T) {
	db, schedules, bookings := newTestServices(t)
	tutor := createTestTutor(t, db)
	user := createTestUser(t, db)

	boundary := testNow.Add(bookings.policy.MinBookLead)
	mustAddSlot(t, schedules, tutor.ID, boundary)

	_, err := bookings.MakeAppointment(MakeAppointmentInput{
		UserID:    user.ID,
		TutorID:   tutor.ID,
		StartTime: boundary.Add(-time.Millisecond),
		Material:  "speaking",
	})
	if !IsKind(err, KindTooEarly) {
		t.Fatalf("err = %v, want TooEarly", err)
	}

	if _, err := bookings.MakeAppointment(MakeAppointmentInput{
		UserID:    user.ID,
		TutorID:   tutor.ID,
		StartTime: boundary,
		Material:  "speaking",
	}); err != nil {
		t.Fatalf("booking exactly at the boundary: %v", err)
	}
}

func TestMakeAppointmentOutstandingCap(t *testing.T) {
	db, schedules, bookings := newTestServices(t)
	tutor := createTestTutor(t, db)
	user := createTestUser(t, db)

	starts := []time.Time{
		testNow.Add(2 * time.Hour),
		testNow.Add(3 * time.Hour),
		testNow.Add(4 * time.Hour),
	}
	if _, err := schedules.AddSlots(tutor.ID, starts); err != nil {
		t.Fatalf("AddSlots: %v", err)
	}

	for _, start := range starts[:2] {
		if _, err := bookings.MakeAppointment(MakeAppointmentInput{
			UserID: user.ID, TutorID: tutor.ID, StartTime: start, Material: "vocab",
		}); err != nil {
			t.Fatalf("booking at %v: %v", start, err)
		}
	}

	_, err := bookings.MakeAppointment(MakeAppointmentInput{
		UserID: user.ID, TutorID: tutor.ID, StartTime: starts[2], Material: "vocab",
	})
	if !IsKind(err, KindLimitExceeded) {
		t.Fatalf("err = %v, want LimitExceeded", err)
	}
}

func TestMakeAppointmentUnknownSlot(t *testing.T) {
	db, _, bookings := newTestServices(t)
	tutor := createTestTutor(t, db)
	user := createTestUser(t, db)

	_, err := bookings.MakeAppointment(MakeAppointmentInput{
		UserID:    user.ID,
		TutorID:   tutor.ID,
		StartTime: testNow.Add(2 * time.Hour),
		Material:  "listening",
	})
	if !IsKind(err, KindNotAvailable) {
		t.Fatalf("err = %v, want NotAvailable", err)
	}
}

func TestRemoveAppointmentReleasesSlotForRebooking(t *testing.T) {
	db, schedules, bookings := newTestServices(t)
	tutor := createTestTutor(t, db)
	user := createTestUser(t, db)
	rebooker := createTestUser(t, db)

	start := testNow.Add(2 * time.Hour)
	slot := mustAddSlot(t, schedules, tutor.ID, start)

	appointment, err := bookings.MakeAppointment(MakeAppointmentInput{
		UserID: user.ID, TutorID: tutor.ID, StartTime: start, Material: "idioms",
	})
	if err != nil {
		t.Fatalf("MakeAppointment: %v", err)
	}

	removed, err := bookings.RemoveAppointment(appointment.ID, "student")
	if err != nil {
		t.Fatalf("RemoveAppointment: %v", err)
	}
	if removed.ID != appointment.ID {
		t.Fatalf("removed id = %v, want %v", removed.ID, appointment.ID)
	}

	var released models.Schedule
	if err := db.First(&released, "id = ?", slot.ID).Error; err != nil {
		t.Fatalf("reload slot: %v", err)
	}
	if released.AppointmentID != nil {
		t.Fatalf("slot still occupied after cancellation")
	}

	if _, err := bookings.MakeAppointment(MakeAppointmentInput{
		UserID: rebooker.ID, TutorID: tutor.ID, StartTime: start, Material: "idioms",
	}); err != nil {
		t.Fatalf("rebooking released slot: %v", err)
	}
}

func TestRemoveAppointmentTooLateUnlessAdmin(t *testing.T) {
	db, schedules, bookings := newTestServices(t)
	tutor := createTestTutor(t, db)
	user := createTestUser(t, db)

	start := testNow.Add(2 * time.Hour)
	mustAddSlot(t, schedules, tutor.ID, start)

	appointment, err := bookings.MakeAppointment(MakeAppointmentInput{
		UserID: user.ID, TutorID: tutor.ID, StartTime: start, Material: "exam prep",
	})
	if err != nil {
		t.Fatalf("MakeAppointment: %v", err)
	}

	// move the clock inside the cancellation window
	late := start.Add(-bookings.policy.MinCancelLead).Add(time.Millisecond)
	bookings.now = func() time.Time { return late }

	_, err = bookings.RemoveAppointment(appointment.ID, "student")
	if !IsKind(err, KindTooLate) {
		t.Fatalf("err = %v, want TooLate", err)
	}

	if _, err := bookings.RemoveAppointment(appointment.ID, "admin"); err != nil {
		t.Fatalf("admin cancellation should bypass the window: %v", err)
	}
}

func TestCountOutstandingIgnoresFinished(t *testing.T) {
	db, _, bookings := newTestServices(t)
	tutor := createTestTutor(t, db)
	user := createTestUser(t, db)

	past := models.Appointment{
		UserID:    user.ID,
		TutorID:   tutor.ID,
		StartTime: testNow.Add(-2 * time.Hour),
		EndTime:   testNow.Add(-95 * time.Minute),
		Material:  "done",
	}
	upcoming := models.Appointment{
		UserID:    user.ID,
		TutorID:   tutor.ID,
		StartTime: testNow.Add(2 * time.Hour),
		EndTime:   testNow.Add(2*time.Hour + 25*time.Minute),
		Material:  "soon",
	}
	if err := db.Create(&past).Error; err != nil {
		t.Fatalf("seed past: %v", err)
	}
	if err := db.Create(&upcoming).Error; err != nil {
		t.Fatalf("seed upcoming: %v", err)
	}

	count, err := bookings.CountOutstanding(db, user.ID, testNow)
	if err != nil {
		t.Fatalf("CountOutstanding: %v", err)
	}
	if count != 1 {
		t.Fatalf("outstanding = %d, want 1", count)
	}
}

func TestHasFinishedAppointmentWithTutor(t *testing.T) {
	db, _, bookings := newTestServices(t)
	tutor := createTestTutor(t, db)
	user := createTestUser(t, db)

	ok, err := bookings.HasFinishedAppointmentWithTutor(db, user.ID, tutor.ID)
	if err != nil {
		t.Fatalf("HasFinishedAppointmentWithTutor: %v", err)
	}
	if ok {
		t.Fatalf("no appointment yet, expected false")
	}

	finished := models.Appointment{
		UserID:    user.ID,
		TutorID:   tutor.ID,
		StartTime: testNow.Add(-2 * time.Hour),
		EndTime:   testNow.Add(-95 * time.Minute),
		Material:  "past session",
	}
	if err := db.Create(&finished).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	ok, err = bookings.HasFinishedAppointmentWithTutor(db, user.ID, tutor.ID)
	if err != nil {
		t.Fatalf("HasFinishedAppointmentWithTutor: %v", err)
	}
	if !ok {
		t.Fatalf("expected true after a finished appointment")
	}
}
