package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	config "tutormarket/configs"
	"tutormarket/logger"
	"tutormarket/models"
)

// testNow is the frozen clock every service test starts from.
var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func testPolicy() TimePolicy {
	return NewTimePolicy(config.SchedulingConfig{
		AppointmentDuration: 25 * time.Minute,
		MinBookLead:         30 * time.Minute,
		MinCancelLead:       30 * time.Minute,
		MaxOutstanding:      2,
	})
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if logger.Log == nil {
		logger.Init("test")
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// the in-memory database lives in a single connection
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Tutor{},
		&models.Schedule{},
		&models.Appointment{},
		&models.Feedback{},
		&models.Review{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		FullName: "Test Student",
		Email:    uuid.NewString() + "@example.com",
		Password: "hashed",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createTestTutor(t *testing.T, db *gorm.DB) models.Tutor {
	t.Helper()
	tutor := models.Tutor{
		Username: uuid.NewString(),
		FullName: "Test Tutor",
		Email:    uuid.NewString() + "@example.com",
		Password: "hashed",
		Accepted: true,
		Rating:   models.DefaultTutorRating,
	}
	if err := db.Create(&tutor).Error; err != nil {
		t.Fatalf("create tutor: %v", err)
	}
	return tutor
}

func newTestServices(t *testing.T) (*gorm.DB, *ScheduleService, *BookingService) {
	t.Helper()
	db := newTestDB(t)
	policy := testPolicy()

	schedules := NewScheduleService(db, policy)
	schedules.now = func() time.Time { return testNow }

	bookings := NewBookingService(db, policy, schedules)
	bookings.now = func() time.Time { return testNow }

	return db, schedules, bookings
}

func mustAddSlot(t *testing.T, schedules *ScheduleService, tutorID uuid.UUID, start time.Time) models.Schedule {
	t.Helper()
	slots, err := schedules.AddSlots(tutorID, []time.Time{start})
	if err != nil {
		t.Fatalf("add slot: %v", err)
	}
	for _, slot := range slots {
		if slot.StartTime.Equal(TruncateMinute(start)) {
			return slot
		}
	}
	t.Fatalf("slot at %v not found after AddSlots", start)
	return models.Schedule{}
}
