package services

import (
	"testing"
	"time"

	"tutormarket/models"
)

func newReviewFixture(t *testing.T) (*ReviewService, models.User, models.Tutor) {
	t.Helper()
	db, _, bookings := newTestServices(t)
	tutor := createTestTutor(t, db)
	user := createTestUser(t, db)

	finished := models.Appointment{
		UserID:    user.ID,
		TutorID:   tutor.ID,
		StartTime: testNow.Add(-2 * time.Hour),
		EndTime:   testNow.Add(-95 * time.Minute),
		Material:  "past session",
	}
	if err := bookings.db.Create(&finished).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	return NewReviewService(db, bookings), user, tutor
}

func TestCreateReviewUpdatesTutorRating(t *testing.T) {
	reviews, user, tutor := newReviewFixture(t)

	review, err := reviews.Create(CreateReviewInput{
		UserID:  user.ID,
		TutorID: tutor.ID,
		Rating:  5,
		Text:    "Patient and well prepared.",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if review.Rating != 5 {
		t.Fatalf("rating = %v, want 5", review.Rating)
	}

	var reloaded models.Tutor
	if err := reviews.db.First(&reloaded, "id = ?", tutor.ID).Error; err != nil {
		t.Fatalf("reload tutor: %v", err)
	}
	if reloaded.ReviewCount != 1 || reloaded.Rating != 5 {
		t.Fatalf("tutor rating = (%v, %d), want (5, 1)", reloaded.Rating, reloaded.ReviewCount)
	}
}

func TestCreateReviewRequiresFinishedAppointment(t *testing.T) {
	reviews, _, tutor := newReviewFixture(t)
	stranger := createTestUser(t, reviews.db)

	_, err := reviews.Create(CreateReviewInput{
		UserID:  stranger.ID,
		TutorID: tutor.ID,
		Rating:  4,
		Text:    "Never met this tutor.",
	})
	if !IsKind(err, KindNotAvailable) {
		t.Fatalf("err = %v, want NotAvailable", err)
	}
}

func TestCreateReviewOncePerTutor(t *testing.T) {
	reviews, user, tutor := newReviewFixture(t)

	if _, err := reviews.Create(CreateReviewInput{
		UserID: user.ID, TutorID: tutor.ID, Rating: 4, Text: "Good.",
	}); err != nil {
		t.Fatalf("first review: %v", err)
	}

	_, err := reviews.Create(CreateReviewInput{
		UserID: user.ID, TutorID: tutor.ID, Rating: 2, Text: "Changed my mind.",
	})
	if !IsKind(err, KindAlreadyExists) {
		t.Fatalf("err = %v, want AlreadyExists", err)
	}
}

func TestCreateReviewClampsRating(t *testing.T) {
	reviews, user, tutor := newReviewFixture(t)

	review, err := reviews.Create(CreateReviewInput{
		UserID:  user.ID,
		TutorID: tutor.ID,
		Rating:  7.5,
		Text:    "Off the scale.",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if review.Rating != 5 {
		t.Fatalf("rating = %v, want clamped to 5", review.Rating)
	}
}

func TestSetFeaturedAndRemove(t *testing.T) {
	reviews, user, tutor := newReviewFixture(t)

	review, err := reviews.Create(CreateReviewInput{
		UserID: user.ID, TutorID: tutor.ID, Rating: 5, Text: "Excellent.",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	featured, err := reviews.SetFeatured(review.ID, true)
	if err != nil {
		t.Fatalf("SetFeatured: %v", err)
	}
	if !featured.Featured {
		t.Fatalf("review should be featured")
	}

	listed, err := reviews.ListFeatured()
	if err != nil {
		t.Fatalf("ListFeatured: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != review.ID {
		t.Fatalf("featured list = %+v", listed)
	}

	if err := reviews.Remove(review.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := reviews.Remove(review.ID); !IsKind(err, KindNotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}
