package services

import (
	"gorm.io/gorm"

	"tutormarket/models"
)

// ApplyReview folds one new rating into the tutor's running average and bumps
// the review count. The first review replaces the neutral default outright.
//
// This is an O(1) incremental mean; it never re-reads historical reviews, so
// floating-point drift accumulates over many updates. Accepted for this
// domain's precision needs.
func ApplyReview(tx *gorm.DB, tutor *models.Tutor, rating float64) error {
	if tutor.ReviewCount == 0 {
		tutor.Rating = rating
		tutor.ReviewCount = 1
	} else {
		tutor.Rating = (tutor.Rating*float64(tutor.ReviewCount) + rating) / float64(tutor.ReviewCount+1)
		tutor.ReviewCount++
	}

	return tx.Model(&models.Tutor{}).
		Where("id = ?", tutor.ID).
		Updates(map[string]interface{}{
			"rating":       tutor.Rating,
			"review_count": tutor.ReviewCount,
		}).Error
}
