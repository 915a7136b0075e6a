package jobs

import (
	"time"

	"go.uber.org/zap"

	"tutormarket/database"
	"tutormarket/logger"
	"tutormarket/models"
)

// Unoccupied slots older than this are swept by the hourly prune job.
// Reserved slots are never touched, their appointments own them.
const slotRetention = 30 * 24 * time.Hour

func PruneStaleSchedules() {
	cutoff := time.Now().Add(-slotRetention)

	result := database.DB.
		Where("appointment_id IS NULL AND end_time < ?", cutoff).
		Delete(&models.Schedule{})
	if result.Error != nil {
		logger.Log.Error("failed to prune stale schedules", zap.Error(result.Error))
		return
	}

	if result.RowsAffected > 0 {
		logger.Log.Info("pruned stale schedules", zap.Int64("count", result.RowsAffected))
	}
}
