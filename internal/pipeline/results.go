package pipeline

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/placementlabs/cpms/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func validResultStatus(status string) bool {
	switch status {
	case models.ResultPending, models.ResultSelected, models.ResultRejected:
		return true
	}
	return false
}

// SetResult records an administrator's decision for one candidate in one
// round. The write is an unconditional upsert on the (round, student)
// natural key: re-issuing the same call is safe, terminal statuses stay
// mutable for administrative correction, and concurrent writers are
// last-writer-wins.
func SetResult(gdb *gorm.DB, roundID, studentID, status, feedback string) (*models.RoundResult, error) {
	if !validResultStatus(status) {
		return nil, fmt.Errorf("pipeline: status %q must be one of PENDING, SELECTED, REJECTED: %w",
			status, ErrInvalidArgument)
	}

	var round models.SelectionRound
	if err := gdb.Where("id = ?", roundID).First(&round).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("pipeline: load round: %w", err)
	}

	result := models.RoundResult{
		ID:        uuid.NewString(),
		RoundID:   roundID,
		StudentID: studentID,
		Status:    status,
		Feedback:  feedback,
	}
	if err := gdb.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "round_id"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "feedback", "updated_at"}),
	}).Create(&result).Error; err != nil {
		return nil, fmt.Errorf("pipeline: upsert result: %w", err)
	}

	// Re-read so the caller sees the persisted row (the original ID when the
	// upsert hit an existing row, not the candidate ID generated above).
	var persisted models.RoundResult
	if err := gdb.Where("round_id = ? AND student_id = ?", roundID, studentID).
		First(&persisted).Error; err != nil {
		return nil, fmt.Errorf("pipeline: reload result: %w", err)
	}
	return &persisted, nil
}
