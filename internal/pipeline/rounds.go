package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/placementlabs/cpms/internal/models"
	"gorm.io/gorm"
)

// CreateRoundInput carries the administrator-supplied round attributes.
type CreateRoundInput struct {
	RoundNumber int
	Name        string
	Date        time.Time
	Description string
}

// CreateRound creates the next stage of a drive's pipeline and seeds its
// candidate pool in the same transaction. Round 1 seeds from the drive's
// registrations; round N seeds from the SELECTED set of round N-1. A missing
// prior round seeds an empty pool without error, which permits sparse or
// out-of-order round creation by the administrator.
//
// The returned count is the number of PENDING results seeded. The round
// insert and the bulk seed commit atomically: a failure partway leaves no
// round and no results behind.
func CreateRound(gdb *gorm.DB, companyID string, in CreateRoundInput) (*models.SelectionRound, int, error) {
	if in.RoundNumber < 1 {
		return nil, 0, fmt.Errorf("pipeline: round number must be at least 1: %w", ErrInvalidArgument)
	}
	if in.Name == "" {
		return nil, 0, fmt.Errorf("pipeline: round name is required: %w", ErrInvalidArgument)
	}

	var company models.Company
	if err := gdb.Where("id = ?", companyID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrCompanyNotFound
		}
		return nil, 0, fmt.Errorf("pipeline: load company: %w", err)
	}

	round := models.SelectionRound{
		ID:          uuid.NewString(),
		CompanyID:   companyID,
		RoundNumber: in.RoundNumber,
		Name:        in.Name,
		Date:        in.Date,
		Description: in.Description,
	}

	seeded := 0
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var existing models.SelectionRound
		err := tx.Where("company_id = ? AND round_number = ?", companyID, in.RoundNumber).
			First(&existing).Error
		if err == nil {
			return ErrRoundNumberTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("pipeline: check round number: %w", err)
		}

		if err := tx.Create(&round).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrRoundNumberTaken
			}
			return fmt.Errorf("pipeline: create round: %w", err)
		}

		pool, err := seedPool(tx, companyID, in.RoundNumber)
		if err != nil {
			return err
		}
		if len(pool) == 0 {
			return nil
		}

		results := make([]models.RoundResult, len(pool))
		for i, studentID := range pool {
			results[i] = models.RoundResult{
				ID:        uuid.NewString(),
				RoundID:   round.ID,
				StudentID: studentID,
				Status:    models.ResultPending,
			}
		}
		if err := tx.Create(&results).Error; err != nil {
			return fmt.Errorf("pipeline: seed results: %w", err)
		}
		seeded = len(results)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return &round, seeded, nil
}

// seedPool computes the candidate pool for a round about to be created.
// The pipeline is a strict narrowing funnel: a candidate REJECTED or still
// PENDING in round K never reappears in round K+1.
func seedPool(tx *gorm.DB, companyID string, roundNumber int) ([]string, error) {
	if roundNumber == 1 {
		var ids []string
		if err := tx.Model(&models.DriveRegistration{}).
			Where("company_id = ?", companyID).
			Pluck("student_id", &ids).Error; err != nil {
			return nil, fmt.Errorf("pipeline: seed pool from registrations: %w", err)
		}
		return ids, nil
	}

	var prior models.SelectionRound
	err := tx.Where("company_id = ? AND round_number = ?", companyID, roundNumber-1).
		First(&prior).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pipeline: load prior round: %w", err)
	}

	var ids []string
	if err := tx.Model(&models.RoundResult{}).
		Where("round_id = ? AND status = ?", prior.ID, models.ResultSelected).
		Pluck("student_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("pipeline: seed pool from prior round: %w", err)
	}
	return ids, nil
}

// RoundCandidate is one candidate's state within a round view.
type RoundCandidate struct {
	ResultID  string    `json:"resultId"`
	StudentID string    `json:"studentId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Branch    string    `json:"branch"`
	Status    string    `json:"status"`
	Feedback  string    `json:"feedback,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RoundView is a round plus its full candidate result set, shaped for
// administrative review and student self-tracking.
type RoundView struct {
	ID          string           `json:"id"`
	RoundNumber int              `json:"roundNumber"`
	Name        string           `json:"name"`
	Date        time.Time        `json:"date"`
	Description string           `json:"description,omitempty"`
	Candidates  []RoundCandidate `json:"candidates"`
}

// RoundsForCompany returns a drive's rounds in ascending round order, each
// with its candidates.
func RoundsForCompany(gdb *gorm.DB, companyID string) ([]RoundView, error) {
	var company models.Company
	if err := gdb.Where("id = ?", companyID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("pipeline: load company: %w", err)
	}

	var rounds []models.SelectionRound
	if err := gdb.Where("company_id = ?", companyID).
		Preload("Results.Student.User").
		Order("round_number ASC").
		Find(&rounds).Error; err != nil {
		return nil, fmt.Errorf("pipeline: list rounds: %w", err)
	}

	views := make([]RoundView, len(rounds))
	for i, r := range rounds {
		view := RoundView{
			ID:          r.ID,
			RoundNumber: r.RoundNumber,
			Name:        r.Name,
			Date:        r.Date,
			Description: r.Description,
			Candidates:  make([]RoundCandidate, len(r.Results)),
		}
		for j, res := range r.Results {
			view.Candidates[j] = RoundCandidate{
				ResultID:  res.ID,
				StudentID: res.StudentID,
				Name:      res.Student.FirstName + " " + res.Student.LastName,
				Email:     res.Student.User.Email,
				Branch:    res.Student.Branch,
				Status:    res.Status,
				Feedback:  res.Feedback,
				UpdatedAt: res.UpdatedAt,
			}
		}
		views[i] = view
	}
	return views, nil
}
