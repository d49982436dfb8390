// Package pipeline implements the selection pipeline: drive registration,
// round sequencing with candidate seeding, and the per-round result ledger.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/placementlabs/cpms/internal/eligibility"
	"github.com/placementlabs/cpms/internal/models"
	"gorm.io/gorm"
)

// Register enrolls a student into a drive after checking eligibility.
// Rejected attempts are never persisted. The (company, student) uniqueness
// is enforced twice: a pre-check for a clean error on the common path, and
// the storage-level unique index for concurrent registrations, where the
// losing writer also gets ErrAlreadyRegistered.
func Register(gdb *gorm.DB, studentID, companyID string) (*models.DriveRegistration, error) {
	var student models.Student
	if err := gdb.Where("id = ?", studentID).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("pipeline: load student: %w", err)
	}

	var company models.Company
	if err := gdb.Where("id = ?", companyID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("pipeline: load company: %w", err)
	}

	if company.Status != models.DriveActive {
		return nil, ErrDriveClosed
	}

	var existing models.DriveRegistration
	err := gdb.Where("company_id = ? AND student_id = ?", companyID, studentID).First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyRegistered
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("pipeline: check registration: %w", err)
	}

	verdict := eligibility.Evaluate(student, company)
	if !verdict.Eligible {
		return nil, &EligibilityError{Reasons: verdict.Reasons}
	}

	reg := models.DriveRegistration{
		ID:           uuid.NewString(),
		CompanyID:    companyID,
		StudentID:    studentID,
		IsEligible:   true,
		RegisteredAt: time.Now(),
	}
	if err := gdb.Create(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("pipeline: create registration: %w", err)
	}
	return &reg, nil
}

// RegisteredStudent is one row of the per-drive participant list.
type RegisteredStudent struct {
	RegistrationID   string    `json:"registrationId"`
	StudentID        string    `json:"studentId"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	EnrollmentNumber string    `json:"enrollmentNumber"`
	Branch           string    `json:"branch"`
	CGPA             float64   `json:"cgpa"`
	RegisteredAt     time.Time `json:"registeredAt"`
}

// RegisteredStudents lists every participant of a drive, newest first.
func RegisteredStudents(gdb *gorm.DB, companyID string) ([]RegisteredStudent, error) {
	var company models.Company
	if err := gdb.Where("id = ?", companyID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("pipeline: load company: %w", err)
	}

	var regs []models.DriveRegistration
	if err := gdb.Where("company_id = ?", companyID).
		Preload("Student").Preload("Student.User").
		Order("registered_at DESC").
		Find(&regs).Error; err != nil {
		return nil, fmt.Errorf("pipeline: list registrations: %w", err)
	}

	rows := make([]RegisteredStudent, len(regs))
	for i, r := range regs {
		rows[i] = RegisteredStudent{
			RegistrationID:   r.ID,
			StudentID:        r.StudentID,
			Name:             r.Student.FirstName + " " + r.Student.LastName,
			Email:            r.Student.User.Email,
			EnrollmentNumber: r.Student.EnrollmentNumber,
			Branch:           r.Student.Branch,
			CGPA:             r.Student.CGPA,
			RegisteredAt:     r.RegisteredAt,
		}
	}
	return rows, nil
}

// ApplicationRound is a student's status in one round of a drive they
// applied to. Status is empty when the student was never seeded into the
// round (eliminated earlier, or the round predates their registration).
type ApplicationRound struct {
	RoundNumber int    `json:"roundNumber"`
	Name        string `json:"name"`
	Status      string `json:"status,omitempty"`
}

// Application is one drive a student registered for, with their per-round
// progress for self-tracking.
type Application struct {
	RegistrationID string             `json:"registrationId"`
	CompanyID      string             `json:"companyId"`
	CompanyName    string             `json:"companyName"`
	JobRole        string             `json:"jobRole"`
	CTC            float64            `json:"ctc"`
	DriveStatus    string             `json:"driveStatus"`
	RegisteredAt   time.Time          `json:"registeredAt"`
	Rounds         []ApplicationRound `json:"rounds"`
}

// Applications returns a student's drive registrations, newest first, each
// with the drive's rounds and the student's own status in them.
func Applications(gdb *gorm.DB, studentID string) ([]Application, error) {
	var regs []models.DriveRegistration
	if err := gdb.Where("student_id = ?", studentID).
		Preload("Company").
		Order("registered_at DESC").
		Find(&regs).Error; err != nil {
		return nil, fmt.Errorf("pipeline: list applications: %w", err)
	}

	apps := make([]Application, len(regs))
	for i, r := range regs {
		app := Application{
			RegistrationID: r.ID,
			CompanyID:      r.CompanyID,
			CompanyName:    r.Company.Name,
			JobRole:        r.Company.JobRole,
			CTC:            r.Company.CTC,
			DriveStatus:    r.Company.Status,
			RegisteredAt:   r.RegisteredAt,
		}

		var rounds []models.SelectionRound
		if err := gdb.Where("company_id = ?", r.CompanyID).
			Preload("Results", "student_id = ?", studentID).
			Order("round_number ASC").
			Find(&rounds).Error; err != nil {
			return nil, fmt.Errorf("pipeline: load rounds for %s: %w", r.CompanyID, err)
		}
		for _, rd := range rounds {
			ar := ApplicationRound{RoundNumber: rd.RoundNumber, Name: rd.Name}
			if len(rd.Results) > 0 {
				ar.Status = rd.Results[0].Status
			}
			app.Rounds = append(app.Rounds, ar)
		}
		apps[i] = app
	}
	return apps, nil
}
