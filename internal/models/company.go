package models

import "time"

// Drive lifecycle statuses. Only ACTIVE drives accept new registrations.
const (
	DriveUpcoming  = "UPCOMING"
	DriveActive    = "ACTIVE"
	DriveCompleted = "COMPLETED"
)

// Company is a hiring drive: one company campaign with its own eligibility
// criteria and round sequence. AllowedBranches is a comma-separated list of
// branch codes; comparison is trimmed and case-insensitive.
type Company struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	Name               string    `gorm:"size:128;not null" json:"name"`
	JobRole            string    `gorm:"size:128;not null" json:"jobRole"`
	CTC                float64   `gorm:"not null" json:"ctc"`
	EligibilityCGPA    float64   `gorm:"not null" json:"eligibilityCGPA"`
	EligibilityPercent float64   `gorm:"not null" json:"eligibilityPercent"`
	AllowedBranches    string    `gorm:"size:256;not null" json:"allowedBranches"`
	DriveDate          time.Time `json:"driveDate"`
	Description        string    `gorm:"type:text" json:"description"`
	Status             string    `gorm:"size:16;not null;default:UPCOMING;index" json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`

	Registrations []DriveRegistration `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"registrations,omitempty"`
	Rounds        []SelectionRound    `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"rounds,omitempty"`
}
