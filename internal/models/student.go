package models

import "time"

// Student is the candidate profile used for eligibility checks. Academic
// fields (branch, percentages, CGPA, backlogs) are owned by the academic
// record: students edit only personal fields, academic fields change
// through administrative correction.
type Student struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	UserID           string    `gorm:"size:36;not null;uniqueIndex" json:"userId"`
	FirstName        string    `gorm:"size:64;not null" json:"firstName"`
	LastName         string    `gorm:"size:64;not null" json:"lastName"`
	EnrollmentNumber string    `gorm:"size:32;not null;uniqueIndex" json:"enrollmentNumber"`
	Phone            string    `gorm:"size:16" json:"phone"`
	Gender           string    `gorm:"size:8" json:"gender"`
	Branch           string    `gorm:"size:16;not null;index" json:"branch"`
	TenthPercent     float64   `json:"tenthPercent"`
	TwelfthPercent   float64   `json:"twelfthPercent"`
	CGPA             float64   `json:"cgpa"`
	ActiveBacklogs   bool      `gorm:"default:false" json:"activeBacklogs"`
	HasInternship    bool      `gorm:"default:false" json:"hasInternship"`
	InternshipNotes  string    `gorm:"type:text" json:"internshipDetails"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	User          User                `gorm:"foreignKey:UserID" json:"user,omitzero"`
	Registrations []DriveRegistration `gorm:"foreignKey:StudentID" json:"registrations,omitempty"`
	RoundResults  []RoundResult       `gorm:"foreignKey:StudentID" json:"roundResults,omitempty"`
}
