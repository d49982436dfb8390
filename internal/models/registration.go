package models

import "time"

// DriveRegistration links one student to one drive exactly once. Rows exist
// only for students who passed eligibility, so IsEligible is always true on
// persisted rows; it is kept as a column for export parity. The composite
// unique index is the storage-level guard against double registration.
type DriveRegistration struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	CompanyID    string    `gorm:"size:36;not null;uniqueIndex:idx_reg_company_student" json:"companyId"`
	StudentID    string    `gorm:"size:36;not null;uniqueIndex:idx_reg_company_student" json:"studentId"`
	IsEligible   bool      `gorm:"not null;default:true" json:"isEligible"`
	RegisteredAt time.Time `json:"registeredAt"`

	Company Company `gorm:"foreignKey:CompanyID" json:"company,omitzero"`
	Student Student `gorm:"foreignKey:StudentID" json:"student,omitzero"`
}
