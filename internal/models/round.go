package models

import "time"

// Round result statuses. PENDING is the only non-terminal state; SELECTED
// and REJECTED are terminal for seeding purposes but the ledger does not
// forbid re-marking them.
const (
	ResultPending  = "PENDING"
	ResultSelected = "SELECTED"
	ResultRejected = "REJECTED"
)

// SelectionRound is one stage of a drive's elimination pipeline. Round
// numbers are 1-based and unique within a company.
type SelectionRound struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	CompanyID   string    `gorm:"size:36;not null;uniqueIndex:idx_round_company_number" json:"companyId"`
	RoundNumber int       `gorm:"not null;uniqueIndex:idx_round_company_number" json:"roundNumber"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Date        time.Time `json:"date"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`

	Company Company       `gorm:"foreignKey:CompanyID" json:"company,omitzero"`
	Results []RoundResult `gorm:"foreignKey:RoundID;constraint:OnDelete:CASCADE" json:"results,omitempty"`
}

// RoundResult is one candidate's outcome in one round. Rows are seeded in
// bulk as PENDING when the round is created, then mutated one at a time by
// an administrator.
type RoundResult struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	RoundID   string    `gorm:"size:36;not null;uniqueIndex:idx_result_round_student" json:"roundId"`
	StudentID string    `gorm:"size:36;not null;uniqueIndex:idx_result_round_student;index" json:"studentId"`
	Status    string    `gorm:"size:16;not null;default:PENDING;index" json:"status"`
	Feedback  string    `gorm:"type:text" json:"feedback"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Round   SelectionRound `gorm:"foreignKey:RoundID" json:"round,omitzero"`
	Student Student        `gorm:"foreignKey:StudentID" json:"student,omitzero"`
}
