package reports

import (
	"fmt"
	"strings"

	"github.com/placementlabs/cpms/internal/models"
	"gorm.io/gorm"
)

// ExportRow is one student's line in the placement export, shaped for CSV.
type ExportRow struct {
	EnrollmentNumber string  `json:"enrollmentNumber"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	Gender           string  `json:"gender"`
	Branch           string  `json:"branch"`
	CGPA             float64 `json:"cgpa"`
	TenthPercent     float64 `json:"tenthPercent"`
	TwelfthPercent   float64 `json:"twelfthPercent"`
	ActiveBacklogs   string  `json:"activeBacklogs"`
	TotalOffers      int     `json:"totalOffers"`
	Companies        string  `json:"companiesSelected"`
	HighestCTC       float64 `json:"highestCTCSecured"`
}

// ExportStudents returns every student ordered by enrollment number, with
// their offers flattened. Students without offers export as "Unplaced".
func ExportStudents(gdb *gorm.DB) ([]ExportRow, error) {
	var students []models.Student
	if err := gdb.Preload("User").
		Preload("RoundResults", "status = ?", models.ResultSelected).
		Preload("RoundResults.Round.Company").
		Order("enrollment_number ASC").
		Find(&students).Error; err != nil {
		return nil, fmt.Errorf("reports: export students: %w", err)
	}

	rows := make([]ExportRow, len(students))
	for i, s := range students {
		row := ExportRow{
			EnrollmentNumber: s.EnrollmentNumber,
			FirstName:        s.FirstName,
			LastName:         s.LastName,
			Email:            s.User.Email,
			Phone:            s.Phone,
			Gender:           s.Gender,
			Branch:           s.Branch,
			CGPA:             s.CGPA,
			TenthPercent:     s.TenthPercent,
			TwelfthPercent:   s.TwelfthPercent,
			ActiveBacklogs:   "NO",
			TotalOffers:      len(s.RoundResults),
		}
		if s.ActiveBacklogs {
			row.ActiveBacklogs = "YES"
		}

		var names []string
		for _, r := range s.RoundResults {
			names = append(names, r.Round.Company.Name)
			if r.Round.Company.CTC > row.HighestCTC {
				row.HighestCTC = r.Round.Company.CTC
			}
		}
		if len(names) > 0 {
			row.Companies = strings.Join(names, " | ")
		} else {
			row.Companies = "Unplaced"
		}
		rows[i] = row
	}
	return rows, nil
}
