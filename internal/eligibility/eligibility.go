// Package eligibility decides whether a student may enter a hiring drive.
// Evaluation is a pure function over the student's academic snapshot and the
// drive's criteria; it performs no I/O and never returns an error.
package eligibility

import (
	"fmt"
	"strings"

	"github.com/placementlabs/cpms/internal/models"
)

// Verdict is the outcome of an eligibility evaluation. Eligible is true
// exactly when Reasons is empty. Every failing rule contributes one reason
// so a rejected student sees the complete deficiency list, not just the
// first violation.
type Verdict struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons"`
}

// Evaluate checks a student against a drive's criteria. All four rules are
// evaluated unconditionally:
//
//  1. CGPA at or above the drive minimum.
//  2. Both 10th and 12th percentages at or above the drive minimum.
//  3. No active backlogs, regardless of grades.
//  4. Branch present in the drive's allow-list.
func Evaluate(student models.Student, company models.Company) Verdict {
	var reasons []string

	if student.CGPA < company.EligibilityCGPA {
		reasons = append(reasons, fmt.Sprintf(
			"Minimum CGPA required is %g, you have %g.", company.EligibilityCGPA, student.CGPA))
	}

	if student.TenthPercent < company.EligibilityPercent || student.TwelfthPercent < company.EligibilityPercent {
		reasons = append(reasons, fmt.Sprintf(
			"Minimum 10th/12th percentage required is %g%%.", company.EligibilityPercent))
	}

	if student.ActiveBacklogs {
		reasons = append(reasons, "Active backlogs are not allowed for this drive.")
	}

	if !branchAllowed(student.Branch, company.AllowedBranches) {
		reasons = append(reasons, fmt.Sprintf(
			"Your branch (%s) is not eligible. Allowed: %s.", student.Branch, company.AllowedBranches))
	}

	return Verdict{Eligible: len(reasons) == 0, Reasons: reasons}
}

// ParseBranches splits a comma-separated branch allow-list into a normalized
// slice: trimmed, upper-cased, empty entries dropped.
func ParseBranches(csv string) []string {
	parts := strings.Split(csv, ",")
	branches := make([]string, 0, len(parts))
	for _, p := range parts {
		b := strings.ToUpper(strings.TrimSpace(p))
		if b != "" {
			branches = append(branches, b)
		}
	}
	return branches
}

func branchAllowed(branch, csv string) bool {
	want := strings.ToUpper(strings.TrimSpace(branch))
	for _, b := range ParseBranches(csv) {
		if b == want {
			return true
		}
	}
	return false
}
