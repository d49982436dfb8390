// Package reports derives placement statistics from the result ledger and
// registration set. Every reader recomputes from raw rows on each call and
// tolerates empty tables by returning zero values, never an error.
package reports

import (
	"fmt"
	"math"
	"sort"

	"github.com/placementlabs/cpms/internal/models"
	"gorm.io/gorm"
)

// DashboardStats is the high-level KPI block for the placement dashboard.
type DashboardStats struct {
	TotalStudents int64   `json:"totalStudents"`
	TotalPlaced   int64   `json:"totalPlaced"`
	PlacementRate float64 `json:"placementRate"`
	HighestCTC    float64 `json:"highestCTC"`
	AvgCTC        float64 `json:"avgCTC"`
}

// NameValue is a single chart datum.
type NameValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Dashboard computes the placement KPI block. A student with offers from
// several drives counts once toward TotalPlaced but each offer's CTC feeds
// the CTC metrics independently.
func Dashboard(gdb *gorm.DB) (DashboardStats, error) {
	var stats DashboardStats

	if err := gdb.Model(&models.Student{}).Count(&stats.TotalStudents).Error; err != nil {
		return stats, fmt.Errorf("reports: count students: %w", err)
	}

	if err := gdb.Model(&models.RoundResult{}).
		Where("status = ?", models.ResultSelected).
		Distinct("student_id").
		Count(&stats.TotalPlaced).Error; err != nil {
		return stats, fmt.Errorf("reports: count placed: %w", err)
	}

	if stats.TotalStudents > 0 {
		rate := float64(stats.TotalPlaced) / float64(stats.TotalStudents) * 100
		stats.PlacementRate = math.Round(rate*10) / 10
	}

	// One CTC entry per SELECTED result, via the owning drive.
	var ctcs []float64
	if err := gdb.Model(&models.RoundResult{}).
		Joins("JOIN selection_rounds ON selection_rounds.id = round_results.round_id").
		Joins("JOIN companies ON companies.id = selection_rounds.company_id").
		Where("round_results.status = ?", models.ResultSelected).
		Pluck("companies.ctc", &ctcs).Error; err != nil {
		return stats, fmt.Errorf("reports: collect offer CTCs: %w", err)
	}

	var total float64
	for _, ctc := range ctcs {
		if ctc > stats.HighestCTC {
			stats.HighestCTC = ctc
		}
		total += ctc
	}
	if len(ctcs) > 0 {
		stats.AvgCTC = math.Round(total/float64(len(ctcs))*100) / 100
	}
	return stats, nil
}

// BranchPlacements groups the placement set (distinct placed students) by
// branch, sorted by branch name for stable chart output.
func BranchPlacements(gdb *gorm.DB) ([]NameValue, error) {
	type row struct {
		StudentID string
		Branch    string
	}
	var rows []row
	if err := gdb.Model(&models.RoundResult{}).
		Select("DISTINCT round_results.student_id AS student_id, students.branch AS branch").
		Joins("JOIN students ON students.id = round_results.student_id").
		Where("round_results.status = ?", models.ResultSelected).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("reports: branch placements: %w", err)
	}

	counts := map[string]int{}
	for _, r := range rows {
		counts[r.Branch]++
	}
	data := make([]NameValue, 0, len(counts))
	for branch, n := range counts {
		data = append(data, NameValue{Name: branch, Value: n})
	}
	sort.Slice(data, func(i, j int) bool { return data[i].Name < data[j].Name })
	return data, nil
}

// CompanySelections counts distinct selected candidates per drive, highest
// first. A candidate selected in two rounds of the same drive counts once
// for that drive.
func CompanySelections(gdb *gorm.DB) ([]NameValue, error) {
	type row struct {
		Name      string
		StudentID string
	}
	var rows []row
	if err := gdb.Model(&models.RoundResult{}).
		Select("companies.name AS name, round_results.student_id AS student_id").
		Joins("JOIN selection_rounds ON selection_rounds.id = round_results.round_id").
		Joins("JOIN companies ON companies.id = selection_rounds.company_id").
		Where("round_results.status = ?", models.ResultSelected).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("reports: company selections: %w", err)
	}

	seen := map[string]map[string]bool{}
	for _, r := range rows {
		if seen[r.Name] == nil {
			seen[r.Name] = map[string]bool{}
		}
		seen[r.Name][r.StudentID] = true
	}
	data := make([]NameValue, 0, len(seen))
	for name, students := range seen {
		data = append(data, NameValue{Name: name, Value: len(students)})
	}
	sort.Slice(data, func(i, j int) bool {
		if data[i].Value != data[j].Value {
			return data[i].Value > data[j].Value
		}
		return data[i].Name < data[j].Name
	})
	return data, nil
}

// AdminDashboard is the placement-office landing page payload.
type AdminDashboard struct {
	TotalCompanies      int64       `json:"totalCompanies"`
	ActiveStudents      int64       `json:"activeStudents"`
	UpcomingDrives      int64       `json:"upcomingDrives"`
	PlacementPercentage int         `json:"placementPercentage"`
	BranchPlacements    []NameValue `json:"branchPlacements"`
}

// Admin computes the placement-office dashboard counters.
func Admin(gdb *gorm.DB) (AdminDashboard, error) {
	var dash AdminDashboard

	if err := gdb.Model(&models.Company{}).Count(&dash.TotalCompanies).Error; err != nil {
		return dash, fmt.Errorf("reports: count companies: %w", err)
	}
	if err := gdb.Model(&models.Student{}).Count(&dash.ActiveStudents).Error; err != nil {
		return dash, fmt.Errorf("reports: count students: %w", err)
	}
	if err := gdb.Model(&models.Company{}).
		Where("status = ?", models.DriveUpcoming).
		Count(&dash.UpcomingDrives).Error; err != nil {
		return dash, fmt.Errorf("reports: count upcoming drives: %w", err)
	}

	var placed int64
	if err := gdb.Model(&models.RoundResult{}).
		Where("status = ?", models.ResultSelected).
		Distinct("student_id").
		Count(&placed).Error; err != nil {
		return dash, fmt.Errorf("reports: count placed: %w", err)
	}
	if dash.ActiveStudents > 0 {
		dash.PlacementPercentage = int(math.Round(float64(placed) / float64(dash.ActiveStudents) * 100))
	}

	branches, err := BranchPlacements(gdb)
	if err != nil {
		return dash, err
	}
	dash.BranchPlacements = branches
	return dash, nil
}

// StudentStats is the quick-stats block on a student's dashboard.
type StudentStats struct {
	ApplicationsCount int64 `json:"applicationsCount"`
	PendingRounds     int64 `json:"pendingRoundsCount"`
	OffersCount       int64 `json:"offersCount"`
}

// ForStudent computes a single student's quick stats.
func ForStudent(gdb *gorm.DB, studentID string) (StudentStats, error) {
	var stats StudentStats

	if err := gdb.Model(&models.DriveRegistration{}).
		Where("student_id = ?", studentID).
		Count(&stats.ApplicationsCount).Error; err != nil {
		return stats, fmt.Errorf("reports: count applications: %w", err)
	}
	if err := gdb.Model(&models.RoundResult{}).
		Where("student_id = ? AND status = ?", studentID, models.ResultPending).
		Count(&stats.PendingRounds).Error; err != nil {
		return stats, fmt.Errorf("reports: count pending rounds: %w", err)
	}
	if err := gdb.Model(&models.RoundResult{}).
		Where("student_id = ? AND status = ?", studentID, models.ResultSelected).
		Count(&stats.OffersCount).Error; err != nil {
		return stats, fmt.Errorf("reports: count offers: %w", err)
	}
	return stats, nil
}
