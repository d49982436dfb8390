package eligibility

import (
	"reflect"
	"strings"
	"testing"

	"github.com/placementlabs/cpms/internal/models"
)

func passingStudent() models.Student {
	return models.Student{
		Branch:         "CSE",
		CGPA:           8.1,
		TenthPercent:   82,
		TwelfthPercent: 78,
		ActiveBacklogs: false,
	}
}

func standardDrive() models.Company {
	return models.Company{
		Name:               "Acme",
		EligibilityCGPA:    7.0,
		EligibilityPercent: 60,
		AllowedBranches:    "CSE,IT",
	}
}

func TestEvaluate_AllRulesPass(t *testing.T) {
	v := Evaluate(passingStudent(), standardDrive())
	if !v.Eligible {
		t.Fatalf("Eligible = false, reasons: %v", v.Reasons)
	}
	if len(v.Reasons) != 0 {
		t.Errorf("Reasons = %v, want empty", v.Reasons)
	}
}

func TestEvaluate_SingleFailure(t *testing.T) {
	s := passingStudent()
	s.CGPA = 6.5
	v := Evaluate(s, standardDrive())

	if v.Eligible {
		t.Fatal("Eligible = true, want false")
	}
	if len(v.Reasons) != 1 {
		t.Fatalf("Reasons = %v, want exactly one", v.Reasons)
	}
	if !strings.Contains(v.Reasons[0], "Minimum CGPA required is 7") {
		t.Errorf("reason = %q", v.Reasons[0])
	}
}

func TestEvaluate_NoShortCircuit(t *testing.T) {
	// Every rule fails; the reasons list must carry all four.
	s := models.Student{
		Branch:         "MECH",
		CGPA:           5.0,
		TenthPercent:   40,
		TwelfthPercent: 55,
		ActiveBacklogs: true,
	}
	v := Evaluate(s, standardDrive())

	if v.Eligible {
		t.Fatal("Eligible = true, want false")
	}
	if len(v.Reasons) != 4 {
		t.Fatalf("Reasons count = %d, want 4: %v", len(v.Reasons), v.Reasons)
	}
}

func TestEvaluate_PercentRules(t *testing.T) {
	tests := []struct {
		name     string
		tenth    float64
		twelfth  float64
		eligible bool
	}{
		{"both above", 75, 70, true},
		{"tenth below", 59, 70, false},
		{"twelfth below", 75, 59.9, false},
		{"both below one reason", 10, 10, false},
		{"exactly at threshold", 60, 60, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := passingStudent()
			s.TenthPercent = tt.tenth
			s.TwelfthPercent = tt.twelfth
			v := Evaluate(s, standardDrive())
			if v.Eligible != tt.eligible {
				t.Errorf("Eligible = %v, want %v (reasons %v)", v.Eligible, tt.eligible, v.Reasons)
			}
			if !tt.eligible && len(v.Reasons) != 1 {
				t.Errorf("Reasons = %v, want single percentage reason", v.Reasons)
			}
		})
	}
}

func TestEvaluate_Backlogs(t *testing.T) {
	s := passingStudent()
	s.ActiveBacklogs = true
	v := Evaluate(s, standardDrive())
	if v.Eligible {
		t.Fatal("active backlogs must disqualify regardless of grades")
	}
	if len(v.Reasons) != 1 || !strings.Contains(v.Reasons[0], "backlogs") {
		t.Errorf("Reasons = %v", v.Reasons)
	}
}

func TestEvaluate_BranchCaseInsensitive(t *testing.T) {
	tests := []struct {
		name     string
		branch   string
		allowed  string
		eligible bool
	}{
		{"exact", "CSE", "CSE,IT", true},
		{"lower student", "cse", "CSE,IT", true},
		{"lower list", "CSE", "cse, it", true},
		{"whitespace in list", "IT", " CSE , IT ", true},
		{"not listed", "ECE", "CSE,IT", false},
		{"empty list entry ignored", "IT", "CSE,,IT,", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := passingStudent()
			s.Branch = tt.branch
			c := standardDrive()
			c.AllowedBranches = tt.allowed
			v := Evaluate(s, c)
			if v.Eligible != tt.eligible {
				t.Errorf("Eligible = %v, want %v (reasons %v)", v.Eligible, tt.eligible, v.Reasons)
			}
		})
	}
}

func TestEvaluate_ThresholdBoundary(t *testing.T) {
	// Only the CGPA rule fails, then passes after the profile is corrected.
	s := models.Student{
		Branch:         "CSE",
		CGPA:           6.5,
		TenthPercent:   70,
		TwelfthPercent: 65,
		ActiveBacklogs: false,
	}
	d := standardDrive()

	v := Evaluate(s, d)
	if v.Eligible || len(v.Reasons) != 1 {
		t.Fatalf("verdict = %+v, want single CGPA reason", v)
	}

	s.CGPA = 7.2
	v = Evaluate(s, d)
	if !v.Eligible || len(v.Reasons) != 0 {
		t.Fatalf("verdict after fix = %+v, want eligible", v)
	}
}

func TestParseBranches(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"CSE,IT", []string{"CSE", "IT"}},
		{" cse , it ,ece", []string{"CSE", "IT", "ECE"}},
		{"CSE,,IT,", []string{"CSE", "IT"}},
		{"", []string{}},
		{" , ,", []string{}},
	}

	for _, tt := range tests {
		got := ParseBranches(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseBranches(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
