package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

// gormTag extracts the gorm tag from a struct field.
func gormTag(t *testing.T, typ reflect.Type, fieldName string) string {
	t.Helper()
	f, ok := typ.FieldByName(fieldName)
	if !ok {
		t.Fatalf("%s.%s: field not found", typ.Name(), fieldName)
	}
	return f.Tag.Get("gorm")
}

// assertGormTag checks that a struct field's gorm tag contains the expected value.
func assertGormTag(t *testing.T, typ reflect.Type, fieldName, expected string) {
	t.Helper()
	tag := gormTag(t, typ, fieldName)
	if !strings.Contains(tag, expected) {
		t.Errorf("%s.%s gorm tag = %q, want to contain %q", typ.Name(), fieldName, tag, expected)
	}
}

// assertFieldType checks that a struct field has the expected Go type.
func assertFieldType(t *testing.T, typ reflect.Type, fieldName, expectedType string) {
	t.Helper()
	f, ok := typ.FieldByName(fieldName)
	if !ok {
		t.Fatalf("%s.%s: field not found", typ.Name(), fieldName)
	}
	got := f.Type.String()
	if got != expectedType {
		t.Errorf("%s.%s type = %q, want %q", typ.Name(), fieldName, got, expectedType)
	}
}

func TestUser_Fields(t *testing.T) {
	typ := reflect.TypeOf(User{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "ID", "size:36")
	assertGormTag(t, typ, "Email", "uniqueIndex")
	assertGormTag(t, typ, "Email", "not null")
	assertGormTag(t, typ, "PasswordHash", "not null")
	assertGormTag(t, typ, "Role", "default:STUDENT")

	assertFieldType(t, typ, "ID", "string")
	assertFieldType(t, typ, "Student", "*models.Student")
}

func TestStudent_Fields(t *testing.T) {
	typ := reflect.TypeOf(Student{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "UserID", "uniqueIndex")
	assertGormTag(t, typ, "EnrollmentNumber", "uniqueIndex")
	assertGormTag(t, typ, "EnrollmentNumber", "not null")
	assertGormTag(t, typ, "Branch", "index")
	assertGormTag(t, typ, "ActiveBacklogs", "default:false")

	assertFieldType(t, typ, "TenthPercent", "float64")
	assertFieldType(t, typ, "TwelfthPercent", "float64")
	assertFieldType(t, typ, "CGPA", "float64")
	assertFieldType(t, typ, "ActiveBacklogs", "bool")
	assertFieldType(t, typ, "Registrations", "[]models.DriveRegistration")
	assertFieldType(t, typ, "RoundResults", "[]models.RoundResult")
}

func TestCompany_Fields(t *testing.T) {
	typ := reflect.TypeOf(Company{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "Name", "not null")
	assertGormTag(t, typ, "AllowedBranches", "not null")
	assertGormTag(t, typ, "Status", "default:UPCOMING")
	assertGormTag(t, typ, "Status", "index")
	assertGormTag(t, typ, "Registrations", "OnDelete:CASCADE")
	assertGormTag(t, typ, "Rounds", "OnDelete:CASCADE")

	assertFieldType(t, typ, "CTC", "float64")
	assertFieldType(t, typ, "EligibilityCGPA", "float64")
	assertFieldType(t, typ, "DriveDate", "time.Time")
}

func TestDriveRegistration_UniquePair(t *testing.T) {
	typ := reflect.TypeOf(DriveRegistration{})

	// Both halves of the natural key share one composite unique index.
	assertGormTag(t, typ, "CompanyID", "uniqueIndex:idx_reg_company_student")
	assertGormTag(t, typ, "StudentID", "uniqueIndex:idx_reg_company_student")
	assertGormTag(t, typ, "IsEligible", "default:true")

	assertFieldType(t, typ, "RegisteredAt", "time.Time")
}

func TestSelectionRound_UniqueNumber(t *testing.T) {
	typ := reflect.TypeOf(SelectionRound{})

	assertGormTag(t, typ, "CompanyID", "uniqueIndex:idx_round_company_number")
	assertGormTag(t, typ, "RoundNumber", "uniqueIndex:idx_round_company_number")
	assertGormTag(t, typ, "Name", "not null")
	assertGormTag(t, typ, "Results", "OnDelete:CASCADE")

	assertFieldType(t, typ, "RoundNumber", "int")
}

func TestRoundResult_UniquePair(t *testing.T) {
	typ := reflect.TypeOf(RoundResult{})

	assertGormTag(t, typ, "RoundID", "uniqueIndex:idx_result_round_student")
	assertGormTag(t, typ, "StudentID", "uniqueIndex:idx_result_round_student")
	assertGormTag(t, typ, "Status", "default:PENDING")
	assertGormTag(t, typ, "Status", "index")

	assertFieldType(t, typ, "Feedback", "string")
	assertFieldType(t, typ, "UpdatedAt", "time.Time")
}

func TestStatusConstants(t *testing.T) {
	if RoleStudent != "STUDENT" || RoleAdmin != "TPO_ADMIN" {
		t.Errorf("unexpected role constants: %q, %q", RoleStudent, RoleAdmin)
	}
	for _, s := range []string{DriveUpcoming, DriveActive, DriveCompleted} {
		if s != strings.ToUpper(s) {
			t.Errorf("drive status %q should be upper-case", s)
		}
	}
	for _, s := range []string{ResultPending, ResultSelected, ResultRejected} {
		if s != strings.ToUpper(s) {
			t.Errorf("result status %q should be upper-case", s)
		}
	}
}

// jsonTag extracts the json tag from a struct field.
func jsonTag(t *testing.T, typ reflect.Type, fieldName string) string {
	t.Helper()
	f, ok := typ.FieldByName(fieldName)
	if !ok {
		t.Fatalf("%s.%s: field not found", typ.Name(), fieldName)
	}
	return f.Tag.Get("json")
}

func TestUser_PasswordHashNeverSerialized(t *testing.T) {
	if tag := jsonTag(t, reflect.TypeOf(User{}), "PasswordHash"); tag != "-" {
		t.Fatalf("PasswordHash json tag = %q, want %q", tag, "-")
	}

	data, err := json.Marshal(User{
		ID:           "u1",
		Email:        "a@b.test",
		PasswordHash: "bcrypt-hash-material",
		Role:         RoleStudent,
	})
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	if strings.Contains(string(data), "bcrypt-hash-material") {
		t.Fatalf("serialized user leaks the password hash: %s", data)
	}
	if strings.Contains(strings.ToLower(string(data)), "password") {
		t.Fatalf("serialized user mentions a password key: %s", data)
	}
}

func TestJSONKeys_CamelCase(t *testing.T) {
	tests := []struct {
		typ   reflect.Type
		field string
		want  string
	}{
		{reflect.TypeOf(User{}), "ID", "id"},
		{reflect.TypeOf(User{}), "CreatedAt", "createdAt"},
		{reflect.TypeOf(Student{}), "FirstName", "firstName"},
		{reflect.TypeOf(Student{}), "EnrollmentNumber", "enrollmentNumber"},
		{reflect.TypeOf(Student{}), "TenthPercent", "tenthPercent"},
		{reflect.TypeOf(Student{}), "InternshipNotes", "internshipDetails"},
		{reflect.TypeOf(Company{}), "JobRole", "jobRole"},
		{reflect.TypeOf(Company{}), "AllowedBranches", "allowedBranches"},
		{reflect.TypeOf(SelectionRound{}), "RoundNumber", "roundNumber"},
		{reflect.TypeOf(RoundResult{}), "StudentID", "studentId"},
		{reflect.TypeOf(DriveRegistration{}), "RegisteredAt", "registeredAt"},
	}
	for _, tt := range tests {
		tag := jsonTag(t, tt.typ, tt.field)
		if key := strings.Split(tag, ",")[0]; key != tt.want {
			t.Errorf("%s.%s json key = %q, want %q", tt.typ.Name(), tt.field, key, tt.want)
		}
	}
}
