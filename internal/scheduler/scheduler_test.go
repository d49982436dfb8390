package scheduler

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/placementlabs/cpms/internal/config"
	"github.com/placementlabs/cpms/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := gdb.AutoMigrate(&models.Company{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return gdb
}

var driveSeq int

func addDrive(t *testing.T, gdb *gorm.DB, status string, driveDate time.Time) models.Company {
	t.Helper()
	driveSeq++
	company := models.Company{
		ID:              uuid.NewString(),
		Name:            fmt.Sprintf("Drive %d", driveSeq),
		JobRole:         "SDE",
		AllowedBranches: "CSE",
		DriveDate:       driveDate,
		Status:          status,
	}
	if err := gdb.Create(&company).Error; err != nil {
		t.Fatalf("create company: %v", err)
	}
	return company
}

func status(t *testing.T, gdb *gorm.DB, id string) string {
	t.Helper()
	var company models.Company
	if err := gdb.First(&company, "id = ?", id).Error; err != nil {
		t.Fatalf("reload company: %v", err)
	}
	return company.Status
}

func TestAdvance_ActivatesDueDrives(t *testing.T) {
	gdb := testDB(t)
	now := time.Now()

	due := addDrive(t, gdb, models.DriveUpcoming, now.Add(-time.Hour))
	today := addDrive(t, gdb, models.DriveUpcoming, now)
	future := addDrive(t, gdb, models.DriveUpcoming, now.Add(48*time.Hour))

	res, err := Advance(gdb, now, 14)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if res.Activated != 2 {
		t.Fatalf("Activated = %d, want 2", res.Activated)
	}
	if res.Completed != 0 {
		t.Fatalf("Completed = %d, want 0", res.Completed)
	}
	if got := status(t, gdb, due.ID); got != models.DriveActive {
		t.Fatalf("due drive status = %s, want ACTIVE", got)
	}
	if got := status(t, gdb, today.ID); got != models.DriveActive {
		t.Fatalf("today drive status = %s, want ACTIVE", got)
	}
	if got := status(t, gdb, future.ID); got != models.DriveUpcoming {
		t.Fatalf("future drive status = %s, want UPCOMING", got)
	}
}

func TestAdvance_CompletesAfterGrace(t *testing.T) {
	gdb := testDB(t)
	now := time.Now()

	stale := addDrive(t, gdb, models.DriveActive, now.AddDate(0, 0, -15))
	recent := addDrive(t, gdb, models.DriveActive, now.AddDate(0, 0, -13))

	res, err := Advance(gdb, now, 14)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if res.Completed != 1 {
		t.Fatalf("Completed = %d, want 1", res.Completed)
	}
	if got := status(t, gdb, stale.ID); got != models.DriveCompleted {
		t.Fatalf("stale drive status = %s, want COMPLETED", got)
	}
	if got := status(t, gdb, recent.ID); got != models.DriveActive {
		t.Fatalf("recent drive status = %s, want ACTIVE", got)
	}
}

func TestAdvance_StaleUpcomingPassesThrough(t *testing.T) {
	gdb := testDB(t)
	now := time.Now()

	// An UPCOMING drive whose grace period already expired completes in a
	// single pass.
	old := addDrive(t, gdb, models.DriveUpcoming, now.AddDate(0, 0, -30))

	res, err := Advance(gdb, now, 14)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if res.Activated != 1 || res.Completed != 1 {
		t.Fatalf("res = %+v, want 1 activated and 1 completed", res)
	}
	if got := status(t, gdb, old.ID); got != models.DriveCompleted {
		t.Fatalf("status = %s, want COMPLETED", got)
	}
}

func TestAdvance_CompletedIsTerminalHere(t *testing.T) {
	gdb := testDB(t)
	now := time.Now()

	done := addDrive(t, gdb, models.DriveCompleted, now.AddDate(0, 0, -60))

	res, err := Advance(gdb, now, 14)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if res.Activated != 0 || res.Completed != 0 {
		t.Fatalf("res = %+v, want zero transitions", res)
	}
	if got := status(t, gdb, done.ID); got != models.DriveCompleted {
		t.Fatalf("status = %s, want COMPLETED", got)
	}
}

func newTestScheduler(gdb *gorm.DB, cfg config.SchedulerConfig) *Scheduler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(gdb, cfg, log)
}

func TestRun_DisabledReturnsImmediately(t *testing.T) {
	s := newTestScheduler(testDB(t), config.SchedulerConfig{Enabled: false})
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRun_InvalidCron(t *testing.T) {
	s := newTestScheduler(testDB(t), config.SchedulerConfig{
		Enabled: true,
		Cron:    "not a cron expr",
	})
	if err := s.Run(context.Background()); err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestRun_TicksOnceAtStartup(t *testing.T) {
	gdb := testDB(t)
	now := time.Now()
	due := addDrive(t, gdb, models.DriveUpcoming, now.Add(-time.Hour))

	s := newTestScheduler(gdb, config.SchedulerConfig{
		Enabled:             true,
		Cron:                "5 0 * * *",
		CompletionGraceDays: 14,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for status(t, gdb, due.ID) != models.DriveActive {
		select {
		case <-deadline:
			cancel()
			t.Fatal("startup tick never activated the due drive")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
}
