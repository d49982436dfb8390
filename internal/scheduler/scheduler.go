// Package scheduler advances drive lifecycle statuses on a cron schedule.
// Drives move UPCOMING -> ACTIVE on their drive date and ACTIVE -> COMPLETED
// once the completion grace period has passed.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/placementlabs/cpms/internal/config"
	"github.com/placementlabs/cpms/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Result reports how many drives a tick transitioned.
type Result struct {
	Activated int64
	Completed int64
}

// Scheduler runs lifecycle ticks against the database.
type Scheduler struct {
	db  *gorm.DB
	cfg config.SchedulerConfig
	log *logrus.Logger
	now func() time.Time
}

// New builds a Scheduler. A nil logger falls back to the logrus standard
// logger.
func New(gdb *gorm.DB, cfg config.SchedulerConfig, log *logrus.Logger) *Scheduler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Scheduler{db: gdb, cfg: cfg, log: log, now: time.Now}
}

// Run fires a lifecycle tick at each cron fire time until ctx is cancelled.
// It runs one tick immediately on startup so a restart never leaves stale
// statuses waiting for the next fire. Returns an error only for an invalid
// cron expression.
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.cfg.Enabled {
		return nil
	}
	sched, err := cronParser.Parse(s.cfg.Cron)
	if err != nil {
		return fmt.Errorf("scheduler: parse cron %q: %w", s.cfg.Cron, err)
	}

	s.tick()

	timer := time.NewTimer(time.Until(sched.Next(s.now())))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			s.tick()
			timer.Reset(time.Until(sched.Next(s.now())))
		}
	}
}

// tick runs one transition pass and logs the outcome.
func (s *Scheduler) tick() {
	res, err := Advance(s.db, s.now(), s.cfg.CompletionGraceDays)
	if err != nil {
		s.log.WithError(err).Error("drive lifecycle tick failed")
		return
	}
	if res.Activated > 0 || res.Completed > 0 {
		s.log.WithFields(logrus.Fields{
			"activated": res.Activated,
			"completed": res.Completed,
		}).Info("drive lifecycle advanced")
	}
}

// Advance applies both lifecycle transitions as of now. Activation runs
// first, so a drive whose grace period already expired passes through to
// COMPLETED in a single call.
func Advance(gdb *gorm.DB, now time.Time, graceDays int) (Result, error) {
	var res Result

	activate := gdb.Model(&models.Company{}).
		Where("status = ? AND drive_date <= ?", models.DriveUpcoming, now).
		Update("status", models.DriveActive)
	if activate.Error != nil {
		return res, fmt.Errorf("scheduler: activate drives: %w", activate.Error)
	}
	res.Activated = activate.RowsAffected

	cutoff := now.AddDate(0, 0, -graceDays)
	complete := gdb.Model(&models.Company{}).
		Where("status = ? AND drive_date <= ?", models.DriveActive, cutoff).
		Update("status", models.DriveCompleted)
	if complete.Error != nil {
		return res, fmt.Errorf("scheduler: complete drives: %w", complete.Error)
	}
	res.Completed = complete.RowsAffected

	return res, nil
}
