// Package jobs runs the scheduled background work: the nightly snapshot
// export and the morning appointment reminder.
package jobs

import (
	"context"
	"time"

	"praxisnote.app/configs/configsapp"
	"praxisnote.app/configs/configslog"
	"praxisnote.app/services"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler owns the cron runner.
type Scheduler struct {
	cron         *cron.Cron
	exports      services.IExportService
	appointments services.IAppointmentService
}

// NewScheduler builds the scheduler on the default services.
func NewScheduler() *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		exports:      services.NewExportService(),
		appointments: services.NewAppointmentService(),
	}
}

// Start registers the jobs and starts the runner.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(configsapp.SnapshotCron(), s.runSnapshot); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(configsapp.ReminderCron(), s.runReminders); err != nil {
		return err
	}
	s.cron.Start()
	configslog.SLog.Infof("Scheduler started (snapshot %q, reminders %q)", configsapp.SnapshotCron(), configsapp.ReminderCron())
	return nil
}

// Stop halts the runner and waits for running jobs.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		configslog.SLog.Warn("Scheduler stop timed out")
	}
}

func (s *Scheduler) runSnapshot() {
	if _, err := s.exports.WriteSnapshot(context.Background()); err != nil {
		configslog.Log.Error("Nightly snapshot failed", zap.Error(err))
	}
}

// runReminders surfaces today's pending appointments in the log and on the
// shell (via the reminder flag) exactly once each.
func (s *Scheduler) runReminders() {
	ctx := context.Background()
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24*time.Hour - time.Second)

	appointments, err := s.appointments.GetAppointmentsInRange(ctx, start, end)
	if err != nil {
		configslog.Log.Error("Reminder scan failed", zap.Error(err))
		return
	}
	for i := range appointments {
		a := &appointments[i]
		if a.ReminderSent {
			continue
		}
		configslog.SLog.Infof("Reminder: %s with %s at %s", a.Title, a.Patient.FullName, a.StartsAt.Format("15:04"))
		if err := s.appointments.MarkReminderSent(ctx, a); err != nil {
			configslog.Log.Error("Could not mark reminder as sent", zap.String("appointment", a.PublicID), zap.Error(err))
		}
	}
}
