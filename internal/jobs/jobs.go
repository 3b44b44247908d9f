// Package jobs runs the periodic housekeeping: trash purging and the
// deadline digest.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/tidsplan/internal/notify"
	"github.com/alexanderramin/tidsplan/internal/service"
	"github.com/robfig/cron/v3"
)

// PurgeSchedule runs the trash purge once a night.
const PurgeSchedule = "15 3 * * *"

// Job is one unit of periodic work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// PurgeTrash permanently removes tasks that sat in the trash longer than
// Retention.
type PurgeTrash struct {
	Tasks     service.TaskService
	Retention time.Duration
	Log       *slog.Logger
}

func (j PurgeTrash) Name() string { return "purge-trash" }

func (j PurgeTrash) Run(ctx context.Context) error {
	n, err := j.Tasks.PurgeTrash(ctx, j.Retention)
	if err != nil {
		return err
	}
	if n > 0 && j.Log != nil {
		j.Log.Info("purged trash", "tasks", n)
	}
	return nil
}

// Digest posts each owner's deadline digest.
type Digest struct {
	Tasks       service.TaskService
	Notifier    *notify.Notifier
	Owners      []string
	WarningDays int
	Clock       service.Clock
}

func (j Digest) Name() string { return "deadline-digest" }

func (j Digest) Run(ctx context.Context) error {
	clock := j.Clock
	if clock == nil {
		clock = time.Now
	}
	for _, owner := range j.Owners {
		tasks, err := j.Tasks.List(ctx, owner)
		if err != nil {
			return fmt.Errorf("loading tasks for %s: %w", owner, err)
		}
		if _, err := j.Notifier.SendDigest(ctx, notify.BuildDigest(owner, tasks, clock(), j.WarningDays)); err != nil {
			return err
		}
	}
	return nil
}

// Scheduler runs jobs on cron schedules.
type Scheduler struct {
	cron    *cron.Cron
	log     *slog.Logger
	timeout time.Duration
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{cron: cron.New(), log: log, timeout: 5 * time.Minute}
}

// Add schedules job on a standard five-field cron spec.
func (s *Scheduler) Add(spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() { s.run(job) })
	if err != nil {
		return fmt.Errorf("scheduling %s on %q: %w", job.Name(), spec, err)
	}
	s.log.Debug("job scheduled", "job", job.Name(), "spec", spec)
	return nil
}

func (s *Scheduler) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	started := time.Now()
	if err := job.Run(ctx); err != nil {
		s.log.Error("job failed", "job", job.Name(), "error", err)
		return
	}
	s.log.Debug("job done", "job", job.Name(), "duration_ms", time.Since(started).Milliseconds())
}

// Len is the number of scheduled jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
