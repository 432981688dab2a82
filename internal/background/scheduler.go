// Package background runs the periodic jobs that keep the on-disk event log
// current: flushing buffered records and rotating the active log file.
//
// One gocron.Scheduler owns both jobs; they are added up front with names
// and Start/Shutdown are the only lifecycle hooks.
package background

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"rodan/internal/logging"
	"rodan/internal/logwriter"
)

const (
	flushJobName  = "event-log-flush"
	rotateJobName = "event-log-rotate"

	defaultFlushInterval = 5 * time.Second
)

// Scheduler periodically flushes buffered log records to disk and rotates
// the active log file once it has aged past its configured period.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
}

// New builds a Scheduler with a flush job (every flushInterval) and a
// rotate job (every rotationPeriod, checking the file's own age before
// acting). It does not start either job; call Start for that.
func New(writer *logwriter.Writer, rotator *logwriter.Rotator, flushInterval, rotationPeriod time.Duration, logger *slog.Logger) (*Scheduler, error) {
	logger = logging.Default(logger)
	if flushInterval <= 0 {
		flushInterval = defaultFlushInterval
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	if _, err := s.NewJob(
		gocron.DurationJob(flushInterval),
		gocron.NewTask(func() { writer.Flush() }),
		gocron.WithName(flushJobName),
	); err != nil {
		return nil, fmt.Errorf("add flush job: %w", err)
	}

	if _, err := s.NewJob(
		gocron.DurationJob(rotationPeriod),
		gocron.NewTask(func() { rotator.Rotate() }),
		gocron.WithName(rotateJobName),
	); err != nil {
		return nil, fmt.Errorf("add rotate job: %w", err)
	}

	return &Scheduler{scheduler: s, logger: logger}, nil
}

// Start begins running both jobs in the background. It returns immediately.
func (s *Scheduler) Start() {
	s.scheduler.Start()
	s.logger.Info("background scheduler started")
}

// Stop shuts the scheduler down, waiting for any in-flight job to finish.
func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}
