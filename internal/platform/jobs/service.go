package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	JobReminderSweep = "reminder_sweep"
	JobWeeklyReport  = "weekly_report"
)

// Runner is implemented by domain services that execute a scheduled job.
// It returns a short human-readable summary recorded in job_runs.
type Runner func(ctx context.Context) (string, error)

type Job struct {
	Type string
}

type Service struct {
	db      *pgxpool.Pool
	runners map[string]Runner
	queue   chan Job
	wg      sync.WaitGroup
}

func New(db *pgxpool.Pool) *Service {
	return &Service{
		db:      db,
		runners: map[string]Runner{},
		queue:   make(chan Job, 64),
	}
}

func (s *Service) Register(jobType string, r Runner) {
	s.runners[jobType] = r
}

func (s *Service) Enqueue(job Job) {
	select {
	case s.queue <- job:
	default:
		slog.Warn("job queue full, dropping job", "type", job.Type)
	}
}

// Start launches the worker and the periodic schedulers. Call Stop to drain.
func (s *Service) Start(ctx context.Context, reminderInterval, reportInterval time.Duration) {
	s.wg.Add(1)
	go s.worker(ctx)

	s.schedule(ctx, JobReminderSweep, reminderInterval)
	s.schedule(ctx, JobWeeklyReport, reportInterval)
}

func (s *Service) Stop() {
	close(s.queue)
	s.wg.Wait()
}

func (s *Service) schedule(ctx context.Context, jobType string, interval time.Duration) {
	if interval <= 0 {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Enqueue(Job{Type: jobType})
			}
		}
	}()
}

func (s *Service) worker(ctx context.Context) {
	defer s.wg.Done()
	for job := range s.queue {
		s.run(ctx, job)
	}
}

func (s *Service) run(ctx context.Context, job Job) {
	runner, ok := s.runners[job.Type]
	if !ok {
		slog.Error("no runner registered for job", "type", job.Type)
		return
	}

	var runID string
	err := s.db.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, status)
    VALUES ($1, 'running')
    RETURNING id
  `, job.Type).Scan(&runID)
	if err != nil {
		slog.Error("failed to record job run", "type", job.Type, "error", err)
	}

	start := time.Now()
	summary, runErr := runner(ctx)

	status := "completed"
	if runErr != nil {
		status = "failed"
		summary = runErr.Error()
		slog.Error("job failed", "type", job.Type, "error", runErr)
	} else {
		slog.Info("job completed", "type", job.Type, "duration", time.Since(start), "summary", summary)
	}

	if runID != "" {
		if _, err := s.db.Exec(ctx, `
      UPDATE job_runs SET status = $2, details = $3, completed_at = now()
      WHERE id = $1
    `, runID, status, summary); err != nil {
			slog.Error("failed to finalize job run", "type", job.Type, "error", err)
		}
	}
}
