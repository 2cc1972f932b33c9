package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a function run on a fixed interval. Timeout bounds a single run; zero means
// the run is bounded only by the scheduler's lifetime.
type Job struct {
	Name     string
	Interval time.Duration
	Timeout  time.Duration
	Fn       func(ctx context.Context) error
}

// Scheduler runs each registered job in its own goroutine. Runs of the same job never overlap.
type Scheduler struct {
	jobs   []Job
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewScheduler() *Scheduler {
	return &Scheduler{jobs: make([]Job, 0)}
}

// AddJob registers a job. Jobs added after Start are not run.
func (s *Scheduler) AddJob(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, job)
	slog.Info("cron job registered", "name", job.Name, "interval", job.Interval)
}

// Start launches all jobs; they stop when ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, s.cancel = context.WithCancel(ctx)
	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(ctx, job)
	}

	slog.Info("cron scheduler started", "job_count", len(s.jobs))
}

// Stop cancels all jobs and waits for running ones to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
	slog.Info("cron scheduler stopped")
}

func (s *Scheduler) runJob(ctx context.Context, job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			executeJob(ctx, job)
		}
	}
}

func executeJob(ctx context.Context, job Job) {
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	start := time.Now()
	if err := job.Fn(ctx); err != nil {
		slog.ErrorContext(ctx, "cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
		return
	}
	slog.DebugContext(ctx, "cron job completed", "name", job.Name, "duration", time.Since(start))
}

// RunOnce runs every registered job once, synchronously.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	jobs := append([]Job(nil), s.jobs...)
	s.mu.Unlock()

	for _, job := range jobs {
		executeJob(ctx, job)
	}
}
