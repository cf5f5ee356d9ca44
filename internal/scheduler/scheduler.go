// Package scheduler runs a job on a fixed period with explicit pause and
// resume.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/coinpulse/internal/logger"
)

// ErrAlreadyStarted is returned by a second call to Start.
var ErrAlreadyStarted = errors.New("scheduler already started")

// Job is one run of the scheduled work.
type Job func(ctx context.Context)

// Scheduler runs its job once on Start and then every period. Runs never
// overlap. While paused ticks are skipped; Resume runs the job at once.
type Scheduler struct {
	period  time.Duration
	job     Job
	paused  atomic.Bool
	resume  chan struct{}
	started atomic.Bool
	runs    atomic.Int64
	wg      sync.WaitGroup
	log     zerolog.Logger
}

// New returns a stopped scheduler.
func New(period time.Duration, job Job) *Scheduler {
	return &Scheduler{
		period: period,
		job:    job,
		resume: make(chan struct{}, 1),
		log:    logger.Component("scheduler"),
	}
}

// Start launches the loop. It returns immediately; the first run happens in
// the background unless the scheduler was paused beforehand. The loop stops
// when ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	s.wg.Add(1)
	go s.loop(ctx)
	return nil
}

// Pause stops runs until Resume. A run in progress finishes.
func (s *Scheduler) Pause() {
	if s.paused.CompareAndSwap(false, true) {
		s.log.Debug().Msg("paused")
	}
}

// Resume lifts a pause and requests an immediate run.
func (s *Scheduler) Resume() {
	if !s.paused.CompareAndSwap(true, false) {
		return
	}
	s.log.Debug().Msg("resumed")
	select {
	case s.resume <- struct{}{}:
	default:
	}
}

// Paused reports whether runs are suspended.
func (s *Scheduler) Paused() bool { return s.paused.Load() }

// Runs returns how many times the job has run.
func (s *Scheduler) Runs() int64 { return s.runs.Load() }

// Wait blocks until the loop has exited.
func (s *Scheduler) Wait() { s.wg.Wait() }

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	t := time.NewTicker(s.period)
	defer t.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Int64("runs", s.runs.Load()).Msg("scheduler stopped")
			return
		case <-t.C:
			s.tick(ctx)
		case <-s.resume:
			s.tick(ctx)
			t.Reset(s.period)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if s.paused.Load() || ctx.Err() != nil {
		return
	}
	s.runs.Add(1)
	s.job(ctx)
}
