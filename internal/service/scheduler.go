package service

import (
	"context"
	"sync"
	"time"

	"github.com/devricklin/teleport/internal/pkg/logger"
)

// PollFunc runs one poll. It is only ever called from the scheduler's worker goroutine.
type PollFunc func(ctx context.Context)

// PollScheduler fires a poll every interval on a single worker goroutine
type PollScheduler struct {
	interval time.Duration
	leeway   time.Duration
	poll     PollFunc

	nudgeCh chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewPollScheduler creates a new poll scheduler.
// A nudge that arrives within leeway of the previous poll is absorbed by it.
func NewPollScheduler(interval, leeway time.Duration, poll PollFunc) *PollScheduler {
	return &PollScheduler{
		interval: interval,
		leeway:   leeway,
		poll:     poll,
		nudgeCh:  make(chan struct{}, 1),
	}
}

// Start starts the worker loop
func (s *PollScheduler) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.loop()

	logger.Named("Scheduler").Debug().
		Dur("interval", s.interval).
		Dur("leeway", s.leeway).
		Msg("started")
}

// Stop cancels the worker and waits for it to exit. An in-flight poll sees
// its context cancelled.
func (s *PollScheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	logger.Named("Scheduler").Debug().Msg("stopped")
}

// Nudge requests an early poll. Bursts collapse into a single pending nudge.
func (s *PollScheduler) Nudge() {
	select {
	case s.nudgeCh <- struct{}{}:
	default:
	}
}

func (s *PollScheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var last time.Time
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
		case <-s.nudgeCh:
			if !last.IsZero() && time.Since(last) < s.leeway {
				continue
			}
		}

		// Cancellation wins over a tick that raced with it
		if s.ctx.Err() != nil {
			return
		}
		last = time.Now()
		s.poll(s.ctx)
	}
}
