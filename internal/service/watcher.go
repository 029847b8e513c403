package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/devricklin/teleport/internal/biz/domain"
	"github.com/devricklin/teleport/internal/biz/repo"
	"github.com/devricklin/teleport/internal/biz/usecase"
	"github.com/devricklin/teleport/internal/pkg/logger"
)

// Status is a point-in-time view of the watch engine
type Status struct {
	Running     bool          `json:"running"`
	Paused      bool          `json:"paused"`
	StorePath   string        `json:"store_path"`
	WatermarkMs int64         `json:"watermark_ms"`
	HasEmitted  bool          `json:"has_emitted"`
	Polls       uint64        `json:"polls"`
	LastError   string        `json:"last_error,omitempty"`
	StartedAt   *time.Time    `json:"started_at,omitempty"`
	Dispatch    DispatchStats `json:"dispatch"`
}

// WatchService is the lifecycle controller of the watch engine
type WatchService struct {
	watchUC    *usecase.WatchUsecase
	prefUC     *usecase.PreferenceUsecase
	access     repo.AccessChecker
	dispatcher *Dispatcher

	interval time.Duration
	leeway   time.Duration

	// mu serializes lifecycle transitions
	mu        sync.Mutex
	scheduler *PollScheduler
	state     *domain.EngineState // owned by the scheduler worker while running

	snapMu sync.RWMutex
	snap   Status
}

// NewWatchService creates a new watch service
func NewWatchService(
	watchUC *usecase.WatchUsecase,
	prefUC *usecase.PreferenceUsecase,
	access repo.AccessChecker,
	dispatcher *Dispatcher,
	interval, leeway time.Duration,
) *WatchService {
	return &WatchService{
		watchUC:    watchUC,
		prefUC:     prefUC,
		access:     access,
		dispatcher: dispatcher,
		interval:   interval,
		leeway:     leeway,
		snap:       Status{StorePath: watchUC.StorePath()},
	}
}

// Start connects to the store, anchors the watermark at the newest existing
// message and begins polling. Starting a running service is a no-op.
func (s *WatchService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked(ctx)
}

func (s *WatchService) startLocked(ctx context.Context) error {
	log := logger.Named("Watcher")

	if s.scheduler != nil {
		return nil
	}

	path := s.watchUC.StorePath()
	if s.access != nil && !s.access.Readable(path) {
		err := &domain.ConnectionError{Path: path, Err: domain.ErrStoreUnreadable}
		s.recordError(err)
		log.Warn().Str("path", path).Msg("store not readable, not starting")
		return err
	}

	state, err := s.watchUC.Open(ctx)
	if err != nil {
		s.recordError(err)
		log.Error().Err(err).Msg("failed to open store")
		return err
	}
	s.state = state

	// The worker outlives the request that started it
	s.scheduler = NewPollScheduler(s.interval, s.leeway, s.tick)
	s.scheduler.Start(context.WithoutCancel(ctx))

	now := time.Now()
	s.snapMu.Lock()
	s.snap.Running = true
	s.snap.WatermarkMs = state.WatermarkMs
	s.snap.HasEmitted = false
	s.snap.LastError = ""
	s.snap.StartedAt = &now
	s.snapMu.Unlock()

	log.Info().Str("path", path).Int64("watermark", state.WatermarkMs).Msg("watching")
	return nil
}

// Stop halts polling and releases the store. Stopping a stopped service is a no-op.
func (s *WatchService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *WatchService) stopLocked() {
	if s.scheduler == nil {
		return
	}

	s.scheduler.Stop()
	s.scheduler = nil

	if err := s.watchUC.Close(); err != nil {
		logger.Named("Watcher").Warn().Err(err).Msg("failed to close store")
	}
	s.state.Running = false
	s.state = nil

	s.snapMu.Lock()
	s.snap.Running = false
	s.snap.StartedAt = nil
	s.snapMu.Unlock()

	logger.Named("Watcher").Info().Msg("stopped")
}

// Toggle stops a running service or starts a stopped one and reports whether it now runs
func (s *WatchService) Toggle(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduler != nil {
		s.stopLocked()
		return false, nil
	}
	if err := s.startLocked(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Sleep is called when the machine is about to sleep
func (s *WatchService) Sleep() {
	logger.Named("Watcher").Debug().Msg("system sleep")
	s.Stop()
}

// Wake is called when the machine woke up. A user pause is respected.
func (s *WatchService) Wake(ctx context.Context) error {
	logger.Named("Watcher").Debug().Msg("system wake")
	return s.StartUnlessPaused(ctx)
}

// StartUnlessPaused starts watching unless the user paused it
func (s *WatchService) StartUnlessPaused(ctx context.Context) error {
	if s.prefUC != nil && s.prefUC.IsPaused(ctx) {
		logger.Named("Watcher").Info().Msg("paused, not starting")
		return nil
	}
	return s.Start(ctx)
}

// Pause stops watching and remembers the choice across wake and restart
func (s *WatchService) Pause(ctx context.Context) error {
	if s.prefUC != nil {
		if err := s.prefUC.SetPaused(ctx, true); err != nil {
			return err
		}
	}
	s.Stop()
	return nil
}

// Resume clears a user pause and starts watching
func (s *WatchService) Resume(ctx context.Context) error {
	if s.prefUC != nil {
		if err := s.prefUC.SetPaused(ctx, false); err != nil {
			return err
		}
	}
	return s.Start(ctx)
}

// Running reports whether the engine polls
func (s *WatchService) Running() bool {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return s.snap.Running
}

// Nudge asks for an early poll when running
func (s *WatchService) Nudge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scheduler != nil {
		s.scheduler.Nudge()
	}
}

// Status returns a snapshot of the engine
func (s *WatchService) Status(ctx context.Context) Status {
	s.snapMu.RLock()
	st := s.snap
	s.snapMu.RUnlock()

	if s.prefUC != nil {
		st.Paused = s.prefUC.IsPaused(ctx)
	}
	if s.dispatcher != nil {
		st.Dispatch = s.dispatcher.Stats()
	}
	return st
}

// tick runs on the scheduler worker and is the only code that touches s.state
func (s *WatchService) tick(ctx context.Context) {
	log := logger.Named("Watcher")

	result, err := s.watchUC.Poll(ctx, s.state)
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return
		}
		s.recordError(err)
		log.Warn().Err(err).Msg("poll failed, retrying next tick")
		return
	}

	for _, code := range result.Codes {
		if s.dispatcher != nil {
			s.dispatcher.Submit(code)
		}
	}
	if result.Suppressed > 0 {
		log.Debug().Int("suppressed", result.Suppressed).Msg("repeated code ignored")
	}

	s.snapMu.Lock()
	s.snap.Polls++
	s.snap.WatermarkMs = result.Watermark
	s.snap.HasEmitted = s.state.HasEmitted()
	s.snap.LastError = ""
	s.snapMu.Unlock()
}

func (s *WatchService) recordError(err error) {
	s.snapMu.Lock()
	s.snap.LastError = err.Error()
	s.snapMu.Unlock()
}
