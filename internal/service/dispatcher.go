package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/devricklin/teleport/internal/biz/domain"
	"github.com/devricklin/teleport/internal/biz/usecase"
	"github.com/devricklin/teleport/internal/pkg/logger"
)

const (
	defaultQueueSize = 16
	dispatchTimeout  = 5 * time.Second
)

// DispatchStats counts dispatcher outcomes since start
type DispatchStats struct {
	Copied   uint64 `json:"copied"`
	Notified uint64 `json:"notified"`
	Failed   uint64 `json:"failed"`
	Dropped  uint64 `json:"dropped"`
}

// Dispatcher performs side effects for admitted codes on its own goroutine,
// so the poll worker never waits on the clipboard or the notification server.
type Dispatcher struct {
	dispatchUC *usecase.DispatchUsecase

	queue  chan *domain.ExtractedCode
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	copied   atomic.Uint64
	notified atomic.Uint64
	failed   atomic.Uint64
	dropped  atomic.Uint64
}

// NewDispatcher creates a new dispatcher with a bounded queue
func NewDispatcher(dispatchUC *usecase.DispatchUsecase, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Dispatcher{
		dispatchUC: dispatchUC,
		queue:      make(chan *domain.ExtractedCode, queueSize),
	}
}

// Start starts the dispatch loop
func (d *Dispatcher) Start(ctx context.Context) {
	d.ctx, d.cancel = context.WithCancel(ctx)
	d.wg.Add(1)
	go d.loop()
}

// Stop stops the dispatch loop. Queued codes that were not handled yet are dropped.
func (d *Dispatcher) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
	d.wg.Wait()
}

// Submit queues a code without blocking. It returns false when the queue is full.
func (d *Dispatcher) Submit(code *domain.ExtractedCode) bool {
	select {
	case d.queue <- code:
		return true
	default:
		d.dropped.Add(1)
		logger.Named("Dispatcher").Warn().Msg("queue full, code dropped")
		return false
	}
}

// Stats returns a snapshot of the counters
func (d *Dispatcher) Stats() DispatchStats {
	return DispatchStats{
		Copied:   d.copied.Load(),
		Notified: d.notified.Load(),
		Failed:   d.failed.Load(),
		Dropped:  d.dropped.Load(),
	}
}

func (d *Dispatcher) loop() {
	defer d.wg.Done()

	for {
		select {
		case <-d.ctx.Done():
			return
		case code := <-d.queue:
			d.handle(code)
		}
	}
}

func (d *Dispatcher) handle(code *domain.ExtractedCode) {
	log := logger.Named("Dispatcher")

	ctx, cancel := context.WithTimeout(d.ctx, dispatchTimeout)
	defer cancel()

	result, err := d.dispatchUC.Dispatch(ctx, code)
	if result != nil && result.Copied {
		d.copied.Add(1)
	}
	if result != nil && result.Notified {
		d.notified.Add(1)
	}
	if err != nil {
		d.failed.Add(1)
		log.Warn().Err(err).Int64("source_ts", code.SourceTimestampMs).Msg("dispatch incomplete")
		return
	}

	log.Info().
		Int64("source_ts", code.SourceTimestampMs).
		Bool("notified", result.Notified).
		Msg("code copied to clipboard")
}
