package server

import (
	"context"
	"sync"
	"time"

	"github.com/devricklin/teleport/internal/api"
	"github.com/devricklin/teleport/internal/infra/power"
	"github.com/devricklin/teleport/internal/pkg/logger"
	"github.com/devricklin/teleport/internal/service"
)

// PowerSource delivers system sleep and wake events
type PowerSource interface {
	Run(ctx context.Context, handle func(power.Event)) error
}

// ChangeSource reports that the message store changed on disk
type ChangeSource interface {
	Run(ctx context.Context, nudge func()) error
}

// TeleportServer runs the watch engine together with its system integrations
type TeleportServer struct {
	watchSvc   *service.WatchService
	dispatcher *service.Dispatcher
	apiServer  *api.Server
	power      PowerSource
	changes    ChangeSource

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTeleportServer creates a new server. apiServer, powerSource and
// changeSource may be nil to leave that integration out.
func NewTeleportServer(
	watchSvc *service.WatchService,
	dispatcher *service.Dispatcher,
	apiServer *api.Server,
	powerSource PowerSource,
	changeSource ChangeSource,
) *TeleportServer {
	return &TeleportServer{
		watchSvc:   watchSvc,
		dispatcher: dispatcher,
		apiServer:  apiServer,
		power:      powerSource,
		changes:    changeSource,
	}
}

// Start starts dispatching, watching and the integrations. A store that
// cannot be opened is logged and left stopped; it can be started later
// through the API.
func (s *TeleportServer) Start(ctx context.Context) error {
	log := logger.Named("Server")
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.dispatcher.Start(s.ctx)

	if err := s.watchSvc.StartUnlessPaused(s.ctx); err != nil {
		log.Warn().Err(err).Msg("watch engine not started")
	}

	if s.power != nil {
		s.goRun("power", func() error { return s.power.Run(s.ctx, s.handlePower) })
	}
	if s.changes != nil {
		s.goRun("storewatch", func() error { return s.changes.Run(s.ctx, s.watchSvc.Nudge) })
	}
	if s.apiServer != nil {
		s.goRun("api", s.apiServer.Start)
	}

	log.Info().Msg("started")
	return nil
}

// Stop stops everything Start started
func (s *TeleportServer) Stop() {
	s.watchSvc.Stop()

	if s.apiServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := s.apiServer.Stop(ctx); err != nil {
			logger.Named("Server").Warn().Err(err).Msg("api shutdown")
		}
		cancel()
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()

	s.dispatcher.Stop()
	logger.Named("Server").Info().Msg("stopped")
}

func (s *TeleportServer) handlePower(ev power.Event) {
	switch ev {
	case power.Sleep:
		s.watchSvc.Sleep()
	case power.Wake:
		if err := s.watchSvc.Wake(s.ctx); err != nil {
			logger.Named("Server").Warn().Err(err).Msg("restart after wake failed")
		}
	}
}

// goRun runs an integration; its failure is logged and does not stop the server
func (s *TeleportServer) goRun(name string, run func() error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := run(); err != nil {
			logger.Named("Server").Warn().Err(err).Str("integration", name).Msg("integration stopped")
		}
	}()
}
