package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/devricklin/teleport/internal/api"
	"github.com/devricklin/teleport/internal/biz"
	"github.com/devricklin/teleport/internal/data"
	"github.com/devricklin/teleport/internal/infra/access"
	"github.com/devricklin/teleport/internal/infra/clipboard"
	"github.com/devricklin/teleport/internal/infra/notify"
	"github.com/devricklin/teleport/internal/infra/power"
	"github.com/devricklin/teleport/internal/infra/storewatch"
	"github.com/devricklin/teleport/internal/pkg/logger"
	"github.com/devricklin/teleport/internal/server"
	"github.com/devricklin/teleport/internal/service"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Watch for new codes until interrupted",
		Long: `Start the watch engine, the local control API and the sleep/wake and
store-change integrations. Runs until SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(rootOpts, cmd)
		},
	}
}

func runDaemon(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := opts.Config()
	if err != nil {
		return err
	}
	log := logger.Named("Teleport")

	// Initialize repository layer
	repos, err := data.NewRepositories(cfg.Store.Path, cfg.State.DBPath)
	if err != nil {
		return WrapExitError(ExitFailure, "open state database", err)
	}
	defer repos.Close()

	log.Info().Str("store", cfg.Store.Path).Str("state_db", cfg.State.DBPath).Msg("repositories ready")

	// Initialize clients
	texts := cfg.Notifications.ToNotificationTexts()
	clipClient := clipboard.NewClient()
	if !clipClient.Available() {
		log.Warn().Msg("no clipboard utility found, codes cannot be copied")
	}
	notifyClient := notify.NewClient(texts.AppName)
	defer notifyClient.Close()

	// Initialize usecase layer
	ucs := biz.NewUsecases(
		repos.Message,
		repos.Preference,
		data.NewClipboardRepo(clipClient),
		data.NewNotifierRepo(notifyClient),
		texts,
	)

	// Initialize service layer
	dispatcher := service.NewDispatcher(ucs.Dispatch, 0)
	watchSvc := service.NewWatchService(
		ucs.Watch,
		ucs.Preference,
		access.NewChecker(),
		dispatcher,
		cfg.Poll.Interval(),
		cfg.Poll.Leeway(),
	)

	// Port 0 leaves the control API off
	var apiServer *api.Server
	if cfg.API.Port != 0 {
		apiServer = api.NewServer(watchSvc, ucs.Preference, cfg.API.Port)
	}

	var powerSource server.PowerSource
	if cfg.SleepSignals {
		powerSource = power.NewMonitor()
	}
	var changeSource server.ChangeSource
	if cfg.WatchStore {
		changeSource = storewatch.NewWatcher(cfg.Store.Path)
	}

	srv := server.NewTeleportServer(watchSvc, dispatcher, apiServer, powerSource, changeSource)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		return WrapExitError(ExitFailure, "start", err)
	}

	<-ctx.Done()
	log.Info().Msg("shutting down")
	srv.Stop()
	return nil
}
