package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/devricklin/teleport/internal/biz/domain"
	"github.com/devricklin/teleport/internal/biz/usecase"
	"github.com/devricklin/teleport/internal/data"
)

// PrefsOptions holds flags for the prefs commands.
type PrefsOptions struct {
	Local bool // edit the state database directly instead of asking the daemon
}

// NewPrefsCommand creates the prefs command group.
func NewPrefsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PrefsOptions{}

	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change preferences",
		Long: `Show or change the persisted preferences. By default the running daemon is
asked; with --local the state database is edited directly.`,
	}
	cmd.PersistentFlags().BoolVar(&opts.Local, "local", false, "edit the state database directly")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrefs(rootOpts, opts, cmd, func(s prefsBackend) (*domain.Preferences, error) {
				return s.list()
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <flag> <true|false>",
		Short: "Change one preference",
		Long:  fmt.Sprintf("Change one preference. Flags: %v", domain.AllPreferenceFlags),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flag, err := domain.ParsePreferenceFlag(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "set", err)
			}
			value, err := strconv.ParseBool(args[1])
			if err != nil {
				return WrapExitError(ExitCommandError, "set", err)
			}
			return runPrefs(rootOpts, opts, cmd, func(s prefsBackend) (*domain.Preferences, error) {
				return s.set(flag, value)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore every preference to its default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrefs(rootOpts, opts, cmd, func(s prefsBackend) (*domain.Preferences, error) {
				return s.reset()
			})
		},
	})

	return cmd
}

// prefsBackend is either the daemon API or the state database.
type prefsBackend interface {
	list() (*domain.Preferences, error)
	set(flag domain.PreferenceFlag, value bool) (*domain.Preferences, error)
	reset() (*domain.Preferences, error)
	close() error
}

func runPrefs(rootOpts *RootOptions, opts *PrefsOptions, cmd *cobra.Command, op func(prefsBackend) (*domain.Preferences, error)) error {
	backend, err := openPrefsBackend(cmd.Context(), rootOpts, opts)
	if err != nil {
		return err
	}
	defer backend.close()

	prefs, err := op(backend)
	if err != nil {
		return WrapExitError(ExitFailure, "preferences", err)
	}

	f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
	return f.Print(prefs, func(w io.Writer) { printPrefs(w, *prefs) })
}

func openPrefsBackend(ctx context.Context, rootOpts *RootOptions, opts *PrefsOptions) (prefsBackend, error) {
	if !opts.Local {
		c, err := rootOpts.client()
		if err != nil {
			return nil, err
		}
		return &apiPrefs{client: c}, nil
	}

	cfg, err := rootOpts.Config()
	if err != nil {
		return nil, err
	}
	repo, err := data.NewPreferenceRepo(cfg.State.DBPath)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "open state database", err)
	}
	return &localPrefs{ctx: ctx, uc: usecase.NewPreferenceUsecase(repo), closer: repo.Close}, nil
}

func printPrefs(w io.Writer, prefs domain.Preferences) {
	for _, flag := range domain.AllPreferenceFlags {
		fmt.Fprintf(w, "%-24s %t\n", flag, prefs.Get(flag))
	}
}
