package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/devricklin/teleport/internal/conf"
	"github.com/devricklin/teleport/internal/pkg/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format string // "json" | "text"
	APIURL string // overrides the local daemon address

	cfg *conf.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the teleport CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "teleport",
		Short: "Teleport - authentication codes from Messages to your clipboard",
		Long: `Teleport watches the local Messages store for new messages, extracts
one-time authentication codes and copies them to the clipboard, optionally
posting a desktop notification.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", "", "address of a running daemon (default http://127.0.0.1:$TELEPORT_API_PORT)")

	// Add subcommands
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewExtractCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewToggleCommand(opts))
	cmd.AddCommand(NewPauseCommand(opts))
	cmd.AddCommand(NewResumeCommand(opts))
	cmd.AddCommand(NewPrefsCommand(opts))

	return cmd
}

// Config loads .env, the environment and the optional YAML file once,
// then configures logging.
func (o *RootOptions) Config() (*conf.Config, error) {
	if o.cfg != nil {
		return o.cfg, nil
	}

	envErr := godotenv.Load()

	cfg, err := conf.LoadFromEnv()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid config", err)
	}

	logger.Init(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if envErr != nil {
		logger.Named("Config").Debug().Msg("no .env file found, using environment variables")
	}

	o.cfg = cfg
	return cfg, nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
