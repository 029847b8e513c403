package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/devricklin/teleport/internal/api"
	"github.com/devricklin/teleport/internal/service"
)

// client returns an API client for the running daemon.
func (o *RootOptions) client() (*api.Client, error) {
	if o.APIURL != "" {
		return api.NewClient(o.APIURL), nil
	}
	cfg, err := o.Config()
	if err != nil {
		return nil, err
	}
	if cfg.API.Port == 0 {
		return nil, NewExitError(ExitCommandError, "control API disabled (TELEPORT_API_PORT=0)")
	}
	return api.NewLocalClient(cfg.API.Port), nil
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return controlCommand(rootOpts, "status", "Show whether the daemon is watching",
		func(c *api.Client) (*service.Status, error) { return c.Status() })
}

// NewToggleCommand creates the toggle command.
func NewToggleCommand(rootOpts *RootOptions) *cobra.Command {
	return controlCommand(rootOpts, "toggle", "Start watching if stopped, stop if watching",
		func(c *api.Client) (*service.Status, error) { return c.Toggle() })
}

// NewPauseCommand creates the pause command.
func NewPauseCommand(rootOpts *RootOptions) *cobra.Command {
	return controlCommand(rootOpts, "pause", "Stop watching, also across sleep and restarts",
		func(c *api.Client) (*service.Status, error) { return c.Pause() })
}

// NewResumeCommand creates the resume command.
func NewResumeCommand(rootOpts *RootOptions) *cobra.Command {
	return controlCommand(rootOpts, "resume", "Clear a pause and start watching",
		func(c *api.Client) (*service.Status, error) { return c.Resume() })
}

func controlCommand(rootOpts *RootOptions, use, short string, call func(*api.Client) (*service.Status, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := rootOpts.client()
			if err != nil {
				return err
			}
			st, err := call(c)
			if err != nil {
				return WrapExitError(ExitFailure, use, err)
			}
			f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return f.Print(st, func(w io.Writer) { printStatus(w, st) })
		},
	}
}

func printStatus(w io.Writer, st *service.Status) {
	state := "stopped"
	switch {
	case st.Running:
		state = "watching"
	case st.Paused:
		state = "paused"
	}
	fmt.Fprintf(w, "state:      %s\n", state)
	fmt.Fprintf(w, "store:      %s\n", st.StorePath)
	if st.StartedAt != nil {
		fmt.Fprintf(w, "since:      %s\n", st.StartedAt.Format(time.RFC3339))
	}
	fmt.Fprintf(w, "watermark:  %d\n", st.WatermarkMs)
	fmt.Fprintf(w, "polls:      %d\n", st.Polls)
	fmt.Fprintf(w, "copied:     %d\n", st.Dispatch.Copied)
	fmt.Fprintf(w, "notified:   %d\n", st.Dispatch.Notified)
	if st.LastError != "" {
		fmt.Fprintf(w, "last error: %s\n", st.LastError)
	}
}
