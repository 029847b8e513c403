package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/devricklin/teleport/internal/data"
	"github.com/devricklin/teleport/internal/infra/access"
	"github.com/devricklin/teleport/internal/infra/clipboard"
	"github.com/devricklin/teleport/internal/infra/notify"
)

// CheckResult reports what the daemon would be able to use.
type CheckResult struct {
	StorePath          string `json:"store_path"`
	StoreReadable      bool   `json:"store_readable"`
	StoreValid         bool   `json:"store_valid"`
	LatestTimestamp    int64  `json:"latest_timestamp,omitempty"`
	StoreError         string `json:"store_error,omitempty"`
	ClipboardAvailable bool   `json:"clipboard_available"`
	NotificationServer string `json:"notification_server,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check access to the message store, clipboard and notifications",
		Long: `Run the storage capability query, open the store read-only and probe the
clipboard and notification server. Exits with status 1 when the store
cannot be read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, cmd)
		},
	}
}

func runCheck(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := opts.Config()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	result := CheckResult{
		StorePath:          cfg.Store.Path,
		StoreReadable:      access.NewChecker().Readable(cfg.Store.Path),
		ClipboardAvailable: clipboard.NewClient().Available(),
	}

	if result.StoreReadable {
		store := data.NewChatDBRepo(cfg.Store.Path)
		if err := store.Connect(ctx); err != nil {
			result.StoreError = err.Error()
		} else {
			result.StoreValid = true
			if ts, err := store.LatestTimestamp(ctx); err == nil {
				result.LatestTimestamp = ts
			} else {
				result.StoreError = err.Error()
			}
			store.Close()
		}
	}

	notifier := notify.NewClient(cfg.Notifications.ToNotificationTexts().AppName)
	if info, err := notifier.ServerInformation(ctx); err == nil {
		result.NotificationServer = info.Name + " " + info.Version
	}
	notifier.Close()

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if err := f.Print(result, func(w io.Writer) { printCheck(w, result) }); err != nil {
		return err
	}

	if !result.StoreReadable || !result.StoreValid {
		return NewExitError(ExitFailure, "message store unavailable")
	}
	return nil
}

func printCheck(w io.Writer, r CheckResult) {
	fmt.Fprintf(w, "store:          %s\n", r.StorePath)
	fmt.Fprintf(w, "  readable:     %s\n", yesNo(r.StoreReadable))
	fmt.Fprintf(w, "  valid:        %s\n", yesNo(r.StoreValid))
	if r.StoreValid {
		fmt.Fprintf(w, "  latest:       %d\n", r.LatestTimestamp)
	}
	if r.StoreError != "" {
		fmt.Fprintf(w, "  error:        %s\n", r.StoreError)
	}
	fmt.Fprintf(w, "clipboard:      %s\n", yesNo(r.ClipboardAvailable))
	if r.NotificationServer != "" {
		fmt.Fprintf(w, "notifications:  %s\n", r.NotificationServer)
	} else {
		fmt.Fprintln(w, "notifications:  unavailable")
	}
}
