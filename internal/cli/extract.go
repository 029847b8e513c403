package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devricklin/teleport/internal/biz/domain"
)

// ExtractResult is the JSON form of extract's output.
type ExtractResult struct {
	Found bool   `json:"found"`
	Code  string `json:"code,omitempty"`
}

// NewExtractCommand creates the extract command.
func NewExtractCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <text>...",
		Short: "Print the authentication code found in text",
		Long: `Run the code matcher over text without touching the store or the clipboard.
Exits with status 1 when no code is found.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, ok := domain.ExtractCode(strings.Join(args, " "))
			f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			err := f.Print(ExtractResult{Found: ok, Code: code}, func(w io.Writer) {
				if ok {
					fmt.Fprintln(w, code)
				}
			})
			if err != nil {
				return err
			}
			if !ok {
				return NewExitError(ExitFailure, "no code found")
			}
			return nil
		},
	}
}
