// Package cli holds the index command tree. Every subcommand works on the
// same packages the HTTP server uses, so the tools behave identically from
// a terminal.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "index",
		Short: "Personal start page and toolbox",
		Long: `index serves a personal start page: a search bar with suggestions,
bookmarks, and a set of small tools (password derivation, spreadsheet to
calendar conversion, random generators, graph explorer, QR codes, timer).

Without a subcommand it runs the HTTP server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	root.AddCommand(
		newServeCmd(),
		newPasswordCmd(),
		newCalendarCmd(),
		newSettingsCmd(),
		newGenerateCmd(),
		newGraphCmd(),
		newQRCmd(),
		newTimerCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// openInput returns stdin for "-" and the named file otherwise.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}

// writeOutput writes data to path, or to the command's stdout when path is
// empty or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
