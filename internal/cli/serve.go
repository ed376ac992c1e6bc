package cli

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/index/internal/app"
	"github.com/MrSnakeDoc/index/internal/config"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (configured through INDEX_* variables)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(_ *cobra.Command) error {
	a, err := app.New(config.Load())
	if err != nil {
		return err
	}
	return a.Run()
}
