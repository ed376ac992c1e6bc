package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/index/internal/graph"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Graph explorer helpers",
	}

	var (
		kind       string
		startAtOne bool
	)
	validate := &cobra.Command{
		Use:   "validate [file|-]",
		Short: "Check graph input and print its nodes and links",
		Example: `  echo '[[1,2],[2],[]]' | index graph validate --type adjmap
  index graph validate edges.json --type edgelist`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			in, err := openInput(cmd, path)
			if err != nil {
				return err
			}
			defer in.Close()
			raw, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			g, err := graph.Validate(kind, raw, startAtOne)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), g)
		},
	}
	validate.Flags().StringVarP(&kind, "type", "t", graph.TypeAdjMap, strings.Join(graph.Types(), ", "))
	validate.Flags().BoolVar(&startAtOne, "start-at-one", false, "adjmap nodes are numbered from 1")

	cmd.AddCommand(validate)
	return cmd
}
