package cli

import (
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/index/internal/generator"
)

func newGenerateCmd() *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print random test inputs as JSON",
	}
	cmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "seed for reproducible output (0 = random)")

	rng := func() *rand.Rand {
		if seed != 0 {
			return generator.Seeded(seed)
		}
		return generator.NewRand()
	}
	// gen wraps a generator call into a RunE that prints its result.
	gen := func(fn func(r *rand.Rand) (any, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			v, err := fn(rng())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), v)
		}
	}

	var (
		charset string
		length  int
	)
	str := &cobra.Command{
		Use:   "string",
		Short: "Random string",
		Args:  cobra.NoArgs,
		RunE: gen(func(r *rand.Rand) (any, error) {
			return generator.String(r, charset, length)
		}),
	}
	str.Flags().StringVar(&charset, "charset", generator.DefaultCharset, "characters to draw from")
	str.Flags().IntVarP(&length, "length", "l", generator.DefaultLength, "string length")

	var size, start int
	perm := &cobra.Command{
		Use:   "permutation",
		Short: "Shuffled run of consecutive integers",
		Args:  cobra.NoArgs,
		RunE: gen(func(r *rand.Rand) (any, error) {
			return generator.Permutation(r, size, start)
		}),
	}
	perm.Flags().IntVar(&size, "size", 10, "number of values")
	perm.Flags().IntVar(&start, "start", 1, "smallest value")

	var arr generator.ArrayOptions
	array := &cobra.Command{
		Use:   "array",
		Short: "1D or 2D array of numbers",
		Args:  cobra.NoArgs,
		RunE: gen(func(r *rand.Rand) (any, error) {
			return generator.Array(r, arr)
		}),
	}
	array.Flags().IntVar(&arr.Rows, "rows", 10, "rows (or length of a 1D array)")
	array.Flags().IntVar(&arr.Cols, "cols", 0, "columns, 0 for a 1D array")
	array.Flags().Float64Var(&arr.Min, "min", 0, "lower bound")
	array.Flags().Float64Var(&arr.Max, "max", 100, "upper bound")

	var g generator.GraphOptions
	graphCmd := &cobra.Command{
		Use:   "graph",
		Short: "Weighted graph as an adjacency or edge list",
		Args:  cobra.NoArgs,
		RunE: gen(func(r *rand.Rand) (any, error) {
			return generator.Graph(r, g)
		}),
	}
	graphCmd.Flags().StringVar(&g.Kind, "type", generator.KindAcyclic, "acyclic, bidirectional, cyclic or sparse")
	graphCmd.Flags().StringVar(&g.Format, "format", generator.FormatAdjList, "adjlist or edgelist")
	graphCmd.Flags().IntVar(&g.Nodes, "nodes", 8, "number of nodes")
	graphCmd.Flags().IntVar(&g.MinWeight, "min-weight", 1, "smallest edge weight")
	graphCmd.Flags().IntVar(&g.MaxWeight, "max-weight", 10, "largest edge weight")

	var nodes int
	tree := &cobra.Command{
		Use:   "tree",
		Short: "Rooted tree as a parent array",
		Args:  cobra.NoArgs,
		RunE: gen(func(r *rand.Rand) (any, error) {
			return generator.Tree(r, nodes)
		}),
	}
	tree.Flags().IntVar(&nodes, "nodes", 10, "number of nodes")

	var height, minValue, maxValue int
	binary := &cobra.Command{
		Use:   "binarytree",
		Short: "Binary tree as a level-order array with nulls",
		Args:  cobra.NoArgs,
		RunE: gen(func(r *rand.Rand) (any, error) {
			return generator.BinaryTree(r, height, minValue, maxValue)
		}),
	}
	binary.Flags().IntVar(&height, "height", 3, "tree height")
	binary.Flags().IntVar(&minValue, "min", 1, "smallest node value")
	binary.Flags().IntVar(&maxValue, "max", 99, "largest node value")

	cmd.AddCommand(str, perm, array, graphCmd, tree, binary)
	return cmd
}
