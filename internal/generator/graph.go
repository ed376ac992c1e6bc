package generator

import (
	"fmt"
	"math/rand/v2"
)

// Graph kinds
const (
	KindAcyclic       = "acyclic"
	KindBidirectional = "bidirectional"
	KindCyclic        = "cyclic"
	KindSparse        = "sparse"
)

// Output formats
const (
	FormatAdjList  = "adjlist"
	FormatEdgeList = "edgelist"
)

const (
	MaxNodes      = 500
	MaxTreeHeight = 16
)

type GraphOptions struct {
	Kind      string `json:"kind"`
	Format    string `json:"format"`
	Nodes     int    `json:"nodes"`
	MinWeight int    `json:"min_weight"`
	MaxWeight int    `json:"max_weight"`
}

// Edge is [source, target, weight].
type Edge [3]int

// Graph returns [][]int for adjlist and []Edge for edgelist.
func Graph(r *rand.Rand, opts GraphOptions) (any, error) {
	if opts.Nodes < 1 || opts.Nodes > MaxNodes {
		return nil, fmt.Errorf("%w: nodes must be between 1 and %d", ErrInvalidOptions, MaxNodes)
	}
	if err := checkBounds("weight", opts.MinWeight, opts.MaxWeight); err != nil {
		return nil, err
	}

	var edges []Edge
	switch opts.Kind {
	case KindAcyclic:
		edges = acyclic(r, opts)
	case KindBidirectional:
		edges = bidirectional(r, opts)
	case KindCyclic:
		edges = cyclic(r, opts)
	case KindSparse:
		edges = sparse(r, opts)
	default:
		return nil, fmt.Errorf("%w: unknown graph kind %q", ErrInvalidOptions, opts.Kind)
	}

	switch opts.Format {
	case FormatEdgeList:
		if edges == nil {
			edges = []Edge{}
		}
		return edges, nil
	case FormatAdjList, "":
		adj := make([][]int, opts.Nodes)
		for i := range adj {
			adj[i] = []int{}
		}
		for _, e := range edges {
			adj[e[0]] = append(adj[e[0]], e[1])
		}
		return adj, nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidOptions, opts.Format)
	}
}

func weight(r *rand.Rand, opts GraphOptions) int {
	return intBetween(r, opts.MinWeight, opts.MaxWeight)
}

// acyclic only adds edges i -> j with j > i, so no cycle can form.
func acyclic(r *rand.Rand, opts GraphOptions) []Edge {
	var edges []Edge
	n := opts.Nodes
	for i := 0; i < n-1; i++ {
		targets := make([]int, 0, n-i-1)
		for j := i + 1; j < n; j++ {
			targets = append(targets, j)
		}
		count := r.IntN(len(targets)) + 1
		for k := 0; k < count; k++ {
			idx := r.IntN(len(targets))
			edges = append(edges, Edge{i, targets[idx], weight(r, opts)})
			targets = append(targets[:idx], targets[idx+1:]...)
		}
	}
	return edges
}

// bidirectional links each pair with probability 1/2, in both directions
// with the same weight.
func bidirectional(r *rand.Rand, opts GraphOptions) []Edge {
	var edges []Edge
	for i := 0; i < opts.Nodes; i++ {
		for j := i + 1; j < opts.Nodes; j++ {
			if r.Float64() > 0.5 {
				w := weight(r, opts)
				edges = append(edges, Edge{i, j, w}, Edge{j, i, w})
			}
		}
	}
	return edges
}

// cyclic starts from the ring 0 -> 1 -> ... -> n-1 -> 0 and adds extra
// edges with probability 0.3.
func cyclic(r *rand.Rand, opts GraphOptions) []Edge {
	n := opts.Nodes
	edges := make([]Edge, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, Edge{i, (i + 1) % n, weight(r, opts)})
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j || j == (i+1)%n {
				continue
			}
			if r.Float64() > 0.7 {
				edges = append(edges, Edge{i, j, weight(r, opts)})
			}
		}
	}
	return edges
}

// sparse gives each node a 30% chance of one or two outgoing edges.
func sparse(r *rand.Rand, opts GraphOptions) []Edge {
	var edges []Edge
	n := opts.Nodes
	for i := 0; i < n; i++ {
		if r.Float64() <= 0.7 {
			continue
		}
		count := r.IntN(2) + 1
		for k := 0; k < count; k++ {
			target := r.IntN(n)
			if target == i {
				continue
			}
			edges = append(edges, Edge{i, target, weight(r, opts)})
		}
	}
	return edges
}

// Tree returns a parent array: parents[i] is the parent of node i and the
// root, node n-1, has -1. Every other node points to a higher index.
func Tree(r *rand.Rand, n int) ([]int, error) {
	if n < 1 || n > MaxNodes {
		return nil, fmt.Errorf("%w: nodes must be between 1 and %d", ErrInvalidOptions, MaxNodes)
	}
	parents := make([]int, n)
	for i := 0; i < n-1; i++ {
		parents[i] = intBetween(r, i+1, n-1)
	}
	parents[n-1] = -1
	return parents, nil
}

// BinaryTree returns a level-order array of 2^height-1 slots. Empty slots
// are nil. The root is always present and each child of a present node
// appears with probability 0.7.
func BinaryTree(r *rand.Rand, height, minValue, maxValue int) ([]*int, error) {
	if height < 1 || height > MaxTreeHeight {
		return nil, fmt.Errorf("%w: height must be between 1 and %d", ErrInvalidOptions, MaxTreeHeight)
	}
	if err := checkBounds("value", minValue, maxValue); err != nil {
		return nil, err
	}

	size := 1<<height - 1
	slots := make([]*int, size)
	value := func() *int {
		v := intBetween(r, minValue, maxValue)
		return &v
	}

	slots[0] = value()
	for i := 0; i < size; i++ {
		if slots[i] == nil {
			continue
		}
		for _, child := range []int{2*i + 1, 2*i + 2} {
			if child < size && r.Float64() > 0.3 {
				slots[child] = value()
			}
		}
	}
	return slots, nil
}
