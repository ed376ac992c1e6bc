// Package graph validates graph explorer input and converts it to the
// node/link form the explorer draws.
package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Input types
const (
	TypeAdjMap     = "adjmap"
	TypeEdgeList   = "edgelist"
	TypeTree       = "tree"
	TypeBinaryTree = "binarytree"
)

var ErrInvalidInput = errors.New("invalid graph input")

// ValidationError carries the message shown to the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type Link struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Weight *float64 `json:"weight,omitempty"`
}

type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Types lists the accepted input types.
func Types() []string {
	return []string{TypeAdjMap, TypeEdgeList, TypeTree, TypeBinaryTree}
}

// Validate checks raw against the shape of kind and converts it.
// startAtOne only affects adjmap, where node i is then labelled i+1.
func Validate(kind string, raw []byte, startAtOne bool) (Graph, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return Graph{}, invalid("Invalid JSON format")
	}
	if dec.More() {
		return Graph{}, invalid("Invalid JSON format")
	}
	items, ok := doc.([]any)
	if !ok {
		return Graph{}, invalid("Input must be an array")
	}

	switch kind {
	case TypeAdjMap:
		return adjMap(items, startAtOne)
	case TypeEdgeList:
		return edgeList(items)
	case TypeTree, TypeBinaryTree:
		return levelOrder(kind, items)
	default:
		return Graph{}, invalid("Invalid graph type")
	}
}

func adjMap(items []any, startAtOne bool) (Graph, error) {
	offset := 0
	if startAtOne {
		offset = 1
	}
	minNode, maxNode := offset, len(items)-1+offset

	rows := make([][]int64, len(items))
	for i, it := range items {
		arr, ok := it.([]any)
		if !ok {
			return Graph{}, invalid("Each element must be an array of adjacent nodes")
		}
		for _, v := range arr {
			n, ok := asInt(v)
			if !ok || n < int64(minNode) || n > int64(maxNode) {
				return Graph{}, invalid("Invalid node indices in adjacency map (must be between %d and %d)", minNode, maxNode)
			}
			rows[i] = append(rows[i], n)
		}
	}

	g := Graph{Nodes: make([]Node, 0, len(items)), Links: []Link{}}
	for i, targets := range rows {
		id := strconv.Itoa(i + offset)
		g.Nodes = append(g.Nodes, Node{ID: id, Label: id})
		for _, t := range targets {
			g.Links = append(g.Links, Link{Source: id, Target: strconv.FormatInt(t, 10)})
		}
	}
	return g, nil
}

func edgeList(items []any) (Graph, error) {
	type edge struct {
		src, dst int64
		weight   *float64
	}
	edges := make([]edge, 0, len(items))
	for _, it := range items {
		arr, ok := it.([]any)
		if !ok || (len(arr) != 2 && len(arr) != 3) {
			return Graph{}, invalid("Each element must be a pair [source, target] or triple [source, target, weight]")
		}
		src, ok1 := asInt(arr[0])
		dst, ok2 := asInt(arr[1])
		if !ok1 || !ok2 {
			return Graph{}, invalid("Nodes must be integers and weight (if present) must be a number")
		}
		e := edge{src: src, dst: dst}
		if len(arr) == 3 {
			w, ok := asFloat(arr[2])
			if !ok {
				return Graph{}, invalid("Nodes must be integers and weight (if present) must be a number")
			}
			e.weight = &w
		}
		edges = append(edges, e)
	}

	g := Graph{Nodes: []Node{}, Links: make([]Link, 0, len(edges))}
	seen := make(map[string]bool)
	addNode := func(id string) {
		if !seen[id] {
			seen[id] = true
			g.Nodes = append(g.Nodes, Node{ID: id, Label: id})
		}
	}
	for _, e := range edges {
		src, dst := strconv.FormatInt(e.src, 10), strconv.FormatInt(e.dst, 10)
		addNode(src)
		addNode(dst)
		g.Links = append(g.Links, Link{Source: src, Target: dst, Weight: e.weight})
	}
	return g, nil
}

// levelOrder handles both tree kinds: slot i has children 2i+1 and 2i+2,
// and null or -1 marks an empty slot.
func levelOrder(kind string, items []any) (Graph, error) {
	hasNull, hasMinusOne := false, false
	labels := make([]string, len(items))
	for i, it := range items {
		if it == nil {
			if kind == TypeTree {
				return Graph{}, invalid("Tree must use -1 for empty nodes")
			}
			hasNull = true
			continue
		}
		n, ok := asInt(it)
		if !ok {
			return Graph{}, invalid("Tree nodes must be integers, null, or -1")
		}
		if n == -1 {
			hasMinusOne = true
			continue
		}
		labels[i] = strconv.FormatInt(n, 10)
	}
	if kind == TypeBinaryTree && !hasNull {
		return Graph{}, invalid("Binary tree must use null for empty nodes")
	}
	if kind == TypeTree && !hasMinusOne {
		return Graph{}, invalid("Tree must use -1 for empty nodes")
	}

	present := func(i int) bool { return i < len(labels) && labels[i] != "" }

	g := Graph{Nodes: []Node{}, Links: []Link{}}
	for i, label := range labels {
		if label == "" {
			continue
		}
		id := strconv.Itoa(i)
		g.Nodes = append(g.Nodes, Node{ID: id, Label: label})
		for _, child := range []int{2*i + 1, 2*i + 2} {
			if present(child) {
				g.Links = append(g.Links, Link{Source: id, Target: strconv.Itoa(child)})
			}
		}
	}
	return g, nil
}

func asFloat(v any) (float64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// asInt accepts whole JSON numbers, including forms like 2.0.
func asInt(v any) (int64, bool) {
	f, ok := asFloat(v)
	if !ok || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, false
	}
	return int64(f), true
}
