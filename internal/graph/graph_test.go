package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRejectsMalformedShapes(t *testing.T) {
	tests := []struct {
		name       string
		kind       string
		input      string
		startAtOne bool
		wantMsg    string
	}{
		{"bad json", TypeAdjMap, `[[1,`, false, "Invalid JSON format"},
		{"trailing data", TypeAdjMap, `[[1]] [2]`, false, "Invalid JSON format"},
		{"object", TypeAdjMap, `{"a":1}`, false, "Input must be an array"},
		{"adjmap row not array", TypeAdjMap, `[1,2]`, false, "Each element must be an array of adjacent nodes"},
		{"adjmap out of range", TypeAdjMap, `[[1],[2]]`, false, "Invalid node indices in adjacency map (must be between 0 and 1)"},
		{"adjmap zero when starting at one", TypeAdjMap, `[[0],[1]]`, true, "Invalid node indices in adjacency map (must be between 1 and 2)"},
		{"adjmap fractional", TypeAdjMap, `[[0.5]]`, false, "Invalid node indices in adjacency map (must be between 0 and 0)"},
		{"edge too long", TypeEdgeList, `[[0,1,2,3]]`, false, "Each element must be a pair [source, target] or triple [source, target, weight]"},
		{"edge string node", TypeEdgeList, `[["a",1]]`, false, "Nodes must be integers and weight (if present) must be a number"},
		{"edge string weight", TypeEdgeList, `[[0,1,"x"]]`, false, "Nodes must be integers and weight (if present) must be a number"},
		{"tree without -1", TypeTree, `[1,2,3]`, false, "Tree must use -1 for empty nodes"},
		{"tree with null", TypeTree, `[1,null,-1]`, false, "Tree must use -1 for empty nodes"},
		{"binary tree without null", TypeBinaryTree, `[1,2,3]`, false, "Binary tree must use null for empty nodes"},
		{"tree with string", TypeBinaryTree, `[1,"2",null]`, false, "Tree nodes must be integers, null, or -1"},
		{"unknown type", "dag", `[]`, false, "Invalid graph type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.kind, []byte(tt.input), tt.startAtOne)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestAdjMap(t *testing.T) {
	g, err := Validate(TypeAdjMap, []byte(`[[1,2],[2],[]]`), false)
	require.NoError(t, err)
	assert.Equal(t, []Node{{"0", "0"}, {"1", "1"}, {"2", "2"}}, g.Nodes)
	assert.Equal(t, []Link{{Source: "0", Target: "1"}, {Source: "0", Target: "2"}, {Source: "1", Target: "2"}}, g.Links)

	g, err = Validate(TypeAdjMap, []byte(`[[2],[1]]`), true)
	require.NoError(t, err)
	assert.Equal(t, "1", g.Nodes[0].ID)
	assert.Equal(t, Link{Source: "1", Target: "2"}, g.Links[0])
}

func TestEdgeListKeepsFirstSeenOrder(t *testing.T) {
	g, err := Validate(TypeEdgeList, []byte(`[[5,3,2.5],[3,9]]`), false)
	require.NoError(t, err)

	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	assert.Equal(t, []string{"5", "3", "9"}, ids)
	require.NotNil(t, g.Links[0].Weight)
	assert.InDelta(t, 2.5, *g.Links[0].Weight, 1e-9)
	assert.Nil(t, g.Links[1].Weight)
}

func TestBinaryTreeLinks(t *testing.T) {
	g, err := Validate(TypeBinaryTree, []byte(`[10,null,20,null,null,30]`), false)
	require.NoError(t, err)

	assert.Equal(t, []Node{{"0", "10"}, {"2", "20"}, {"5", "30"}}, g.Nodes)
	assert.Equal(t, []Link{{Source: "0", Target: "2"}, {Source: "2", Target: "5"}}, g.Links)
}

func TestTreeTreatsMinusOneAsEmpty(t *testing.T) {
	g, err := Validate(TypeTree, []byte(`[1,-1,3,4]`), false)
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 3)
	assert.Equal(t, []Link{{Source: "0", Target: "2"}}, g.Links)
}
