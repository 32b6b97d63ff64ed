package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatforge/flowbuilder/pkg/models"
)

func configured(id string, nodeType models.NodeType) *models.WorkflowNode {
	return &models.WorkflowNode{
		ID:   id,
		Type: nodeType,
		Data: models.NodeData{
			Label:        id,
			Config:       map[string]any{"option": "x"},
			IsConfigured: true,
		},
	}
}

func TestLint_CleanGraph(t *testing.T) {
	wf := &models.Workflow{
		StartNodeID: "t",
		Nodes: []*models.WorkflowNode{
			configured("t", models.NodeTypeTrigger),
			configured("a", models.NodeTypeAction),
		},
		Connections: []*models.Connection{
			{ID: "c1", Source: "t", Target: "a"},
		},
	}

	assert.Empty(t, Lint(wf))
}

func TestLint_MissingStartNode(t *testing.T) {
	wf := &models.Workflow{
		Nodes: []*models.WorkflowNode{configured("a", models.NodeTypeAction)},
	}

	issues := Lint(wf)
	require.NotEmpty(t, issues)
	assert.Equal(t, IssueMissingStartNode, issues[0].Code)
}

func TestLint_StartNodeNotTrigger(t *testing.T) {
	wf := &models.Workflow{
		StartNodeID: "a",
		Nodes:       []*models.WorkflowNode{configured("a", models.NodeTypeAction)},
	}

	issues := Lint(wf)
	require.NotEmpty(t, issues)
	assert.Equal(t, IssueStartNotTrigger, issues[0].Code)
	assert.Equal(t, "a", issues[0].NodeID)
}

func TestLint_DanglingEdge(t *testing.T) {
	wf := &models.Workflow{
		StartNodeID: "t",
		Nodes:       []*models.WorkflowNode{configured("t", models.NodeTypeTrigger)},
		Connections: []*models.Connection{
			{ID: "c1", Source: "t", Target: "ghost"},
		},
	}

	issues := Lint(wf)

	var codes []IssueCode
	for _, issue := range issues {
		codes = append(codes, issue.Code)
	}

	assert.Contains(t, codes, IssueDanglingEdge)
}

func TestLint_UnreachableNode(t *testing.T) {
	wf := &models.Workflow{
		StartNodeID: "t",
		Nodes: []*models.WorkflowNode{
			configured("t", models.NodeTypeTrigger),
			configured("a", models.NodeTypeAction),
			configured("orphan", models.NodeTypeAction),
		},
		Connections: []*models.Connection{
			{ID: "c1", Source: "t", Target: "a"},
		},
	}

	issues := Lint(wf)
	require.Len(t, issues, 1)
	assert.Equal(t, IssueUnreachableNode, issues[0].Code)
	assert.Equal(t, "orphan", issues[0].NodeID)
}

func TestLint_Cycle(t *testing.T) {
	wf := &models.Workflow{
		StartNodeID: "t",
		Nodes: []*models.WorkflowNode{
			configured("t", models.NodeTypeTrigger),
			configured("a", models.NodeTypeAction),
			configured("b", models.NodeTypeAction),
		},
		Connections: []*models.Connection{
			{ID: "c1", Source: "t", Target: "a"},
			{ID: "c2", Source: "a", Target: "b"},
			{ID: "c3", Source: "b", Target: "a"},
		},
	}

	issues := Lint(wf)

	var codes []IssueCode
	for _, issue := range issues {
		codes = append(codes, issue.Code)
	}

	assert.Contains(t, codes, IssueCycle)
}

func TestLint_UnconfiguredNode(t *testing.T) {
	wf := &models.Workflow{
		StartNodeID: "t",
		Nodes: []*models.WorkflowNode{
			configured("t", models.NodeTypeTrigger),
			{ID: "a", Type: models.NodeTypeAction, Data: models.NodeData{Label: "Action"}},
		},
		Connections: []*models.Connection{
			{ID: "c1", Source: "t", Target: "a"},
		},
	}

	issues := Lint(wf)
	require.Len(t, issues, 1)
	assert.Equal(t, IssueUnconfiguredNode, issues[0].Code)
	assert.Equal(t, "a", issues[0].NodeID)
}

func TestLint_SelfLoop(t *testing.T) {
	wf := &models.Workflow{
		StartNodeID: "t",
		Nodes: []*models.WorkflowNode{
			configured("t", models.NodeTypeTrigger),
		},
		Connections: []*models.Connection{
			{ID: "c1", Source: "t", Target: "t"},
		},
	}

	issues := Lint(wf)

	var codes []IssueCode
	for _, issue := range issues {
		codes = append(codes, issue.Code)
	}

	assert.Contains(t, codes, IssueCycle)
}

func TestReachable(t *testing.T) {
	wf := &models.Workflow{
		StartNodeID: "t",
		Nodes: []*models.WorkflowNode{
			configured("t", models.NodeTypeTrigger),
			configured("a", models.NodeTypeAction),
			configured("b", models.NodeTypeAction),
			configured("orphan", models.NodeTypeAction),
		},
		Connections: []*models.Connection{
			{ID: "c1", Source: "t", Target: "a"},
			{ID: "c2", Source: "a", Target: "b"},
		},
	}

	assert.Equal(t, 3, Reachable(wf, "t"))
	assert.Equal(t, 1, Reachable(wf, "orphan"))
	assert.Zero(t, Reachable(wf, "ghost"))
}
