// Package graph checks workflow graphs for structural problems: missing or
// mistyped start node, dangling connections, unreachable nodes, and cycles.
// The checks are advisory. Save and test never gate on them; the shell only
// surfaces the findings so the user can fix the graph before the execution
// service rejects it.
package graph

import (
	"fmt"

	"github.com/chatforge/flowbuilder/pkg/models"
)

// IssueCode classifies a lint finding.
type IssueCode string

const (
	IssueMissingStartNode IssueCode = "missing_start_node"
	IssueStartNotTrigger  IssueCode = "start_not_trigger"
	IssueDanglingEdge     IssueCode = "dangling_edge"
	IssueUnreachableNode  IssueCode = "unreachable_node"
	IssueCycle            IssueCode = "cycle"
	IssueUnconfiguredNode IssueCode = "unconfigured_node"
)

// Issue is a single lint finding. NodeID or ConnectionID is set depending on
// what the finding refers to.
type Issue struct {
	Code         IssueCode `json:"code"`
	NodeID       string    `json:"node_id,omitempty"`
	ConnectionID string    `json:"connection_id,omitempty"`
	Message      string    `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Code, i.Message)
}

// Lint inspects the workflow graph and returns every finding. An empty
// result means the graph is structurally clean.
func Lint(wf *models.Workflow) []Issue {
	var issues []Issue

	issues = append(issues, lintStartNode(wf)...)
	issues = append(issues, lintDanglingEdges(wf)...)
	issues = append(issues, lintReachability(wf)...)
	issues = append(issues, lintCycles(wf)...)
	issues = append(issues, lintUnconfigured(wf)...)

	return issues
}

func lintStartNode(wf *models.Workflow) []Issue {
	start := wf.StartNode()
	if start == nil {
		return []Issue{{
			Code:    IssueMissingStartNode,
			Message: "workflow has no entry node",
		}}
	}

	if !start.IsTrigger() {
		return []Issue{{
			Code:    IssueStartNotTrigger,
			NodeID:  start.ID,
			Message: fmt.Sprintf("entry node %q is a %s node, expected a trigger", start.Data.Label, start.Type),
		}}
	}

	return nil
}

func lintDanglingEdges(wf *models.Workflow) []Issue {
	var issues []Issue

	for _, conn := range wf.Connections {
		if !wf.HasNode(conn.Source) || !wf.HasNode(conn.Target) {
			issues = append(issues, Issue{
				Code:         IssueDanglingEdge,
				ConnectionID: conn.ID,
				Message:      fmt.Sprintf("connection %s references a missing node", conn.ID),
			})
		}
	}

	return issues
}

// adjacency builds the forward adjacency list, ignoring dangling edges.
func adjacency(wf *models.Workflow) map[string][]string {
	adj := make(map[string][]string, len(wf.Nodes))
	for _, node := range wf.Nodes {
		adj[node.ID] = nil
	}

	for _, conn := range wf.Connections {
		if _, ok := adj[conn.Source]; !ok {
			continue
		}

		if _, ok := adj[conn.Target]; !ok {
			continue
		}

		adj[conn.Source] = append(adj[conn.Source], conn.Target)
	}

	return adj
}

// Reachable counts the nodes a traversal starting at fromID visits,
// including the start node itself. An unknown start id counts zero.
func Reachable(wf *models.Workflow, fromID string) int {
	if !wf.HasNode(fromID) {
		return 0
	}

	return len(reachableSet(wf, fromID))
}

func reachableSet(wf *models.Workflow, fromID string) map[string]bool {
	adj := adjacency(wf)

	visited := map[string]bool{fromID: true}
	queue := []string{fromID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range adj[current] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	return visited
}

func lintReachability(wf *models.Workflow) []Issue {
	start := wf.StartNode()
	if start == nil {
		return nil // already reported by lintStartNode
	}

	visited := reachableSet(wf, start.ID)

	var issues []Issue

	for _, node := range wf.Nodes {
		if !visited[node.ID] {
			issues = append(issues, Issue{
				Code:    IssueUnreachableNode,
				NodeID:  node.ID,
				Message: fmt.Sprintf("node %q is not reachable from the entry node", node.Data.Label),
			})
		}
	}

	return issues
}

func lintCycles(wf *models.Workflow) []Issue {
	adj := adjacency(wf)

	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)

	state := make(map[string]int, len(adj))

	var issues []Issue

	var visit func(id string)
	visit = func(id string) {
		state[id] = inStack

		for _, next := range adj[id] {
			switch state[next] {
			case unvisited:
				visit(next)
			case inStack:
				issues = append(issues, Issue{
					Code:    IssueCycle,
					NodeID:  next,
					Message: fmt.Sprintf("node %s is part of a cycle", next),
				})
			}
		}

		state[id] = done
	}

	for _, node := range wf.Nodes {
		if state[node.ID] == unvisited {
			visit(node.ID)
		}
	}

	return issues
}

func lintUnconfigured(wf *models.Workflow) []Issue {
	var issues []Issue

	for _, node := range wf.Nodes {
		if !node.Data.IsConfigured {
			issues = append(issues, Issue{
				Code:    IssueUnconfiguredNode,
				NodeID:  node.ID,
				Message: fmt.Sprintf("node %q has no configuration selected", node.Data.Label),
			})
		}
	}

	return issues
}
