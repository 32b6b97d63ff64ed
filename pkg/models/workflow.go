package models

import "time"

// Workflow represents a named directed graph of automation nodes. The hosted
// backend owns the durable copy; instances held here are transient in-memory
// mirrors keyed by the backend-assigned ID.
type Workflow struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"        validate:"required,min=3"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	Nodes       []*WorkflowNode `json:"nodes"`
	Connections []*Connection   `json:"connections"`
	StartNodeID string          `json:"start_node_id,omitempty"`
	IsPrebuilt  bool            `json:"is_prebuilt"`
	CreatedAt   time.Time       `json:"created_at,omitzero"`
	UpdatedAt   time.Time       `json:"updated_at,omitzero"`
}

// Node returns the node with the given ID, or nil when absent.
func (w *Workflow) Node(id string) *WorkflowNode {
	for _, node := range w.Nodes {
		if node.ID == id {
			return node
		}
	}

	return nil
}

// HasNode reports whether a node with the given ID exists in the workflow.
func (w *Workflow) HasNode(id string) bool {
	return w.Node(id) != nil
}

// ConnectionByID returns the connection with the given ID, or nil when absent.
func (w *Workflow) ConnectionByID(id string) *Connection {
	for _, conn := range w.Connections {
		if conn.ID == id {
			return conn
		}
	}

	return nil
}

// StartNode returns the designated entry node, or nil when StartNodeID is
// unset or dangling.
func (w *Workflow) StartNode() *WorkflowNode {
	if w.StartNodeID == "" {
		return nil
	}

	return w.Node(w.StartNodeID)
}

// Clone returns a deep copy of the workflow graph and metadata.
func (w *Workflow) Clone() *Workflow {
	clone := *w

	clone.Nodes = make([]*WorkflowNode, 0, len(w.Nodes))
	for _, node := range w.Nodes {
		clone.Nodes = append(clone.Nodes, node.Clone())
	}

	clone.Connections = make([]*Connection, 0, len(w.Connections))
	for _, conn := range w.Connections {
		connCopy := *conn
		clone.Connections = append(clone.Connections, &connCopy)
	}

	return &clone
}

// TestResult is the summary returned by the hosted test-execution endpoint.
// The fields are passed through to the user verbatim.
type TestResult struct {
	Status        string  `json:"status"`
	NodesExecuted int     `json:"nodes_executed"`
	ExecutionTime float64 `json:"execution_time"`
}
