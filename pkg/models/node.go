// Package models defines the core domain models for the workflow automation builder.
package models

// NodeType represents the kind of a workflow node. The set is closed: the
// configuration panel, the canvas rendering, and the option catalog all key
// off of it.
type NodeType string

const (
	NodeTypeTrigger   NodeType = "trigger"
	NodeTypeCondition NodeType = "condition"
	NodeTypeAction    NodeType = "action"
	NodeTypeDelay     NodeType = "delay"
)

// Valid reports whether t is one of the four known node types.
func (t NodeType) Valid() bool {
	switch t {
	case NodeTypeTrigger, NodeTypeCondition, NodeTypeAction, NodeTypeDelay:
		return true
	default:
		return false
	}
}

// NodeTypes lists all node types in canvas-palette order.
func NodeTypes() []NodeType {
	return []NodeType{NodeTypeTrigger, NodeTypeCondition, NodeTypeAction, NodeTypeDelay}
}

// Position holds canvas coordinates for a node. Purely presentational;
// nothing downstream derives meaning from it.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData carries the user-editable payload of a node. IsConfigured flips
// to true once a concrete configuration option has been chosen and gates
// whether the workflow counts as ready.
type NodeData struct {
	Label        string         `json:"label"`
	Config       map[string]any `json:"config"`
	IsConfigured bool           `json:"is_configured"`
}

// WorkflowNode represents a single step placed on the canvas.
type WorkflowNode struct {
	ID       string   `json:"id"       validate:"required"`
	Type     NodeType `json:"type"     validate:"required,oneof=trigger condition action delay"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

// IsTrigger reports whether the node can serve as a workflow entry point.
func (n *WorkflowNode) IsTrigger() bool {
	return n.Type == NodeTypeTrigger
}

// Clone returns a deep copy of the node.
func (n *WorkflowNode) Clone() *WorkflowNode {
	clone := *n
	clone.Data.Config = cloneConfig(n.Data.Config)

	return &clone
}

func cloneConfig(config map[string]any) map[string]any {
	if config == nil {
		return nil
	}

	out := make(map[string]any, len(config))
	for k, v := range config {
		if nested, ok := v.(map[string]any); ok {
			out[k] = cloneConfig(nested)
			continue
		}

		out[k] = v
	}

	return out
}

// Connection is a directed edge between two nodes. Handles are optional and
// used by condition nodes to label true/false branches.
type Connection struct {
	ID           string `json:"id"               validate:"required"`
	Source       string `json:"source"           validate:"required"`
	Target       string `json:"target"           validate:"required"`
	SourceHandle string `json:"source_handle,omitempty"`
	TargetHandle string `json:"target_handle,omitempty"`
}

// Touches reports whether the connection references the node on either end.
func (c *Connection) Touches(nodeID string) bool {
	return c.Source == nodeID || c.Target == nodeID
}
