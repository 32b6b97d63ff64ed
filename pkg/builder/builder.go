// Package builder implements the in-memory canvas editing core: node
// placement, connection management, selection, and per-node configuration.
// A Builder owns exactly one workflow at a time; the UI layer above it never
// mutates the graph directly.
package builder

import (
	"maps"

	"github.com/google/uuid"

	"github.com/chatforge/flowbuilder/pkg/models"
)

// Builder edits a single workflow graph. Methods mutate the owned workflow
// synchronously; there is no shared access, the canvas session is the sole
// owner.
type Builder struct {
	workflow *models.Workflow
	selected string
	drag     DragState
}

// New wraps an existing workflow (loaded from a template or the backend)
// for editing.
func New(workflow *models.Workflow) *Builder {
	return &Builder{workflow: workflow}
}

// NewWorkflow seeds a minimal workflow: a single unconfigured trigger node
// and no connections, matching what "create new" produces in the UI.
func NewWorkflow(name string) *Builder {
	trigger := &models.WorkflowNode{
		ID:       uuid.New().String(),
		Type:     models.NodeTypeTrigger,
		Position: models.Position{X: 120, Y: 120},
		Data: models.NodeData{
			Label:  "Trigger",
			Config: map[string]any{},
		},
	}

	return &Builder{
		workflow: &models.Workflow{
			Name:        name,
			Nodes:       []*models.WorkflowNode{trigger},
			Connections: []*models.Connection{},
			StartNodeID: trigger.ID,
		},
	}
}

// Workflow returns the workflow under edit.
func (b *Builder) Workflow() *models.Workflow {
	return b.workflow
}

// AddNode places a new node of the given type at the given canvas position.
// The node starts unconfigured with an empty config map.
func (b *Builder) AddNode(nodeType models.NodeType, position models.Position) *models.WorkflowNode {
	if !nodeType.Valid() {
		return nil
	}

	node := &models.WorkflowNode{
		ID:       uuid.New().String(),
		Type:     nodeType,
		Position: position,
		Data: models.NodeData{
			Label:  defaultLabel(nodeType),
			Config: map[string]any{},
		},
	}

	b.workflow.Nodes = append(b.workflow.Nodes, node)

	return node
}

func defaultLabel(nodeType models.NodeType) string {
	switch nodeType {
	case models.NodeTypeTrigger:
		return "Trigger"
	case models.NodeTypeCondition:
		return "Condition"
	case models.NodeTypeAction:
		return "Action"
	case models.NodeTypeDelay:
		return "Delay"
	default:
		return string(nodeType)
	}
}

// Connect creates a connection between two existing nodes. When either
// endpoint is missing the call is a silent no-op and returns nil: a drag
// gesture released over empty canvas is expected interaction noise, not an
// error.
func (b *Builder) Connect(sourceID, targetID, sourceHandle, targetHandle string) *models.Connection {
	if !b.workflow.HasNode(sourceID) || !b.workflow.HasNode(targetID) {
		return nil
	}

	conn := &models.Connection{
		ID:           uuid.New().String(),
		Source:       sourceID,
		Target:       targetID,
		SourceHandle: sourceHandle,
		TargetHandle: targetHandle,
	}

	b.workflow.Connections = append(b.workflow.Connections, conn)

	return conn
}

// Select marks a node as selected, replacing any previous selection.
// Selecting the already-selected node deselects it. Unknown ids clear the
// selection.
func (b *Builder) Select(nodeID string) {
	if nodeID == b.selected || !b.workflow.HasNode(nodeID) {
		b.selected = ""
		return
	}

	b.selected = nodeID
}

// Selected returns the currently selected node, or nil.
func (b *Builder) Selected() *models.WorkflowNode {
	if b.selected == "" {
		return nil
	}

	return b.workflow.Node(b.selected)
}

// ClearSelection drops any current selection.
func (b *Builder) ClearSelection() {
	b.selected = ""
}

// UpdateNodeConfig merges config into the node's configuration and marks the
// node configured. Reapplying the same config is idempotent.
func (b *Builder) UpdateNodeConfig(nodeID string, config map[string]any) bool {
	node := b.workflow.Node(nodeID)
	if node == nil {
		return false
	}

	if node.Data.Config == nil {
		node.Data.Config = make(map[string]any, len(config))
	}

	maps.Copy(node.Data.Config, config)
	node.Data.IsConfigured = true

	return true
}

// MoveNode updates a node's canvas position.
func (b *Builder) MoveNode(nodeID string, position models.Position) bool {
	node := b.workflow.Node(nodeID)
	if node == nil {
		return false
	}

	node.Position = position

	return true
}

// DeleteNode removes the node and every connection referencing it on either
// end. Deleting the selected node clears the selection.
func (b *Builder) DeleteNode(nodeID string) bool {
	if !b.workflow.HasNode(nodeID) {
		return false
	}

	nodes := b.workflow.Nodes[:0]
	for _, node := range b.workflow.Nodes {
		if node.ID != nodeID {
			nodes = append(nodes, node)
		}
	}

	b.workflow.Nodes = nodes

	conns := b.workflow.Connections[:0]
	for _, conn := range b.workflow.Connections {
		if !conn.Touches(nodeID) {
			conns = append(conns, conn)
		}
	}

	b.workflow.Connections = conns

	if b.selected == nodeID {
		b.selected = ""
	}

	if b.workflow.StartNodeID == nodeID {
		b.workflow.StartNodeID = ""
	}

	return true
}

// RenderableConnections returns the connections whose endpoints both exist.
// Connections with missing endpoints are skipped rather than drawn dangling.
func (b *Builder) RenderableConnections() []*models.Connection {
	out := make([]*models.Connection, 0, len(b.workflow.Connections))
	for _, conn := range b.workflow.Connections {
		if b.workflow.HasNode(conn.Source) && b.workflow.HasNode(conn.Target) {
			out = append(out, conn)
		}
	}

	return out
}

// IsReady reports whether every node in the workflow has been configured.
// The save/test buttons stay enabled regardless; readiness only drives the
// status display.
func (b *Builder) IsReady() bool {
	for _, node := range b.workflow.Nodes {
		if !node.Data.IsConfigured {
			return false
		}
	}

	return len(b.workflow.Nodes) > 0
}
