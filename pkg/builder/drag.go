package builder

import "github.com/chatforge/flowbuilder/pkg/models"

// DragMode enumerates the transient interaction states of the canvas. These
// are never serialized; they exist only between a press and a release.
type DragMode string

const (
	DragModeIdle DragMode = "idle"
	DragModeNode DragMode = "node"
	DragModeEdge DragMode = "edge"
)

// DragState tracks an in-progress node move or edge draw.
type DragState struct {
	Mode         DragMode
	NodeID       string // node being moved, or edge-drag origin
	SourceHandle string // handle the edge drag started from
}

// Drag returns the current interaction state.
func (b *Builder) Drag() DragState {
	if b.drag.Mode == "" {
		return DragState{Mode: DragModeIdle}
	}

	return b.drag
}

// BeginNodeDrag starts moving a node. No-op when a drag is already in
// progress or the node does not exist.
func (b *Builder) BeginNodeDrag(nodeID string) bool {
	if b.Drag().Mode != DragModeIdle || !b.workflow.HasNode(nodeID) {
		return false
	}

	b.drag = DragState{Mode: DragModeNode, NodeID: nodeID}

	return true
}

// DropNode finishes a node drag at the given position.
func (b *Builder) DropNode(position models.Position) bool {
	if b.drag.Mode != DragModeNode {
		return false
	}

	moved := b.MoveNode(b.drag.NodeID, position)
	b.drag = DragState{Mode: DragModeIdle}

	return moved
}

// BeginEdgeDrag starts drawing a connection from a node handle.
func (b *Builder) BeginEdgeDrag(sourceID, sourceHandle string) bool {
	if b.Drag().Mode != DragModeIdle || !b.workflow.HasNode(sourceID) {
		return false
	}

	b.drag = DragState{Mode: DragModeEdge, NodeID: sourceID, SourceHandle: sourceHandle}

	return true
}

// CompleteEdgeDrag releases the edge drag over a target node. The connection
// is created only when the target exists; otherwise the gesture is abandoned
// silently, same as releasing over empty canvas.
func (b *Builder) CompleteEdgeDrag(targetID, targetHandle string) *models.Connection {
	if b.drag.Mode != DragModeEdge {
		return nil
	}

	conn := b.Connect(b.drag.NodeID, targetID, b.drag.SourceHandle, targetHandle)
	b.drag = DragState{Mode: DragModeIdle}

	return conn
}

// AbandonEdgeDrag cancels an in-progress edge drag.
func (b *Builder) AbandonEdgeDrag() {
	if b.drag.Mode == DragModeEdge {
		b.drag = DragState{Mode: DragModeIdle}
	}
}
