package builder

import "github.com/chatforge/flowbuilder/pkg/models"

// Node bounding box used for anchor placement. The canvas draws every node
// the same size; edges attach at fixed offsets on the box.
const (
	NodeWidth  = 160.0
	NodeHeight = 64.0
)

// Segment is a straight line between two canvas points. Edges are drawn as
// single segments with no routing or overlap avoidance.
type Segment struct {
	From models.Position
	To   models.Position
}

// SourceAnchor returns the point where outgoing edges leave a node: the
// middle of its right side.
func SourceAnchor(node *models.WorkflowNode) models.Position {
	return models.Position{
		X: node.Position.X + NodeWidth,
		Y: node.Position.Y + NodeHeight/2,
	}
}

// TargetAnchor returns the point where incoming edges enter a node: the
// middle of its left side.
func TargetAnchor(node *models.WorkflowNode) models.Position {
	return models.Position{
		X: node.Position.X,
		Y: node.Position.Y + NodeHeight/2,
	}
}

// EdgeSegments maps every renderable connection to its line segment.
// Connections with missing endpoints never appear here.
func (b *Builder) EdgeSegments() []Segment {
	conns := b.RenderableConnections()

	segments := make([]Segment, 0, len(conns))
	for _, conn := range conns {
		segments = append(segments, Segment{
			From: SourceAnchor(b.workflow.Node(conn.Source)),
			To:   TargetAnchor(b.workflow.Node(conn.Target)),
		})
	}

	return segments
}
