package tui

import (
	"fmt"
	"strings"

	"github.com/chatforge/flowbuilder/pkg/builder"
	"github.com/chatforge/flowbuilder/pkg/models"
)

// The canvas maps builder coordinates onto terminal cells. One cell is
// cellW canvas units wide and cellH units tall, so a node box spans
// nodeBoxWidth by nodeBoxHeight cells.
const (
	cellW = 8.0
	cellH = 16.0

	nodeBoxWidth  = int(builder.NodeWidth / cellW)
	nodeBoxHeight = int(builder.NodeHeight / cellH)
)

// canvasGrid is a rune buffer the canvas view draws into. Edges are drawn
// first so node boxes paint over them.
type canvasGrid struct {
	cells [][]rune
	w, h  int
}

func newCanvasGrid(w, h int) *canvasGrid {
	cells := make([][]rune, h)
	for i := range cells {
		cells[i] = make([]rune, w)
		for j := range cells[i] {
			cells[i][j] = ' '
		}
	}

	return &canvasGrid{cells: cells, w: w, h: h}
}

func (g *canvasGrid) set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}

	g.cells[y][x] = r
}

func (g *canvasGrid) setString(x, y int, s string) {
	for i, r := range []rune(s) {
		g.set(x+i, y, r)
	}
}

func (g *canvasGrid) String() string {
	lines := make([]string, g.h)
	for i, row := range g.cells {
		lines[i] = strings.TrimRight(string(row), " ")
	}

	return strings.Join(lines, "\n")
}

func cellX(x float64) int { return int(x / cellW) }
func cellY(y float64) int { return int(y / cellH) }

// renderCanvas draws the open workflow as boxes and L-shaped edge lines.
func renderCanvas(b *builder.Builder) string {
	wf := b.Workflow()

	maxX, maxY := 0, 0

	for _, node := range wf.Nodes {
		if x := cellX(node.Position.X) + nodeBoxWidth; x > maxX {
			maxX = x
		}

		if y := cellY(node.Position.Y) + nodeBoxHeight; y > maxY {
			maxY = y
		}
	}

	grid := newCanvasGrid(maxX+2, maxY+1)

	for _, seg := range b.EdgeSegments() {
		drawEdge(grid, seg)
	}

	selected := b.Selected()

	for _, node := range wf.Nodes {
		drawNode(grid, node, selected != nil && selected.ID == node.ID)
	}

	return grid.String()
}

// drawEdge draws source to target as horizontal, vertical, horizontal runs
// with an arrowhead at the target anchor.
func drawEdge(g *canvasGrid, seg builder.Segment) {
	sx, sy := cellX(seg.From.X), cellY(seg.From.Y)
	tx, ty := cellX(seg.To.X), cellY(seg.To.Y)

	midX := sx + (tx-sx)/2
	if midX < sx {
		midX = sx
	}

	for x := sx; x <= midX; x++ {
		g.set(x, sy, '─')
	}

	if sy != ty {
		g.set(midX, sy, cornerRune(sy, ty, true))

		step := 1
		if ty < sy {
			step = -1
		}

		for y := sy + step; y != ty; y += step {
			g.set(midX, y, '│')
		}

		g.set(midX, ty, cornerRune(sy, ty, false))
	}

	for x := midX + 1; x < tx; x++ {
		g.set(x, ty, '─')
	}

	g.set(tx-1, ty, '▶')
}

func cornerRune(fromY, toY int, atSource bool) rune {
	if toY > fromY {
		if atSource {
			return '┐'
		}

		return '└'
	}

	if atSource {
		return '┘'
	}

	return '┌'
}

func drawNode(g *canvasGrid, node *models.WorkflowNode, selected bool) {
	x, y := cellX(node.Position.X), cellY(node.Position.Y)
	w, h := nodeBoxWidth, nodeBoxHeight

	horizontal, vertical := '─', '│'
	corners := [4]rune{'┌', '┐', '└', '┘'}

	if selected {
		horizontal, vertical = '═', '║'
		corners = [4]rune{'╔', '╗', '╚', '╝'}
	}

	g.set(x, y, corners[0])
	g.set(x+w-1, y, corners[1])
	g.set(x, y+h-1, corners[2])
	g.set(x+w-1, y+h-1, corners[3])

	for i := 1; i < w-1; i++ {
		g.set(x+i, y, horizontal)
		g.set(x+i, y+h-1, horizontal)
	}

	for i := 1; i < h-1; i++ {
		g.set(x, y+i, vertical)
		g.set(x+w-1, y+i, vertical)
	}

	g.setString(x+2, y+1, truncate(node.Data.Label, w-4))

	tag := string(node.Type)
	if !node.Data.IsConfigured {
		tag += " !"
	}

	g.setString(x+2, y+2, truncate(tag, w-4))
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= width {
		return s
	}

	if width == 1 {
		return "…"
	}

	return string(runes[:width-1]) + "…"
}

// nodeSummary is the single-line form used by the side panel and alerts.
func nodeSummary(node *models.WorkflowNode) string {
	state := "unconfigured"
	if node.Data.IsConfigured {
		if opt, ok := node.Data.Config["option"].(string); ok {
			state = opt
		} else {
			state = "configured"
		}
	}

	return fmt.Sprintf("%s (%s, %s)", node.Data.Label, node.Type, state)
}
