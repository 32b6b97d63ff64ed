// Package tui is the terminal rendition of the workflow builder: a list of
// saved workflows and templates, and a canvas where nodes are placed, linked,
// configured, and submitted to the workflow service through the shell.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chatforge/flowbuilder/pkg/builder"
	"github.com/chatforge/flowbuilder/pkg/catalog"
	"github.com/chatforge/flowbuilder/pkg/models"
	"github.com/chatforge/flowbuilder/pkg/shell"
	"github.com/chatforge/flowbuilder/pkg/templates"
)

// moveStep is how far one keypress moves a node, in canvas units.
const moveStep = 16.0

// App is the root bubbletea model. All workflow state lives in the shell;
// the app only keeps view state (cursor, pending link, config panel).
type App struct {
	ctx   context.Context
	shell *shell.Shell
	keys  KeyMap
	spin  spinner.Model

	width  int
	height int

	cursor int

	configuring bool
	options     []catalog.Option
	optionIdx   int
}

func New(ctx context.Context, s *shell.Shell) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &App{
		ctx:   ctx,
		shell: s,
		keys:  DefaultKeyMap(),
		spin:  sp,
	}
}

// Run drives the TUI until the user quits.
func Run(ctx context.Context, s *shell.Shell) error {
	program := tea.NewProgram(New(ctx, s), tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := program.Run()

	return err
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, refreshCmd(a.ctx, a.shell))
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)

		return a, cmd

	case refreshDoneMsg, saveDoneMsg, testDoneMsg:
		// The shell already applied the result; re-render only.
		a.clampCursor()
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) && a.shell.Mode() == shell.ModeList {
			return a, tea.Quit
		}

		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		if a.shell.Mode() == shell.ModeList {
			return a.updateList(msg)
		}

		return a.updateCanvas(msg)
	}

	return a, nil
}

func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Down):
		if a.cursor < a.listLen()-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Enter):
		a.openAtCursor()

	case key.Matches(msg, a.keys.New):
		a.shell.CreateNew(fmt.Sprintf("Untitled Workflow %d", len(a.shell.Workflows())+1))

	case key.Matches(msg, a.keys.Refresh):
		return a, refreshCmd(a.ctx, a.shell)
	}

	return a, nil
}

func (a *App) updateCanvas(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := a.shell.Builder()
	if b == nil {
		return a, nil
	}

	if a.configuring {
		return a.updateConfigPanel(msg, b)
	}

	switch {
	case key.Matches(msg, a.keys.Back):
		if b.Drag().Mode == builder.DragModeEdge {
			b.AbandonEdgeDrag()
			return a, nil
		}

		a.shell.CloseCanvas()
		a.clampCursor()

	case key.Matches(msg, a.keys.Cycle):
		a.selectNext(b)

	case key.Matches(msg, a.keys.Up):
		a.moveSelected(b, 0, -moveStep)
	case key.Matches(msg, a.keys.Down):
		a.moveSelected(b, 0, moveStep)
	case key.Matches(msg, a.keys.Left):
		a.moveSelected(b, -moveStep, 0)
	case key.Matches(msg, a.keys.Right):
		a.moveSelected(b, moveStep, 0)

	case key.Matches(msg, a.keys.AddTrigger):
		a.addNode(b, models.NodeTypeTrigger)
	case key.Matches(msg, a.keys.AddCondition):
		a.addNode(b, models.NodeTypeCondition)
	case key.Matches(msg, a.keys.AddAction):
		a.addNode(b, models.NodeTypeAction)
	case key.Matches(msg, a.keys.AddDelay):
		a.addNode(b, models.NodeTypeDelay)

	case key.Matches(msg, a.keys.LinkEdge):
		a.linkEdge(b)

	case key.Matches(msg, a.keys.Configure):
		a.openConfigPanel(b)

	case key.Matches(msg, a.keys.Delete):
		if selected := b.Selected(); selected != nil {
			b.DeleteNode(selected.ID)
		}

	case key.Matches(msg, a.keys.Save):
		if outgoing, ok := a.shell.BeginSave(); ok {
			return a, saveCmd(a.ctx, a.shell, outgoing)
		}

	case key.Matches(msg, a.keys.Test):
		if outgoing, ok := a.shell.BeginTest(); ok {
			return a, testCmd(a.ctx, a.shell, outgoing)
		}
	}

	return a, nil
}

func (a *App) updateConfigPanel(msg tea.KeyMsg, b *builder.Builder) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Back):
		a.configuring = false

	case key.Matches(msg, a.keys.Left), key.Matches(msg, a.keys.Up):
		if a.optionIdx > 0 {
			a.optionIdx--
		}

	case key.Matches(msg, a.keys.Right), key.Matches(msg, a.keys.Down):
		if a.optionIdx < len(a.options)-1 {
			a.optionIdx++
		}

	case key.Matches(msg, a.keys.Enter):
		selected := b.Selected()
		if selected != nil && a.optionIdx < len(a.options) {
			option := a.options[a.optionIdx]
			b.UpdateNodeConfig(selected.ID, catalog.DefaultConfig(&option))
		}

		a.configuring = false
	}

	return a, nil
}

// selectNext cycles the selection through the nodes in insertion order.
func (a *App) selectNext(b *builder.Builder) {
	nodes := b.Workflow().Nodes
	if len(nodes) == 0 {
		return
	}

	selected := b.Selected()
	if selected == nil {
		b.Select(nodes[0].ID)
		return
	}

	for i, node := range nodes {
		if node.ID == selected.ID {
			b.Select(nodes[(i+1)%len(nodes)].ID)
			return
		}
	}

	b.Select(nodes[0].ID)
}

func (a *App) moveSelected(b *builder.Builder, dx, dy float64) {
	selected := b.Selected()
	if selected == nil {
		return
	}

	pos := models.Position{X: selected.Position.X + dx, Y: selected.Position.Y + dy}
	if pos.X < 0 {
		pos.X = 0
	}

	if pos.Y < 0 {
		pos.Y = 0
	}

	b.MoveNode(selected.ID, pos)
}

// addNode places the new node to the right of the selection, or below the
// last node when nothing is selected, and selects it.
func (a *App) addNode(b *builder.Builder, nodeType models.NodeType) {
	pos := models.Position{X: 0, Y: 0}

	if selected := b.Selected(); selected != nil {
		pos = models.Position{X: selected.Position.X + builder.NodeWidth + 80, Y: selected.Position.Y}
	} else if nodes := b.Workflow().Nodes; len(nodes) > 0 {
		last := nodes[len(nodes)-1]
		pos = models.Position{X: last.Position.X, Y: last.Position.Y + builder.NodeHeight + 32}
	}

	if node := b.AddNode(nodeType, pos); node != nil {
		b.Select(node.ID)
	}
}

// linkEdge starts an edge from the selection, or completes a pending edge
// into the selection. A completed link into a vanished node drops silently,
// matching the builder's connect semantics.
func (a *App) linkEdge(b *builder.Builder) {
	selected := b.Selected()
	if selected == nil {
		return
	}

	if b.Drag().Mode == builder.DragModeEdge {
		b.CompleteEdgeDrag(selected.ID, "")
		return
	}

	b.BeginEdgeDrag(selected.ID, "")
}

func (a *App) openConfigPanel(b *builder.Builder) {
	selected := b.Selected()
	if selected == nil {
		return
	}

	options, err := catalog.Options(selected.Type)
	if err != nil || len(options) == 0 {
		return
	}

	a.options = options
	a.optionIdx = 0

	if current, ok := selected.Data.Config["option"].(string); ok {
		for i, option := range options {
			if option.ID == current {
				a.optionIdx = i
				break
			}
		}
	}

	a.configuring = true
}

func (a *App) openAtCursor() {
	workflows := a.shell.Workflows()
	if a.cursor < len(workflows) {
		a.shell.Open(workflows[a.cursor].ID)
		return
	}

	all := templates.All()
	if idx := a.cursor - len(workflows); idx < len(all) {
		a.shell.LoadTemplate(all[idx].ID)
	}
}

func (a *App) listLen() int {
	return len(a.shell.Workflows()) + len(templates.All())
}

func (a *App) clampCursor() {
	if max := a.listLen() - 1; a.cursor > max {
		a.cursor = max
	}

	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) View() string {
	var body string

	if a.shell.Mode() == shell.ModeList {
		body = a.viewList()
	} else {
		body = a.viewCanvas()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("FlowBuilder"),
		body,
		a.viewAlerts(),
		a.viewStatusBar(),
	)
}

func (a *App) viewList() string {
	var sb strings.Builder

	workflows := a.shell.Workflows()

	sb.WriteString(sectionStyle.Render("Workflows"))
	sb.WriteString("\n")

	if len(workflows) == 0 {
		sb.WriteString(listItemStyle.Render("(none saved yet)"))
		sb.WriteString("\n")
	}

	for i, wf := range workflows {
		sb.WriteString(a.listLine(i, fmt.Sprintf("%s (%d nodes)", wf.Name, len(wf.Nodes))))
	}

	sb.WriteString("\n")
	sb.WriteString(sectionStyle.Render("Templates"))
	sb.WriteString("\n")

	for i, tpl := range templates.All() {
		sb.WriteString(a.listLine(len(workflows)+i, fmt.Sprintf("%s: %s", tpl.Name, tpl.Description)))
	}

	return sb.String()
}

func (a *App) listLine(index int, text string) string {
	if index == a.cursor {
		return listSelectedStyle.String() + text + "\n"
	}

	return listItemStyle.Render(text) + "\n"
}

func (a *App) viewCanvas() string {
	b := a.shell.Builder()
	if b == nil {
		return ""
	}

	canvas := renderCanvas(b)

	if a.configuring {
		return lipgloss.JoinHorizontal(lipgloss.Top, canvas, "  ", a.viewConfigPanel(b))
	}

	if selected := b.Selected(); selected != nil {
		note := nodeSummary(selected)
		if b.Drag().Mode == builder.DragModeEdge {
			note += " | linking from " + b.Drag().NodeID
		}

		return canvas + "\n" + statusBarStyle.Render(note)
	}

	return canvas
}

func (a *App) viewConfigPanel(b *builder.Builder) string {
	selected := b.Selected()
	if selected == nil {
		return ""
	}

	var sb strings.Builder

	sb.WriteString("Configure " + selected.Data.Label + "\n\n")

	for i, option := range a.options {
		marker := "  "
		if i == a.optionIdx {
			marker = "> "
		}

		sb.WriteString(marker + option.Label + "\n")
	}

	if a.optionIdx < len(a.options) {
		sb.WriteString("\n" + a.options[a.optionIdx].Description)
	}

	return nodeBoxStyle(string(selected.Type), true).
		Width(40).
		Padding(0, 1).
		Render(sb.String())
}

func (a *App) viewAlerts() string {
	alerts := a.shell.Alerts()

	const show = 3

	if len(alerts) > show {
		alerts = alerts[len(alerts)-show:]
	}

	lines := make([]string, 0, len(alerts))

	for _, alert := range alerts {
		var style lipgloss.Style

		switch alert.Level {
		case shell.AlertError:
			style = alertErrorStyle
		case shell.AlertWarning:
			style = alertWarningStyle
		default:
			style = alertInfoStyle
		}

		lines = append(lines, style.Render(alert.Message))
	}

	return strings.Join(lines, "\n")
}

func (a *App) viewStatusBar() string {
	help := a.keys.listHelp()
	if a.shell.Mode() == shell.ModeCanvas {
		help = a.keys.canvasHelp()
	}

	busy := ""
	if a.shell.Busy() {
		busy = a.spin.View() + " working... "
	}

	if result := a.shell.LastTest(); result != nil {
		busy += fmt.Sprintf("last test: %s (%d nodes) ", result.Status, result.NodesExecuted)
	}

	return statusBarStyle.Render(busy) + helpStyle.Render(help)
}
