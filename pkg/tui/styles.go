package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("245"))

	listItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	listSelectedStyle = lipgloss.NewStyle().
				PaddingLeft(0).
				Foreground(lipgloss.Color("212")).
				SetString("> ")

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	alertInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	alertWarningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214"))

	alertErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("239"))
)

// nodeColors maps node types onto border colors so the canvas reads at a
// glance the way the web builder's colored cards do.
var nodeColors = map[string]lipgloss.Color{
	"trigger":   lipgloss.Color("42"),
	"condition": lipgloss.Color("214"),
	"action":    lipgloss.Color("39"),
	"delay":     lipgloss.Color("135"),
}

func nodeBoxStyle(nodeType string, selected bool) lipgloss.Style {
	color, ok := nodeColors[nodeType]
	if !ok {
		color = lipgloss.Color("245")
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Width(nodeBoxWidth - 2).
		MaxHeight(nodeBoxHeight)

	if selected {
		style = style.Border(lipgloss.DoubleBorder()).Bold(true)
	}

	return style
}
