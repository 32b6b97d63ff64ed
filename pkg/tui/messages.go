package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chatforge/flowbuilder/pkg/models"
	"github.com/chatforge/flowbuilder/pkg/shell"
)

// refreshDoneMsg signals that a list reload finished. The shell already
// holds the result (or the failure alert).
type refreshDoneMsg struct{}

// saveDoneMsg signals a completed save attempt.
type saveDoneMsg struct{ attempted bool }

// testDoneMsg signals a completed test run attempt.
type testDoneMsg struct{ attempted bool }

func refreshCmd(ctx context.Context, s *shell.Shell) tea.Cmd {
	return func() tea.Msg {
		s.Refresh(ctx)
		return refreshDoneMsg{}
	}
}

// saveCmd submits a snapshot already taken by BeginSave on the update
// goroutine. The command goroutine never touches the live builder.
func saveCmd(ctx context.Context, s *shell.Shell, outgoing *models.Workflow) tea.Cmd {
	return func() tea.Msg {
		return saveDoneMsg{attempted: s.FinishSave(ctx, outgoing)}
	}
}

func testCmd(ctx context.Context, s *shell.Shell, outgoing *models.Workflow) tea.Cmd {
	return func() tea.Msg {
		return testDoneMsg{attempted: s.FinishTest(ctx, outgoing)}
	}
}
