// Package shell owns the list|canvas view state and orchestrates the load,
// save, and test flows between the builder and the workflow service client.
// One workflow is edited at a time; the shell is the sole owner of the open
// canvas session.
package shell

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chatforge/flowbuilder/pkg/builder"
	"github.com/chatforge/flowbuilder/pkg/client"
	"github.com/chatforge/flowbuilder/pkg/graph"
	"github.com/chatforge/flowbuilder/pkg/models"
	"github.com/chatforge/flowbuilder/pkg/templates"
)

// Mode is the current view of the management shell.
type Mode string

const (
	ModeList   Mode = "list"
	ModeCanvas Mode = "canvas"
)

// AlertLevel classifies a user-facing message.
type AlertLevel string

const (
	AlertInfo    AlertLevel = "info"
	AlertWarning AlertLevel = "warning"
	AlertError   AlertLevel = "error"
)

// Alert is a non-blocking user-facing message. Failures degrade to alerts;
// nothing in the shell escapes as an unhandled error.
type Alert struct {
	Level   AlertLevel
	Message string
	Time    time.Time
}

const maxAlerts = 8

// Shell drives the workflow management UI state. Save, Test, and Refresh
// are called from UI command goroutines, so state is guarded by a mutex;
// the busy flag is the in-flight debounce that keeps a second submission
// from going out while one is pending.
type Shell struct {
	client         *client.Client
	organizationID string
	logger         *slog.Logger

	mu        sync.Mutex
	mode      Mode
	workflows []*models.Workflow
	builder   *builder.Builder
	persisted bool
	busy      bool
	alerts    []Alert
	lastTest  *models.TestResult
}

// New creates a shell in list mode with an empty collection. Call Refresh to
// load saved workflows.
func New(c *client.Client, organizationID string, logger *slog.Logger) *Shell {
	return &Shell{
		client:         c,
		organizationID: organizationID,
		logger:         logger,
		mode:           ModeList,
		workflows:      []*models.Workflow{},
	}
}

// Mode returns the current view mode.
func (s *Shell) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mode
}

// Workflows returns the saved workflows as of the last successful refresh.
func (s *Shell) Workflows() []*models.Workflow {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Workflow, len(s.workflows))
	copy(out, s.workflows)

	return out
}

// Builder returns the open canvas session, or nil in list mode.
func (s *Shell) Builder() *builder.Builder {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.builder
}

// Busy reports whether a save or test call is in flight. The UI greys out
// the corresponding controls while true.
func (s *Shell) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.busy
}

// Alerts returns the most recent user-facing messages, newest last.
func (s *Shell) Alerts() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Alert, len(s.alerts))
	copy(out, s.alerts)

	return out
}

// LastTest returns the most recent test-run summary, or nil.
func (s *Shell) LastTest() *models.TestResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastTest
}

// alert appends a message; callers must hold the lock.
func (s *Shell) alert(level AlertLevel, format string, args ...any) {
	s.alerts = append(s.alerts, Alert{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
		Time:    time.Now(),
	})

	if len(s.alerts) > maxAlerts {
		s.alerts = s.alerts[len(s.alerts)-maxAlerts:]
	}
}

// Refresh fetches the saved workflows for the tenant. On failure the
// previous collection is retained and an alert is recorded; an empty result
// is a valid state, not an error.
func (s *Shell) Refresh(ctx context.Context) {
	workflows, err := s.client.List(ctx, s.organizationID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load workflows", "error", err)
		s.alert(AlertError, "Could not load workflows. Try again.")

		return
	}

	s.workflows = workflows
}

// CreateNew opens the canvas with a minimal one-trigger workflow.
func (s *Shell) CreateNew(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.builder = builder.NewWorkflow(name)
	s.persisted = false
	s.mode = ModeCanvas
}

// LoadTemplate instantiates a template and opens it on the canvas.
func (s *Shell) LoadTemplate(templateID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tpl, err := templates.ByID(templateID)
	if err != nil {
		s.alert(AlertError, "Template not found.")
		return
	}

	s.builder = builder.New(templates.Instantiate(tpl))
	s.persisted = false
	s.mode = ModeCanvas
}

// Open loads a saved workflow from the current collection onto the canvas.
// The canvas edits a copy; the collection entry stays untouched until a
// save round-trips through the server.
func (s *Shell) Open(workflowID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, wf := range s.workflows {
		if wf.ID == workflowID {
			s.builder = builder.New(wf.Clone())
			s.persisted = true
			s.mode = ModeCanvas

			return
		}
	}

	s.alert(AlertError, "Workflow not found.")
}

// CloseCanvas returns to the list view, dropping any unsaved edits.
func (s *Shell) CloseCanvas() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.builder = nil
	s.persisted = false
	s.mode = ModeList
}

// Save persists the open workflow. The first save of a locally created or
// template-seeded workflow goes out without an id so the server assigns one
// (POST); later saves update in place (PUT). The server's copy replaces both
// the canvas state and the collection entry. Returns false when nothing was
// attempted: no canvas open, or a call already in flight.
//
// Save is the single-goroutine form. A UI event loop that keeps editing the
// builder while the request is in flight must call BeginSave on the loop
// goroutine and hand the snapshot to FinishSave on the command goroutine;
// the builder itself is never safe to touch off the loop goroutine.
func (s *Shell) Save(ctx context.Context) bool {
	outgoing, ok := s.BeginSave()
	if !ok {
		return false
	}

	return s.FinishSave(ctx, outgoing)
}

// BeginSave snapshots the open workflow for submission and marks a save in
// flight. It must run on the goroutine that edits the builder so later edits
// cannot tear the snapshot. Returns false when no canvas is open or a call
// is already in flight.
func (s *Shell) BeginSave() (*models.Workflow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.builder == nil || s.busy {
		return nil, false
	}

	s.busy = true
	s.warnOnLint()

	outgoing := s.builder.Workflow().Clone()
	if !s.persisted {
		// Local draft ids are canvas identity only; the server is
		// authoritative for stored ids.
		outgoing.ID = ""
	}

	return outgoing, true
}

// FinishSave submits a snapshot taken by BeginSave and applies the server's
// copy. Safe to call from a command goroutine; it only touches the snapshot
// and locked shell state.
func (s *Shell) FinishSave(ctx context.Context, outgoing *models.Workflow) bool {
	saved, err := s.client.Save(ctx, outgoing, s.organizationID)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.busy = false

	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save workflow", "error", err)
		s.alert(AlertError, "Could not save workflow. Try again.")

		return false
	}

	s.builder = builder.New(saved.Clone())
	s.persisted = true
	s.upsert(saved)
	s.alert(AlertInfo, "Workflow %q saved.", saved.Name)

	return true
}

// Test submits the open workflow to the test-execution endpoint and surfaces
// the summary. Lint findings are reported as warnings but never block the
// call. Returns false when nothing was attempted. The BeginTest/FinishTest
// split follows the same rule as Save.
func (s *Shell) Test(ctx context.Context) bool {
	outgoing, ok := s.BeginTest()
	if !ok {
		return false
	}

	return s.FinishTest(ctx, outgoing)
}

// BeginTest snapshots the open workflow for a test run and marks the call in
// flight; it must run on the goroutine that edits the builder.
func (s *Shell) BeginTest() (*models.Workflow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.builder == nil || s.busy {
		return nil, false
	}

	s.busy = true
	s.warnOnLint()

	return s.builder.Workflow().Clone(), true
}

// FinishTest submits a snapshot taken by BeginTest and records the summary.
func (s *Shell) FinishTest(ctx context.Context, outgoing *models.Workflow) bool {
	result, err := s.client.TestRun(ctx, outgoing, s.organizationID)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.busy = false

	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to test workflow", "error", err)
		s.alert(AlertError, "Test run failed. Try again.")

		return false
	}

	s.lastTest = result
	s.alert(AlertInfo, "Test %s: %d nodes executed in %.0fms.",
		result.Status, result.NodesExecuted, result.ExecutionTime)

	return true
}

// warnOnLint surfaces graph findings without blocking anything; callers must
// hold the lock and have checked that a builder is open.
func (s *Shell) warnOnLint() {
	for _, issue := range graph.Lint(s.builder.Workflow()) {
		s.alert(AlertWarning, "%s", issue.Message)
	}
}

// upsert replaces the collection entry with the server copy, or appends it;
// callers must hold the lock.
func (s *Shell) upsert(saved *models.Workflow) {
	for i, wf := range s.workflows {
		if wf.ID == saved.ID {
			s.workflows[i] = saved
			return
		}
	}

	s.workflows = append(s.workflows, saved)
}
