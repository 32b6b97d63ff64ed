package shell

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatforge/flowbuilder/pkg/client"
	"github.com/chatforge/flowbuilder/pkg/models"
)

const testOrg = "org-1"

// fakeBackend is a minimal in-memory stand-in for the hosted workflow API.
type fakeBackend struct {
	workflows map[string]*models.Workflow
	failAll   atomic.Bool
	saves     atomic.Int64
	testRuns  atomic.Int64
	delay     time.Duration
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{workflows: map[string]*models.Workflow{}}
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/automation/workflows", func(w http.ResponseWriter, _ *http.Request) {
		if f.failAll.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		out := make([]*models.Workflow, 0, len(f.workflows))
		for _, wf := range f.workflows {
			out = append(out, wf)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{"workflows": out})
	})

	mux.HandleFunc("POST /api/automation/workflows", func(w http.ResponseWriter, r *http.Request) {
		f.saves.Add(1)
		time.Sleep(f.delay)

		if f.failAll.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		var wf models.Workflow
		_ = json.NewDecoder(r.Body).Decode(&wf)
		wf.ID = uuid.New().String()
		f.workflows[wf.ID] = &wf

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"workflow": &wf})
	})

	mux.HandleFunc("PUT /api/automation/workflows/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.saves.Add(1)
		time.Sleep(f.delay)

		if f.failAll.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		var wf models.Workflow
		_ = json.NewDecoder(r.Body).Decode(&wf)
		wf.ID = r.PathValue("id")
		f.workflows[wf.ID] = &wf

		_ = json.NewEncoder(w).Encode(map[string]any{"workflow": &wf})
	})

	mux.HandleFunc("POST /api/automation/workflows/test", func(w http.ResponseWriter, _ *http.Request) {
		f.testRuns.Add(1)
		time.Sleep(f.delay)

		if f.failAll.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":         "completed",
			"nodes_executed": 3,
			"execution_time": 42.0,
		})
	})

	return mux
}

func newTestShell(t *testing.T) (*Shell, *fakeBackend) {
	t.Helper()

	backend := newFakeBackend()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	c := client.New(server.URL, slog.Default())

	return New(c, testOrg, slog.Default()), backend
}

func TestShell_StartsInListMode(t *testing.T) {
	s, _ := newTestShell(t)

	assert.Equal(t, ModeList, s.Mode())
	assert.Empty(t, s.Workflows())
	assert.Nil(t, s.Builder())
}

func TestCreateNew_SwitchesToCanvasWithSeedTrigger(t *testing.T) {
	s, _ := newTestShell(t)

	s.CreateNew("Support Flow")

	assert.Equal(t, ModeCanvas, s.Mode())
	require.NotNil(t, s.Builder())

	wf := s.Builder().Workflow()
	require.Len(t, wf.Nodes, 1)
	assert.Equal(t, models.NodeTypeTrigger, wf.Nodes[0].Type)
	assert.False(t, wf.Nodes[0].Data.IsConfigured)
	assert.Empty(t, wf.Connections)
}

func TestLoadTemplate(t *testing.T) {
	s, _ := newTestShell(t)

	s.LoadTemplate("tpl-welcome-sequence")

	assert.Equal(t, ModeCanvas, s.Mode())
	require.NotNil(t, s.Builder())
	assert.False(t, s.Builder().Workflow().IsPrebuilt)
	assert.NotEmpty(t, s.Builder().Workflow().Nodes)
}

func TestLoadTemplate_UnknownStaysInList(t *testing.T) {
	s, _ := newTestShell(t)

	s.LoadTemplate("tpl-ghost")

	assert.Equal(t, ModeList, s.Mode())

	alerts := s.Alerts()
	require.NotEmpty(t, alerts)
	assert.Equal(t, AlertError, alerts[len(alerts)-1].Level)
}

func TestSave_NewWorkflowPostsAndAdoptsServerID(t *testing.T) {
	s, backend := newTestShell(t)

	s.CreateNew("Fresh Flow")
	require.True(t, s.Save(context.Background()))

	assert.Equal(t, int64(1), backend.saves.Load())
	require.Len(t, s.Workflows(), 1)

	serverID := s.Workflows()[0].ID
	assert.NotEmpty(t, serverID)
	assert.Equal(t, serverID, s.Builder().Workflow().ID)
}

func TestSave_SecondSaveUpdatesInPlace(t *testing.T) {
	s, backend := newTestShell(t)

	s.CreateNew("Fresh Flow")
	require.True(t, s.Save(context.Background()))

	require.True(t, s.Save(context.Background()))

	assert.Equal(t, int64(2), backend.saves.Load())
	assert.Len(t, s.Workflows(), 1, "second save must not duplicate the entry")
	assert.Len(t, backend.workflows, 1)
}

func TestSave_FailureLeavesCollectionUnchanged(t *testing.T) {
	s, backend := newTestShell(t)

	s.CreateNew("Fresh Flow")
	backend.failAll.Store(true)

	assert.False(t, s.Save(context.Background()))
	assert.Empty(t, s.Workflows())

	alerts := s.Alerts()
	require.NotEmpty(t, alerts)
	assert.Equal(t, AlertError, alerts[len(alerts)-1].Level)

	// The canvas session survives; the user can retry manually.
	require.NotNil(t, s.Builder())
	backend.failAll.Store(false)
	assert.True(t, s.Save(context.Background()))
	assert.Len(t, s.Workflows(), 1)
}

func TestTest_SurfacesSummary(t *testing.T) {
	s, backend := newTestShell(t)

	s.CreateNew("Flow")
	require.True(t, s.Test(context.Background()))

	assert.Equal(t, int64(1), backend.testRuns.Load())
	require.NotNil(t, s.LastTest())
	assert.Equal(t, "completed", s.LastTest().Status)
	assert.Equal(t, 3, s.LastTest().NodesExecuted)
}

func TestTest_RunsDespiteLintFindings(t *testing.T) {
	s, backend := newTestShell(t)

	// An unconfigured trigger lints dirty; the call must still go out.
	s.CreateNew("Flow")
	require.True(t, s.Test(context.Background()))
	assert.Equal(t, int64(1), backend.testRuns.Load())

	var sawWarning bool

	for _, alert := range s.Alerts() {
		if alert.Level == AlertWarning {
			sawWarning = true
		}
	}

	assert.True(t, sawWarning, "lint findings should surface as warnings")
}

func TestTest_FailureRecordsAlert(t *testing.T) {
	s, backend := newTestShell(t)

	s.CreateNew("Flow")
	backend.failAll.Store(true)

	assert.False(t, s.Test(context.Background()))
	assert.Nil(t, s.LastTest())
}

func TestBusyDebounce_SecondSubmissionRejected(t *testing.T) {
	s, backend := newTestShell(t)
	backend.delay = 150 * time.Millisecond

	s.CreateNew("Flow")

	first := make(chan bool)

	go func() {
		first <- s.Save(context.Background())
	}()

	// Wait until the first save is in flight.
	require.Eventually(t, s.Busy, time.Second, 5*time.Millisecond)

	assert.False(t, s.Save(context.Background()), "second save must be debounced")
	assert.False(t, s.Test(context.Background()), "test must be debounced while saving")

	assert.True(t, <-first)
	assert.Equal(t, int64(1), backend.saves.Load())
}

func TestBeginSave_SnapshotIgnoresLaterEdits(t *testing.T) {
	s, backend := newTestShell(t)

	s.CreateNew("Flow")
	seed := s.Builder().Workflow().Nodes[0]
	wantPos := seed.Position

	outgoing, ok := s.BeginSave()
	require.True(t, ok)

	// Edits between snapshot and submission belong to the next save.
	s.Builder().MoveNode(seed.ID, models.Position{X: wantPos.X + 640, Y: wantPos.Y})

	require.True(t, s.FinishSave(context.Background(), outgoing))

	require.Len(t, backend.workflows, 1)

	for _, wf := range backend.workflows {
		require.Len(t, wf.Nodes, 1)
		assert.Equal(t, wantPos, wf.Nodes[0].Position)
	}
}

func TestFinishSave_RunsAlongsideCanvasEdits(t *testing.T) {
	s, backend := newTestShell(t)
	backend.delay = 50 * time.Millisecond

	s.CreateNew("Flow")

	b := s.Builder()
	nodeID := b.Workflow().Nodes[0].ID

	outgoing, ok := s.BeginSave()
	require.True(t, ok)

	done := make(chan bool)

	go func() {
		done <- s.FinishSave(context.Background(), outgoing)
	}()

	// The event loop keeps editing the live builder while the request is in
	// flight; FinishSave only ever touches the snapshot.
	for i := range 200 {
		b.MoveNode(nodeID, models.Position{X: float64(i), Y: 0})
	}

	assert.True(t, <-done)
	assert.Equal(t, int64(1), backend.saves.Load())
}

func TestOpen_EditsACopy(t *testing.T) {
	s, _ := newTestShell(t)

	s.CreateNew("Flow")
	require.True(t, s.Save(context.Background()))
	s.CloseCanvas()

	saved := s.Workflows()[0]
	s.Open(saved.ID)

	require.NotNil(t, s.Builder())
	s.Builder().Workflow().Name = "Edited Name"

	assert.Equal(t, "Flow", s.Workflows()[0].Name, "collection entry must stay untouched until save")
}

func TestRefresh_FailureKeepsPreviousList(t *testing.T) {
	s, backend := newTestShell(t)

	s.CreateNew("Flow")
	require.True(t, s.Save(context.Background()))
	s.CloseCanvas()

	s.Refresh(context.Background())
	require.Len(t, s.Workflows(), 1)

	backend.failAll.Store(true)
	s.Refresh(context.Background())

	assert.Len(t, s.Workflows(), 1, "stale list beats an empty one on failure")
}

func TestSaveWithoutCanvasIsNoop(t *testing.T) {
	s, backend := newTestShell(t)

	assert.False(t, s.Save(context.Background()))
	assert.False(t, s.Test(context.Background()))
	assert.Zero(t, backend.saves.Load())
}
