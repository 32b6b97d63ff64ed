// Package file provides file-based persistence: one JSON document per
// workflow under <root>/<organization>/.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/chatforge/flowbuilder/pkg/models"
	"github.com/chatforge/flowbuilder/pkg/persistence"
)

// Persistence implements persistence.Persistence on the local filesystem.
// A mutex serializes writes; the stub server handles one request at a time
// per workflow in practice, but fiber handlers run concurrently.
type Persistence struct {
	root string
	mu   sync.RWMutex
}

// NewPersistence creates a file persistence rooted at the given directory.
// Accepts both a plain path and a file:// URL.
func NewPersistence(root string) *Persistence {
	return &Persistence{root: strings.TrimPrefix(root, "file://")}
}

func (p *Persistence) orgDir(organizationID string) string {
	return filepath.Join(p.root, organizationID)
}

func (p *Persistence) workflowPath(organizationID, id string) string {
	return filepath.Join(p.orgDir(organizationID), id+".json")
}

func (p *Persistence) Workflows(_ context.Context, organizationID string) ([]*models.Workflow, error) {
	if organizationID == "" {
		return nil, persistence.ErrOrganizationRequired
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	entries, err := os.ReadDir(p.orgDir(organizationID))
	if errors.Is(err, fs.ErrNotExist) {
		return []*models.Workflow{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}

	workflows := make([]*models.Workflow, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		wf, err := p.read(p.workflowPath(organizationID, strings.TrimSuffix(entry.Name(), ".json")))
		if err != nil {
			return nil, err
		}

		workflows = append(workflows, wf)
	}

	sort.Slice(workflows, func(i, j int) bool {
		if workflows[i].CreatedAt.Equal(workflows[j].CreatedAt) {
			return workflows[i].ID < workflows[j].ID
		}

		return workflows[i].CreatedAt.Before(workflows[j].CreatedAt)
	})

	return workflows, nil
}

func (p *Persistence) WorkflowByID(_ context.Context, organizationID, id string) (*models.Workflow, error) {
	if organizationID == "" {
		return nil, persistence.ErrOrganizationRequired
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	wf, err := p.read(p.workflowPath(organizationID, id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, persistence.NewWorkflowError("WorkflowByID", id, persistence.ErrWorkflowNotFound)
	}

	return wf, err
}

func (p *Persistence) SaveWorkflow(_ context.Context, organizationID string, workflow *models.Workflow) error {
	if organizationID == "" {
		return persistence.ErrOrganizationRequired
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := os.MkdirAll(p.orgDir(organizationID), 0o755); err != nil {
		return fmt.Errorf("failed to create organization directory: %w", err)
	}

	data, err := json.MarshalIndent(workflow, "", "  ")
	if err != nil {
		return persistence.NewWorkflowError("SaveWorkflow", workflow.ID, err)
	}

	if err := os.WriteFile(p.workflowPath(organizationID, workflow.ID), data, 0o644); err != nil {
		return persistence.NewWorkflowError("SaveWorkflow", workflow.ID, err)
	}

	return nil
}

func (p *Persistence) DeleteWorkflow(_ context.Context, organizationID, id string) error {
	if organizationID == "" {
		return persistence.ErrOrganizationRequired
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err := os.Remove(p.workflowPath(organizationID, id))
	if errors.Is(err, fs.ErrNotExist) {
		return persistence.NewWorkflowError("DeleteWorkflow", id, persistence.ErrWorkflowNotFound)
	}

	return err
}

func (p *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(p.root); err != nil {
		return fmt.Errorf("persistence root unavailable: %w", err)
	}

	return nil
}

func (p *Persistence) Close(_ context.Context) error {
	return nil
}

func (p *Persistence) read(path string) (*models.Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wf models.Workflow

	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("failed to decode workflow file %s: %w", path, err)
	}

	return &wf, nil
}
