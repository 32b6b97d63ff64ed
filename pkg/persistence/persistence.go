// Package persistence provides the storage abstraction behind the local
// development server. The hosted backend owns production storage; this layer
// exists so the stub can serve realistic responses.
package persistence

import (
	"context"

	"github.com/chatforge/flowbuilder/pkg/models"
)

type Persistence interface {
	// Workflows returns every stored workflow for the organization, in
	// stable order. An empty result is valid.
	Workflows(ctx context.Context, organizationID string) ([]*models.Workflow, error)

	// WorkflowByID returns the stored workflow or ErrWorkflowNotFound.
	WorkflowByID(ctx context.Context, organizationID, id string) (*models.Workflow, error)

	// SaveWorkflow inserts or replaces the workflow under the organization.
	SaveWorkflow(ctx context.Context, organizationID string, workflow *models.Workflow) error

	// DeleteWorkflow removes the workflow or returns ErrWorkflowNotFound.
	DeleteWorkflow(ctx context.Context, organizationID, id string) error

	HealthCheck(ctx context.Context) error

	Close(ctx context.Context) error
}
