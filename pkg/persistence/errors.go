package persistence

import (
	"errors"
	"fmt"
)

var (
	// ErrWorkflowNotFound indicates no workflow exists for the given id
	// within the organization.
	ErrWorkflowNotFound = errors.New("workflow not found")

	// ErrOrganizationRequired indicates a call without a tenant scope.
	ErrOrganizationRequired = errors.New("organization id is required")
)

// WorkflowError wraps workflow storage failures with operation context.
type WorkflowError struct {
	Op         string
	WorkflowID string
	Err        error
}

func (e *WorkflowError) Error() string {
	return fmt.Sprintf("%s failed for workflow %s: %v", e.Op, e.WorkflowID, e.Err)
}

func (e *WorkflowError) Unwrap() error {
	return e.Err
}

func (e *WorkflowError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewWorkflowError creates a workflow storage error with context.
func NewWorkflowError(op, workflowID string, err error) *WorkflowError {
	return &WorkflowError{Op: op, WorkflowID: workflowID, Err: err}
}

// IsWorkflowNotFound checks whether an error indicates a missing workflow.
func IsWorkflowNotFound(err error) bool {
	return errors.Is(err, ErrWorkflowNotFound)
}

// IsOrganizationRequired checks whether an error indicates a missing tenant scope.
func IsOrganizationRequired(err error) bool {
	return errors.Is(err, ErrOrganizationRequired)
}
