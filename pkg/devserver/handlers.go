package devserver

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/chatforge/flowbuilder/pkg/graph"
	"github.com/chatforge/flowbuilder/pkg/models"
	"github.com/chatforge/flowbuilder/pkg/persistence"
)

type handlers struct {
	persistence persistence.Persistence
	validate    *validator.Validate
}

func newHandlers(p persistence.Persistence, v *validator.Validate) *handlers {
	return &handlers{persistence: p, validate: v}
}

type saveRequest struct {
	models.Workflow

	OrganizationID string `json:"organization_id" validate:"required"`
}

type testRequest struct {
	Workflow       *models.Workflow `json:"workflow" validate:"required"`
	OrganizationID string           `json:"organization_id" validate:"required"`
}

func (h *handlers) ListWorkflows(c fiber.Ctx) error {
	organizationID := c.Query("organization_id")
	if organizationID == "" {
		return badRequest(c, "Organization ID is required")
	}

	workflows, err := h.persistence.Workflows(c.Context(), organizationID)
	if err != nil {
		return handlePersistenceError(c, err)
	}

	return c.JSON(fiber.Map{"workflows": workflows})
}

func (h *handlers) GetWorkflow(c fiber.Ctx) error {
	organizationID := c.Query("organization_id")
	if organizationID == "" {
		return badRequest(c, "Organization ID is required")
	}

	workflow, err := h.persistence.WorkflowByID(c.Context(), organizationID, c.Params("id"))
	if err != nil {
		return handlePersistenceError(c, err)
	}

	return c.JSON(fiber.Map{"workflow": workflow})
}

func (h *handlers) CreateWorkflow(c fiber.Ctx) error {
	var req saveRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	workflow := req.Workflow.Clone()
	workflow.ID = uuid.New().String()

	now := time.Now().UTC()
	workflow.CreatedAt = now
	workflow.UpdatedAt = now

	if err := h.persistence.SaveWorkflow(c.Context(), req.OrganizationID, workflow); err != nil {
		return handlePersistenceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"workflow": workflow})
}

func (h *handlers) UpdateWorkflow(c fiber.Ctx) error {
	id := c.Params("id")

	var req saveRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	existing, err := h.persistence.WorkflowByID(c.Context(), req.OrganizationID, id)
	if err != nil {
		return handlePersistenceError(c, err)
	}

	// Last write wins. The stored id and creation time survive the update.
	workflow := req.Workflow.Clone()
	workflow.ID = id
	workflow.CreatedAt = existing.CreatedAt
	workflow.UpdatedAt = time.Now().UTC()

	if err := h.persistence.SaveWorkflow(c.Context(), req.OrganizationID, workflow); err != nil {
		return handlePersistenceError(c, err)
	}

	return c.JSON(fiber.Map{"workflow": workflow})
}

func (h *handlers) DeleteWorkflow(c fiber.Ctx) error {
	organizationID := c.Query("organization_id")
	if organizationID == "" {
		return badRequest(c, "Organization ID is required")
	}

	if err := h.persistence.DeleteWorkflow(c.Context(), organizationID, c.Params("id")); err != nil {
		return handlePersistenceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// TestWorkflow simulates an execution of the submitted graph. Nothing is
// persisted and no external side effects happen; the response reports how
// far a run starting at the trigger would get.
func (h *handlers) TestWorkflow(c fiber.Ctx) error {
	var req testRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	return c.JSON(simulateRun(req.Workflow))
}

func (h *handlers) HealthCheck(c fiber.Ctx) error {
	status := "healthy"
	httpStatus := fiber.StatusOK

	if err := h.persistence.HealthCheck(c.Context()); err != nil {
		status = "unhealthy"
		httpStatus = fiber.StatusInternalServerError
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":    status,
		"timestamp": time.Now().UTC(),
	})
}

// simulateRun walks the graph from the start node and counts the nodes a
// real execution would visit. A graph without a usable entry point fails
// the run instead of erroring the request.
func simulateRun(workflow *models.Workflow) *models.TestResult {
	start := workflow.StartNode()
	if start == nil || start.Type != models.NodeTypeTrigger {
		return &models.TestResult{Status: "failed", NodesExecuted: 0, ExecutionTime: 0}
	}

	executed := graph.Reachable(workflow, start.ID)

	status := "completed"
	if len(graph.Lint(workflow)) > 0 {
		status = "completed_with_warnings"
	}

	// Pretend each node costs a handful of milliseconds.
	return &models.TestResult{
		Status:        status,
		NodesExecuted: executed,
		ExecutionTime: float64(executed) * 5,
	}
}
