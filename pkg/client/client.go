// Package client talks to the hosted workflow automation API. A single
// Client instance is constructed at startup and injected into every
// component that needs it; the server's returned representation is always
// authoritative over local state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	neturl "net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/chatforge/flowbuilder/pkg/models"
	"github.com/chatforge/flowbuilder/pkg/otelhelper"
)

const workflowsPath = "/api/automation/workflows"

// ErrRequestFailed is the uniform failure for every client operation. The
// UI surfaces it as a generic "operation failed, try again" alert; no
// structured error taxonomy crosses this boundary.
var ErrRequestFailed = errors.New("workflow service request failed")

// Client is the single injected gateway to the workflow API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	validate   *validator.Validate
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTracer overrides the tracer used for client spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = tracer
	}
}

// New creates a workflow service client for the given API base URL.
func New(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		tracer:     otel.Tracer("flowbuilder/client"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type workflowEnvelope struct {
	Workflow *models.Workflow `json:"workflow"`
}

type listEnvelope struct {
	Workflows []*models.Workflow `json:"workflows"`
}

type savePayload struct {
	models.Workflow

	OrganizationID string `json:"organization_id"`
}

type testPayload struct {
	Workflow       *models.Workflow `json:"workflow"`
	OrganizationID string           `json:"organization_id"`
}

// List fetches every saved workflow for the organization. An empty result is
// a valid, non-error state.
func (c *Client) List(ctx context.Context, organizationID string) ([]*models.Workflow, error) {
	ctx, span := c.tracer.Start(ctx, "client.List", trace.WithAttributes(
		attribute.String(otelhelper.OrganizationIDKey, organizationID),
	))
	defer span.End()

	query := neturl.Values{"organization_id": []string{organizationID}}
	url := c.baseURL + workflowsPath + "?" + query.Encode()

	var envelope listEnvelope

	if err := c.do(ctx, http.MethodGet, url, nil, &envelope); err != nil {
		otelhelper.SetError(span, err)
		c.logger.ErrorContext(ctx, "Failed to list workflows", "organization_id", organizationID, "error", err)

		return nil, err
	}

	if envelope.Workflows == nil {
		return []*models.Workflow{}, nil
	}

	return envelope.Workflows, nil
}

// Save persists the workflow: POST when it has no id yet, PUT when it does.
// On success the server's representation is returned and should replace the
// local copy; on failure local state must be left untouched by the caller.
func (c *Client) Save(ctx context.Context, workflow *models.Workflow, organizationID string) (*models.Workflow, error) {
	ctx, span := c.tracer.Start(ctx, "client.Save", trace.WithAttributes(
		attribute.String(otelhelper.WorkflowIDKey, workflow.ID),
		attribute.String(otelhelper.WorkflowNameKey, workflow.Name),
		attribute.String(otelhelper.OrganizationIDKey, organizationID),
	))
	defer span.End()

	if err := c.validate.Struct(workflow); err != nil {
		otelhelper.SetError(span, err)

		return nil, fmt.Errorf("workflow failed validation: %w", err)
	}

	method := http.MethodPost
	url := c.baseURL + workflowsPath

	if workflow.ID != "" {
		method = http.MethodPut
		url += "/" + workflow.ID
	}

	payload := savePayload{Workflow: *workflow, OrganizationID: organizationID}

	var envelope workflowEnvelope

	if err := c.do(ctx, method, url, payload, &envelope); err != nil {
		otelhelper.SetError(span, err)
		c.logger.ErrorContext(ctx, "Failed to save workflow",
			"workflow_id", workflow.ID, "method", method, "error", err)

		return nil, err
	}

	if envelope.Workflow == nil {
		err := fmt.Errorf("%w: response missing workflow", ErrRequestFailed)
		otelhelper.SetError(span, err)

		return nil, err
	}

	return envelope.Workflow, nil
}

// TestRun submits the full graph to the test-execution endpoint and returns
// whatever summary the service produced. No local validation gates the call;
// the execution service is the authority on graph well-formedness.
func (c *Client) TestRun(ctx context.Context, workflow *models.Workflow, organizationID string) (*models.TestResult, error) {
	ctx, span := c.tracer.Start(ctx, "client.TestRun", trace.WithAttributes(
		attribute.String(otelhelper.WorkflowIDKey, workflow.ID),
		attribute.String(otelhelper.OrganizationIDKey, organizationID),
	))
	defer span.End()

	payload := testPayload{Workflow: workflow, OrganizationID: organizationID}

	var result models.TestResult

	if err := c.do(ctx, http.MethodPost, c.baseURL+workflowsPath+"/test", payload, &result); err != nil {
		otelhelper.SetError(span, err)
		c.logger.ErrorContext(ctx, "Failed to test workflow", "workflow_id", workflow.ID, "error", err)

		return nil, err
	}

	return &result, nil
}

func (c *Client) do(ctx context.Context, method, url string, payload, out any) error {
	var body io.Reader

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%w: encoding request: %w", ErrRequestFailed, err)
		}

		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("%w: building request: %w", ErrRequestFailed, err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrRequestFailed, method, url, err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.WarnContext(ctx, "Failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %s %s returned status %d", ErrRequestFailed, method, url, resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %w", ErrRequestFailed, err)
	}

	return nil
}
