// Package catalog exposes the fixed set of configuration options available
// for each node type and validates node configuration against the option's
// JSON schema before it is applied to the canvas.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/xeipuuv/gojsonschema"

	"github.com/chatforge/flowbuilder/pkg/models"
)

var (
	// ErrUnknownNodeType indicates a node type outside the closed variant set.
	ErrUnknownNodeType = errors.New("unknown node type")

	// ErrUnknownOption indicates an option id not present in the catalog for
	// the given node type.
	ErrUnknownOption = errors.New("unknown configuration option")
)

// Option describes one selectable configuration entry for a node type. The
// label and description populate the configuration panel; the schema governs
// what a valid config for the option looks like.
type Option struct {
	ID          string             `json:"id"`
	NodeType    models.NodeType    `json:"node_type"`
	Label       string             `json:"label"`
	Description string             `json:"description"`
	Schema      *models.JSONSchema `json:"schema"`
}

// Options returns the catalog entries for the given node type in panel order.
func Options(nodeType models.NodeType) ([]Option, error) {
	opts, ok := optionsByType[nodeType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNodeType, nodeType)
	}

	out := make([]Option, len(opts))
	copy(out, opts)

	return out, nil
}

// Find returns the catalog entry for the given node type and option id.
func Find(nodeType models.NodeType, optionID string) (*Option, error) {
	opts, ok := optionsByType[nodeType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNodeType, nodeType)
	}

	for i := range opts {
		if opts[i].ID == optionID {
			return &opts[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s/%s", ErrUnknownOption, nodeType, optionID)
}

// ValidateConfig checks a node configuration against the schema of the
// selected option. Properties declared with format "cron" are additionally
// parsed as standard cron expressions.
func ValidateConfig(nodeType models.NodeType, optionID string, config map[string]any) error {
	option, err := Find(nodeType, optionID)
	if err != nil {
		return err
	}

	if option.Schema == nil {
		return nil
	}

	schemaJSON, err := json.Marshal(option.Schema)
	if err != nil {
		return fmt.Errorf("failed to marshal option schema: %w", err)
	}

	if config == nil {
		config = map[string]any{}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewGoLoader(config),
	)
	if err != nil {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}

		return fmt.Errorf("invalid config for %s/%s: %s", nodeType, optionID, strings.Join(details, "; "))
	}

	return validateCronFields(option, config)
}

// DefaultConfig builds a starting configuration for the option: the option
// id itself plus every schema property default. Required properties without
// a declared default get the zero value for their type so the panel has a
// field to edit.
func DefaultConfig(option *Option) map[string]any {
	config := map[string]any{"option": option.ID}

	if option.Schema == nil {
		return config
	}

	for name, prop := range option.Schema.Properties {
		if prop.Default != nil {
			config[name] = prop.Default
		}
	}

	for _, name := range option.Schema.Required {
		if _, ok := config[name]; ok {
			continue
		}

		prop, ok := option.Schema.Properties[name]
		if !ok {
			continue
		}

		switch prop.Type {
		case "string":
			config[name] = ""
		case "number", "integer":
			config[name] = 0
		case "boolean":
			config[name] = false
		case "array":
			config[name] = []any{}
		case "object":
			config[name] = map[string]any{}
		}
	}

	return config
}

func validateCronFields(option *Option, config map[string]any) error {
	for name, prop := range option.Schema.Properties {
		if prop.Format != "cron" {
			continue
		}

		raw, ok := config[name]
		if !ok {
			continue
		}

		expr, ok := raw.(string)
		if !ok {
			return fmt.Errorf("invalid config for %s/%s: %s must be a cron string", option.NodeType, option.ID, name)
		}

		if _, err := cron.ParseStandard(expr); err != nil {
			return fmt.Errorf("invalid cron expression %q for %s: %w", expr, name, err)
		}
	}

	return nil
}
