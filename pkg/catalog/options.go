package catalog

import "github.com/chatforge/flowbuilder/pkg/models"

// The catalog is static: four node types, each with a fixed list of options.
// Adding an option means adding an entry here plus its schema.
var optionsByType = map[models.NodeType][]Option{
	models.NodeTypeTrigger: {
		{
			ID:          "message-received",
			NodeType:    models.NodeTypeTrigger,
			Label:       "Message Received",
			Description: "Starts the workflow when a contact sends a message",
			Schema: &models.JSONSchema{
				Type: "object",
				Properties: map[string]*models.Property{
					"channel": {
						Type:        "string",
						Description: "Inbound channel to listen on",
						Enum:        []any{"whatsapp", "sms", "webchat"},
						Default:     "whatsapp",
					},
					"keywords": {
						Type:        "array",
						Description: "Only fire when the message contains one of these keywords",
						Items:       &models.Property{Type: "string"},
					},
				},
			},
		},
		{
			ID:          "contact-created",
			NodeType:    models.NodeTypeTrigger,
			Label:       "Contact Created",
			Description: "Starts the workflow when a new contact is added",
			Schema: &models.JSONSchema{
				Type: "object",
				Properties: map[string]*models.Property{
					"source": {
						Type:        "string",
						Description: "Restrict to contacts created from this source",
					},
				},
			},
		},
		{
			ID:          "tag-added",
			NodeType:    models.NodeTypeTrigger,
			Label:       "Tag Added",
			Description: "Starts the workflow when a tag is applied to a contact",
			Schema: &models.JSONSchema{
				Type:     "object",
				Required: []string{"tag"},
				Properties: map[string]*models.Property{
					"tag": {
						Type:        "string",
						Description: "Tag that fires the trigger",
						MinLength:   intPtr(1),
					},
				},
			},
		},
		{
			ID:          "time-based",
			NodeType:    models.NodeTypeTrigger,
			Label:       "Time Based",
			Description: "Starts the workflow on a recurring schedule",
			Schema: &models.JSONSchema{
				Type:     "object",
				Required: []string{"cron"},
				Properties: map[string]*models.Property{
					"cron": {
						Type:        "string",
						Format:      "cron",
						Description: "Standard cron expression, evaluated in the tenant timezone",
					},
				},
			},
		},
	},
	models.NodeTypeCondition: {
		{
			ID:          "keyword-match",
			NodeType:    models.NodeTypeCondition,
			Label:       "Keyword Match",
			Description: "Branches on whether the message contains given keywords",
			Schema: &models.JSONSchema{
				Type:     "object",
				Required: []string{"keywords"},
				Properties: map[string]*models.Property{
					"keywords": {
						Type:  "array",
						Items: &models.Property{Type: "string"},
					},
					"match": {
						Type:    "string",
						Enum:    []any{"any", "all"},
						Default: "any",
					},
				},
			},
		},
		{
			ID:          "tag-check",
			NodeType:    models.NodeTypeCondition,
			Label:       "Tag Check",
			Description: "Branches on whether the contact carries a tag",
			Schema: &models.JSONSchema{
				Type:     "object",
				Required: []string{"tag"},
				Properties: map[string]*models.Property{
					"tag":     {Type: "string", MinLength: intPtr(1)},
					"present": {Type: "boolean", Default: true},
				},
			},
		},
		{
			ID:          "time-check",
			NodeType:    models.NodeTypeCondition,
			Label:       "Time Check",
			Description: "Branches on the current time of day",
			Schema: &models.JSONSchema{
				Type:     "object",
				Required: []string{"start_hour", "end_hour"},
				Properties: map[string]*models.Property{
					"start_hour": {Type: "integer", Minimum: floatPtr(0), Maximum: floatPtr(23)},
					"end_hour":   {Type: "integer", Minimum: floatPtr(0), Maximum: floatPtr(23)},
					"timezone":   {Type: "string", Default: "UTC"},
				},
			},
		},
		{
			ID:          "custom-field",
			NodeType:    models.NodeTypeCondition,
			Label:       "Custom Field",
			Description: "Branches on the value of a contact custom field",
			Schema: &models.JSONSchema{
				Type:     "object",
				Required: []string{"field"},
				Properties: map[string]*models.Property{
					"field":  {Type: "string", MinLength: intPtr(1)},
					"equals": {Type: "string"},
				},
			},
		},
	},
	models.NodeTypeAction: {
		{
			ID:          "send-message",
			NodeType:    models.NodeTypeAction,
			Label:       "Send Message",
			Description: "Sends a message to the contact",
			Schema: &models.JSONSchema{
				Type:     "object",
				Required: []string{"message"},
				Properties: map[string]*models.Property{
					"message": {Type: "string", MinLength: intPtr(1)},
				},
			},
		},
		{
			ID:          "add-tag",
			NodeType:    models.NodeTypeAction,
			Label:       "Add Tag",
			Description: "Applies a tag to the contact",
			Schema: &models.JSONSchema{
				Type:     "object",
				Required: []string{"tag"},
				Properties: map[string]*models.Property{
					"tag": {Type: "string", MinLength: intPtr(1)},
				},
			},
		},
		{
			ID:          "assign-user",
			NodeType:    models.NodeTypeAction,
			Label:       "Assign to Teammate",
			Description: "Assigns the conversation to a teammate",
			Schema: &models.JSONSchema{
				Type:     "object",
				Required: []string{"user_id"},
				Properties: map[string]*models.Property{
					"user_id": {Type: "string", MinLength: intPtr(1)},
				},
			},
		},
		{
			ID:          "webhook",
			NodeType:    models.NodeTypeAction,
			Label:       "Call Webhook",
			Description: "POSTs the conversation context to an external URL",
			Schema: &models.JSONSchema{
				Type:     "object",
				Required: []string{"url"},
				Properties: map[string]*models.Property{
					"url": {Type: "string", Format: "uri"},
					"method": {
						Type:    "string",
						Enum:    []any{"POST", "PUT"},
						Default: "POST",
					},
				},
			},
		},
	},
	models.NodeTypeDelay: {
		{
			ID:          "fixed-delay",
			NodeType:    models.NodeTypeDelay,
			Label:       "Fixed Delay",
			Description: "Waits a fixed duration before continuing",
			Schema: &models.JSONSchema{
				Type:     "object",
				Required: []string{"duration_minutes"},
				Properties: map[string]*models.Property{
					"duration_minutes": {Type: "integer", Minimum: floatPtr(1)},
				},
			},
		},
		{
			ID:          "business-hours",
			NodeType:    models.NodeTypeDelay,
			Label:       "Wait for Business Hours",
			Description: "Pauses until the tenant's business hours",
			Schema: &models.JSONSchema{
				Type: "object",
				Properties: map[string]*models.Property{
					"timezone":   {Type: "string", Default: "UTC"},
					"start_hour": {Type: "integer", Minimum: floatPtr(0), Maximum: floatPtr(23), Default: 9},
					"end_hour":   {Type: "integer", Minimum: floatPtr(0), Maximum: floatPtr(23), Default: 17},
				},
			},
		},
		{
			ID:          "specific-time",
			NodeType:    models.NodeTypeDelay,
			Label:       "Wait Until Specific Time",
			Description: "Pauses until the next occurrence of a schedule",
			Schema: &models.JSONSchema{
				Type:     "object",
				Required: []string{"cron"},
				Properties: map[string]*models.Property{
					"cron": {
						Type:        "string",
						Format:      "cron",
						Description: "Standard cron expression for the resume time",
					},
				},
			},
		},
	},
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
