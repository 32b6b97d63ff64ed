package templates

import "github.com/chatforge/flowbuilder/pkg/models"

var builtin = []*models.Workflow{
	{
		ID:          "tpl-welcome-sequence",
		Name:        "Welcome Sequence",
		Description: "Greet new contacts and tag them for follow-up",
		Category:    "onboarding",
		IsPrebuilt:  true,
		StartNodeID: "welcome-trigger",
		Nodes: []*models.WorkflowNode{
			{
				ID:       "welcome-trigger",
				Type:     models.NodeTypeTrigger,
				Position: models.Position{X: 80, Y: 120},
				Data: models.NodeData{
					Label:        "Contact Created",
					Config:       map[string]any{"option": "contact-created"},
					IsConfigured: true,
				},
			},
			{
				ID:       "welcome-message",
				Type:     models.NodeTypeAction,
				Position: models.Position{X: 320, Y: 120},
				Data: models.NodeData{
					Label:        "Send Welcome",
					Config:       map[string]any{"option": "send-message", "message": "Hi! Thanks for getting in touch. How can we help?"},
					IsConfigured: true,
				},
			},
			{
				ID:       "welcome-delay",
				Type:     models.NodeTypeDelay,
				Position: models.Position{X: 560, Y: 120},
				Data: models.NodeData{
					Label:        "Wait a Day",
					Config:       map[string]any{"option": "fixed-delay", "duration_minutes": 1440},
					IsConfigured: true,
				},
			},
			{
				ID:       "welcome-tag",
				Type:     models.NodeTypeAction,
				Position: models.Position{X: 800, Y: 120},
				Data: models.NodeData{
					Label:        "Tag as Onboarded",
					Config:       map[string]any{"option": "add-tag", "tag": "onboarded"},
					IsConfigured: true,
				},
			},
		},
		Connections: []*models.Connection{
			{ID: "welcome-c1", Source: "welcome-trigger", Target: "welcome-message"},
			{ID: "welcome-c2", Source: "welcome-message", Target: "welcome-delay"},
			{ID: "welcome-c3", Source: "welcome-delay", Target: "welcome-tag"},
		},
	},
	{
		ID:          "tpl-auto-response",
		Name:        "Auto Response",
		Description: "Answer common questions instantly, escalate the rest",
		Category:    "support",
		IsPrebuilt:  true,
		StartNodeID: "auto-trigger",
		Nodes: []*models.WorkflowNode{
			{
				ID:       "auto-trigger",
				Type:     models.NodeTypeTrigger,
				Position: models.Position{X: 80, Y: 160},
				Data: models.NodeData{
					Label:        "Message Received",
					Config:       map[string]any{"option": "message-received", "channel": "whatsapp"},
					IsConfigured: true,
				},
			},
			{
				ID:       "auto-keyword",
				Type:     models.NodeTypeCondition,
				Position: models.Position{X: 320, Y: 160},
				Data: models.NodeData{
					Label:        "Pricing Question?",
					Config:       map[string]any{"option": "keyword-match", "keywords": []any{"price", "pricing", "cost"}, "match": "any"},
					IsConfigured: true,
				},
			},
			{
				ID:       "auto-answer",
				Type:     models.NodeTypeAction,
				Position: models.Position{X: 560, Y: 80},
				Data: models.NodeData{
					Label:        "Send Pricing Info",
					Config:       map[string]any{"option": "send-message", "message": "Our plans start at $29/month. Full details: https://example.com/pricing"},
					IsConfigured: true,
				},
			},
			{
				ID:       "auto-assign",
				Type:     models.NodeTypeAction,
				Position: models.Position{X: 560, Y: 240},
				Data: models.NodeData{
					Label:        "Assign to Support",
					Config:       map[string]any{"option": "assign-user", "user_id": "support-queue"},
					IsConfigured: true,
				},
			},
		},
		Connections: []*models.Connection{
			{ID: "auto-c1", Source: "auto-trigger", Target: "auto-keyword"},
			{ID: "auto-c2", Source: "auto-keyword", Target: "auto-answer", SourceHandle: "true"},
			{ID: "auto-c3", Source: "auto-keyword", Target: "auto-assign", SourceHandle: "false"},
		},
	},
	{
		ID:          "tpl-escalation-flow",
		Name:        "Escalation Flow",
		Description: "Escalate unanswered conversations to a teammate",
		Category:    "support",
		IsPrebuilt:  true,
		StartNodeID: "esc-trigger",
		Nodes: []*models.WorkflowNode{
			{
				ID:       "esc-trigger",
				Type:     models.NodeTypeTrigger,
				Position: models.Position{X: 80, Y: 160},
				Data: models.NodeData{
					Label:        "Tagged Urgent",
					Config:       map[string]any{"option": "tag-added", "tag": "urgent"},
					IsConfigured: true,
				},
			},
			{
				ID:       "esc-hours",
				Type:     models.NodeTypeCondition,
				Position: models.Position{X: 320, Y: 160},
				Data: models.NodeData{
					Label:        "Business Hours?",
					Config:       map[string]any{"option": "time-check", "start_hour": 9, "end_hour": 17, "timezone": "UTC"},
					IsConfigured: true,
				},
			},
			{
				ID:       "esc-assign",
				Type:     models.NodeTypeAction,
				Position: models.Position{X: 560, Y: 80},
				Data: models.NodeData{
					Label:        "Assign On-Call",
					Config:       map[string]any{"option": "assign-user", "user_id": "on-call"},
					IsConfigured: true,
				},
			},
			{
				ID:       "esc-wait",
				Type:     models.NodeTypeDelay,
				Position: models.Position{X: 560, Y: 240},
				Data: models.NodeData{
					Label:        "Wait for Morning",
					Config:       map[string]any{"option": "business-hours", "start_hour": 9, "end_hour": 17},
					IsConfigured: true,
				},
			},
			{
				ID:       "esc-notify",
				Type:     models.NodeTypeAction,
				Position: models.Position{X: 800, Y: 240},
				Data: models.NodeData{
					Label:        "Notify Webhook",
					Config:       map[string]any{"option": "webhook", "url": "https://hooks.example.com/escalations", "method": "POST"},
					IsConfigured: true,
				},
			},
		},
		Connections: []*models.Connection{
			{ID: "esc-c1", Source: "esc-trigger", Target: "esc-hours"},
			{ID: "esc-c2", Source: "esc-hours", Target: "esc-assign", SourceHandle: "true"},
			{ID: "esc-c3", Source: "esc-hours", Target: "esc-wait", SourceHandle: "false"},
			{ID: "esc-c4", Source: "esc-wait", Target: "esc-notify"},
		},
	},
	{
		ID:          "tpl-lead-qualification",
		Name:        "Lead Qualification",
		Description: "Tag and route leads based on plan interest",
		Category:    "sales",
		IsPrebuilt:  true,
		StartNodeID: "lead-trigger",
		Nodes: []*models.WorkflowNode{
			{
				ID:       "lead-trigger",
				Type:     models.NodeTypeTrigger,
				Position: models.Position{X: 80, Y: 160},
				Data: models.NodeData{
					Label:        "Message Received",
					Config:       map[string]any{"option": "message-received", "channel": "webchat"},
					IsConfigured: true,
				},
			},
			{
				ID:       "lead-field",
				Type:     models.NodeTypeCondition,
				Position: models.Position{X: 320, Y: 160},
				Data: models.NodeData{
					Label:        "Enterprise Plan?",
					Config:       map[string]any{"option": "custom-field", "field": "plan_interest", "equals": "enterprise"},
					IsConfigured: true,
				},
			},
			{
				ID:       "lead-tag",
				Type:     models.NodeTypeAction,
				Position: models.Position{X: 560, Y: 80},
				Data: models.NodeData{
					Label:        "Tag Enterprise Lead",
					Config:       map[string]any{"option": "add-tag", "tag": "enterprise-lead"},
					IsConfigured: true,
				},
			},
			{
				ID:       "lead-assign",
				Type:     models.NodeTypeAction,
				Position: models.Position{X: 800, Y: 80},
				Data: models.NodeData{
					Label:        "Assign to Sales",
					Config:       map[string]any{"option": "assign-user", "user_id": "sales-team"},
					IsConfigured: true,
				},
			},
		},
		Connections: []*models.Connection{
			{ID: "lead-c1", Source: "lead-trigger", Target: "lead-field"},
			{ID: "lead-c2", Source: "lead-field", Target: "lead-tag", SourceHandle: "true"},
			{ID: "lead-c3", Source: "lead-tag", Target: "lead-assign"},
		},
	},
}
