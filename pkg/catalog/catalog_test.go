package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatforge/flowbuilder/pkg/models"
)

func TestOptions_AllNodeTypesCovered(t *testing.T) {
	for _, nodeType := range models.NodeTypes() {
		opts, err := Options(nodeType)
		require.NoError(t, err)
		assert.NotEmpty(t, opts, "node type %s has no options", nodeType)

		for _, opt := range opts {
			assert.Equal(t, nodeType, opt.NodeType)
			assert.NotEmpty(t, opt.Label)
			assert.NotEmpty(t, opt.Description)
			require.NotNil(t, opt.Schema, "option %s/%s has no schema", nodeType, opt.ID)
		}
	}
}

func TestOptions_UnknownNodeType(t *testing.T) {
	_, err := Options(models.NodeType("webhook"))
	assert.ErrorIs(t, err, ErrUnknownNodeType)
}

func TestFind(t *testing.T) {
	opt, err := Find(models.NodeTypeAction, "send-message")
	require.NoError(t, err)
	assert.Equal(t, "Send Message", opt.Label)

	_, err = Find(models.NodeTypeAction, "reboot-server")
	assert.ErrorIs(t, err, ErrUnknownOption)
}

func TestValidateConfig_Valid(t *testing.T) {
	err := ValidateConfig(models.NodeTypeAction, "send-message", map[string]any{
		"message": "Thanks for reaching out!",
	})
	assert.NoError(t, err)

	err = ValidateConfig(models.NodeTypeDelay, "fixed-delay", map[string]any{
		"duration_minutes": 30,
	})
	assert.NoError(t, err)
}

func TestValidateConfig_MissingRequiredField(t *testing.T) {
	err := ValidateConfig(models.NodeTypeAction, "send-message", map[string]any{})
	assert.Error(t, err)
}

func TestValidateConfig_WrongType(t *testing.T) {
	err := ValidateConfig(models.NodeTypeDelay, "fixed-delay", map[string]any{
		"duration_minutes": "thirty",
	})
	assert.Error(t, err)
}

func TestValidateConfig_CronExpression(t *testing.T) {
	err := ValidateConfig(models.NodeTypeTrigger, "time-based", map[string]any{
		"cron": "0 9 * * 1-5",
	})
	assert.NoError(t, err)

	err = ValidateConfig(models.NodeTypeTrigger, "time-based", map[string]any{
		"cron": "every morning",
	})
	assert.Error(t, err)
}

func TestValidateConfig_NilConfig(t *testing.T) {
	// Options without required fields accept an empty config.
	err := ValidateConfig(models.NodeTypeTrigger, "contact-created", nil)
	assert.NoError(t, err)

	// Options with required fields reject it.
	err = ValidateConfig(models.NodeTypeTrigger, "tag-added", nil)
	assert.Error(t, err)
}

func TestDefaultConfig_UsesSchemaDefaults(t *testing.T) {
	option, err := Find(models.NodeTypeTrigger, "message-received")
	require.NoError(t, err)

	config := DefaultConfig(option)
	assert.Equal(t, "message-received", config["option"])
	assert.Equal(t, "whatsapp", config["channel"])
}

func TestDefaultConfig_ZeroFillsRequiredFields(t *testing.T) {
	option, err := Find(models.NodeTypeAction, "send-message")
	require.NoError(t, err)

	config := DefaultConfig(option)
	assert.Equal(t, "send-message", config["option"])
	assert.Equal(t, "", config["message"])
}

func TestDefaultConfig_NilSchema(t *testing.T) {
	option := &Option{ID: "bare", NodeType: models.NodeTypeAction}

	config := DefaultConfig(option)
	assert.Equal(t, map[string]any{"option": "bare"}, config)
}
