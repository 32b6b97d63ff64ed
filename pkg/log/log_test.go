package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo+2, ParseLevel("info+2"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestSetupWriter_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer

	SetupWriter(&buf, "warn")

	slog.Info("below threshold")
	slog.Warn("at threshold")

	out := buf.String()
	assert.NotContains(t, out, "below threshold")
	assert.Contains(t, out, "at threshold")
}

func TestWithModule(t *testing.T) {
	var buf bytes.Buffer

	SetupWriter(&buf, "info")
	WithModule("canvas").Info("hello")

	assert.Contains(t, buf.String(), "module=canvas")
}
