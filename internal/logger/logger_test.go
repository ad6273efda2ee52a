package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setup(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})
	return buf
}

func TestDebug_SilentWithoutVerbose(t *testing.T) {
	buf := setup(t)
	SetVerbose(false)

	Debug("hidden %d", 1)
	assert.Empty(t, buf.String())
}

func TestDebug_PrintsWithVerbose(t *testing.T) {
	buf := setup(t)
	SetVerbose(true)

	Debug("visible %d", 2)
	assert.Contains(t, buf.String(), "[DEBUG] visible 2")
}

func TestInfoWarnSection(t *testing.T) {
	buf := setup(t)
	SetVerbose(true)

	Info("info msg")
	Warn("warn msg")
	Section("Stage")

	out := buf.String()
	assert.Contains(t, out, "[INFO] info msg")
	assert.Contains(t, out, "[WARN] warn msg")
	assert.Contains(t, out, "=== Stage ===")
}

func TestError_AlwaysPrints(t *testing.T) {
	buf := setup(t)
	SetVerbose(false)

	Error("boom: %s", "reason")
	assert.Contains(t, buf.String(), "[ERROR] boom: reason")
}

func TestIsVerbose(t *testing.T) {
	setup(t)
	SetVerbose(true)
	assert.True(t, IsVerbose())
	SetVerbose(false)
	assert.False(t, IsVerbose())
}
