package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupLevels(t *testing.T) {
	t.Cleanup(func() { Setup(os.Stdout, false, false) })

	var buf bytes.Buffer
	Setup(&buf, false, false)
	Debugf("hidden")
	assert.Empty(t, buf.String())

	buf.Reset()
	Setup(&buf, true, false)
	Debugf("shown %d", 1)
	assert.Contains(t, buf.String(), "shown 1")
	assert.NotContains(t, buf.String(), "source=")
}

func TestSetupDebugRecordsSource(t *testing.T) {
	t.Cleanup(func() { Setup(os.Stdout, false, false) })

	var buf bytes.Buffer
	Setup(&buf, false, true)
	Debugf("traced")
	out := buf.String()
	assert.Contains(t, out, "traced")
	assert.Contains(t, out, "source=")
	assert.Contains(t, out, "logger_test.go")
}

func TestStepLoggerTagsStep(t *testing.T) {
	t.Cleanup(func() { Setup(os.Stdout, false, false) })

	var buf bytes.Buffer
	Setup(&buf, false, false)
	Step("users").Infof("%d done", 5)
	out := buf.String()
	assert.Contains(t, out, "5 done")
	assert.Contains(t, out, "step=users")
}
