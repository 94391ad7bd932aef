package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The loggers must work in any package that imports them, whether or not
// the process called InitLoggers.
func TestLoggersUsableWithoutInit(t *testing.T) {
	assert.NotNil(t, InfoLogger)
	assert.NotNil(t, ErrorLogger)

	var buf bytes.Buffer
	InfoLogger.SetOutput(&buf)
	defer InfoLogger.SetOutput(os.Stdout)

	assert.NotPanics(t, func() {
		InfoLogger.Infof("booking %s created", "abc123")
	})
	assert.Contains(t, buf.String(), "booking abc123 created")
}
