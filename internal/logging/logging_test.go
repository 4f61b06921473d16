package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestJSONLevel verifies that records below the level are dropped and that the output is JSON.
func TestJSONLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, warnings := New(&buf, "warn", "json")
	assert.Empty(t, warnings)

	logger.Info("dropped")
	logger.Warn("kept", "id", "42")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "kept", record["msg"])
	assert.Equal(t, "42", record["id"])
}

// TestText verifies the text format.
func TestText(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := New(&buf, "debug", "TEXT")
	logger.Debug("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

// TestInvalidOptions expects warnings and usable defaults for unknown options.
func TestInvalidOptions(t *testing.T) {
	var buf bytes.Buffer
	logger, warnings := New(&buf, "verbose", "xml")
	assert.Len(t, warnings, 2)

	logger.Debug("dropped")
	logger.Info("kept")
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "kept", record["msg"])
}
