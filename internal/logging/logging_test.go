package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		hasError bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
		{"", LevelInfo, true},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			level, err := ParseLevel(test.input)
			if test.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected, level)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestJSONLoggerWithComponent(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = FormatJSON
	cfg.Output = &buf
	New(cfg).Info("hello", "attempts", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "crackle", entry["component"])
	assert.EqualValues(t, 3, entry["attempts"])
}

func TestRedaction(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Output = &buf
	cfg.Redact = true
	New(cfg).Info("cracked", "password", "hunter2", "attempts", 10)

	out := buf.String()
	assert.NotContains(t, out, "hunter2")
	assert.True(t, strings.Contains(out, "password="+redacted))
	assert.Contains(t, out, "attempts=10")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Output = &buf
	cfg.Level = LevelWarn
	logger := New(cfg)
	logger.Info("quiet")
	logger.Warn("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}
