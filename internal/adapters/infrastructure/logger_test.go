package infrastructure

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherdialog.app/internal/mocks"
	"weatherdialog.app/internal/ports"
)

func TestSlogLoggerAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLoggerAdapter(&buf, "info")

	logger.Debug("hidden")
	logger.Info("Intent handled", ports.F("intent", "current-weather"), ports.F("request_id", "abc"))
	logger.Error("Intent failed", ports.F("error", fmt.Errorf("provider down")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var info map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &info))
	assert.Equal(t, "INFO", info["level"])
	assert.Equal(t, "Intent handled", info["msg"])
	assert.Equal(t, "current-weather", info["intent"])
	assert.Equal(t, "abc", info["request_id"])

	var failure map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &failure))
	assert.Equal(t, "ERROR", failure["level"])
	assert.Equal(t, "provider down", failure["error"])
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "DEBUG",
		"WARN":    "WARN",
		"warning": "WARN",
		"error":   "ERROR",
		"":        "INFO",
		"verbose": "INFO",
	}
	for input, expected := range tests {
		assert.Equal(t, expected, parseLevel(input).String(), input)
	}
}

func TestSlogLoggerAdapter_ZeroValue(t *testing.T) {
	logger := &SlogLoggerAdapter{}

	assert.NotPanics(t, func() { logger.Info("falls back to the default logger") })
}

func TestMultiLogger(t *testing.T) {
	first := mocks.NewRecordingLogger()
	second := mocks.NewRecordingLogger()
	logger := MultiLogger{first, second}

	logger.Debug("d")
	logger.Info("i")
	logger.Warn("w")
	logger.Error("e", ports.F("k", "v"))

	for _, recorder := range []*mocks.RecordingLogger{first, second} {
		assert.Equal(t, []string{"d", "i", "w", "e"}, recorder.Messages())
		entries := recorder.Entries()
		assert.Equal(t, "v", entries[3].Fields["k"])
	}
}
