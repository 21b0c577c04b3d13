package infrastructure

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherdialog.app/internal/mocks"
	"weatherdialog.app/internal/ports"
	"weatherdialog.app/pkg/errors"
)

func readLogLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var lines []map[string]interface{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		lines = append(lines, entry)
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestFileLoggerAdapter_NewFileLoggerAdapter(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name        string
		logPath     string
		expectError bool
	}{
		{"valid_path", filepath.Join(dir, "forecast.log"), false},
		{"nested_path", filepath.Join(dir, "nested", "deep", "forecast.log"), false},
		{"empty_path", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewFileLoggerAdapter(tt.logPath, nil)

			if tt.expectError {
				assert.True(t, errors.IsConfigurationError(err))
				assert.Nil(t, logger)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { _ = logger.Close() })
			assert.DirExists(t, filepath.Dir(tt.logPath))
		})
	}
}

func TestFileLoggerAdapter_LogLevels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forecast.log")
	clock := mocks.NewClock(time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC))
	logger, err := NewFileLoggerAdapter(path, clock)
	require.NoError(t, err)

	logger.Debug("debug message")
	logger.Info("Forecast API request completed", ports.F("provider", "openweathermap"), ports.F("duration_ms", 42))
	logger.Warn("warn message", ports.F("level", "spoofed"))
	logger.Error("Forecast API request failed", ports.F("error", fmt.Errorf("boom")))
	require.NoError(t, logger.Close())

	lines := readLogLines(t, path)
	require.Len(t, lines, 4)

	assert.Equal(t, "DEBUG", lines[0]["level"])
	assert.Equal(t, "2024-03-01T14:00:00Z", lines[0]["timestamp"])

	assert.Equal(t, "INFO", lines[1]["level"])
	assert.Equal(t, "Forecast API request completed", lines[1]["message"])
	assert.Equal(t, "openweathermap", lines[1]["provider"])
	assert.Equal(t, float64(42), lines[1]["duration_ms"])

	// reserved keys are not overwritten by fields
	assert.Equal(t, "WARN", lines[2]["level"])

	assert.Equal(t, "ERROR", lines[3]["level"])
	assert.Equal(t, "boom", lines[3]["error"])
}

func TestFileLoggerAdapter_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forecast.log")

	first, err := NewFileLoggerAdapter(path, nil)
	require.NoError(t, err)
	first.Info("first")
	require.NoError(t, first.Close())

	second, err := NewFileLoggerAdapter(path, nil)
	require.NoError(t, err)
	second.Info("second")
	require.NoError(t, second.Close())

	lines := readLogLines(t, path)
	require.Len(t, lines, 2)
	assert.Equal(t, "first", lines[0]["message"])
	assert.Equal(t, "second", lines[1]["message"])
}
