package internal

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		ok       bool
	}{
		{"ERROR", LogLevelError, true},
		{"warn", LogLevelWarn, true},
		{" Debug ", LogLevelDebug, true},
		{"TRACE", LogLevelTrace, true},
		{"verbose", LogLevelError, false},
		{"", LogLevelError, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, ok := ParseLogLevel(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, level)
			}
		})
	}
}

func TestNewLoggerFromStringDefaultsToInfo(t *testing.T) {
	assert.Equal(t, LogLevelInfo, NewLoggerFromString("nonsense").GetLevel())
	assert.Equal(t, LogLevelDebug, NewLoggerFromString("DEBUG").GetLevel())
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(LogLevelWarn, log.New(&buf, "", 0))

	logger.Error("disk %s", "full")
	logger.Warn("slow")
	logger.Info("hidden")
	logger.Debug("hidden")

	assert.Equal(t, "[ERROR] disk full\n[WARN] slow\n", buf.String())
}

func TestNilLoggerIsSilent(t *testing.T) {
	var logger *Logger
	assert.NotPanics(t, func() { logger.Info("nothing") })
}
