package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/attachevents/internal/config"
)

func TestResolveLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ResolveLogLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWriter(&buf, config.LoggingConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", "key", "click")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "click", rec["key"])
}

func TestNewWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWriter(&buf, config.LoggingConfig{Level: "debug"})
	require.NoError(t, err)

	logger.Debug("bound", "kind", "selector")
	assert.Contains(t, buf.String(), "msg=bound")
	assert.Contains(t, buf.String(), "kind=selector")
}

func TestNewWriter_BadFormat(t *testing.T) {
	_, err := NewWriter(&bytes.Buffer{}, config.LoggingConfig{Format: "xml"})
	assert.Error(t, err)
}
