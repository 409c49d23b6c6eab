package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelFiltering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		level     string
		wantDebug bool
	}{
		{"debug level", "debug", true},
		{"info level", "info", false},
		{"invalid level falls back to info", "loud", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := newWithWriter(&buf, tt.level)
			logger.Debug("debug message")

			assert.Equal(t, tt.wantDebug, buf.Len() > 0)
		})
	}
}

func TestNew_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newWithWriter(&buf, "info")
	logger.Info("user login successful", "email", "a@x.com")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "user login successful", entry["msg"])
	assert.Equal(t, "a@x.com", entry["email"])
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	logger := Discard()
	require.NotNil(t, logger)
	logger.Error("ignored")
}
