package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel(t *testing.T) {
	t.Run("Should map unknown level to info", func(t *testing.T) {
		level := LogLevel("bogus")
		assert.Equal(t, InfoLevel.ToCharmlogLevel(), level.ToCharmlogLevel())
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("Should emit JSON records when configured", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewLogger(&Config{Level: DebugLevel, Output: &buf, JSON: true})
		log.Info("model list loaded", "count", 3)

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "model list loaded", record["msg"])
	})

	t.Run("Should suppress records below the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewLogger(&Config{Level: ErrorLevel, Output: &buf})
		log.Debug("noise")
		log.Info("noise")
		assert.Empty(t, buf.String())
	})
}

func TestFromContext(t *testing.T) {
	t.Run("Should return attached logger", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewLogger(&Config{Level: DebugLevel, Output: &buf})
		ctx := ContextWithLogger(context.Background(), log)

		FromContext(ctx).Info("hello")
		assert.Contains(t, buf.String(), "hello")
	})

	t.Run("Should fall back to default logger", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
		assert.NotNil(t, FromContext(nil)) //nolint:staticcheck
	})
}
