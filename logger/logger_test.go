package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitializeWithWriterTeesJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := InitializeWithWriter("production", &buf)
	require.NoError(t, err)
	assert.Same(t, Log, l)

	l.Info("order created", zap.String("order_id", "order_A1"))
	_ = l.Sync()

	line := strings.TrimSpace(buf.String())
	require.NotEmpty(t, line)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "order created", entry["msg"])
	assert.Equal(t, "order_A1", entry["order_id"])
	assert.Contains(t, entry, "timestamp")
}

func TestInitializeDevelopment(t *testing.T) {
	l, err := Initialize("development")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))
}
