package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/LavaJover/storefront-wallet-service/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(config.LogConfig{LogLevel: "warn", LogFormat: "json"}, &buf)

	l.Info("dropped")
	require.Zero(t, buf.Len())

	l.Warn("kept", "reference_code", "NAPTIEN-ABC123")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "kept", line["msg"])
	require.Equal(t, "NAPTIEN-ABC123", line["reference_code"])
	require.Equal(t, "wallet-service", line["service"])
}

func TestNewTextLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(config.LogConfig{LogLevel: "debug", LogFormat: "text"}, &buf)

	l.Debug("hello", "outcome", "settled")
	require.Contains(t, buf.String(), "msg=hello")
	require.Contains(t, buf.String(), "outcome=settled")
}
