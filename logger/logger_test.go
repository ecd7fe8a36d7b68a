package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{name: "debug", input: "debug", want: slog.LevelDebug},
		{name: "upper case warn", input: "WARN", want: slog.LevelWarn},
		{name: "error", input: "error", want: slog.LevelError},
		{name: "unknown falls back to info", input: "verbose", want: slog.LevelInfo},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, ParseLevel(testCase.input))
		})
	}
}

func TestNewWithWriter_TagsService(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	var buf bytes.Buffer
	l := NewWithWriter(&buf, "order-svc", "info")
	l.Info("order created", "order_id", "c1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "order-svc", entry["service"])
	assert.Equal(t, "order created", entry["msg"])
	assert.Equal(t, "c1", entry["order_id"])
	assert.Contains(t, entry, "hostname")
}

func TestNewWithWriter_FiltersBelowLevel(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	var buf bytes.Buffer
	l := NewWithWriter(&buf, "order-svc", "warn")
	l.Info("dropped")

	assert.Empty(t, buf.String())
}

func TestWithCtx(t *testing.T) {
	var buf bytes.Buffer
	injected := slog.New(slog.NewJSONHandler(&buf, nil)).With("request_id", "r-1")

	ctx := InjectLogger(context.Background(), injected)
	assert.Same(t, injected, WithCtx(ctx))
	assert.Same(t, slog.Default(), WithCtx(context.Background()))
}
