package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConditionalSourceHandler_AddsSourceOnlyForListedLevels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		wantSource bool
	}{
		{name: "info is quiet", level: slog.LevelInfo, wantSource: false},
		{name: "warn carries source", level: slog.LevelWarn, wantSource: true},
		{name: "error carries source", level: slog.LevelError, wantSource: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := NewConditionalSourceHandler(slog.NewTextHandler(&buf, nil), slog.LevelWarn, slog.LevelError)

			slog.New(h).Log(context.Background(), tt.level, "release requested", "order_uuid", "abc")

			assert.Equal(t, tt.wantSource, bytes.Contains(buf.Bytes(), []byte("source=")), buf.String())
			assert.Contains(t, buf.String(), "order_uuid=abc")
		})
	}
}

func TestConditionalSourceHandler_KeepsAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	h := NewConditionalSourceHandler(slog.NewTextHandler(&buf, nil), slog.LevelError)

	slog.New(h).With("component", "sezzle").WithGroup("request").Info("call", "path", "/v2/order")

	out := buf.String()
	assert.Contains(t, out, "component=sezzle")
	assert.Contains(t, out, "request.path=/v2/order")
	assert.NotContains(t, out, "source=")
}

func TestConditionalSourceHandler_RespectsWrappedLevel(t *testing.T) {
	h := NewConditionalSourceHandler(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo}))

	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
