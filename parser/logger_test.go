package parser

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferLogger(buf *bytes.Buffer) *SlogAdapter {
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogAdapter(slog.New(handler))
}

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	assert.NotPanics(t, func() {
		l.Debug("msg", "key", "value")
		l.Info("msg")
		l.Warn("msg")
		l.Error("msg")
	})
	_, ok := l.With("key", "value").(NopLogger)
	assert.True(t, ok, "With should return NopLogger")
}

func TestSlogAdapterLevels(t *testing.T) {
	var buf bytes.Buffer
	adapter := newBufferLogger(&buf)

	adapter.Debug("bundled", "pointer", "#/definitions/Pet")
	adapter.Info("extracted")
	adapter.Warn("slow")
	adapter.Error("failed")

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG msg=bundled pointer=#/definitions/Pet")
	assert.Contains(t, out, "level=INFO msg=extracted")
	assert.Contains(t, out, "level=WARN msg=slow")
	assert.Contains(t, out, "level=ERROR msg=failed")
}

func TestSlogAdapterWith(t *testing.T) {
	var buf bytes.Buffer
	adapter := newBufferLogger(&buf)

	adapter.With("package", "bundler").With("anchor", "parent.json").Debug("resolving")

	out := buf.String()
	assert.Contains(t, out, "package=bundler")
	assert.Contains(t, out, "anchor=parent.json")
}

func TestNewSlogAdapterNilUsesDefault(t *testing.T) {
	assert.NotNil(t, NewSlogAdapter(nil).logger)
}

func TestOrNop(t *testing.T) {
	assert.Equal(t, NopLogger{}, OrNop(nil))

	var buf bytes.Buffer
	l := newBufferLogger(&buf)
	assert.Same(t, l, OrNop(l))
}
