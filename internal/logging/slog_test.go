package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")
	ctx := context.Background()

	log.Debug(ctx, "debug msg")
	log.Info(ctx, "info msg")
	log.Warn(ctx, "warn msg")
	log.Error(ctx, "error msg")

	out := buf.String()
	assert.NotContains(t, out, "debug msg")
	assert.NotContains(t, out, "info msg")
	assert.Contains(t, out, "warn msg")
	assert.Contains(t, out, "error msg")
}

func TestNew_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "chatty")
	ctx := context.Background()

	log.Debug(ctx, "debug msg")
	log.Info(ctx, "info msg")

	out := buf.String()
	assert.NotContains(t, out, "debug msg")
	assert.Contains(t, out, "info msg")
}

func TestWith_AttachesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info").With("component", "session")

	log.Info(context.Background(), "restored", "user", "anowak")

	out := buf.String()
	require.True(t, strings.Contains(out, "component=session"), "got: %s", out)
	assert.Contains(t, out, "user=anowak")
}

func TestNewNop_Silent(t *testing.T) {
	log := NewNop()
	// Must not panic; output goes nowhere.
	log.Info(context.Background(), "ignored")
	log.Error(context.Background(), "ignored too")
}
