package logger

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		" Warn ":  zapcore.WarnLevel,
		"":        zapcore.InfoLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewWithLevel_CanChangeLevelAtRuntime(t *testing.T) {
	l, level, err := NewWithLevel(&Config{Level: "warn", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	require.NotNil(t, l)

	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	level.SetLevel(zapcore.DebugLevel)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, err := New(&Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	l.Info("written", zap.String("dusun", "Laiyolo"))
	require.NoError(t, l.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(raw, &entry))
	assert.Equal(t, "written", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Laiyolo", entry["dusun"])
	assert.Contains(t, entry, "time")

	_, err = New(&Config{Output: "/nonexistent/dir/app.log"})
	assert.Error(t, err)
}

func TestFromContext(t *testing.T) {
	t.Run("returns nop logger when none stored", func(t *testing.T) {
		l := FromContext(context.Background())
		assert.NotNil(t, l)
	})

	t.Run("adds request and admin fields", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		ctx := WithRequestID(context.Background(), "req-1")
		ctx = WithContext(ctx, zap.New(core))
		ctx = WithAdminID(ctx, "admin-1")

		FromContext(ctx).Info("hello")

		entries := recorded.All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "req-1", fields["request_id"])
		assert.Equal(t, "admin-1", fields["admin_id"])
		assert.Equal(t, "admin-1", AdminID(ctx))
	})
}
