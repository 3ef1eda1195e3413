package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"syscall"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{" WARN ", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	zl, log := New(&buf, zapcore.InfoLevel, "1.2.3")

	log.V(1).Info("hidden")
	log.Info("fetched suggestions", "count", 3)
	require.NoError(t, zl.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1, "debug entries are filtered at info level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "fetched suggestions", entry[MessageKey])
	assert.Equal(t, "1.2.3", entry[VersionKey])
	assert.EqualValues(t, 3, entry["count"])
	assert.Contains(t, entry, TimeStampKey)
}

func TestContextPropagation(t *testing.T) {
	t.Run("stores logger in context", func(t *testing.T) {
		l := logr.Discard()
		ctx := WithLogger(context.Background(), &l)
		assert.Same(t, &l, FromContext(ctx))
	})

	t.Run("same logger returns same context", func(t *testing.T) {
		l := logr.Discard()
		ctx := WithLogger(context.Background(), &l)
		assert.Equal(t, ctx, WithLogger(ctx, &l))
	})

	t.Run("falls back to global", func(t *testing.T) {
		assert.Same(t, Global(), FromContext(context.Background()))
	})
}

func TestGlobalBeforeSetup(t *testing.T) {
	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()

	assert.Same(t, &defaultNoopLogger, Global())
}

func TestIsIgnorableSyncError(t *testing.T) {
	assert.True(t, isIgnorableSyncError(syscall.ENOTTY))
	assert.True(t, isIgnorableSyncError(syscall.EINVAL))
	assert.False(t, isIgnorableSyncError(errors.New("disk full")))
}
