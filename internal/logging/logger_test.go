package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	goamiddleware "goa.design/goa/v3/middleware"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, err := New("production", tt.level)
			require.NoError(t, err)
			assert.True(t, l.SugaredLogger.Desugar().Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, l.SugaredLogger.Desugar().Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "p***@x.com", MaskEmail("priya@x.com"))
	assert.Equal(t, "p***@x.com", MaskEmail("  priya@x.com "))
	assert.Equal(t, "***", MaskEmail("not-an-email"))
	assert.Equal(t, "***", MaskEmail("@x.com"))
	assert.Equal(t, "Ø***@x.no", MaskEmail("Ødegaard@x.no"))
	assert.Equal(t, "名***@例え.jp", MaskEmail("名前@例え.jp"))
}

func TestLogger_MasksEmailFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := FromZap(zap.New(core))

	l.Info("contact inquiry stored", "email", "priya@x.com", "admin_email", "ops@fyno.in", "name", "Priya")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "p***@x.com", fields["email"])
	assert.Equal(t, "o***@fyno.in", fields["admin_email"])
	assert.Equal(t, "Priya", fields["name"])
}

func TestLogger_CtxAddsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := FromZap(zap.New(core))

	ctx := context.WithValue(context.Background(), goamiddleware.RequestIDKey, "req-42")
	l.Ctx(ctx).Info("hello")
	l.Ctx(context.Background()).Info("bare")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
	_, ok := entries[1].ContextMap()["request_id"]
	assert.False(t, ok)
}
