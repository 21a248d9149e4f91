package logging

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestContextLogger(t *testing.T) {
	tl := NewTestLogger(t)

	ctx := WithLogger(context.Background(), tl.Logger)
	ctx = WithFamily(ctx, "faculties")
	ctx = WithGroup(ctx, "grades")

	FromContext(ctx).Info().Msg("classified")

	assert.True(t, tl.Contains(`"family":"faculties"`))
	assert.True(t, tl.Contains(`"group":"grades"`))
	assert.True(t, tl.Contains("classified"))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Equal(t, Default(), FromContext(context.Background()))
	assert.Equal(t, Default(), FromContext(nil)) //nolint:staticcheck
}

func TestCaptureLoggingForTest(t *testing.T) {
	tl := CaptureLoggingForTest(t)

	Info().Str("operation", "diff").Msg("starting")

	assert.Len(t, tl.Lines(), 1)
	assert.True(t, tl.Contains(`"operation":"diff"`))

	tl.Clear()
	assert.Empty(t, tl.Output())
}
