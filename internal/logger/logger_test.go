package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		env     string
		level   string
		enabled zapcore.Level
		muted   zapcore.Level
	}{
		{"dev", "debug", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"ci", "warn", zapcore.WarnLevel, zapcore.InfoLevel},
		{"prod", "error", zapcore.ErrorLevel, zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.env+"/"+tt.level, func(t *testing.T) {
			log, err := New(tt.env, tt.level)
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.enabled))
			assert.False(t, log.Core().Enabled(tt.muted))
		})
	}
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New("dev", "chatty")
	assert.Error(t, err)
}
