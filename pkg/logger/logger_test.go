package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInit_LevelOverride(t *testing.T) {
	Init("alwaseet-adapter", "prod", "warn")
	defer Sync()

	require.NotNil(t, L())
	assert.False(t, L().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, L().Core().Enabled(zapcore.WarnLevel))
}

func TestInit_InvalidLevelKeepsDefault(t *testing.T) {
	Init("alwaseet-adapter", "dev", "chatty")
	defer Sync()

	// development config defaults to debug
	assert.True(t, L().Core().Enabled(zapcore.DebugLevel))
	assert.NotNil(t, S())
}
