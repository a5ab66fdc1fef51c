package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	log, err := New("warn", false)
	require.NoError(t, err)
	assert.False(t, log.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Desugar().Core().Enabled(zapcore.WarnLevel))

	log, err = New("debug", true)
	require.NoError(t, err)
	assert.True(t, log.Desugar().Core().Enabled(zapcore.DebugLevel))

	_, err = New("loud", false)
	assert.Error(t, err)
}

func TestMaskSensitiveString(t *testing.T) {
	assert.Equal(t, "", MaskSensitiveString("", 2, 2))
	assert.Equal(t, "*****", MaskSensitiveString("abcde", 2, 2))
	assert.Equal(t, "AI...xyz", MaskSensitiveString("AIzaSyD-secret-xyz", 2, 3))
}
