package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoggerIsUsableBeforeInitialize(t *testing.T) {
	assert.NotPanics(t, func() {
		Logger.Infow("before init", "key", "C")
		Named("transpose").Debugw("noop")
	})
}

func TestInitialize(t *testing.T) {
	t.Cleanup(func() { _ = Initialize(false, false) })

	require.NoError(t, Initialize(true, false))
	assert.True(t, JSONOutput)
	assert.NotNil(t, Logger)

	require.NoError(t, Initialize(false, true))
	assert.False(t, JSONOutput)
	assert.True(t, Logger.Desugar().Core().Enabled(-1), "verbose enables debug")
}
