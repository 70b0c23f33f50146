package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
	}{
		{name: "JSON output mode", jsonOutput: true, verbosity: 0},
		{name: "Console output mode", jsonOutput: false, verbosity: 0},
		{name: "Console debug", jsonOutput: false, verbosity: VerbosityDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			require.NoError(t, Initialize(tt.jsonOutput, tt.verbosity))
			require.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)
			assert.Equal(t, tt.verbosity, Verbosity)
			assert.Equal(t, tt.verbosity >= VerbosityDebug, Logger.Desugar().Core().Enabled(zapcore.DebugLevel))

			Cleanup()
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(VerbosityUser))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(VerbosityInfo))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(VerbosityDebug))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(10))
}

func TestShouldOutput(t *testing.T) {
	assert.True(t, ShouldOutput(VerbosityUser, OutputResults))
	assert.False(t, ShouldOutput(VerbosityUser, OutputSummary))
	assert.True(t, ShouldOutput(VerbosityInfo, OutputSummary))
	assert.False(t, ShouldOutput(VerbosityDebug, OutputFiles))
	assert.True(t, ShouldOutput(VerbosityTrace, OutputFiles))
	assert.False(t, ShouldOutput(VerbosityDebug, OutputCategory(999)))
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "User", LevelName(0))
	assert.Equal(t, "Debug (-vv)", LevelName(2))
	assert.Equal(t, "Trace (-vvv)", LevelName(5))
	assert.Equal(t, "Unknown", LevelName(-1))
	assert.Equal(t, "cleanup", CategoryName(OutputCleanup))
	assert.Equal(t, "unknown", CategoryName(OutputCategory(999)))
}
