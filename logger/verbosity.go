package logger

import "go.uber.org/zap/zapcore"

// Verbosity level constants for CLI flag counts.
//
// These levels control WHAT categories of output are shown, not just log severity.
// See output.go for the category system.
const (
	VerbosityUser  = 0 // No flags: per-component results and errors only
	VerbosityInfo  = 1 // -v: + run summary, template resolution, index updates
	VerbosityDebug = 2 // -vv: + cleanup details, config, journal
	VerbosityTrace = 3 // -vvv: + every file written
)

// VerbosityToLevel maps verbosity flags (-v, -vv, etc.) to zap log levels
//
//	0 (none)  -> InfoLevel  (the generator reports each component at info)
//	1 (-v)    -> InfoLevel
//	2+ (-vv)  -> DebugLevel
func VerbosityToLevel(verbosity int) zapcore.Level {
	if verbosity >= VerbosityDebug {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

// LevelName returns a human-readable name for verbosity level
func LevelName(verbosity int) string {
	switch verbosity {
	case VerbosityUser:
		return "User"
	case VerbosityInfo:
		return "Info (-v)"
	case VerbosityDebug:
		return "Debug (-vv)"
	default:
		if verbosity >= VerbosityTrace {
			return "Trace (-vvv)"
		}
		return "Unknown"
	}
}
