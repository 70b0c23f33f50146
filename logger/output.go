package logger

// OutputCategory defines a category of output that can be enabled/disabled.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed.
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults OutputCategory = iota // Per-component success/failure
	OutputErrors                        // Errors with hints

	// Level 1 (-v)
	OutputSummary  // Run summary table
	OutputTemplate // Template resolution and manifest details
	OutputIndex    // Index registration decisions

	// Level 2 (-vv)
	OutputCleanup // Source cleanup rewrites
	OutputConfig  // Config values loaded
	OutputJournal // Journal writes

	// Level 3 (-vvv)
	OutputFiles // Every file written during instantiation
)

var categoryLevels = map[OutputCategory]int{
	OutputResults:  VerbosityUser,
	OutputErrors:   VerbosityUser,
	OutputSummary:  VerbosityInfo,
	OutputTemplate: VerbosityInfo,
	OutputIndex:    VerbosityInfo,
	OutputCleanup:  VerbosityDebug,
	OutputConfig:   VerbosityDebug,
	OutputJournal:  VerbosityDebug,
	OutputFiles:    VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

var categoryNames = map[OutputCategory]string{
	OutputResults:  "results",
	OutputErrors:   "errors",
	OutputSummary:  "summary",
	OutputTemplate: "template",
	OutputIndex:    "index",
	OutputCleanup:  "cleanup",
	OutputConfig:   "config",
	OutputJournal:  "journal",
	OutputFiles:    "files",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
