// Package progress reports generator runs to the terminal or as JSON lines.
//
// Implementations include:
//   - CLIEmitter: pretty-printed terminal output using pterm
//   - JSONEmitter: one JSON event per line for scripts and editors
//   - Recorder: keeps events in memory
package progress

import "time"

// Emitter receives run progress. Implementations must not fail the run.
type Emitter interface {
	// EmitStage announces a phase such as "load" or "generate"
	EmitStage(stage string, message string)

	// EmitComponent reports the outcome of one component
	EmitComponent(ev ComponentEvent)

	// EmitComplete reports the end of a run
	EmitComplete(summary Summary)

	// EmitError reports a run-level error
	EmitError(stage string, err error)

	// EmitInfo prints an informational message
	EmitInfo(message string)
}

// ComponentEvent describes one processed component
type ComponentEvent struct {
	Index      int    `json:"index"` // 1-based position in the input
	Total      int    `json:"total"`
	Name       string `json:"name"`
	CompName   string `json:"comp_name,omitempty"`
	TagName    string `json:"tag_name,omitempty"`
	Folder     string `json:"folder,omitempty"`
	Replaced   bool   `json:"replaced"`
	Registered bool   `json:"registered"`
	IndexError string `json:"index_error,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Failed reports whether the component was not generated
func (e ComponentEvent) Failed() bool {
	return e.Error != ""
}

// Summary describes a finished run
type Summary struct {
	RunID     string        `json:"run_id,omitempty"`
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Duration  time.Duration `json:"-"`
}

// Event is the JSON line written by JSONEmitter
type Event struct {
	Type      string         `json:"type"` // "stage", "component", "complete", "error", "info"
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data"`
}
