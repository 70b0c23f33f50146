package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pterm/pterm"
)

// CLIEmitter outputs pretty-printed progress to a terminal using pterm
type CLIEmitter struct {
	out       io.Writer
	verbosity int
}

// NewCLIEmitter creates a CLI progress emitter writing to stdout
func NewCLIEmitter(verbosity int) *CLIEmitter {
	return NewCLIEmitterTo(os.Stdout, verbosity)
}

// NewCLIEmitterTo creates a CLI progress emitter writing to w
func NewCLIEmitterTo(w io.Writer, verbosity int) *CLIEmitter {
	return &CLIEmitter{out: w, verbosity: verbosity}
}

// EmitStage prints a stage announcement
func (e *CLIEmitter) EmitStage(stage string, message string) {
	fmt.Fprintf(e.out, "🔄 %s: %s\n", pterm.LightCyan(stage), message)
}

// EmitComponent prints one line per component, plus a warning when registration failed
func (e *CLIEmitter) EmitComponent(ev ComponentEvent) {
	counter := pterm.Gray(fmt.Sprintf("[%d/%d]", ev.Index, ev.Total))

	if ev.Failed() {
		pterm.Error.WithWriter(e.out).Printfln("%s %s: %s", counter, ev.Name, ev.Error)
		return
	}

	note := ""
	switch {
	case ev.IndexError != "":
		note = pterm.Yellow(" (not exported)")
	case !ev.Registered:
		note = pterm.Gray(" (already exported)")
	}
	fmt.Fprintf(e.out, "✅ %s %s → %s%s\n", counter, pterm.Green(ev.CompName), ev.Folder, note)

	if ev.IndexError != "" {
		pterm.Warning.WithWriter(e.out).Println(ev.IndexError)
	}
}

// EmitComplete prints the run summary
func (e *CLIEmitter) EmitComplete(s Summary) {
	msg := fmt.Sprintf("Generated %d/%d components", s.Succeeded, s.Total)
	if s.Failed > 0 {
		pterm.Warning.WithWriter(e.out).Printfln("%s, %d failed", msg, s.Failed)
	} else {
		pterm.Success.WithWriter(e.out).Println(msg)
	}

	if e.verbosity >= 1 {
		data := pterm.TableData{
			{"run", "total", "succeeded", "failed", "duration"},
			{s.RunID, fmt.Sprint(s.Total), fmt.Sprint(s.Succeeded), fmt.Sprint(s.Failed), s.Duration.Round(time.Millisecond).String()},
		}
		_ = pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(e.out).Render()
	}
}

// EmitError prints a run-level error
func (e *CLIEmitter) EmitError(stage string, err error) {
	pterm.Error.WithWriter(e.out).Printfln("Error in %s: %v", stage, err)
}

// EmitInfo prints informational messages at -v and above
func (e *CLIEmitter) EmitInfo(message string) {
	if e.verbosity >= 1 {
		pterm.Info.WithWriter(e.out).Println(message)
	}
}
