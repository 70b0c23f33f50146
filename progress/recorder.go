package progress

import "sync"

// Recorder keeps every event in memory. Safe for concurrent use.
type Recorder struct {
	mu         sync.Mutex
	Stages     []string
	Components []ComponentEvent
	Summaries  []Summary
	Errors     []error
	Infos      []string
}

// EmitStage records a stage
func (r *Recorder) EmitStage(stage string, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Stages = append(r.Stages, stage)
}

// EmitComponent records a component event
func (r *Recorder) EmitComponent(ev ComponentEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Components = append(r.Components, ev)
}

// EmitComplete records a summary
func (r *Recorder) EmitComplete(s Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Summaries = append(r.Summaries, s)
}

// EmitError records an error
func (r *Recorder) EmitError(stage string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, err)
}

// EmitInfo records a message
func (r *Recorder) EmitInfo(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Infos = append(r.Infos, message)
}

// SummaryCount returns how many runs completed
func (r *Recorder) SummaryCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Summaries)
}

// Nop discards all events
type Nop struct{}

func (Nop) EmitStage(string, string) {}
func (Nop) EmitComponent(ComponentEvent) {}
func (Nop) EmitComplete(Summary) {}
func (Nop) EmitError(string, error) {}
func (Nop) EmitInfo(string) {}

var (
	_ Emitter = (*CLIEmitter)(nil)
	_ Emitter = (*JSONEmitter)(nil)
	_ Emitter = (*Recorder)(nil)
	_ Emitter = Nop{}
)
