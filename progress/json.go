package progress

import (
	"encoding/json"
	"io"
	"os"
	"time"
)

// JSONEmitter outputs structured JSON events, one per line
type JSONEmitter struct {
	encoder *json.Encoder
	now     func() time.Time
}

// NewJSONEmitter creates a JSON progress emitter writing to stdout
func NewJSONEmitter() *JSONEmitter {
	return NewJSONEmitterTo(os.Stdout)
}

// NewJSONEmitterTo creates a JSON progress emitter writing to w
func NewJSONEmitterTo(w io.Writer) *JSONEmitter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONEmitter{encoder: enc, now: time.Now}
}

func (e *JSONEmitter) emit(typ string, data map[string]any) {
	_ = e.encoder.Encode(Event{Type: typ, Timestamp: e.now(), Data: data})
}

// EmitStage emits a stage event
func (e *JSONEmitter) EmitStage(stage string, message string) {
	e.emit("stage", map[string]any{"stage": stage, "message": message})
}

// EmitComponent emits a component event
func (e *JSONEmitter) EmitComponent(ev ComponentEvent) {
	data := map[string]any{
		"index":      ev.Index,
		"total":      ev.Total,
		"name":       ev.Name,
		"comp_name":  ev.CompName,
		"tag_name":   ev.TagName,
		"folder":     ev.Folder,
		"replaced":   ev.Replaced,
		"registered": ev.Registered,
	}
	if ev.IndexError != "" {
		data["index_error"] = ev.IndexError
	}
	if ev.Error != "" {
		data["error"] = ev.Error
	}
	e.emit("component", data)
}

// EmitComplete emits a completion event
func (e *JSONEmitter) EmitComplete(s Summary) {
	e.emit("complete", map[string]any{
		"run_id":      s.RunID,
		"total":       s.Total,
		"succeeded":   s.Succeeded,
		"failed":      s.Failed,
		"duration_ms": s.Duration.Milliseconds(),
	})
}

// EmitError emits an error event
func (e *JSONEmitter) EmitError(stage string, err error) {
	e.emit("error", map[string]any{"stage": stage, "error": err.Error()})
}

// EmitInfo emits an info event
func (e *JSONEmitter) EmitInfo(message string) {
	e.emit("info", map[string]any{"message": message})
}
