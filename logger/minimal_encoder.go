package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

type palette struct {
	time      string
	component string
	key       string
	value     string
	warn      string
	warnBg    string
	err       string
	errBg     string
}

// Gruvbox Dark (warm, muted)
var gruvbox = palette{
	time:      "\x1b[38;5;108m",
	component: "\x1b[38;5;208m",
	key:       "\x1b[38;5;109m",
	value:     "\x1b[38;5;223m",
	warn:      "\x1b[38;5;214m",
	warnBg:    "\x1b[48;5;58m",
	err:       "\x1b[38;5;167m",
	errBg:     "\x1b[48;5;88m",
}

// Everforest Dark (forest greens)
var everforest = palette{
	time:      "\x1b[38;5;107m",
	component: "\x1b[38;5;108m",
	key:       "\x1b[38;5;65m",
	value:     "\x1b[38;5;223m",
	warn:      "\x1b[38;5;179m",
	warnBg:    "\x1b[48;5;58m",
	err:       "\x1b[38;5;167m",
	errBg:     "\x1b[48;5;52m",
}

var bufferPool = buffer.NewPool()

// Current active theme
var currentTheme = "everforest"

// SetTheme configures the color scheme for log output; unknown names are ignored
func SetTheme(theme string) {
	if theme == "everforest" || theme == "gruvbox" {
		currentTheme = theme
	}
}

func colors() palette {
	if currentTheme == "gruvbox" {
		return gruvbox
	}
	return everforest
}

// minimalEncoder implements a calm, compact console encoder with theme support
// Format: "13:04:35  generator  Created component  comp_name=LcapFoo tag_name=lcap-foo"
//
// Fields attached with With() land in the embedded map encoder and are
// rendered alongside the entry's own fields.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return &minimalEncoder{MapObjectEncoder: clone}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	c := colors()
	final := bufferPool.Get()

	final.AppendString(c.time)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only shown for WARN and above, plus a plain DEBUG marker
	if ent.Level >= zapcore.WarnLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level, c))
	} else if ent.Level == zapcore.DebugLevel {
		final.AppendString("  DEBUG")
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(c.component)
		final.AppendString(ent.LoggerName)
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(ent.Message)

	merged := zapcore.NewMapObjectEncoder()
	for k, v := range enc.Fields {
		merged.Fields[k] = v
	}
	for _, f := range fields {
		f.AddTo(merged)
	}
	if rendered := renderFields(merged.Fields, c); rendered != "" {
		final.AppendString("  ")
		final.AppendString(rendered)
	}

	final.AppendString("\n")
	return final, nil
}

func levelColorString(level zapcore.Level, c palette) string {
	switch level {
	case zapcore.WarnLevel:
		return colorBold + c.warnBg + c.warn + "WARN" + colorReset
	default:
		return colorBold + c.errBg + c.err + level.CapitalString() + colorReset
	}
}

// renderFields prints every field as key=value, sorted by key.
// Complex values fall back to %v.
func renderFields(fields map[string]interface{}, c palette) string {
	if len(fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		// zap adds <key>Verbose with the full stack for formatter errors; JSON output keeps it
		if strings.HasSuffix(k, "Verbose") {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, c.key+k+colorReset+"="+c.value+fmt.Sprintf("%v", fields[k])+colorReset)
	}
	return strings.Join(parts, " ")
}
