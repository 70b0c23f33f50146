// Package jsonutil encodes JSON without HTML escaping.
//
// Component source carries markup such as <template> and &&; the default
// encoder would rewrite those as < and &.
package jsonutil

import (
	"bytes"
	"encoding/json"
)

// MarshalNoEscape encodes v into JSON without escaping <, >, & into <, etc.
func MarshalNoEscape(v any) ([]byte, error) {
	return MarshalNoEscapeIndent(v, "", "")
}

// MarshalNoEscapeIndent encodes v into JSON with indentation but without HTML escaping.
// Struct field order is preserved and the trailing newline is removed.
func MarshalNoEscapeIndent(v any, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if prefix != "" || indent != "" {
		enc.SetIndent(prefix, indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
