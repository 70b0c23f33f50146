// Package component holds the business component records exchanged between
// extract and generate.
package component

import "encoding/json"

// Param is one declared property of a business component
type Param struct {
	Name  string `json:"name" yaml:"name"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// Nasl is the subset of the component metadata the generator reads.
// Unknown fields in the source metadata are ignored.
type Nasl struct {
	Title  string  `json:"title" yaml:"title"`
	Params []Param `json:"params" yaml:"params"`
}

// Record is one entry of components.json as consumed by the generator.
// Derived names (display, tag) are computed at use time; the record is never mutated.
type Record struct {
	Name       string `json:"name" yaml:"name"`
	SourceCode string `json:"sourceCode" yaml:"sourceCode"`
	Nasl       Nasl   `json:"nasl" yaml:"nasl"`
}

// RawRecord is one entry of components.json as written by the extractor.
// Nasl keeps the platform metadata verbatim.
type RawRecord struct {
	Name       string          `json:"name"`
	SourceCode string          `json:"sourceCode"`
	Nasl       json.RawMessage `json:"nasl"`
}

// MetaInfo is constant for a generator run: the template framework and the
// owning package every generated component is filed under
type MetaInfo struct {
	Framework string `json:"framework"`
	Name      string `json:"name"` // owning package name
}
