// Package cleanup normalizes generated component source before it is
// embedded into a template.
//
// Three rewrites run in a fixed order:
//
//	mixins: [A, B]          ->  mixins: window.$mixins ? [A, B] : []
//	return this.helper(...) ->  if (!this.helper) return;\nreturn this.helper(...)
//	meta: { ... }           ->  name: '<tag>'
//
// Array and object extents are found with a bracket scanner that skips
// strings and comments, so nested literals are handled. A construct whose
// brackets never balance is left as is.
package cleanup

import (
	"regexp"
	"strings"
)

// Defaults for the runtime identifiers the rewrites emit
const (
	DefaultMixinsFlag       = "window.$mixins"
	DefaultDataSourceHelper = "__getOrCreateDataSource"
)

var (
	mixinsOpen = regexp.MustCompile(`\bmixins:\s*\[`)
	metaOpen   = regexp.MustCompile(`\bmeta:\s*\{`)
)

// Stats counts the rewrites applied to one source
type Stats struct {
	Mixins int
	Guards int
	Meta   int
}

// Pipeline holds the identifiers used by the rewrites
type Pipeline struct {
	MixinsFlag       string
	DataSourceHelper string
}

// DefaultPipeline returns a pipeline with the default identifiers
func DefaultPipeline() Pipeline {
	return Pipeline{MixinsFlag: DefaultMixinsFlag, DataSourceHelper: DefaultDataSourceHelper}
}

// Apply runs all rewrites over src in order
func (p Pipeline) Apply(src, tag string) (string, Stats) {
	flag := p.MixinsFlag
	if flag == "" {
		flag = DefaultMixinsFlag
	}
	helper := p.DataSourceHelper
	if helper == "" {
		helper = DefaultDataSourceHelper
	}

	var st Stats
	src, st.Mixins = collapseMixins(src, flag)
	src, st.Guards = guardDataSource(src, helper)
	src, st.Meta = replaceMeta(src, tag)
	return src, st
}

// CollapseMixins wraps every mixins array literal in a runtime check on flag,
// collapsing the element list onto one line. Comments inside the list are dropped.
func CollapseMixins(src, flag string) string {
	out, _ := collapseMixins(src, flag)
	return out
}

func collapseMixins(src, flag string) (string, int) {
	return rewriteBalanced(src, mixinsOpen, func(head, body string) string {
		// head is "mixins:<ws>"; body includes the brackets
		elems := strings.Join(strings.Fields(stripComments(body[1:len(body)-1])), " ")
		return head + flag + " ? [" + elems + "] : []"
	})
}

// GuardDataSource inserts an early return before every `return this.<helper>(`
// so hosts that do not inject the helper skip the call.
func GuardDataSource(src, helper string) string {
	out, _ := guardDataSource(src, helper)
	return out
}

func guardDataSource(src, helper string) (string, int) {
	re := regexp.MustCompile(`return\s+this\.` + regexp.QuoteMeta(helper) + `\(`)
	matches := re.FindAllStringIndex(src, -1)
	if len(matches) == 0 {
		return src, 0
	}

	guard := "if (!this." + helper + ") return;\n"
	var sb strings.Builder
	last := 0
	for _, m := range matches {
		sb.WriteString(src[last:m[0]])
		sb.WriteString(guard)
		sb.WriteString(lineIndent(src, m[0]))
		last = m[0]
	}
	sb.WriteString(src[last:])
	return sb.String(), len(matches)
}

// ReplaceMeta replaces every meta object literal, nested content included,
// with a single name field set to tag.
func ReplaceMeta(src, tag string) string {
	out, _ := replaceMeta(src, tag)
	return out
}

func replaceMeta(src, tag string) (string, int) {
	return rewriteBalanced(src, metaOpen, func(_, _ string) string {
		return "name: '" + tag + "'"
	})
}

// rewriteBalanced finds each match of open (which must end at an opening
// bracket), extends it to the balancing bracket and replaces the whole
// construct with fn(head, body). head is the match without its bracket and
// body runs from the opening to the closing bracket inclusive.
func rewriteBalanced(src string, open *regexp.Regexp, fn func(head, body string) string) (string, int) {
	matches := open.FindAllStringIndex(src, -1)
	if len(matches) == 0 {
		return src, 0
	}

	var sb strings.Builder
	last, n := 0, 0
	for _, m := range matches {
		if m[0] < last {
			// inside a construct already rewritten
			continue
		}
		bracket := m[1] - 1
		end := matchClose(src, bracket)
		if end < 0 {
			continue
		}
		sb.WriteString(src[last:m[0]])
		sb.WriteString(fn(src[m[0]:bracket], src[bracket:end+1]))
		last = end + 1
		n++
	}
	sb.WriteString(src[last:])
	return sb.String(), n
}
