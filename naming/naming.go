// Package naming derives identifiers from raw component names.
//
// All functions are pure. Words are split on anything that is not a letter,
// digit or mark, and on lower/upper/digit transitions, so "lcap_user-card",
// "lcapUserCard" and "LCAP user card" all derive the same names. Letters of
// other scripts are kept: "lcap_用户卡片" becomes Lcap用户卡片 / lcap-用户卡片.
package naming

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FallbackDisplayName is used when a raw name has no usable letters or digits
const FallbackDisplayName = "Component"

// FallbackFieldName is used when a parameter name has no usable letters or digits
const FallbackFieldName = "value"

// DefaultTagPrefixes are the framework families whose tags are kebab-case
var DefaultTagPrefixes = []string{"vue"}

// fold replaces a rune by its accent-free ASCII form when it has one
// (é -> e, full-width Ａ -> A). Other runes, CJK included, are kept as-is.
func fold(r rune) string {
	if r < unicode.MaxASCII {
		return string(r)
	}
	stripped, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))), string(r))
	if err != nil || stripped == "" {
		return string(r)
	}
	for _, c := range stripped {
		if c >= unicode.MaxASCII {
			return string(r)
		}
	}
	return stripped
}

type kind int

const (
	kindSep kind = iota
	kindUpper
	kindLower
	kindDigit
	kindUncased // letters without case: CJK, kana, ...
	kindMark
)

func kindOf(r rune) kind {
	switch {
	case unicode.IsUpper(r) || unicode.IsTitle(r):
		return kindUpper
	case unicode.IsLower(r):
		return kindLower
	case unicode.IsDigit(r):
		return kindDigit
	case unicode.IsLetter(r):
		return kindUncased
	case unicode.IsMark(r):
		return kindMark
	}
	return kindSep
}

// breaksBefore reports whether a word starts at rs[i]. prev is the kind of
// the last non-mark rune of the current word.
func breaksBefore(rs []rune, i int, prev, cur kind) bool {
	switch {
	case prev == cur:
		// HTMLParser: the P starts a word because a lower-case letter follows
		return cur == kindUpper && i+1 < len(rs) && kindOf(rs[i+1]) == kindLower
	case prev == kindUpper && cur == kindLower:
		return false
	}
	return true
}

// words splits a raw name into lower-case words. Letters, digits and marks of
// any script are word characters; everything else separates words. Words also
// break on case and digit transitions and where cased letters meet uncased
// ones ("Lcap用户卡片" -> lcap, 用户卡片).
func words(raw string) []string {
	var folded []rune
	for _, r := range norm.NFC.String(raw) {
		folded = append(folded, []rune(fold(r))...)
	}

	var out []string
	var cur []rune
	prev := kindSep
	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}
	for i, r := range folded {
		k := kindOf(r)
		switch {
		case k == kindSep:
			flush()
			prev = kindSep
			continue
		case k == kindMark:
			if prev == kindSep {
				prev = kindUncased
			}
			cur = append(cur, r)
			continue
		case prev != kindSep && breaksBefore(folded, i, prev, k):
			flush()
		}
		cur = append(cur, r)
		prev = k
	}
	flush()
	return out
}

func upperFirst(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	return string(unicode.ToUpper(r)) + w[size:]
}

// DisplayName returns the PascalCase identifier for a raw component name.
// The result is never empty: a name without letters or digits yields
// FallbackDisplayName.
func DisplayName(raw string) string {
	ws := words(raw)
	if len(ws) == 0 {
		return FallbackDisplayName
	}
	var b strings.Builder
	for _, w := range ws {
		b.WriteString(upperFirst(w))
	}
	return b.String()
}

// FieldName returns the lowerCamel property identifier for a parameter name
func FieldName(raw string) string {
	ws := words(raw)
	if len(ws) == 0 {
		return FallbackFieldName
	}
	var b strings.Builder
	b.WriteString(ws[0])
	for _, w := range ws[1:] {
		b.WriteString(upperFirst(w))
	}
	return b.String()
}

// kebab joins the words of a display name with dashes
func kebab(display string) string {
	return strings.Join(words(display), "-")
}

// UsesKebabTags reports whether framework belongs to one of the tag-based families
func UsesKebabTags(framework string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(framework, p) {
			return true
		}
	}
	return false
}

// TagName returns the folder and element name for a component.
// Tag-based frameworks get kebab-case; others reuse the display name.
func TagName(framework, display string, prefixes []string) string {
	if UsesKebabTags(framework, prefixes) {
		return kebab(display)
	}
	return display
}

// Names bundles the identifiers derived from one raw name
type Names struct {
	Display string
	Tag     string
}

// Derive computes both names for raw under framework
func Derive(raw, framework string, prefixes []string) Names {
	display := DisplayName(raw)
	return Names{Display: display, Tag: TagName(framework, display, prefixes)}
}

// ExportLine returns the index.ts line registering a component
func ExportLine(display, tag string) string {
	return fmt.Sprintf("export { default as %s } from './%s';", display, tag)
}
