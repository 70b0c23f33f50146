package scaffold

import "strings"

// Placeholder tokens recognized in template files
const (
	TokenPkgName     = "{{pkgName}}"
	TokenTagName     = "{{tagName}}"
	TokenCompName    = "{{compName}}"
	TokenTitle       = "{{title}}"
	TokenDescription = "{{description}}"
	TokenType        = "{{type}}"
	TokenCompProps   = "{{compProps}}"
	TokenCompCode    = "{{compCode}}"
)

// Tokens holds the substitution values for one component
type Tokens struct {
	PkgName     string
	TagName     string
	CompName    string
	Title       string
	Description string // defaults to Title
	Type        string
	Props       string
	Code        string
}

// Pairs returns the ordered token/value list
func (t Tokens) Pairs() []string {
	desc := t.Description
	if desc == "" {
		desc = t.Title
	}
	return []string{
		TokenPkgName, t.PkgName,
		TokenTagName, t.TagName,
		TokenCompName, t.CompName,
		TokenTitle, t.Title,
		TokenDescription, desc,
		TokenType, t.Type,
		TokenCompProps, t.Props,
		TokenCompCode, t.Code,
	}
}

// Replacer returns a replacer for all tokens. Replacement values are never
// re-scanned, so a value containing "{{title}}" is written as is.
func (t Tokens) Replacer() *strings.Replacer {
	return strings.NewReplacer(t.Pairs()...)
}

// Apply substitutes every token in content
func (t Tokens) Apply(content string) string {
	return t.Replacer().Replace(content)
}
