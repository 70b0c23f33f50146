package cleanup

import "strings"

func closerOf(c byte) byte {
	switch c {
	case '[':
		return ']'
	case '{':
		return '}'
	default:
		return ')'
	}
}

// matchClose returns the index of the bracket that closes src[open], or -1
// when the construct is unbalanced. Brackets inside string literals, template
// literals, regular expression literals and comments are ignored.
func matchClose(src string, open int) int {
	var stack []byte
	for i := open; i < len(src); i++ {
		c := src[i]
		switch c {
		case '[', '{', '(':
			stack = append(stack, closerOf(c))
		case ']', '}', ')':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return -1
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i
			}
		case '\'', '"':
			end := skipQuoted(src, i, c)
			if end < 0 {
				return -1
			}
			i = end
		case '`':
			end := skipTemplate(src, i)
			if end < 0 {
				return -1
			}
			i = end
		case '/':
			if i+1 >= len(src) {
				continue
			}
			switch src[i+1] {
			case '/':
				nl := strings.IndexByte(src[i:], '\n')
				if nl < 0 {
					return -1
				}
				i += nl
			case '*':
				end := strings.Index(src[i+2:], "*/")
				if end < 0 {
					return -1
				}
				i += 2 + end + 1
			default:
				if end := skipRegex(src, i); end >= 0 {
					i = end
				}
			}
		}
	}
	return -1
}

// regexKeywords may directly precede a regular expression literal
var regexKeywords = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true, "of": true,
	"new": true, "delete": true, "void": true, "throw": true, "case": true,
	"do": true, "else": true, "yield": true, "await": true,
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// regexAllowed reports whether a '/' at src[pos] can start a regular
// expression literal rather than divide
func regexAllowed(src string, pos int) bool {
	j := pos - 1
	for j >= 0 && (src[j] == ' ' || src[j] == '\t' || src[j] == '\n' || src[j] == '\r') {
		j--
	}
	if j < 0 {
		return true
	}
	c := src[j]
	if strings.IndexByte("(,=:[!&|?{};+-*%<>~^", c) >= 0 {
		return true
	}
	if !isIdentByte(c) {
		return false
	}
	end := j + 1
	for j >= 0 && isIdentByte(src[j]) {
		j--
	}
	return regexKeywords[src[j+1:end]]
}

// skipRegex returns the index of the slash closing a regular expression
// literal at src[start], or -1 when src[start] is not one
func skipRegex(src string, start int) int {
	if !regexAllowed(src, start) {
		return -1
	}
	inClass := false
	for j := start + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				return j
			}
		case '\n':
			return -1
		}
	}
	return -1
}

// skipQuoted returns the index of the quote closing the literal opened at src[start]
func skipQuoted(src string, start int, quote byte) int {
	for j := start + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case quote:
			return j
		case '\n':
			return -1
		}
	}
	return -1
}

// skipTemplate returns the index of the backtick closing the template literal at src[start]
func skipTemplate(src string, start int) int {
	for j := start + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '`':
			return j
		case '$':
			if j+1 < len(src) && src[j+1] == '{' {
				end := matchClose(src, j+1)
				if end < 0 {
					return -1
				}
				j = end
			}
		}
	}
	return -1
}

// lineIndent returns the whitespace that starts the line containing src[pos]
func lineIndent(src string, pos int) string {
	start := strings.LastIndexByte(src[:pos], '\n') + 1
	end := start
	for end < pos && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	if end != pos {
		// something other than whitespace precedes pos on this line
		return ""
	}
	return src[start:end]
}

// stripComments removes line and block comments outside of string and
// regular expression literals.
// Line comments keep their newline so collapsing whitespace later cannot
// swallow the code that follows them.
func stripComments(src string) string {
	if !strings.Contains(src, "/") {
		return src
	}

	var sb strings.Builder
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\'' || c == '"' || c == '`':
			var end int
			if c == '`' {
				end = skipTemplate(src, i)
			} else {
				end = skipQuoted(src, i, c)
			}
			if end < 0 {
				sb.WriteString(src[i:])
				return sb.String()
			}
			sb.WriteString(src[i : end+1])
			i = end
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			nl := strings.IndexByte(src[i:], '\n')
			if nl < 0 {
				return sb.String()
			}
			i += nl - 1
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return sb.String()
			}
			sb.WriteByte(' ')
			i += 2 + end + 1
		case c == '/' && skipRegex(src, i) >= 0:
			end := skipRegex(src, i)
			sb.WriteString(src[i : end+1])
			i = end
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
