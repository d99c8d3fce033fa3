package aiquiz

import "strings"

var scriptLiterals = map[string]string{
	"True":  "true",
	"False": "false",
	"None":  "null",
}

const hexDigits = "0123456789abcdef"

// NormalizeLiterals rewrites script-style literals into strict JSON syntax: single-quoted
// strings become double-quoted, True/False/None outside strings become true/false/null,
// and trailing commas before a closing bracket are dropped. Double-quoted strings are
// copied untouched.
func NormalizeLiterals(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/16)

	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '"':
			j := endOfDoubleQuoted(s, i)
			b.WriteString(s[i:j])
			i = j
		case c == '\'':
			i = writeSingleQuoted(&b, s, i)
		case isIdentStart(c):
			j := i + 1
			for j < len(s) && isIdentPart(s[j]) {
				j++
			}
			word := s[i:j]
			if lit, ok := scriptLiterals[word]; ok {
				b.WriteString(lit)
			} else {
				b.WriteString(word)
			}
			i = j
		case c == ',' && closesAfterSpace(s, i+1):
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// endOfDoubleQuoted returns the index just past the string opened at s[start].
func endOfDoubleQuoted(s string, start int) int {
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return len(s)
}

func writeSingleQuoted(b *strings.Builder, s string, start int) int {
	b.WriteByte('"')
	i := start + 1
	for i < len(s) {
		c := s[i]
		switch c {
		case '\\':
			if i+1 >= len(s) {
				b.WriteString(`\\`)
				i++
				continue
			}
			if next := s[i+1]; next == '\'' {
				b.WriteByte('\'')
			} else {
				b.WriteByte('\\')
				b.WriteByte(next)
			}
			i += 2
		case '"':
			b.WriteString(`\"`)
			i++
		case '\n':
			b.WriteString(`\n`)
			i++
		case '\t':
			b.WriteString(`\t`)
			i++
		case '\r':
			b.WriteString(`\r`)
			i++
		case '\'':
			b.WriteByte('"')
			return i + 1
		default:
			if c < 0x20 {
				b.WriteString(`\u00`)
				b.WriteByte(hexDigits[c>>4])
				b.WriteByte(hexDigits[c&0xf])
			} else {
				b.WriteByte(c)
			}
			i++
		}
	}
	// unterminated: close it so the remainder stays parseable as far as possible
	b.WriteByte('"')
	return i
}

func closesAfterSpace(s string, i int) bool {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i < len(s) && (s[i] == ']' || s[i] == '}')
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
