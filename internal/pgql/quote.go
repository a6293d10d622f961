package pgql

import (
	"fmt"
	"strings"
	"unicode"
)

// keywords are reserved words of the expression grammar. An identifier that
// matches one, in any case, must be double-quoted.
var keywords = map[string]bool{
	"AND":           true,
	"OR":            true,
	"NOT":           true,
	"TRUE":          true,
	"FALSE":         true,
	"NULL":          true,
	"DATE":          true,
	"TIME":          true,
	"TIMESTAMP":     true,
	"CAST":          true,
	"AS":            true,
	"COUNT":         true,
	"MIN":           true,
	"MAX":           true,
	"SUM":           true,
	"AVG":           true,
	"ALL_DIFFERENT": true,
	"GET_LATITUDE":  true,
	"GET_LONGITUDE": true,
}

// IsKeyword reports whether s is a reserved word, ignoring case.
func IsKeyword(s string) bool {
	return keywords[strings.ToUpper(s)]
}

// isNameChar returns true if the given char can be part of a name.
func isNameChar(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}

// isInitialNameChar returns true if the given char can appear at the start of
// a name.
func isInitialNameChar(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

// isPlainIdentifier reports whether s can be written without quotes.
func isPlainIdentifier(s string) bool {
	if s == "" || IsKeyword(s) {
		return false
	}
	for i, c := range s {
		if (i == 0 && !isInitialNameChar(c)) || !isNameChar(c) {
			return false
		}
	}
	return true
}

// QuoteIdentifier returns name as written in an expression: unchanged if it
// is a plain identifier, double-quoted and escaped otherwise.
func QuoteIdentifier(name string) string {
	if isPlainIdentifier(name) {
		return name
	}
	return quote(name, '"')
}

// QuoteString returns s as a single-quoted string literal.
func QuoteString(s string) string {
	return quote(s, '\'')
}

func quote(s string, q byte) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(q)
	for _, c := range s {
		switch c {
		case rune(q), '\\':
			b.WriteByte('\\')
			b.WriteRune(c)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&b, `\u%04x`, c)
			} else {
				b.WriteRune(c)
			}
		}
	}
	b.WriteByte(q)
	return b.String()
}
