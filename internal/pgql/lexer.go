package pgql

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokQuotedIdent
	tokString
	tokInteger
	tokDecimal
	tokPunct
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokIdent, tokQuotedIdent:
		return "identifier"
	case tokString:
		return "string literal"
	case tokInteger:
		return "integer literal"
	case tokDecimal:
		return "decimal literal"
	default:
		return "punctuation"
	}
}

// token is one lexical element. For quoted identifiers and strings, text is
// the unescaped value.
type token struct {
	kind tokenKind
	text string
	line int
	col  int
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return t.kind.String()
	case tokString:
		return QuoteString(t.text)
	case tokQuotedIdent:
		return QuoteIdentifier(t.text)
	}
	return strconv.Quote(t.text)
}

// is reports whether t is the punctuation p or the keyword p, ignoring case
// for keywords.
func (t token) is(p string) bool {
	switch t.kind {
	case tokPunct:
		return t.text == p
	case tokIdent:
		return strings.EqualFold(t.text, p)
	}
	return false
}

var errUnexpectedEOF = errors.New("unexpected end of input")

// punctuation lists the operators, longest first so that ">=" wins over ">".
var punctuation = []string{
	"!=", "<>", "<=", ">=", "=~",
	"+", "-", "*", "/", "%", "=", "<", ">", "!", "(", ")", ",", ".", "?",
}

// lexer splits the input into tokens. It walks the input rune by rune and
// keeps line and column numbers for error messages.
type lexer struct {
	input string
	pos   int
	// nextPos is start of the next char.
	nextPos int
	// char is the rune starting at pos. char is set to 0 when pos reaches the
	// end of input.
	char rune
	// lineNum is the number of the current line of the input.
	lineNum int
	// lineStart is the position of the first char of the current line.
	lineStart int
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, lineNum: 1}
	l.advanceChar()
	return l
}

func (l *lexer) colNum() int {
	return utf8.RuneCountInString(l.input[l.lineStart:l.pos]) + 1
}

// advanceChar moves to the next character, updating line and column numbers
// at line breaks.
func (l *lexer) advanceChar() bool {
	if l.nextPos >= len(l.input) {
		l.char = 0
		l.pos = l.nextPos
		return false
	}
	if l.char == '\n' {
		l.lineStart = l.nextPos
		l.lineNum++
	}
	var size int
	l.char, size = utf8.DecodeRuneInString(l.input[l.nextPos:])
	l.pos = l.nextPos
	l.nextPos += size
	return true
}

func (l *lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// peekByte returns the byte after the current char, or 0.
func (l *lexer) peekByte() byte {
	if l.nextPos < len(l.input) {
		return l.input[l.nextPos]
	}
	return 0
}

// skipBlanks advances past spaces, tabs and newlines.
func (l *lexer) skipBlanks() {
	for !l.atEOF() {
		switch l.char {
		case ' ', '\t', '\r', '\n':
			l.advanceChar()
		default:
			return
		}
	}
}

// errorAt wraps an error with line and column information.
func errorAt(err error, line int, column int, input string) error {
	if strings.ContainsRune(input, '\n') {
		return fmt.Errorf("line %d, column %d: %w", line, column, err)
	}
	return fmt.Errorf("column %d: %w", column, err)
}

func (l *lexer) errorf(line, col int, format string, args ...any) error {
	return errorAt(fmt.Errorf(format, args...), line, col, l.input)
}

// next returns the next token.
func (l *lexer) next() (token, error) {
	l.skipBlanks()
	tok := token{line: l.lineNum, col: l.colNum()}
	if l.atEOF() {
		tok.kind = tokEOF
		return tok, nil
	}

	switch c := l.char; {
	case isInitialNameChar(c):
		start := l.pos
		for !l.atEOF() && isNameChar(l.char) {
			l.advanceChar()
		}
		tok.kind, tok.text = tokIdent, l.input[start:l.pos]
		return tok, nil
	case c >= '0' && c <= '9':
		return l.number(tok)
	case c == '\'':
		text, err := l.quoted('\'')
		if err != nil {
			return tok, err
		}
		tok.kind, tok.text = tokString, text
		return tok, nil
	case c == '"':
		text, err := l.quoted('"')
		if err != nil {
			return tok, err
		}
		if text == "" {
			return tok, l.errorf(tok.line, tok.col, "empty quoted identifier")
		}
		tok.kind, tok.text = tokQuotedIdent, text
		return tok, nil
	}

	rest := l.input[l.pos:]
	for _, p := range punctuation {
		if strings.HasPrefix(rest, p) {
			for range p {
				l.advanceChar()
			}
			tok.kind, tok.text = tokPunct, p
			return tok, nil
		}
	}
	return tok, l.errorf(tok.line, tok.col, "unexpected character %q", l.char)
}

// number scans digits [ '.' digits ] [ ('e'|'E') [sign] digits ]. A '.' is
// only part of the number when a digit follows, so `5.id()` is a method call.
func (l *lexer) number(tok token) (token, error) {
	start := l.pos
	tok.kind = tokInteger
	l.digits()
	if l.char == '.' && isDigit(l.peekByte()) {
		tok.kind = tokDecimal
		l.advanceChar()
		l.digits()
	}
	if l.char == 'e' || l.char == 'E' {
		tok.kind = tokDecimal
		l.advanceChar()
		if l.char == '+' || l.char == '-' {
			l.advanceChar()
		}
		if l.char > 0x7f || !isDigit(byte(l.char)) {
			return tok, l.errorf(tok.line, tok.col, "malformed exponent in %q", l.input[start:l.pos])
		}
		l.digits()
	}
	if !l.atEOF() && isInitialNameChar(l.char) {
		return tok, l.errorf(tok.line, tok.col, "malformed number %q", l.input[start:l.nextPos])
	}
	tok.text = l.input[start:l.pos]
	return tok, nil
}

func (l *lexer) digits() {
	for !l.atEOF() && l.char >= '0' && l.char <= '9' {
		l.advanceChar()
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// quoted scans a literal delimited by q and returns its unescaped value.
// Escapes are \' \" \\ \n \t \r \b \f and \uXXXX.
func (l *lexer) quoted(q rune) (string, error) {
	line, col := l.lineNum, l.colNum()
	l.advanceChar()

	var b strings.Builder
	for {
		if l.atEOF() {
			return "", l.errorf(line, col, "missing closing quote %c", q)
		}
		c := l.char
		switch {
		case c == q:
			l.advanceChar()
			return b.String(), nil
		case c == '\\':
			l.advanceChar()
			if l.atEOF() {
				return "", l.errorf(line, col, "missing closing quote %c", q)
			}
			r, err := l.escape()
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
		default:
			b.WriteRune(c)
			l.advanceChar()
		}
	}
}

func (l *lexer) escape() (rune, error) {
	line, col := l.lineNum, l.colNum()
	c := l.char
	l.advanceChar()
	switch c {
	case '\'', '"', '\\':
		return c, nil
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'u':
		if l.pos+4 > len(l.input) {
			return 0, l.errorf(line, col, "incomplete \\u escape")
		}
		hex := l.input[l.pos : l.pos+4]
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, l.errorf(line, col, "invalid \\u escape %q", hex)
		}
		for i := 0; i < 4; i++ {
			l.advanceChar()
		}
		return rune(n), nil
	}
	return 0, l.errorf(line, col, "unknown escape sequence \\%c", c)
}
