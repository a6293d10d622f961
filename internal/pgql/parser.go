package pgql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/pgqlir/internal/ir"
	"github.com/roach88/pgqlir/internal/queryir"
)

// ParseExpr parses a PGQL expression and resolves its identifiers against
// scope. It accepts everything Print produces plus the usual conveniences:
// operator precedence instead of full parenthesization, keywords in any
// case, `<>` for `!=`, and `NOT x` for `!(x)`.
//
// Bind parameters `?` are numbered from 0 in order of appearance. An
// identifier missing from scope fails with an error wrapping
// queryir.ErrUnresolvedVariable. Errors carry the line and column of the
// offending token.
func ParseExpr(input string, scope Scope) (e queryir.Expr, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("cannot parse expression: %w", err)
		}
	}()

	p := &parser{lex: newLexer(input), scope: scope}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind == tokEOF {
		return nil, p.errorf(p.tok, "empty expression")
	}
	e, err = p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf(p.tok, "unexpected %s after expression", p.tok)
	}
	return e, nil
}

// MustParseExpr is like ParseExpr but panics on error. It simplifies
// initialization of fixtures and tests.
func MustParseExpr(input string, scope Scope) queryir.Expr {
	e, err := ParseExpr(input, scope)
	if err != nil {
		panic(err)
	}
	return e
}

// parser is a recursive descent parser with one token of lookahead.
// Precedence, loosest first: OR, AND, NOT, comparison, additive,
// multiplicative, unary, method call.
type parser struct {
	lex   *lexer
	scope Scope
	tok   token
	// peeked holds a token read ahead by peek.
	peeked   *token
	nextBind int
}

func (p *parser) advance() error {
	if p.peeked != nil {
		p.tok, p.peeked = *p.peeked, nil
		return nil
	}
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// peek returns the token after the current one without consuming it.
func (p *parser) peek() (token, error) {
	if p.peeked == nil {
		tok, err := p.lex.next()
		if err != nil {
			return token{}, err
		}
		p.peeked = &tok
	}
	return *p.peeked, nil
}

func (p *parser) errorf(at token, format string, args ...any) error {
	return errorAt(fmt.Errorf(format, args...), at.line, at.col, p.lex.input)
}

func (p *parser) wrapAt(at token, err error) error {
	return errorAt(err, at.line, at.col, p.lex.input)
}

// expect consumes the punctuation or keyword s.
func (p *parser) expect(s string) error {
	if !p.tok.is(s) {
		if p.tok.kind == tokEOF {
			return p.wrapAt(p.tok, fmt.Errorf("%w: expected %q", errUnexpectedEOF, s))
		}
		return p.errorf(p.tok, "expected %q, found %s", s, p.tok)
	}
	return p.advance()
}

// build wraps queryir.Build with the position of the operator token.
func (p *parser) build(at token, kind ir.Kind, payload any, children ...queryir.Expr) (queryir.Expr, error) {
	e, err := queryir.Build(kind, children, payload)
	if err != nil {
		return nil, p.wrapAt(at, err)
	}
	return e, nil
}

// binaryLevel parses a left-associative chain of operators from ops whose
// operands are parsed by next.
func (p *parser) binaryLevel(ops map[string]ir.Kind, next func() (queryir.Expr, error)) (queryir.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		kind, ok := p.operator(ops)
		if !ok {
			return left, nil
		}
		opTok := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		if left, err = p.build(opTok, kind, nil, left, right); err != nil {
			return nil, err
		}
	}
}

func (p *parser) operator(ops map[string]ir.Kind) (ir.Kind, bool) {
	if p.tok.kind != tokPunct && p.tok.kind != tokIdent {
		return ir.KindInvalid, false
	}
	text := p.tok.text
	if p.tok.kind == tokIdent {
		text = strings.ToUpper(text)
	}
	kind, ok := ops[text]
	return kind, ok
}

var (
	orOps  = map[string]ir.Kind{"OR": ir.KindOr}
	andOps = map[string]ir.Kind{"AND": ir.KindAnd}
	cmpOps = map[string]ir.Kind{
		"=":  ir.KindEqual,
		"!=": ir.KindNotEqual,
		"<>": ir.KindNotEqual,
		">":  ir.KindGreater,
		">=": ir.KindGreaterEqual,
		"<":  ir.KindLess,
		"<=": ir.KindLessEqual,
		"=~": ir.KindRegex,
	}
	addOps = map[string]ir.Kind{"+": ir.KindAdd, "-": ir.KindSub}
	mulOps = map[string]ir.Kind{"*": ir.KindMul, "/": ir.KindDiv, "%": ir.KindMod}
)

func (p *parser) parseOr() (queryir.Expr, error)  { return p.binaryLevel(orOps, p.parseAnd) }
func (p *parser) parseAnd() (queryir.Expr, error) { return p.binaryLevel(andOps, p.parseNot) }

func (p *parser) parseNot() (queryir.Expr, error) {
	if !p.tok.is("NOT") {
		return p.parseComparison()
	}
	at := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	x, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	return p.build(at, ir.KindNot, nil, x)
}

func (p *parser) parseComparison() (queryir.Expr, error) {
	return p.binaryLevel(cmpOps, p.parseAdditive)
}

func (p *parser) parseAdditive() (queryir.Expr, error) {
	return p.binaryLevel(addOps, p.parseMultiplicative)
}

func (p *parser) parseMultiplicative() (queryir.Expr, error) {
	return p.binaryLevel(mulOps, p.parseUnary)
}

// parseUnary handles prefix `-` and `!`. A minus directly followed by a
// number literal is folded into a negative constant, which is how Print
// writes negative constants.
func (p *parser) parseUnary() (queryir.Expr, error) {
	at := p.tok
	switch {
	case at.is("-"):
		next, err := p.peek()
		if err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if next.kind == tokInteger || next.kind == tokDecimal {
			lit, err := p.parseNumber(true)
			if err != nil {
				return nil, err
			}
			return p.parsePostfix(lit)
		}
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return p.build(at, ir.KindUMin, nil, x)
	case at.is("!"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return p.build(at, ir.KindNot, nil, x)
	}

	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parsePostfix(x)
}

// methods maps method names, compared case-insensitively, to their kind and
// number of arguments.
var methods = map[string]struct {
	kind ir.Kind
	args int
}{
	"id":        {ir.KindID, 0},
	"label":     {ir.KindEdgeLabel, 0},
	"labels":    {ir.KindVertexLabels, 0},
	"indegree":  {ir.KindInDegree, 0},
	"outdegree": {ir.KindOutDegree, 0},
	"haslabel":  {ir.KindHasLabel, 1},
	"has":       {ir.KindHasProp, 1},
}

// parsePostfix applies method calls `.name(args)` to x.
func (p *parser) parsePostfix(x queryir.Expr) (queryir.Expr, error) {
	for p.tok.is(".") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		name := p.tok
		if name.kind != tokIdent {
			return nil, p.errorf(name, "expected method name, found %s", name)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		var err error
		if x, err = p.method(x, name); err != nil {
			return nil, err
		}
	}
	return x, nil
}

// method parses the argument list of the method name applied to recv. The
// name has been consumed.
func (p *parser) method(recv queryir.Expr, name token) (queryir.Expr, error) {
	m, ok := methods[strings.ToLower(name.text)]
	if !ok {
		return nil, p.errorf(name, "unknown method %s", name.text)
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	if len(args) != m.args {
		return nil, p.errorf(name, "%s() takes %d argument(s), got %d", name.text, m.args, len(args))
	}
	return p.build(name, m.kind, nil, append([]queryir.Expr{recv}, args...)...)
}

// parseArgs parses `( [expr {, expr}] )`.
func (p *parser) parseArgs() ([]queryir.Expr, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	args := []queryir.Expr{}
	if p.tok.is(")") {
		return args, p.advance()
	}
	for {
		arg, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.tok.is(",") {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return args, p.expect(")")
}

// functions maps the names of the call-style built-ins with one argument.
var functions = map[string]ir.Kind{
	"COUNT":         ir.KindAggrCount,
	"MIN":           ir.KindAggrMin,
	"MAX":           ir.KindAggrMax,
	"SUM":           ir.KindAggrSum,
	"AVG":           ir.KindAggrAvg,
	"GET_LATITUDE":  ir.KindGetLatitude,
	"GET_LONGITUDE": ir.KindGetLongitude,
}

func (p *parser) parsePrimary() (queryir.Expr, error) {
	at := p.tok
	switch at.kind {
	case tokEOF:
		return nil, p.wrapAt(at, fmt.Errorf("%w: expected expression", errUnexpectedEOF))
	case tokInteger, tokDecimal:
		return p.parseNumber(false)
	case tokString:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.build(at, ir.KindString, at.text)
	case tokQuotedIdent:
		return p.parseReference()
	case tokPunct:
		switch at.text {
		case "(":
			if err := p.advance(); err != nil {
				return nil, err
			}
			x, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			return x, p.expect(")")
		case "?":
			if err := p.advance(); err != nil {
				return nil, err
			}
			index := p.nextBind
			p.nextBind++
			return p.build(at, ir.KindBindVariable, index)
		case "*":
			if err := p.advance(); err != nil {
				return nil, err
			}
			return p.build(at, ir.KindStar, nil)
		}
		return nil, p.errorf(at, "unexpected %s", at)
	}

	// unquoted identifier or keyword
	upper := strings.ToUpper(at.text)
	switch upper {
	case "TRUE", "FALSE":
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.build(at, ir.KindBoolean, upper == "TRUE")
	case "NULL":
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.build(at, ir.KindNull, nil)
	case "DATE", "TIME", "TIMESTAMP":
		return p.parseTemporal(upper)
	case "CAST":
		return p.parseCast()
	case "ALL_DIFFERENT":
		if err := p.advance(); err != nil {
			return nil, err
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return p.build(at, ir.KindAllDifferent, nil, args...)
	}
	if kind, ok := functions[upper]; ok {
		if err := p.advance(); err != nil {
			return nil, err
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		if len(args) != 1 {
			return nil, p.errorf(at, "%s takes 1 argument, got %d", upper, len(args))
		}
		return p.build(at, kind, nil, args[0])
	}
	if IsKeyword(upper) {
		return nil, p.errorf(at, "unexpected keyword %s", at.text)
	}
	return p.parseReference()
}

// parseNumber parses the current number token, negated when neg is set.
func (p *parser) parseNumber(neg bool) (queryir.Expr, error) {
	at := p.tok
	text := at.text
	if neg {
		text = "-" + text
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if at.kind == tokInteger {
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, p.errorf(at, "integer literal %s out of range", text)
		}
		return p.build(at, ir.KindInteger, v)
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, p.errorf(at, "decimal literal %s out of range", text)
	}
	return p.build(at, ir.KindDecimal, v)
}

// parseTemporal parses `DATE '...'`, `TIME '...'` or `TIMESTAMP '...'`. A
// trailing zone offset selects the zoned kind.
func (p *parser) parseTemporal(keyword string) (queryir.Expr, error) {
	at := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	lit := p.tok
	if lit.kind != tokString {
		return nil, p.errorf(lit, "expected string literal after %s, found %s", keyword, lit)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var (
		kind    ir.Kind
		payload any
		err     error
	)
	zoned := ir.HasZone(lit.text)
	switch {
	case keyword == "DATE":
		kind = ir.KindDate
		payload, err = ir.ParseDate(lit.text)
	case keyword == "TIME" && zoned:
		kind = ir.KindTimeWithTimezone
		payload, err = ir.ParseTimeWithZone(lit.text)
	case keyword == "TIME":
		kind = ir.KindTime
		payload, err = ir.ParseTime(lit.text)
	case zoned:
		kind = ir.KindTimestampWithTimezone
		payload, err = ir.ParseTimestampWithZone(lit.text)
	default:
		kind = ir.KindTimestamp
		payload, err = ir.ParseTimestamp(lit.text)
	}
	if err != nil {
		return nil, p.wrapAt(lit, err)
	}
	return p.build(at, kind, payload)
}

// parseCast parses `CAST(expr AS type words)`.
func (p *parser) parseCast() (queryir.Expr, error) {
	at := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expect("("); err != nil {
		return nil, err
	}
	x, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if err := p.expect("AS"); err != nil {
		return nil, err
	}
	var words []string
	for p.tok.kind == tokIdent {
		words = append(words, p.tok.text)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if len(words) == 0 {
		return nil, p.errorf(p.tok, "expected type name after AS, found %s", p.tok)
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return p.build(at, ir.KindCast, strings.Join(words, " "), x)
}

// parseReference parses a variable reference or a property access `v.prop`.
// A plain name followed by `(` after the dot is a method call on v.
func (p *parser) parseReference() (queryir.Expr, error) {
	at := p.tok
	v, ok := p.scope.Lookup(at.text)
	if !ok {
		return nil, p.wrapAt(at, fmt.Errorf("%w: %s is not declared", queryir.ErrUnresolvedVariable, QuoteIdentifier(at.text)))
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if !p.tok.is(".") {
		return p.build(at, ir.KindVarRef, v)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	name := p.tok
	if name.kind != tokIdent && name.kind != tokQuotedIdent {
		return nil, p.errorf(name, "expected property name, found %s", name)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if name.kind == tokIdent && p.tok.is("(") {
		ref, err := p.build(at, ir.KindVarRef, v)
		if err != nil {
			return nil, err
		}
		return p.method(ref, name)
	}
	return p.build(name, ir.KindPropAccess, queryir.PropertyRef{Var: v, Name: name.text})
}
