package queryir

import (
	"math"
	"unicode/utf8"

	"github.com/roach88/pgqlir/internal/ir"
)

// ConstInteger is a 64-bit integer literal.
type ConstInteger struct {
	leaf
	v int64
}

// NewConstInteger returns an integer literal.
func NewConstInteger(v int64) *ConstInteger {
	return &ConstInteger{leaf: makeLeaf(ir.KindInteger, v), v: v}
}

// Value returns the literal value.
func (c *ConstInteger) Value() int64 { return c.v }

func (*ConstInteger) Kind() ir.Kind { return ir.KindInteger }

func (c *ConstInteger) Accept(v Visitor) { v.VisitConstInteger(c) }

func (c *ConstInteger) payload() any { return c.v }

// ConstDecimal is a double-precision literal. Decimals compare and hash by
// their IEEE bit pattern.
type ConstDecimal struct {
	leaf
	v float64
}

// NewConstDecimal returns a decimal literal. It panics with
// ErrInvalidPayloadType if v is NaN or infinite, which the surface language
// cannot express.
func NewConstDecimal(v float64) *ConstDecimal {
	if err := checkDecimal(v); err != nil {
		panic(err)
	}
	return &ConstDecimal{leaf: makeLeaf(ir.KindDecimal, decimalBits(v)), v: v}
}

func checkDecimal(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return payloadError(ir.KindDecimal, "decimal literal must be finite, got %v", v)
	}
	return nil
}

// Value returns the literal value.
func (c *ConstDecimal) Value() float64 { return c.v }

func (*ConstDecimal) Kind() ir.Kind { return ir.KindDecimal }

func (c *ConstDecimal) Accept(v Visitor) { v.VisitConstDecimal(c) }

func (c *ConstDecimal) payload() any { return decimalBits(c.v) }

// ConstString is a string literal.
type ConstString struct {
	leaf
	v string
}

// NewConstString returns a string literal. It panics with
// ErrInvalidPayloadType if v is not valid UTF-8.
func NewConstString(v string) *ConstString {
	if !utf8.ValidString(v) {
		panic(payloadError(ir.KindString, "string literal is not valid UTF-8"))
	}
	return &ConstString{leaf: makeLeaf(ir.KindString, v), v: v}
}

// Value returns the literal value.
func (c *ConstString) Value() string { return c.v }

func (*ConstString) Kind() ir.Kind { return ir.KindString }

func (c *ConstString) Accept(v Visitor) { v.VisitConstString(c) }

func (c *ConstString) payload() any { return c.v }

// ConstBoolean is a boolean literal.
type ConstBoolean struct {
	leaf
	v bool
}

// NewConstBoolean returns a boolean literal.
func NewConstBoolean(v bool) *ConstBoolean {
	return &ConstBoolean{leaf: makeLeaf(ir.KindBoolean, v), v: v}
}

// Value returns the literal value.
func (c *ConstBoolean) Value() bool { return c.v }

func (*ConstBoolean) Kind() ir.Kind { return ir.KindBoolean }

func (c *ConstBoolean) Accept(v Visitor) { v.VisitConstBoolean(c) }

func (c *ConstBoolean) payload() any { return c.v }

// ConstDate is a DATE literal.
type ConstDate struct {
	leaf
	v ir.Date
}

// NewConstDate returns a date literal. It panics with ErrInvalidPayloadType
// if v is not a real calendar day.
func NewConstDate(v ir.Date) *ConstDate {
	if err := v.Validate(); err != nil {
		panic(payloadError(ir.KindDate, "%v", err))
	}
	return &ConstDate{leaf: makeLeaf(ir.KindDate, v), v: v}
}

// Value returns the literal value.
func (c *ConstDate) Value() ir.Date { return c.v }

func (*ConstDate) Kind() ir.Kind { return ir.KindDate }

func (c *ConstDate) Accept(v Visitor) { v.VisitConstDate(c) }

func (c *ConstDate) payload() any { return c.v }

// ConstTime is a TIME literal without zone.
type ConstTime struct {
	leaf
	v ir.Time
}

// NewConstTime returns a time literal. It panics with ErrInvalidPayloadType
// on an out of range field.
func NewConstTime(v ir.Time) *ConstTime {
	if err := v.Validate(); err != nil {
		panic(payloadError(ir.KindTime, "%v", err))
	}
	return &ConstTime{leaf: makeLeaf(ir.KindTime, v), v: v}
}

// Value returns the literal value.
func (c *ConstTime) Value() ir.Time { return c.v }

func (*ConstTime) Kind() ir.Kind { return ir.KindTime }

func (c *ConstTime) Accept(v Visitor) { v.VisitConstTime(c) }

func (c *ConstTime) payload() any { return c.v }

// ConstTimestamp is a TIMESTAMP literal without zone.
type ConstTimestamp struct {
	leaf
	v ir.Timestamp
}

// NewConstTimestamp returns a timestamp literal. It panics with
// ErrInvalidPayloadType on an invalid date or time.
func NewConstTimestamp(v ir.Timestamp) *ConstTimestamp {
	if err := v.Validate(); err != nil {
		panic(payloadError(ir.KindTimestamp, "%v", err))
	}
	return &ConstTimestamp{leaf: makeLeaf(ir.KindTimestamp, v), v: v}
}

// Value returns the literal value.
func (c *ConstTimestamp) Value() ir.Timestamp { return c.v }

func (*ConstTimestamp) Kind() ir.Kind { return ir.KindTimestamp }

func (c *ConstTimestamp) Accept(v Visitor) { v.VisitConstTimestamp(c) }

func (c *ConstTimestamp) payload() any { return c.v }

// ConstTimeWithTimezone is a TIME literal with a UTC offset.
type ConstTimeWithTimezone struct {
	leaf
	v ir.TimeWithZone
}

// NewConstTimeWithTimezone returns a zoned time literal. It panics with
// ErrInvalidPayloadType on an invalid time or offset.
func NewConstTimeWithTimezone(v ir.TimeWithZone) *ConstTimeWithTimezone {
	if err := v.Validate(); err != nil {
		panic(payloadError(ir.KindTimeWithTimezone, "%v", err))
	}
	return &ConstTimeWithTimezone{leaf: makeLeaf(ir.KindTimeWithTimezone, v), v: v}
}

// Value returns the literal value.
func (c *ConstTimeWithTimezone) Value() ir.TimeWithZone { return c.v }

func (*ConstTimeWithTimezone) Kind() ir.Kind { return ir.KindTimeWithTimezone }

func (c *ConstTimeWithTimezone) Accept(v Visitor) { v.VisitConstTimeWithTimezone(c) }

func (c *ConstTimeWithTimezone) payload() any { return c.v }

// ConstTimestampWithTimezone is a TIMESTAMP literal with a UTC offset.
type ConstTimestampWithTimezone struct {
	leaf
	v ir.TimestampWithZone
}

// NewConstTimestampWithTimezone returns a zoned timestamp literal. It panics
// with ErrInvalidPayloadType on an invalid timestamp or offset.
func NewConstTimestampWithTimezone(v ir.TimestampWithZone) *ConstTimestampWithTimezone {
	if err := v.Validate(); err != nil {
		panic(payloadError(ir.KindTimestampWithTimezone, "%v", err))
	}
	return &ConstTimestampWithTimezone{leaf: makeLeaf(ir.KindTimestampWithTimezone, v), v: v}
}

// Value returns the literal value.
func (c *ConstTimestampWithTimezone) Value() ir.TimestampWithZone { return c.v }

func (*ConstTimestampWithTimezone) Kind() ir.Kind { return ir.KindTimestampWithTimezone }

func (c *ConstTimestampWithTimezone) Accept(v Visitor) { v.VisitConstTimestampWithTimezone(c) }

func (c *ConstTimestampWithTimezone) payload() any { return c.v }

// ConstNull is the NULL literal. All instances are equal.
type ConstNull struct {
	leaf
}

// NewConstNull returns the NULL literal.
func NewConstNull() *ConstNull {
	return &ConstNull{leaf: makeLeaf(ir.KindNull, nil)}
}

func (*ConstNull) Kind() ir.Kind { return ir.KindNull }

func (c *ConstNull) Accept(v Visitor) { v.VisitConstNull(c) }
