package ir

// Kind identifies which expression variant a node is.
// The set is closed: adding a kind means touching every Visitor.
type Kind uint8

const (
	KindInvalid Kind = iota

	// constants
	KindInteger
	KindDecimal
	KindString
	KindBoolean
	KindDate
	KindTime
	KindTimestamp
	KindTimeWithTimezone
	KindTimestampWithTimezone
	KindNull

	// arithmetic expressions
	KindSub
	KindAdd
	KindMul
	KindDiv
	KindMod
	KindUMin

	// logical expressions
	KindAnd
	KindOr
	KindNot

	// relational expressions
	KindEqual
	KindNotEqual
	KindGreater
	KindGreaterEqual
	KindLess
	KindLessEqual

	// aggregates
	KindAggrCount
	KindAggrMin
	KindAggrMax
	KindAggrSum
	KindAggrAvg

	// references
	KindVarRef
	KindBindVariable
	KindStar

	// built-in functions
	KindRegex
	KindID
	KindPropAccess
	KindHasProp
	KindHasLabel
	KindVertexLabels
	KindInDegree
	KindOutDegree
	KindEdgeLabel
	KindCast
	KindAllDifferent
	KindGetLatitude
	KindGetLongitude

	kindCount
)

// Arity is the number of child expressions a kind carries.
type Arity int8

const (
	// ArityVariadic marks kinds taking a list of children (ALL_DIFFERENT).
	ArityVariadic Arity = -1
	ArityLeaf     Arity = 0
	ArityUnary    Arity = 1
	ArityBinary   Arity = 2
	// ArityTernary is reserved for future built-in functions; no kind uses it yet.
	ArityTernary Arity = 3
)

// Category groups kinds the way the surface language documents them.
type Category uint8

const (
	CategoryConstant Category = iota + 1
	CategoryArithmetic
	CategoryLogical
	CategoryRelational
	CategoryAggregate
	CategoryReference
	CategoryFunction
)

type kindInfo struct {
	name     string
	arity    Arity
	category Category
}

var kindTable = [kindCount]kindInfo{
	KindInvalid: {"INVALID", ArityLeaf, 0},

	KindInteger:               {"INTEGER", ArityLeaf, CategoryConstant},
	KindDecimal:               {"DECIMAL", ArityLeaf, CategoryConstant},
	KindString:                {"STRING", ArityLeaf, CategoryConstant},
	KindBoolean:               {"BOOLEAN", ArityLeaf, CategoryConstant},
	KindDate:                  {"DATE", ArityLeaf, CategoryConstant},
	KindTime:                  {"TIME", ArityLeaf, CategoryConstant},
	KindTimestamp:             {"TIMESTAMP", ArityLeaf, CategoryConstant},
	KindTimeWithTimezone:      {"TIME_WITH_TIMEZONE", ArityLeaf, CategoryConstant},
	KindTimestampWithTimezone: {"TIMESTAMP_WITH_TIMEZONE", ArityLeaf, CategoryConstant},
	KindNull:                  {"NULL", ArityLeaf, CategoryConstant},

	KindSub:  {"SUB", ArityBinary, CategoryArithmetic},
	KindAdd:  {"ADD", ArityBinary, CategoryArithmetic},
	KindMul:  {"MUL", ArityBinary, CategoryArithmetic},
	KindDiv:  {"DIV", ArityBinary, CategoryArithmetic},
	KindMod:  {"MOD", ArityBinary, CategoryArithmetic},
	KindUMin: {"UMIN", ArityUnary, CategoryArithmetic},

	KindAnd: {"AND", ArityBinary, CategoryLogical},
	KindOr:  {"OR", ArityBinary, CategoryLogical},
	KindNot: {"NOT", ArityUnary, CategoryLogical},

	KindEqual:        {"EQUAL", ArityBinary, CategoryRelational},
	KindNotEqual:     {"NOT_EQUAL", ArityBinary, CategoryRelational},
	KindGreater:      {"GREATER", ArityBinary, CategoryRelational},
	KindGreaterEqual: {"GREATER_EQUAL", ArityBinary, CategoryRelational},
	KindLess:         {"LESS", ArityBinary, CategoryRelational},
	KindLessEqual:    {"LESS_EQUAL", ArityBinary, CategoryRelational},

	KindAggrCount: {"AGGR_COUNT", ArityUnary, CategoryAggregate},
	KindAggrMin:   {"AGGR_MIN", ArityUnary, CategoryAggregate},
	KindAggrMax:   {"AGGR_MAX", ArityUnary, CategoryAggregate},
	KindAggrSum:   {"AGGR_SUM", ArityUnary, CategoryAggregate},
	KindAggrAvg:   {"AGGR_AVG", ArityUnary, CategoryAggregate},

	KindVarRef:       {"VARREF", ArityLeaf, CategoryReference},
	KindBindVariable: {"BIND_VARIABLE", ArityLeaf, CategoryReference},
	KindStar:         {"STAR", ArityLeaf, CategoryReference},
	KindPropAccess:   {"PROP_ACCESS", ArityLeaf, CategoryReference},

	KindRegex:        {"REGEX", ArityBinary, CategoryFunction},
	KindID:           {"ID", ArityUnary, CategoryFunction},
	KindHasProp:      {"HAS_PROP", ArityBinary, CategoryFunction},
	KindHasLabel:     {"HAS_LABEL", ArityBinary, CategoryFunction},
	KindVertexLabels: {"VERTEX_LABELS", ArityUnary, CategoryFunction},
	KindInDegree:     {"INDEGREE", ArityUnary, CategoryFunction},
	KindOutDegree:    {"OUTDEGREE", ArityUnary, CategoryFunction},
	KindEdgeLabel:    {"EDGE_LABEL", ArityUnary, CategoryFunction},
	KindCast:         {"CAST", ArityUnary, CategoryFunction},
	KindAllDifferent: {"ALL_DIFFERENT", ArityVariadic, CategoryFunction},
	KindGetLatitude:  {"GET_LATITUDE", ArityUnary, CategoryFunction},
	KindGetLongitude: {"GET_LONGITUDE", ArityUnary, CategoryFunction},
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount-1)
	for k := KindInvalid + 1; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Valid reports whether k is a declared kind.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < kindCount
}

func (k Kind) String() string {
	if k >= kindCount {
		return "INVALID"
	}
	return kindTable[k].name
}

// Arity returns the fixed child count of k, or ArityVariadic.
func (k Kind) Arity() Arity {
	if k >= kindCount {
		return ArityLeaf
	}
	return kindTable[k].arity
}

// Category returns the documentation group of k; zero for invalid kinds.
func (k Kind) Category() Category {
	if k >= kindCount {
		return 0
	}
	return kindTable[k].category
}

// KindByName looks a kind up by its String form.
func KindByName(name string) (Kind, bool) {
	for k := KindInvalid + 1; k < kindCount; k++ {
		if kindTable[k].name == name {
			return k, true
		}
	}
	return KindInvalid, false
}

// MarshalText renders the kind name; used by JSON output of the CLI.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
