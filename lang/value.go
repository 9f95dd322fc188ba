package lang

// Kind indicates which variant a decoded Value holds.
type Kind int

const (
	// KindInvalid marks a value outside the closed variant set. The
	// raw decoded value is kept so processing can report its type.
	KindInvalid Kind = iota

	// KindNumber represents an integer or float scalar.
	KindNumber

	// KindList represents an array value.
	KindList

	// KindTable represents a nested table of key/value members.
	KindTable

	// KindExpr represents a postfix expression string.
	KindExpr
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindList:
		return "List"
	case KindTable:
		return "Table"
	case KindExpr:
		return "Expr"
	default:
		return "Invalid"
	}
}

// Pair is one table member. A []Pair preserves the member order of the
// source document.
type Pair struct {
	Key   string
	Value any
}

// Value is the closed variant produced by [DecodeDocument]. Exactly
// one payload field is meaningful, selected by Kind.
type Value struct {
	Kind Kind

	Number Number // KindNumber
	List   []any  // KindList
	Table  []Pair // KindTable, in document order
	Expr   string // KindExpr, trimmed token stream between delimiters
	Raw    any    // KindInvalid, and the original string for KindExpr
}

// Native returns the value in plain Go terms for marshaling: numbers
// as int64/float64, lists as slices, tables as ordered Pair slices,
// and expressions as their delimited source text.
func (v Value) Native() any {
	switch v.Kind {
	case KindNumber:
		return v.Number.Native()
	case KindList:
		return v.List
	case KindTable:
		return v.Table
	case KindExpr:
		return ExprDelim + v.Expr + ExprDelim
	default:
		return v.Raw
	}
}
