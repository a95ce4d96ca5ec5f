package value

import "fmt"

// Kind is the variant a value is classified as.
type Kind int

const (
	// KindUnsupported is assigned to anything no numeric function accepts.
	KindUnsupported Kind = iota
	KindReal
	KindBool
	KindComplex
	KindBigDecimal
	KindContainer
)

var kindNames = [...]string{
	KindUnsupported: "unsupported",
	KindReal:        "number",
	KindBool:        "boolean",
	KindComplex:     "Complex",
	KindBigDecimal:  "BigNumber",
	KindContainer:   "collection",
}

// String returns the variant descriptor used in error messages.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Classify determines the variant of v. Exactly one Kind is returned.
//
// Real and Bool are matched by type. The remaining variants are matched by
// capability, checked in the order Complexer, Downgrader, Container.
func Classify(v Value) Kind {
	switch v.(type) {
	case nil:
		return KindUnsupported
	case Real:
		return KindReal
	case Bool:
		return KindBool
	}

	if _, ok := v.(Complexer); ok {
		return KindComplex
	}
	if _, ok := v.(Downgrader); ok {
		return KindBigDecimal
	}
	if _, ok := v.(Container); ok {
		return KindContainer
	}
	return KindUnsupported
}

// IsNumber reports whether v is a Real.
func IsNumber(v Value) bool { return Classify(v) == KindReal }

// IsBoolean reports whether v is a Bool.
func IsBoolean(v Value) bool { return Classify(v) == KindBool }

// IsComplex reports whether v has real and imaginary parts.
func IsComplex(v Value) bool { return Classify(v) == KindComplex }

// TypeOf returns the lowercase type name of v, as reported in error messages.
// Unlike Kind, it distinguishes arrays from matrices and names unsupported
// values ("string", "null").
func TypeOf(v Value) string {
	switch v.(type) {
	case nil:
		return "undefined"
	case Real:
		return "number"
	case Bool:
		return "boolean"
	case Complex:
		return "complex"
	case BigDecimal:
		return "bignumber"
	case String:
		return "string"
	case Null:
		return "null"
	case Array:
		return "array"
	case Matrix:
		return "matrix"
	default:
		return fmt.Sprintf("%T", v)
	}
}
