package value

import "fmt"

// Value is a sealed interface representing the values math functions accept.
// Only the types in this package implement it.
type Value interface {
	value() // Sealed - only these types implement it
}

// Real represents a double-precision number.
type Real float64

func (Real) value() {}

// Bool represents a logical value.
type Bool bool

func (Bool) value() {}

// Float64 coerces the boolean to 0 or 1.
func (b Bool) Float64() float64 {
	if b {
		return 1
	}
	return 0
}

// Complex represents re + im·i.
type Complex struct {
	Re float64
	Im float64
}

func (Complex) value() {}

// NewComplex creates a Complex value.
func NewComplex(re, im float64) Complex {
	return Complex{Re: re, Im: im}
}

// Parts returns the real and imaginary parts.
func (c Complex) Parts() (re, im float64) {
	return c.Re, c.Im
}

// String formats the number the way it is usually written, e.g. "1 - 2i".
func (c Complex) String() string {
	switch {
	case c.Im == 0:
		return fmt.Sprintf("%v", c.Re)
	case c.Re == 0:
		return fmt.Sprintf("%vi", c.Im)
	case c.Im < 0:
		return fmt.Sprintf("%v - %vi", c.Re, -c.Im)
	default:
		return fmt.Sprintf("%v + %vi", c.Re, c.Im)
	}
}

// String represents text. No numeric function accepts it.
type String string

func (String) value() {}

// Null represents the absence of a value. No numeric function accepts it.
type Null struct{}

func (Null) value() {}

// Array represents an ordered sequence of values.
// Elements may themselves be arrays, to any depth.
type Array []Value

func (Array) value() {}

// NewArray creates an Array from values.
func NewArray(vals ...Value) Array {
	return Array(vals)
}

// Len returns the number of elements.
func (a Array) Len() int { return len(a) }

// At returns the element at index i.
func (a Array) At(i int) Value { return a[i] }

// Rebuild returns a new Array holding elems.
func (a Array) Rebuild(elems []Value) (Value, error) {
	if len(elems) != len(a) {
		return nil, fmt.Errorf("rebuild array: got %d elements, want %d", len(elems), len(a))
	}
	out := make(Array, len(elems))
	copy(out, elems)
	return out, nil
}

// Complexer is implemented by values that have real and imaginary parts.
type Complexer interface {
	Value
	Parts() (re, im float64)
}

// Downgrader is implemented by higher-precision numbers that can be
// converted, with loss, to a double.
type Downgrader interface {
	Value
	Float64() (float64, error)
}

// Container is implemented by values holding other values.
//
// Rebuild must return a new container of the same kind and shape holding
// elems in place of the current elements. The receiver is not modified.
type Container interface {
	Value
	Len() int
	At(i int) Value
	Rebuild(elems []Value) (Value, error)
}

// Compile-time capability checks.
var (
	_ Complexer  = Complex{}
	_ Downgrader = BigDecimal{}
	_ Container  = Array{}
	_ Container  = Matrix{}
)
