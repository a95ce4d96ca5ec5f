package value

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// FromGo converts a native Go value to a Value.
//
// Supported inputs: Value, nil, bool, string, all integer and float kinds,
// complex64/complex128, *apd.Decimal, []float64, [][]float64, []any and
// []Value (recursively).
func FromGo(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case float64:
		return Real(val), nil
	case float32:
		return Real(val), nil
	case int:
		return Real(val), nil
	case int8:
		return Real(val), nil
	case int16:
		return Real(val), nil
	case int32:
		return Real(val), nil
	case int64:
		return Real(val), nil
	case uint:
		return Real(val), nil
	case uint8:
		return Real(val), nil
	case uint16:
		return Real(val), nil
	case uint32:
		return Real(val), nil
	case uint64:
		return Real(val), nil
	case complex128:
		return Complex{Re: real(val), Im: imag(val)}, nil
	case complex64:
		return Complex{Re: float64(real(val)), Im: float64(imag(val))}, nil
	case *apd.Decimal:
		if val == nil {
			return Null{}, nil
		}
		return BigDecimalFrom(val), nil
	case []float64:
		arr := make(Array, len(val))
		for i, f := range val {
			arr[i] = Real(f)
		}
		return arr, nil
	case [][]float64:
		rows := make(Array, len(val))
		for i, row := range val {
			r := make(Array, len(row))
			for j, f := range row {
				r[j] = Real(f)
			}
			rows[i] = r
		}
		return NewMatrix(rows)
	case []Value:
		return Array(val), nil
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			conv, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr[i] = conv
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unsupported Go type: %T", v)
	}
}

// Shape returns the length at each nesting level of v.
// Scalars have an empty shape. For arrays the shape follows the first
// element at each level, so ragged arrays report the shape of their
// leading branch.
func Shape(v Value) []int {
	switch c := v.(type) {
	case Matrix:
		return c.Size()
	case Array:
		shape := []int{len(c)}
		if len(c) > 0 {
			shape = append(shape, Shape(c[0])...)
		}
		return shape
	}
	if c, ok := v.(Container); ok {
		shape := []int{c.Len()}
		if c.Len() > 0 {
			shape = append(shape, Shape(c.At(0))...)
		}
		return shape
	}
	return []int{}
}
