package value

import (
	"fmt"
	"slices"
)

// Matrix represents a rectangular, possibly multi-dimensional, block of values.
// Data is stored as nested Arrays; size holds the length at each dimension.
type Matrix struct {
	data Array
	size []int
}

func (Matrix) value() {}

// NewMatrix creates a Matrix from nested data.
// Returns an error if data is not rectangular or contains nested matrices.
func NewMatrix(data Array) (Matrix, error) {
	size, err := sizeOf(data)
	if err != nil {
		return Matrix{}, fmt.Errorf("new matrix: %w", err)
	}
	return Matrix{data: cloneArray(data), size: size}, nil
}

// MustMatrix is like NewMatrix but panics on malformed data.
func MustMatrix(data Array) Matrix {
	m, err := NewMatrix(data)
	if err != nil {
		panic(err)
	}
	return m
}

// Size returns the length of each dimension.
func (m Matrix) Size() []int {
	if m.size == nil {
		return []int{0}
	}
	return slices.Clone(m.size)
}

// Data returns a copy of the nested data.
func (m Matrix) Data() Array {
	return cloneArray(m.data)
}

// Len returns the length of the first dimension.
func (m Matrix) Len() int { return len(m.data) }

// At returns the row (or, for a vector, the element) at index i.
func (m Matrix) At(i int) Value { return m.data[i] }

// Rebuild returns a new Matrix of the same size holding elems as rows.
func (m Matrix) Rebuild(elems []Value) (Value, error) {
	data := make(Array, len(elems))
	copy(data, elems)

	size, err := sizeOf(data)
	if err != nil {
		return nil, fmt.Errorf("rebuild matrix: %w", err)
	}
	if !slices.Equal(size, m.Size()) {
		return nil, fmt.Errorf("rebuild matrix: size %v does not match %v", size, m.Size())
	}
	return Matrix{data: data, size: size}, nil
}

// sizeOf validates that data is rectangular and returns its dimensions.
func sizeOf(data Array) ([]int, error) {
	size := []int{len(data)}
	if len(data) == 0 {
		return size, nil
	}

	first, nested := data[0].(Array)
	if !nested {
		for i, elem := range data {
			switch elem.(type) {
			case Array:
				return nil, fmt.Errorf("index %d: dimension mismatch, expected scalar", i)
			case Matrix:
				return nil, fmt.Errorf("index %d: nested matrix not allowed", i)
			}
		}
		return size, nil
	}

	inner, err := sizeOf(first)
	if err != nil {
		return nil, fmt.Errorf("row 0: %w", err)
	}
	for i := 1; i < len(data); i++ {
		row, ok := data[i].(Array)
		if !ok {
			return nil, fmt.Errorf("index %d: dimension mismatch, expected array", i)
		}
		rowSize, err := sizeOf(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if !slices.Equal(rowSize, inner) {
			return nil, fmt.Errorf("index %d: dimension mismatch (%v != %v)", i, rowSize, inner)
		}
	}
	return append(size, inner...), nil
}

// cloneArray copies every nested Array level of a.
func cloneArray(a Array) Array {
	if a == nil {
		return Array{}
	}
	out := make(Array, len(a))
	for i, elem := range a {
		if inner, ok := elem.(Array); ok {
			out[i] = cloneArray(inner)
			continue
		}
		out[i] = elem
	}
	return out
}
