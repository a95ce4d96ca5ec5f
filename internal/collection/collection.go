// Package collection provides structure-preserving traversal of containers.
//
// DeepMap is the only traversal engine: it threads shape, callers supply the
// per-leaf function. It never inspects what the leaf function returns.
package collection

import (
	"fmt"

	"github.com/sonphnt/mathjs/internal/value"
)

// LeafFunc is applied to every non-container element.
type LeafFunc func(value.Value) (value.Value, error)

// IsCollection reports whether v is a container (array, matrix, or any
// other value implementing value.Container).
func IsCollection(v value.Value) bool {
	_, ok := v.(value.Container)
	return ok
}

// DeepMap returns a new container of identical shape with f applied to
// every leaf of c, at any nesting depth. c is not modified. An empty
// container maps to an empty container of the same kind.
//
// The first error returned by f aborts the traversal and is returned
// unchanged; no partial result is produced.
func DeepMap(c value.Container, f LeafFunc) (value.Value, error) {
	n := c.Len()
	elems := make([]value.Value, n)
	for i := 0; i < n; i++ {
		elem := c.At(i)

		var (
			mapped value.Value
			err    error
		)
		if inner, ok := elem.(value.Container); ok {
			mapped, err = DeepMap(inner, f)
		} else {
			mapped, err = f(elem)
		}
		if err != nil {
			return nil, err
		}
		elems[i] = mapped
	}

	out, err := c.Rebuild(elems)
	if err != nil {
		return nil, fmt.Errorf("deep map: %w", err)
	}
	return out, nil
}

// Leaves counts the non-container elements of v. A scalar counts as one.
func Leaves(v value.Value) int {
	c, ok := v.(value.Container)
	if !ok {
		return 1
	}
	total := 0
	for i := 0; i < c.Len(); i++ {
		total += Leaves(c.At(i))
	}
	return total
}
