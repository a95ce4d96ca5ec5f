package harness

import (
	"fmt"
	"math"
	"slices"

	"github.com/sonphnt/mathjs/internal/value"
)

// compareValues reports the first difference between want and got.
// Reals and complex parts match within tol relative to their magnitude
// (absolute below 1); infinities must match exactly and NaN matches NaN.
// Containers must have the same variant and shape.
func compareValues(want, got value.Value, tol float64) error {
	return compareAt("", want, got, tol)
}

func compareAt(path string, want, got value.Value, tol float64) error {
	if got == nil {
		return fmt.Errorf("%sgot undefined, want %s", prefix(path), value.Format(want))
	}

	switch w := want.(type) {
	case value.Real:
		g, ok := got.(value.Real)
		if !ok {
			return mismatch(path, want, got)
		}
		if !closeTo(float64(w), float64(g), tol) {
			return fmt.Errorf("%sgot %s, want %s", prefix(path), value.Format(got), value.Format(want))
		}
		return nil

	case value.Complex:
		g, ok := got.(value.Complex)
		if !ok {
			return mismatch(path, want, got)
		}
		if !closeTo(w.Re, g.Re, tol) || !closeTo(w.Im, g.Im, tol) {
			return fmt.Errorf("%sgot %s, want %s", prefix(path), value.Format(got), value.Format(want))
		}
		return nil

	case value.BigDecimal:
		g, ok := got.(value.BigDecimal)
		if !ok || !w.Equal(g) {
			return mismatch(path, want, got)
		}
		return nil

	case value.Matrix:
		g, ok := got.(value.Matrix)
		if !ok {
			return mismatch(path, want, got)
		}
		if !slices.Equal(w.Size(), g.Size()) {
			return fmt.Errorf("%sgot size %v, want %v", prefix(path), g.Size(), w.Size())
		}
		return compareElems(path, w, g, tol)

	case value.Array:
		g, ok := got.(value.Array)
		if !ok {
			return mismatch(path, want, got)
		}
		if len(w) != len(g) {
			return fmt.Errorf("%sgot %d elements, want %d", prefix(path), len(g), len(w))
		}
		return compareElems(path, w, g, tol)
	}

	if want != got {
		return mismatch(path, want, got)
	}
	return nil
}

func compareElems(path string, want, got value.Container, tol float64) error {
	for i := 0; i < want.Len(); i++ {
		if err := compareAt(fmt.Sprintf("%s[%d]", path, i), want.At(i), got.At(i), tol); err != nil {
			return err
		}
	}
	return nil
}

func closeTo(want, got, tol float64) bool {
	if math.IsNaN(want) || math.IsNaN(got) {
		return math.IsNaN(want) && math.IsNaN(got)
	}
	if math.IsInf(want, 0) || math.IsInf(got, 0) {
		return want == got
	}
	scale := math.Max(1, math.Max(math.Abs(want), math.Abs(got)))
	return math.Abs(want-got) <= tol*scale
}

func mismatch(path string, want, got value.Value) error {
	return fmt.Errorf("%sgot %s %s, want %s %s",
		prefix(path), value.TypeOf(got), value.Format(got), value.TypeOf(want), value.Format(want))
}

func prefix(path string) string {
	if path == "" {
		return ""
	}
	return path + ": "
}
