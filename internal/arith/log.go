package arith

import (
	"math"

	"github.com/sonphnt/mathjs/internal/collection"
	"github.com/sonphnt/mathjs/internal/value"
)

// Log calculates the natural logarithm of a value, or with a second
// argument the logarithm to that base. For containers the function is
// evaluated element wise; the base must be a scalar.
//
// Negative reals yield the principal complex logarithm, so
// Log(value.Real(-1)) is 0 + πi.
func Log(args ...value.Value) (value.Value, error) {
	switch len(args) {
	case 1:
		return logOf(args[0])
	case 2:
		return logBase(args[0], args[1])
	default:
		return nil, &ArityError{Fn: "log", Count: len(args), Expected: 1, Max: 2}
	}
}

func logOf(x value.Value) (value.Value, error) {
	switch value.Classify(x) {
	case value.KindReal:
		return LogReal(x.(value.Real)), nil

	case value.KindComplex:
		return LogComplex(x.(value.Complexer)), nil

	case value.KindBigDecimal:
		f, err := downgrade("log", x.(value.Downgrader))
		if err != nil {
			return nil, err
		}
		return LogReal(f), nil

	case value.KindContainer:
		return collection.DeepMap(x.(value.Container), logOf)

	case value.KindBool:
		return LogReal(value.Real(x.(value.Bool).Float64())), nil
	}

	return nil, NewUnsupportedTypeError("log", x)
}

func logBase(x, base value.Value) (value.Value, error) {
	if collection.IsCollection(base) {
		return nil, NewUnsupportedTypeError("log", base)
	}
	lb, err := logOf(base)
	if err != nil {
		return nil, err
	}
	lx, err := logOf(x)
	if err != nil {
		return nil, err
	}

	if c, ok := lx.(value.Container); ok {
		return collection.DeepMap(c, func(v value.Value) (value.Value, error) {
			return divide(v, lb), nil
		})
	}
	return divide(lx, lb), nil
}

// LogReal returns ln(x) for x >= 0 and the principal complex logarithm
// for x < 0.
func LogReal(x value.Real) value.Value {
	if x < 0 {
		return LogComplex(value.NewComplex(float64(x), 0))
	}
	return value.Real(math.Log(float64(x)))
}

// LogComplex returns ln|z| + arg(z)·i.
func LogComplex(c value.Complexer) value.Complex {
	re, im := c.Parts()
	return value.NewComplex(math.Log(math.Hypot(re, im)), math.Atan2(im, re))
}

// divide divides two logarithm results, which are always Real or Complex.
func divide(a, b value.Value) value.Value {
	ar, aReal := a.(value.Real)
	br, bReal := b.(value.Real)
	if aReal && bReal {
		return ar / br
	}

	are, aim := complexParts(a)
	bre, bim := complexParts(b)
	den := bre*bre + bim*bim
	return value.NewComplex((are*bre+aim*bim)/den, (aim*bre-are*bim)/den)
}

func complexParts(v value.Value) (re, im float64) {
	if c, ok := v.(value.Complexer); ok {
		return c.Parts()
	}
	if r, ok := v.(value.Real); ok {
		return float64(r), 0
	}
	return math.NaN(), math.NaN()
}
