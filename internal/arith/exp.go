package arith

import (
	"fmt"
	"math"

	"github.com/sonphnt/mathjs/internal/collection"
	"github.com/sonphnt/mathjs/internal/value"
)

// Exp calculates the exponential of a value. For containers the function
// is evaluated element wise.
//
// Exactly one argument is accepted. Supported variants:
//
//	Exp(value.Real(2))             // 7.38905609893065
//	Exp(value.Bool(true))          // e
//	Exp(value.NewComplex(0, 1))    // 0.5403023058681398 + 0.8414709848078965i
//	Exp(value.Array{value.Real(1), value.Real(2)})  // [e, e²]
//
// BigDecimal arguments are downgraded to float64 before evaluation; the
// result is a Real, not a BigDecimal.
func Exp(args ...value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, NewArityError("exp", len(args), 1)
	}
	return exp(args[0])
}

func exp(x value.Value) (value.Value, error) {
	switch value.Classify(x) {
	case value.KindReal:
		return ExpReal(x.(value.Real)), nil

	case value.KindComplex:
		return ExpComplex(x.(value.Complexer)), nil

	case value.KindBigDecimal:
		// TODO: evaluate in decimal arithmetic once BigDecimal results are supported
		r, err := ExpBigDecimal(x.(value.Downgrader))
		if err != nil {
			return nil, err
		}
		return r, nil

	case value.KindContainer:
		return collection.DeepMap(x.(value.Container), exp)

	case value.KindBool:
		return ExpBool(x.(value.Bool)), nil
	}

	return nil, NewUnsupportedTypeError("exp", x)
}

// ExpReal returns e^x.
func ExpReal(x value.Real) value.Real {
	return value.Real(math.Exp(float64(x)))
}

// ExpBool returns e^0 for false and e^1 for true.
func ExpBool(b value.Bool) value.Real {
	return ExpReal(value.Real(b.Float64()))
}

// ExpComplex returns e^(re + im·i) = e^re·cos(im) + e^re·sin(im)·i.
func ExpComplex(c value.Complexer) value.Complex {
	re, im := c.Parts()
	r := math.Exp(re)
	return value.NewComplex(r*math.Cos(im), r*math.Sin(im))
}

// ExpBigDecimal downgrades d to float64 and returns e^d.
// Precision beyond float64 is lost; NaN and infinite decimals follow the
// float64 rules (e^NaN = NaN, e^+Inf = +Inf, e^-Inf = 0).
func ExpBigDecimal(d value.Downgrader) (value.Real, error) {
	f, err := downgrade("exp", d)
	if err != nil {
		return 0, err
	}
	return ExpReal(f), nil
}

// downgrade converts an arbitrary-precision argument of fn to a Real.
func downgrade(fn string, d value.Downgrader) (value.Real, error) {
	f, err := d.Float64()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", fn, err)
	}
	return value.Real(f), nil
}
