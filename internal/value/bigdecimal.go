package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// BigDecimal represents an arbitrary-precision decimal number.
//
// The wrapped decimal is private and never handed out, so a BigDecimal is
// immutable once constructed.
type BigDecimal struct {
	d *apd.Decimal
}

func (BigDecimal) value() {}

// NewBigDecimal parses s as a decimal number.
func NewBigDecimal(s string) (BigDecimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return BigDecimal{}, fmt.Errorf("parse big decimal %q: %w", s, err)
	}
	return BigDecimal{d: d}, nil
}

// MustBigDecimal is like NewBigDecimal but panics on malformed input.
// Intended for literals in tests and examples.
func MustBigDecimal(s string) BigDecimal {
	b, err := NewBigDecimal(s)
	if err != nil {
		panic(err)
	}
	return b
}

// BigDecimalFrom copies d into a new BigDecimal.
func BigDecimalFrom(d *apd.Decimal) BigDecimal {
	return BigDecimal{d: new(apd.Decimal).Set(d)}
}

// Decimal returns a copy of the underlying decimal.
func (b BigDecimal) Decimal() *apd.Decimal {
	if b.d == nil {
		return new(apd.Decimal)
	}
	return new(apd.Decimal).Set(b.d)
}

// Float64 converts to the nearest double. Digits beyond double precision
// are lost; magnitudes outside the double range become ±Inf or ±0.
// Infinities map to ±Inf and both NaN forms (quiet and signaling) to NaN.
func (b BigDecimal) Float64() (float64, error) {
	if b.d == nil {
		return 0, nil
	}
	switch b.d.Form {
	case apd.NaN, apd.NaNSignaling:
		return math.NaN(), nil
	case apd.Infinite:
		if b.d.Negative {
			return math.Inf(-1), nil
		}
		return math.Inf(1), nil
	}
	f, err := b.d.Float64()
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("downgrade %s to float64: %w", b.d.String(), err)
	}
	return f, nil
}

// String returns the decimal in its shortest exact text form.
func (b BigDecimal) String() string {
	if b.d == nil {
		return "0"
	}
	return b.d.String()
}

// reduced returns b with trailing zeros stripped and negative zero made
// positive, so numerically equal finite decimals share one text form.
func (b BigDecimal) reduced() BigDecimal {
	d := new(apd.Decimal)
	if b.d == nil {
		return BigDecimal{d: d}
	}
	d.Reduce(b.d)
	if d.Form == apd.Finite && d.IsZero() {
		d.SetInt64(0)
	}
	return BigDecimal{d: d}
}

// Equal reports whether b and o hold numerically equal decimals.
func (b BigDecimal) Equal(o BigDecimal) bool {
	return b.Decimal().Cmp(o.Decimal()) == 0
}
