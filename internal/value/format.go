package value

import (
	"strconv"
	"strings"
)

// Format renders v for humans: numbers in shortest round-trip form,
// complex numbers as "re + imi", containers as bracketed lists.
func Format(v Value) string {
	var sb strings.Builder
	format(&sb, v)
	return sb.String()
}

func format(sb *strings.Builder, v Value) {
	switch val := v.(type) {
	case nil:
		sb.WriteString("undefined")
	case Real:
		sb.WriteString(strconv.FormatFloat(float64(val), 'g', -1, 64))
	case Bool:
		sb.WriteString(strconv.FormatBool(bool(val)))
	case Complex:
		sb.WriteString(val.String())
	case BigDecimal:
		sb.WriteString(val.String())
	case String:
		sb.WriteString(strconv.Quote(string(val)))
	case Null:
		sb.WriteString("null")
	case Array:
		formatList(sb, val)
	case Matrix:
		formatList(sb, val.data)
	default:
		sb.WriteString(TypeOf(v))
	}
}

func formatList(sb *strings.Builder, arr Array) {
	sb.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			sb.WriteString(", ")
		}
		format(sb, elem)
	}
	sb.WriteByte(']')
}
