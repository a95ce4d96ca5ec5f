package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// Type tags used in the JSON form of non-primitive values.
const (
	TagComplex    = "Complex"
	TagBigNumber  = "BigNumber"
	TagMatrix     = "DenseMatrix"
	TagNumber     = "number"
	typeTagField  = "mathjs"
	nonFiniteInf  = "Infinity"
	nonFiniteNInf = "-Infinity"
	nonFiniteNaN  = "NaN"
)

// Unmarshal decodes JSON into a Value.
//
// Plain JSON maps onto Real, Bool, String, Null and Array. Objects must carry
// a "mathjs" type tag:
//
//	{"mathjs":"Complex","re":1,"im":2}
//	{"mathjs":"BigNumber","value":"1.000000000000000000001"}
//	{"mathjs":"DenseMatrix","data":[[1,2],[3,4]],"size":[2,2]}
//	{"mathjs":"number","value":"Infinity"}
func Unmarshal(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}

	return FromPlain(raw)
}

// FromPlain converts a generically decoded document (JSON with UseNumber,
// YAML, CUE export) into a Value, applying the same rules as Unmarshal.
func FromPlain(raw any) (Value, error) {
	switch val := raw.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(norm.NFC.String(val)), nil
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			v, err := FromPlain(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = v
		}
		return arr, nil
	case map[string]any:
		return fromTagged(val)
	}

	if f, ok, err := plainFloat(raw); ok {
		if err != nil {
			return nil, err
		}
		return Real(f), nil
	}
	return nil, fmt.Errorf("unsupported type: %T", raw)
}

// fromTagged decodes an object carrying a "mathjs" type tag.
func fromTagged(obj map[string]any) (Value, error) {
	tag, _ := obj[typeTagField].(string)
	switch tag {
	case TagComplex:
		re, err := requireFloat(obj, "re")
		if err != nil {
			return nil, fmt.Errorf("Complex: %w", err)
		}
		im, err := requireFloat(obj, "im")
		if err != nil {
			return nil, fmt.Errorf("Complex: %w", err)
		}
		return Complex{Re: re, Im: im}, nil

	case TagBigNumber:
		s, err := plainText(obj["value"])
		if err != nil {
			return nil, fmt.Errorf("BigNumber: %w", err)
		}
		return NewBigDecimal(s)

	case TagNumber:
		f, err := requireFloat(obj, "value")
		if err != nil {
			return nil, fmt.Errorf("number: %w", err)
		}
		return Real(f), nil

	case TagMatrix:
		rawData, ok := obj["data"].([]any)
		if !ok {
			return nil, fmt.Errorf("DenseMatrix: data must be an array")
		}
		data, err := FromPlain(rawData)
		if err != nil {
			return nil, fmt.Errorf("DenseMatrix: %w", err)
		}
		m, err := NewMatrix(data.(Array))
		if err != nil {
			return nil, err
		}
		if rawSize, ok := obj["size"]; ok {
			if err := checkSize(rawSize, m.Size()); err != nil {
				return nil, fmt.Errorf("DenseMatrix: %w", err)
			}
		}
		return m, nil

	case "":
		return nil, fmt.Errorf("object without %q type tag", typeTagField)
	default:
		return nil, fmt.Errorf("unknown type tag %q", tag)
	}
}

func requireFloat(obj map[string]any, key string) (float64, error) {
	raw, ok := obj[key]
	if !ok {
		return 0, fmt.Errorf("missing %q", key)
	}
	if s, isString := raw.(string); isString {
		return parseNonFinite(s)
	}
	if nested, isObj := raw.(map[string]any); isObj {
		v, err := fromTagged(nested)
		if err != nil {
			return 0, fmt.Errorf("%q: %w", key, err)
		}
		r, isReal := v.(Real)
		if !isReal {
			return 0, fmt.Errorf("%q: expected number, got %s", key, TypeOf(v))
		}
		return float64(r), nil
	}
	f, ok, err := plainFloat(raw)
	if !ok {
		return 0, fmt.Errorf("%q: expected number, got %T", key, raw)
	}
	return f, err
}

// plainFloat extracts a float from the numeric types decoders produce.
// ok is false when raw is not numeric at all.
func plainFloat(raw any) (f float64, ok bool, err error) {
	switch n := raw.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, true, fmt.Errorf("invalid number %q: %w", n, err)
		}
		return f, true, nil
	case float64:
		return n, true, nil
	case float32:
		return float64(n), true, nil
	case int:
		return float64(n), true, nil
	case int64:
		return float64(n), true, nil
	case uint64:
		return float64(n), true, nil
	default:
		return 0, false, nil
	}
}

func plainText(raw any) (string, error) {
	switch s := raw.(type) {
	case string:
		return s, nil
	case json.Number:
		return string(s), nil
	case int, int64, uint64, float64:
		return fmt.Sprint(s), nil
	default:
		return "", fmt.Errorf("value must be a string, got %T", raw)
	}
}

func parseNonFinite(s string) (float64, error) {
	switch s {
	case nonFiniteInf:
		return math.Inf(1), nil
	case nonFiniteNInf:
		return math.Inf(-1), nil
	case nonFiniteNaN:
		return math.NaN(), nil
	default:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("invalid number %q", s)
		}
		return f, nil
	}
}

func checkSize(raw any, want []int) error {
	list, ok := raw.([]any)
	if !ok {
		return fmt.Errorf("size must be an array")
	}
	if len(list) != len(want) {
		return fmt.Errorf("size %v does not match data %v", list, want)
	}
	for i, elem := range list {
		f, ok, err := plainFloat(elem)
		if !ok || err != nil || int(f) != want[i] {
			return fmt.Errorf("size %v does not match data %v", list, want)
		}
	}
	return nil
}

// Marshal encodes v as deterministic JSON.
//
// Object keys are emitted in sorted order, HTML characters are not escaped
// and strings are NFC normalized, so equal values always produce identical
// bytes.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(buf *bytes.Buffer, v Value) error {
	switch val := v.(type) {
	case Null:
		buf.WriteString("null")
	case Real:
		encodeFloat(buf, float64(val))
	case Bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case String:
		return encodeString(buf, string(val))
	case Complex:
		buf.WriteString(`{"im":`)
		encodeFloat(buf, val.Im)
		buf.WriteString(`,"mathjs":"Complex","re":`)
		encodeFloat(buf, val.Re)
		buf.WriteByte('}')
	case BigDecimal:
		buf.WriteString(`{"mathjs":"BigNumber","value":`)
		if err := encodeString(buf, val.String()); err != nil {
			return err
		}
		buf.WriteByte('}')
	case Array:
		return encodeArray(buf, val)
	case Matrix:
		buf.WriteString(`{"data":`)
		if err := encodeArray(buf, val.data); err != nil {
			return fmt.Errorf("matrix data: %w", err)
		}
		buf.WriteString(`,"mathjs":"DenseMatrix","size":[`)
		for i, n := range val.Size() {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.Itoa(n))
		}
		buf.WriteString("]}")
	default:
		return fmt.Errorf("unknown Value type: %T", v)
	}
	return nil
}

func encodeArray(buf *bytes.Buffer, arr Array) error {
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encode(buf, elem); err != nil {
			return fmt.Errorf("array[%d]: %w", i, err)
		}
	}
	buf.WriteByte(']')
	return nil
}

// encodeFloat writes the shortest representation that round-trips.
// Non-finite numbers have no JSON literal and are written as tagged objects.
func encodeFloat(buf *bytes.Buffer, f float64) {
	switch {
	case math.IsInf(f, 1):
		buf.WriteString(`{"mathjs":"number","value":"Infinity"}`)
	case math.IsInf(f, -1):
		buf.WriteString(`{"mathjs":"number","value":"-Infinity"}`)
	case math.IsNaN(f):
		buf.WriteString(`{"mathjs":"number","value":"NaN"}`)
	default:
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	}
}

// encodeString writes s NFC normalized, without HTML escaping.
func encodeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return err
	}
	// json.Encoder adds trailing newline, remove it
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
