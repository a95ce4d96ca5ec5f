package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		expected string
	}{
		{"integer real", Real(2), "2"},
		{"fraction", Real(7.38905609893065), "7.38905609893065"},
		{"negative", Real(-0.5), "-0.5"},
		{"large", Real(1e21), "1e+21"},
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
		{"null", Null{}, "null"},
		{"string", String("hi"), `"hi"`},
		{"complex", NewComplex(0.5, -1), `{"im":-1,"mathjs":"Complex","re":0.5}`},
		{"big decimal", MustBigDecimal("1.25"), `{"mathjs":"BigNumber","value":"1.25"}`},
		{"empty array", Array{}, "[]"},
		{"nested array", Array{Real(1), Array{Real(2), Bool(true)}}, "[1,[2,true]]"},
		{"matrix", MustMatrix(Array{Array{Real(1), Real(2)}}), `{"data":[[1,2]],"mathjs":"DenseMatrix","size":[1,2]}`},
		{"infinity", Real(math.Inf(1)), `{"mathjs":"number","value":"Infinity"}`},
		{"negative infinity", Real(math.Inf(-1)), `{"mathjs":"number","value":"-Infinity"}`},
		{"nan", Real(math.NaN()), `{"mathjs":"number","value":"NaN"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Marshal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(got))
		})
	}
}

func TestMarshalNoHTMLEscape(t *testing.T) {
	got, err := Marshal(String("<a&b>"))
	require.NoError(t, err)
	assert.Equal(t, `"<a&b>"`, string(got))
}

func TestMarshalNFCNormalization(t *testing.T) {
	// "é" as e + combining acute (NFD) must encode identically to precomposed U+00E9
	decomposed, err := Marshal(String("e\u0301"))
	require.NoError(t, err)
	composed, err := Marshal(String("\u00e9"))
	require.NoError(t, err)
	assert.Equal(t, composed, decomposed)
}

func TestMarshalRejectsNil(t *testing.T) {
	_, err := Marshal(nil)
	assert.Error(t, err)

	_, err = Marshal(Array{Real(1), nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "array[1]")
}

func TestUnmarshalBasic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Value
	}{
		{"number", "2", Real(2)},
		{"fraction", "0.25", Real(0.25)},
		{"exponent", "1e3", Real(1000)},
		{"bool", "true", Bool(true)},
		{"string", `"abc"`, String("abc")},
		{"null", "null", Null{}},
		{"array", "[1,2,3]", Array{Real(1), Real(2), Real(3)}},
		{"nested", "[[1],[true]]", Array{Array{Real(1)}, Array{Bool(true)}}},
		{"complex", `{"mathjs":"Complex","re":0,"im":1}`, Complex{Re: 0, Im: 1}},
		{"mixed", `[1,{"mathjs":"Complex","re":2,"im":3}]`, Array{Real(1), Complex{Re: 2, Im: 3}}},
		{"tagged number", `{"mathjs":"number","value":"-Infinity"}`, Real(math.Inf(-1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unmarshal([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnmarshalBigNumber(t *testing.T) {
	got, err := Unmarshal([]byte(`{"mathjs":"BigNumber","value":"3.141592653589793238462643383279"}`))
	require.NoError(t, err)

	b, ok := got.(BigDecimal)
	require.True(t, ok)
	assert.Equal(t, "3.141592653589793238462643383279", b.String())
}

func TestUnmarshalMatrix(t *testing.T) {
	got, err := Unmarshal([]byte(`{"mathjs":"DenseMatrix","data":[[1,2],[3,4]],"size":[2,2]}`))
	require.NoError(t, err)

	m, ok := got.(Matrix)
	require.True(t, ok)
	assert.Equal(t, []int{2, 2}, m.Size())
	assert.Equal(t, Array{Array{Real(1), Real(2)}, Array{Real(3), Real(4)}}, m.Data())
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", "[1,"},
		{"trailing data", "1 2"},
		{"untagged object", `{"re":1,"im":2}`},
		{"unknown tag", `{"mathjs":"Fraction","n":1,"d":2}`},
		{"complex missing im", `{"mathjs":"Complex","re":1}`},
		{"complex string part", `{"mathjs":"Complex","re":"one","im":0}`},
		{"bad big number", `{"mathjs":"BigNumber","value":"abc"}`},
		{"ragged matrix", `{"mathjs":"DenseMatrix","data":[[1,2],[3]]}`},
		{"matrix size mismatch", `{"mathjs":"DenseMatrix","data":[[1,2]],"size":[2,1]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestMarshalUnmarshalPreservesValues(t *testing.T) {
	inputs := []Value{
		Real(20.085536923187668),
		NewComplex(0.5403023058681398, 0.8414709848078965),
		Array{Array{Real(1), NewComplex(1, 2)}, Array{}},
		MustMatrix(Array{Array{Bool(true), Real(2)}}),
		Real(math.Inf(1)),
	}

	for _, in := range inputs {
		data, err := Marshal(in)
		require.NoError(t, err)

		out, err := Unmarshal(data)
		require.NoError(t, err)

		again, err := Marshal(out)
		require.NoError(t, err)
		assert.Equal(t, string(data), string(again))
	}
}

func TestFromPlainYAMLStyle(t *testing.T) {
	// yaml.v3 decodes integers as int and floats as float64
	got, err := FromPlain([]any{1, 2.5, map[string]any{"mathjs": "Complex", "re": 1, "im": -1}})
	require.NoError(t, err)
	assert.Equal(t, Array{Real(1), Real(2.5), Complex{Re: 1, Im: -1}}, got)
}

func TestHashDeterministic(t *testing.T) {
	a, err := Hash(Array{Real(1), NewComplex(0, 1)})
	require.NoError(t, err)
	b, err := Hash(Array{Real(1), NewComplex(0, 1)})
	require.NoError(t, err)
	c, err := Hash(Array{Real(1), NewComplex(0, 2)})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestHashReducesBigDecimal(t *testing.T) {
	hash := func(v Value) string {
		t.Helper()
		h, err := Hash(v)
		require.NoError(t, err)
		return h
	}

	one := hash(MustBigDecimal("1"))
	assert.Equal(t, one, hash(MustBigDecimal("1.0")))
	assert.Equal(t, one, hash(MustBigDecimal("1.000")))
	assert.NotEqual(t, one, hash(MustBigDecimal("1.1")))
	assert.NotEqual(t, one, hash(Real(1)))

	assert.Equal(t, hash(MustBigDecimal("100")), hash(MustBigDecimal("1E+2")))
	assert.Equal(t, hash(MustBigDecimal("0")), hash(MustBigDecimal("-0.00")))

	assert.Equal(t,
		hash(Array{MustBigDecimal("2.50"), MustMatrix(Array{Array{MustBigDecimal("3.0")}})}),
		hash(Array{MustBigDecimal("2.5"), MustMatrix(Array{Array{MustBigDecimal("3")}})}),
	)
}

func TestHashLeavesMarshalUnchanged(t *testing.T) {
	b := MustBigDecimal("1.0")
	_, err := Hash(b)
	require.NoError(t, err)

	data, err := Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, `{"mathjs":"BigNumber","value":"1.0"}`, string(data))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "7.38905609893065", Format(Real(7.38905609893065)))
	assert.Equal(t, "true", Format(Bool(true)))
	assert.Equal(t, "1 + 2i", Format(NewComplex(1, 2)))
	assert.Equal(t, "[1, [2, 3]]", Format(Array{Real(1), Array{Real(2), Real(3)}}))
	assert.Equal(t, "[[1, 2]]", Format(MustMatrix(Array{Array{Real(1), Real(2)}})))
	assert.Equal(t, `"x"`, Format(String("x")))
	assert.Equal(t, "null", Format(Null{}))
	assert.Equal(t, "1.5", Format(MustBigDecimal("1.5")))
}
