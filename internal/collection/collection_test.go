package collection

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonphnt/mathjs/internal/value"
)

var cmpValues = cmp.Options{
	cmp.AllowUnexported(value.Matrix{}),
}

func double(v value.Value) (value.Value, error) {
	switch x := v.(type) {
	case value.Real:
		return x * 2, nil
	case value.Complex:
		return value.NewComplex(x.Re*2, x.Im*2), nil
	default:
		return v, nil
	}
}

func TestIsCollection(t *testing.T) {
	assert.True(t, IsCollection(value.Array{}))
	assert.True(t, IsCollection(value.MustMatrix(value.Array{value.Real(1)})))
	assert.False(t, IsCollection(value.Real(1)))
	assert.False(t, IsCollection(value.NewComplex(1, 1)))
	assert.False(t, IsCollection(value.String("abc")))
	assert.False(t, IsCollection(nil))
}

func TestDeepMapFlat(t *testing.T) {
	in := value.Array{value.Real(1), value.Real(2), value.Real(3)}

	got, err := DeepMap(in, double)
	require.NoError(t, err)

	want := value.Array{value.Real(2), value.Real(4), value.Real(6)}
	if diff := cmp.Diff(want, got, cmpValues); diff != "" {
		t.Errorf("DeepMap mismatch (-want +got):\n%s", diff)
	}
}

func TestDeepMapNestedMixed(t *testing.T) {
	in := value.Array{
		value.Real(1),
		value.Array{value.NewComplex(1, 2), value.Array{value.Real(3)}},
		value.Array{},
	}

	got, err := DeepMap(in, double)
	require.NoError(t, err)

	want := value.Array{
		value.Real(2),
		value.Array{value.NewComplex(2, 4), value.Array{value.Real(6)}},
		value.Array{},
	}
	if diff := cmp.Diff(want, got, cmpValues); diff != "" {
		t.Errorf("DeepMap mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, value.Shape(in), value.Shape(got))
}

func TestDeepMapEmpty(t *testing.T) {
	got, err := DeepMap(value.Array{}, double)
	require.NoError(t, err)
	assert.Equal(t, value.Array{}, got)

	m := value.MustMatrix(value.Array{})
	gotM, err := DeepMap(m, double)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, gotM.(value.Matrix).Size())
}

func TestDeepMapMatrixKeepsSize(t *testing.T) {
	m := value.MustMatrix(value.Array{
		value.Array{value.Real(1), value.Real(2), value.Real(3)},
		value.Array{value.Real(4), value.Real(5), value.Real(6)},
	})

	got, err := DeepMap(m, double)
	require.NoError(t, err)

	out, ok := got.(value.Matrix)
	require.True(t, ok, "matrix input must produce a matrix")
	assert.Equal(t, []int{2, 3}, out.Size())

	want := value.Array{
		value.Array{value.Real(2), value.Real(4), value.Real(6)},
		value.Array{value.Real(8), value.Real(10), value.Real(12)},
	}
	if diff := cmp.Diff(want, out.Data(), cmpValues); diff != "" {
		t.Errorf("matrix data mismatch (-want +got):\n%s", diff)
	}
}

func TestDeepMapDoesNotMutateInput(t *testing.T) {
	inner := value.Array{value.Real(5)}
	in := value.Array{value.Real(1), inner}

	_, err := DeepMap(in, double)
	require.NoError(t, err)

	assert.Equal(t, value.Real(1), in[0])
	assert.Equal(t, value.Real(5), inner[0])
}

func TestDeepMapOnlyCallsLeaves(t *testing.T) {
	var seen []value.Value
	record := func(v value.Value) (value.Value, error) {
		seen = append(seen, v)
		return v, nil
	}

	in := value.Array{value.Array{value.Real(1), value.Bool(true)}, value.String("x")}
	_, err := DeepMap(in, record)
	require.NoError(t, err)

	assert.Equal(t, []value.Value{value.Real(1), value.Bool(true), value.String("x")}, seen)
}

func TestDeepMapPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	failOnSecond := func(v value.Value) (value.Value, error) {
		calls++
		if calls == 2 {
			return nil, boom
		}
		return v, nil
	}

	got, err := DeepMap(value.Array{value.Real(1), value.Array{value.Real(2)}, value.Real(3)}, failOnSecond)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, got)
	assert.Equal(t, 2, calls, "traversal must stop at the first error")
}

func TestDeepMapDeepNesting(t *testing.T) {
	const depth = 2000

	var in value.Value = value.Real(1)
	for i := 0; i < depth; i++ {
		in = value.Array{in}
	}

	got, err := DeepMap(in.(value.Container), double)
	require.NoError(t, err)

	for i := 0; i < depth; i++ {
		arr, ok := got.(value.Array)
		require.True(t, ok)
		require.Len(t, arr, 1)
		got = arr[0]
	}
	assert.Equal(t, value.Real(2), got)
}

func TestLeaves(t *testing.T) {
	assert.Equal(t, 1, Leaves(value.Real(3)))
	assert.Equal(t, 0, Leaves(value.Array{}))
	assert.Equal(t, 4, Leaves(value.Array{value.Real(1), value.Array{value.Real(2), value.Array{value.Real(3), value.Real(4)}}}))
	assert.Equal(t, 6, Leaves(value.MustMatrix(value.Array{
		value.Array{value.Real(1), value.Real(2), value.Real(3)},
		value.Array{value.Real(4), value.Real(5), value.Real(6)},
	})))
}
