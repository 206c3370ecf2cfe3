package compare

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qsimbench/qbench/types"
)

func mustVector(t *testing.T, amplitudes []complex128) types.StateVector {
	t.Helper()
	vec, err := types.NewStateVector(amplitudes)
	require.NoError(t, err)
	return vec
}

func TestEquivalentReflexive(t *testing.T) {
	vectors := [][]complex128{
		{1},
		{complex(1/math.Sqrt2, 0), 0, 0, complex(1/math.Sqrt2, 0)},
		{complex(0.1, -0.3), complex(-0.4, 0.2), complex(0.5, 0.5), complex(0.2, -0.4)},
	}
	for _, amps := range vectors {
		v := mustVector(t, amps)
		ok, err := Equivalent(v, v, DefaultAtol, DefaultRtol)
		require.NoError(t, err)
		assert.True(t, ok, "a vector must be equivalent to itself")
	}
}

func TestEquivalentLengthMismatch(t *testing.T) {
	a := mustVector(t, []complex128{1, 0})
	b := mustVector(t, []complex128{1, 0, 0, 0})

	_, err := Equivalent(a, b, DefaultAtol, DefaultRtol)
	require.Error(t, err)
	assert.True(t, IsLengthMismatchError(err))

	var mismatchErr *LengthMismatchError
	require.ErrorAs(t, err, &mismatchErr)
	assert.Equal(t, 2, mismatchErr.LenA)
	assert.Equal(t, 4, mismatchErr.LenB)
}

func TestEquivalentToleranceBoundary(t *testing.T) {
	tests := []struct {
		name string
		a    []complex128
		b    []complex128
		want bool
	}{
		{
			name: "difference below combined tolerance",
			a:    []complex128{1},
			b:    []complex128{1 + 5e-9},
			want: true,
		},
		{
			name: "difference above combined tolerance",
			a:    []complex128{1},
			b:    []complex128{1 + 1e-3},
			want: false,
		},
		{
			name: "imaginary drift below tolerance",
			a:    []complex128{complex(0, 1)},
			b:    []complex128{complex(2e-9, 1)},
			want: true,
		},
		{
			name: "one bad amplitude fails the whole vector",
			a:    []complex128{1, 0, 0, 0},
			b:    []complex128{1, 0, 1e-2, 0},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustVector(t, tt.a)
			b := mustVector(t, tt.b)
			got, err := Equivalent(a, b, DefaultAtol, DefaultRtol)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEquivalentToleranceIsAnchoredOnB(t *testing.T) {
	// atol + rtol*|b| with b = 0 leaves only the absolute term.
	a := mustVector(t, []complex128{complex(5e-9, 0)})
	b := mustVector(t, []complex128{0})

	ok, err := Equivalent(a, b, DefaultAtol, DefaultRtol)
	require.NoError(t, err)
	assert.True(t, ok)

	a = mustVector(t, []complex128{complex(5e-8, 0)})
	ok, err = Equivalent(a, b, DefaultAtol, DefaultRtol)
	require.NoError(t, err)
	assert.False(t, ok, "5e-8 exceeds atol once the relative term vanishes")
}

func TestEquivalentZeroTolerances(t *testing.T) {
	a := mustVector(t, []complex128{1, 0})
	b := mustVector(t, []complex128{1, 0})
	ok, err := Equivalent(a, b, 0, 0)
	require.NoError(t, err)
	assert.True(t, ok, "identical vectors pass even with zero tolerance")
}
