package types

import (
	"math"
	"math/cmplx"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateVector(t *testing.T) {
	tests := []struct {
		name       string
		amplitudes []complex128
		wantErr    error
		wantQubits int
	}{
		{
			name:       "single amplitude is zero qubits",
			amplitudes: []complex128{1},
			wantQubits: 0,
		},
		{
			name:       "two amplitudes is one qubit",
			amplitudes: []complex128{0, 1},
			wantQubits: 1,
		},
		{
			name:       "eight amplitudes is three qubits",
			amplitudes: []complex128{1, 0, 0, 0, 0, 0, 0, 0},
			wantQubits: 3,
		},
		{
			name:       "empty vector rejected",
			amplitudes: nil,
			wantErr:    ErrEmptyVector,
		},
		{
			name:       "length six rejected",
			amplitudes: make([]complex128, 6),
			wantErr:    ErrNotPowerOfTwo,
		},
		{
			name:       "length three rejected",
			amplitudes: make([]complex128, 3),
			wantErr:    ErrNotPowerOfTwo,
		},
		{
			name:       "NaN amplitude rejected",
			amplitudes: []complex128{complex(math.NaN(), 0), 0},
			wantErr:    ErrNotFinite,
		},
		{
			name:       "infinite amplitude rejected",
			amplitudes: []complex128{0, cmplx.Inf()},
			wantErr:    ErrNotFinite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vec, err := NewStateVector(tt.amplitudes)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, vec)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantQubits, vec.QubitCount())
			assert.Len(t, vec, len(tt.amplitudes))
		})
	}
}

func TestResultSetCounts(t *testing.T) {
	rs := NewResultSet("run-1", "/tmp/circuits")
	require.Equal(t, 0, rs.Size())
	assert.True(t, rs.AllEquivalent(), "empty set has nothing mismatched")

	rs.Append(ComparisonRecord{Circuit: "bell.qasm", QubitCount: 2, Equivalent: true})
	rs.Append(ComparisonRecord{Circuit: "ghz.qasm", QubitCount: 3, Equivalent: false})
	rs.Append(ComparisonRecord{Circuit: "teleport.qasm", QubitCount: 3, Equivalent: true})

	assert.Equal(t, 3, rs.Size())
	assert.Equal(t, 2, rs.EquivalentCount())
	assert.Equal(t, 1, rs.MismatchCount())
	assert.False(t, rs.AllEquivalent())

	assert.Equal(t, "bell.qasm", rs.Records[0].Circuit, "records stay in append order")
	assert.Equal(t, "ghz.qasm", rs.Records[1].Circuit)
}

func TestResultSetDuration(t *testing.T) {
	rs := NewResultSet("run-2", ".")
	rs.Started = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rs.Finished = rs.Started.Add(90 * time.Second)
	assert.Equal(t, 90*time.Second, rs.Duration())
}
