package quantum

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func randomState(t *testing.T, r *rand.Rand, n int) *StateVector {
	t.Helper()
	amps := make([]complex128, Dimension(n))
	for i := range amps {
		amps[i] = complex(r.NormFloat64(), r.NormFloat64())
	}
	norm := complex(Norm(amps), 0)
	for i := range amps {
		amps[i] /= norm
	}
	s, err := NewStateVectorFrom(n, amps)
	require.NoError(t, err)
	return s
}

func assertAmplitudes(t *testing.T, want []complex128, got *StateVector) {
	t.Helper()
	require.Equal(t, len(want), got.Len())
	for i, w := range want {
		if cmplx.Abs(w-got.Amplitude(i)) > tol {
			t.Fatalf("amplitude %d: got %v, want %v\nstate: %s", i, got.Amplitude(i), w, spew.Sdump(got.Amplitudes()))
		}
	}
}

func catalogue() map[string]Operator {
	return map[string]Operator{
		"H":   Hadamard(),
		"X":   PauliXOp(),
		"Y":   PauliYOp(),
		"Z":   PauliZOp(),
		"S":   SGate(),
		"SDG": SInverseGate(),
		"T":   TGate(),
		"TDG": TInverseGate(),
		"P":   PhaseGate(0.3),
		"RX":  RXGate(1.1),
		"RY":  RYGate(-0.7),
		"RZ":  RZGate(2.5),
	}
}

func TestNewStateVector(t *testing.T) {
	s, err := NewStateVector(3)
	require.NoError(t, err)
	assert.Equal(t, 8, s.Len())
	assert.Equal(t, complex128(1), s.Amplitude(0))
	assert.InDelta(t, 1.0, s.Norm(), tol)

	_, err = NewStateVector(0)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestNewStateVectorFromKeepsUnnormalizedInput(t *testing.T) {
	s, err := NewStateVectorReal(1, []float64{3, 4})
	require.NoError(t, err)
	assert.Equal(t, []complex128{3, 4}, s.Amplitudes())
	assert.InDelta(t, 5.0, s.Norm(), tol)

	_, err = NewStateVectorReal(2, []float64{1, 0, 0})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestExpandSingleQubitOperatorOrdersQubitZeroFirst(t *testing.T) {
	m, err := ExpandSingleQubitOperator(2, 0, PauliXOp())
	require.NoError(t, err)
	want := [][]complex128{
		{0, 0, 1, 0},
		{0, 0, 0, 1},
		{1, 0, 0, 0},
		{0, 1, 0, 0},
	}
	for i, row := range want {
		for j, v := range row {
			assert.Equal(t, v, m.At(i, j), "(%d,%d)", i, j)
		}
	}

	m, err = ExpandSingleQubitOperator(2, 1, PauliXOp())
	require.NoError(t, err)
	assert.Equal(t, complex128(1), m.At(0, 1))
	assert.Equal(t, complex128(1), m.At(2, 3))
	assert.Equal(t, complex128(0), m.At(0, 2))

	_, err = ExpandSingleQubitOperator(2, 2, PauliXOp())
	assert.ErrorIs(t, err, ErrInvalidQubitIndex)
}

func TestPairKernelMatchesDenseExpansion(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for name, op := range catalogue() {
		for n := 1; n <= 4; n++ {
			for q := range n {
				base := randomState(t, r, n)
				fast, dense := base.Clone(), base.Clone()
				require.NoError(t, fast.ApplySingleQubitGate(q, op))
				require.NoError(t, dense.ApplyDense(q, op))
				assert.True(t, fast.ApproxEqual(dense, 1e-12), "%s on qubit %d of %d", name, q, n)
			}
		}
	}
}

func TestOperatorMatrices(t *testing.T) {
	h := 1 / math.Sqrt(2)
	assert.Equal(t, Operator{{complex(h, 0), complex(h, 0)}, {complex(h, 0), complex(-h, 0)}}, Hadamard())
	assert.Equal(t, cmplx.Exp(complex(0, math.Sqrt(math.Pi/4))), TGate()[1][1])
	assert.Equal(t, cmplx.Exp(complex(0, -math.Sqrt(math.Pi/4))), TInverseGate()[1][1])
	assert.Equal(t, Operator{{1, 0}, {0, -1i}}, SInverseGate())

	phi := 0.9
	assert.Equal(t, complex(math.Cos(phi/2), 0), RXGate(phi)[0][0])
	assert.Equal(t, complex(0, -math.Sin(phi/2)), RXGate(phi)[1][0])
	assert.Equal(t, complex(-math.Sin(phi/2), 0), RYGate(phi)[0][1])
	assert.Equal(t, cmplx.Exp(complex(0, -phi/2)), RZGate(phi)[0][0])
	assert.Equal(t, cmplx.Exp(complex(0, phi)), PhaseGate(phi)[1][1])
}

func TestSelfInverseSingleQubitGates(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	pairs := []struct {
		name string
		a, b Operator
	}{
		{"H.H", Hadamard(), Hadamard()},
		{"X.X", PauliXOp(), PauliXOp()},
		{"Y.Y", PauliYOp(), PauliYOp()},
		{"Z.Z", PauliZOp(), PauliZOp()},
		{"S.Sdg", SGate(), SInverseGate()},
		{"T.Tdg", TGate(), TInverseGate()},
	}
	for _, p := range pairs {
		s := randomState(t, r, 1)
		orig := s.Clone()
		require.NoError(t, s.ApplySingleQubitGate(0, p.a))
		require.NoError(t, s.ApplySingleQubitGate(0, p.b))
		assert.True(t, s.ApproxEqual(orig, tol), p.name)
	}
}

func TestSingleQubitGateRejectsBadQubit(t *testing.T) {
	s, err := NewStateVector(2)
	require.NoError(t, err)
	before := s.Amplitudes()
	for _, q := range []int{-1, 2} {
		assert.ErrorIs(t, s.ApplySingleQubitGate(q, Hadamard()), ErrInvalidQubitIndex)
		assert.ErrorIs(t, s.ApplyDense(q, Hadamard()), ErrInvalidQubitIndex)
	}
	assert.Equal(t, before, s.Amplitudes())
}

func TestKronVector(t *testing.T) {
	got := KronVector([]complex128{0.5, 0.866}, []complex128{1, 0, 0, 1})
	assert.Equal(t, []complex128{0.5, 0, 0, 0.5, 0.866, 0, 0, 0.866}, got)
}

func TestRepresentation(t *testing.T) {
	h := complex(1/math.Sqrt(2), 0)
	assert.Equal(t, "(0.7071+0i)|00> + (0.7071+0i)|11>", Representation([]complex128{h, 0, 0, h}))
	assert.Equal(t, "(1+0i)|1>", Representation([]complex128{1e-7, 1}))
	assert.Equal(t, "0", Representation([]complex128{0, 0}))
}
