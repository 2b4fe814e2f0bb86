package quantum

import (
	"fmt"
	"math/cmplx"
)

// StateVector holds the 2^n complex amplitudes of an n-qubit register.
type StateVector struct {
	n          int
	amplitudes []complex128
}

// NewStateVector returns |0...0> on n qubits.
func NewStateVector(n int) (*StateVector, error) {
	if n < 1 {
		return nil, fmt.Errorf("%d qubits: %w", n, ErrDimensionMismatch)
	}
	amps := make([]complex128, Dimension(n))
	amps[0] = 1
	return &StateVector{n: n, amplitudes: amps}, nil
}

// NewStateVectorFrom adopts a copy of amplitudes as-is; no normalization is
// applied. The length must be exactly 2^n.
func NewStateVectorFrom(n int, amplitudes []complex128) (*StateVector, error) {
	if n < 1 {
		return nil, fmt.Errorf("%d qubits: %w", n, ErrDimensionMismatch)
	}
	s := &StateVector{n: n}
	if err := s.SetAmplitudes(amplitudes); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStateVectorReal is NewStateVectorFrom for real-valued input.
func NewStateVectorReal(n int, amplitudes []float64) (*StateVector, error) {
	amps := make([]complex128, len(amplitudes))
	for i, a := range amplitudes {
		amps[i] = complex(a, 0)
	}
	return NewStateVectorFrom(n, amps)
}

func (s *StateVector) NumQubits() int { return s.n }

func (s *StateVector) Len() int { return len(s.amplitudes) }

// Amplitudes returns a copy of the amplitudes.
func (s *StateVector) Amplitudes() []complex128 {
	out := make([]complex128, len(s.amplitudes))
	copy(out, s.amplitudes)
	return out
}

// Amplitude returns the amplitude of basis index i.
func (s *StateVector) Amplitude(i int) complex128 {
	return s.amplitudes[i]
}

// SetAmplitudes replaces the whole state with a copy of amplitudes. Used to
// substitute an externally collapsed state back into a register.
func (s *StateVector) SetAmplitudes(amplitudes []complex128) error {
	if len(amplitudes) != Dimension(s.n) {
		return fmt.Errorf("got %d amplitudes for %d qubits, want %d: %w",
			len(amplitudes), s.n, Dimension(s.n), ErrDimensionMismatch)
	}
	amps := make([]complex128, len(amplitudes))
	copy(amps, amplitudes)
	s.amplitudes = amps
	return nil
}

// BasisLabels returns "|0..0>" through "|1..1>" in index order.
func (s *StateVector) BasisLabels() []string {
	return BasisLabels(s.n)
}

func (s *StateVector) Norm() float64 {
	return Norm(s.amplitudes)
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]complex128, len(s.amplitudes))
	copy(amps, s.amplitudes)
	return &StateVector{n: s.n, amplitudes: amps}
}

// ApproxEqual reports whether both states agree amplitude-wise within tol.
func (s *StateVector) ApproxEqual(other *StateVector, tol float64) bool {
	if s.n != other.n {
		return false
	}
	for i, a := range s.amplitudes {
		if cmplx.Abs(a-other.amplitudes[i]) > tol {
			return false
		}
	}
	return true
}

// checkQubits rejects positions outside [0, n-1] and repeated positions.
func (s *StateVector) checkQubits(qubits ...int) error {
	return CheckQubits(s.n, qubits...)
}

// CheckQubits validates qubit positions against an n-qubit register. All
// positions must be in range and pairwise distinct.
func CheckQubits(n int, qubits ...int) error {
	for i, q := range qubits {
		if q < 0 || q >= n {
			return fmt.Errorf("qubit %d on %d-qubit register: %w", q, n, ErrInvalidQubitIndex)
		}
		for _, p := range qubits[:i] {
			if p == q {
				return fmt.Errorf("qubit %d used twice: %w", q, ErrInvalidQubitIndex)
			}
		}
	}
	return nil
}
