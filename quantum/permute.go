package quantum

import (
	"math"
	"math/cmplx"
)

// Multi-qubit gates act as a basis-index permutation, a conditional phase, or
// both. Each permutation decodes every index into bits, rewrites the bits
// when the control predicate holds, re-encodes, and gathers:
// new[i] = old[sigma(i)]. All of them are involutions.

// gather replaces the amplitudes with old[sigma(i)], where sigma is given by
// rewrite applied to the bits of i.
func (s *StateVector) gather(rewrite func(b []int)) {
	old := s.amplitudes
	next := make([]complex128, len(old))
	b := make([]int, s.n)
	for i := range old {
		decode(b, i)
		rewrite(b)
		next[i] = old[ToIndex(b)]
	}
	s.amplitudes = next
}

// phase multiplies amplitude i by factor(bits of i).
func (s *StateVector) phase(factor func(b []int) complex128) {
	b := make([]int, s.n)
	for i := range s.amplitudes {
		decode(b, i)
		if f := factor(b); f != 1 {
			s.amplitudes[i] *= f
		}
	}
}

// CX flips target wherever control is 1.
func (s *StateVector) CX(control, target int) error {
	if err := s.checkQubits(control, target); err != nil {
		return err
	}
	s.gather(func(b []int) {
		if b[control] == 1 {
			b[target] ^= 1
		}
	})
	return nil
}

// CY is the CX permutation followed by -i on control=1,target=0 and +i on
// control=1,target=1.
func (s *StateVector) CY(control, target int) error {
	if err := s.checkQubits(control, target); err != nil {
		return err
	}
	s.gather(func(b []int) {
		if b[control] == 1 {
			b[target] ^= 1
		}
	})
	s.phase(func(b []int) complex128 {
		switch {
		case b[control] == 0:
			return 1
		case b[target] == 0:
			return -1i
		default:
			return 1i
		}
	})
	return nil
}

// CZ negates amplitudes where control and target are both 1.
func (s *StateVector) CZ(control, target int) error {
	if err := s.checkQubits(control, target); err != nil {
		return err
	}
	s.phase(func(b []int) complex128 {
		if b[control] == 1 && b[target] == 1 {
			return -1
		}
		return 1
	})
	return nil
}

// CP multiplies by e^{i·2π/2^k} where control and target are both 1.
func (s *StateVector) CP(control, target, k int) error {
	if err := s.checkQubits(control, target); err != nil {
		return err
	}
	f := cmplx.Exp(complex(0, 2*math.Pi/math.Ldexp(1, k)))
	s.phase(func(b []int) complex128 {
		if b[control] == 1 && b[target] == 1 {
			return f
		}
		return 1
	})
	return nil
}

// Swap exchanges the bits of q1 and q2.
func (s *StateVector) Swap(q1, q2 int) error {
	if err := s.checkQubits(q1, q2); err != nil {
		return err
	}
	s.gather(func(b []int) {
		b[q1], b[q2] = b[q2], b[q1]
	})
	return nil
}

// CCX is the Toffoli gate.
func (s *StateVector) CCX(control1, control2, target int) error {
	if err := s.checkQubits(control1, control2, target); err != nil {
		return err
	}
	s.gather(func(b []int) {
		if b[control1] == 1 && b[control2] == 1 {
			b[target] ^= 1
		}
	})
	return nil
}

// CSwap is the Fredkin gate.
func (s *StateVector) CSwap(control, q1, q2 int) error {
	if err := s.checkQubits(control, q1, q2); err != nil {
		return err
	}
	s.gather(func(b []int) {
		if b[control] == 1 {
			b[q1], b[q2] = b[q2], b[q1]
		}
	})
	return nil
}
