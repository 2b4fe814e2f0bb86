package quantum

// ExpandSingleQubitOperator builds the full 2^n x 2^n operator
// I ⊗ ... ⊗ op ⊗ ... ⊗ I with op at qubit q and factors ordered qubit 0 to
// qubit n-1. Memory is O(4^n).
func ExpandSingleQubitOperator(n, q int, op Operator) (*Matrix, error) {
	if err := CheckQubits(n, q); err != nil {
		return nil, err
	}
	factors := make([]Operator, n)
	for i := range factors {
		factors[i] = IdentityOp()
	}
	factors[q] = op
	return KronAll(factors), nil
}

// ApplyOperator applies op to qubit q of amps in place. It touches each pair
// of amplitudes that differ only in q's bit and gives the same numbers as
// multiplying by ExpandSingleQubitOperator. Bounds are not checked.
func ApplyOperator(amps []complex128, n, q int, op Operator) {
	mask := QubitMask(n, q)
	for i := range amps {
		if i&mask != 0 {
			continue
		}
		j := i | mask
		a0, a1 := amps[i], amps[j]
		amps[i] = op[0][0]*a0 + op[0][1]*a1
		amps[j] = op[1][0]*a0 + op[1][1]*a1
	}
}

// ApplySingleQubitGate left-multiplies the expanded op onto the state.
func (s *StateVector) ApplySingleQubitGate(q int, op Operator) error {
	if err := s.checkQubits(q); err != nil {
		return err
	}
	ApplyOperator(s.amplitudes, s.n, q, op)
	return nil
}

// ApplyDense is ApplySingleQubitGate through the materialized 2^n x 2^n
// operator.
func (s *StateVector) ApplyDense(q int, op Operator) error {
	m, err := ExpandSingleQubitOperator(s.n, q, op)
	if err != nil {
		return err
	}
	s.amplitudes = m.MulVec(s.amplitudes)
	return nil
}
