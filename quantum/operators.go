package quantum

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Single-qubit operator catalogue.

// Hadamard returns H = (1/√2)[[1,1],[1,-1]].
func Hadamard() Operator {
	h := complex(1/math.Sqrt(2), 0)
	return Operator{{h, h}, {h, -h}}
}

// PauliXOp returns the bit flip X.
func PauliXOp() Operator { return Operator{{0, 1}, {1, 0}} }

// PauliYOp returns Y = [[0,-i],[i,0]].
func PauliYOp() Operator { return Operator{{0, -1i}, {1i, 0}} }

// PauliZOp returns the phase flip Z.
func PauliZOp() Operator { return Operator{{1, 0}, {0, -1}} }

// IdentityOp returns the 2×2 identity.
func IdentityOp() Operator { return Operator{{1, 0}, {0, 1}} }

// SGate returns diag(1, i).
func SGate() Operator { return Operator{{1, 0}, {0, 1i}} }

// SInverseGate returns diag(1, -i).
func SInverseGate() Operator { return Operator{{1, 0}, {0, -1i}} }

// tPhase is sqrt(pi/4), not pi/4. Circuits recorded against this engine
// depend on the exact value.
var tPhase = math.Sqrt(math.Pi / 4)

// TGate returns diag(1, e^{i·tPhase}).
func TGate() Operator { return Operator{{1, 0}, {0, cmplx.Exp(complex(0, tPhase))}} }

// TInverseGate returns diag(1, e^{-i·tPhase}).
func TInverseGate() Operator { return Operator{{1, 0}, {0, cmplx.Exp(complex(0, -tPhase))}} }

// PhaseGate returns diag(1, e^{i·phi}).
func PhaseGate(phi float64) Operator {
	return Operator{{1, 0}, {0, cmplx.Exp(complex(0, phi))}}
}

// RXGate returns the rotation exp(-i·phi·X/2).
func RXGate(phi float64) Operator {
	c := complex(math.Cos(phi/2), 0)
	js := complex(0, -math.Sin(phi/2))
	return Operator{{c, js}, {js, c}}
}

// RYGate returns the rotation exp(-i·phi·Y/2).
func RYGate(phi float64) Operator {
	c := complex(math.Cos(phi/2), 0)
	s := complex(math.Sin(phi/2), 0)
	return Operator{{c, -s}, {s, c}}
}

// RZGate returns diag(e^{-i·phi/2}, e^{i·phi/2}).
func RZGate(phi float64) Operator {
	return Operator{
		{cmplx.Exp(complex(0, -phi/2)), 0},
		{0, cmplx.Exp(complex(0, phi/2))},
	}
}

// Projector returns |v><v| for a 1-qubit sub-state v. v is not normalized.
func Projector(v []complex128) (Operator, error) {
	if len(v) != 2 {
		return Operator{}, fmt.Errorf("sub-state of length %d: %w", len(v), ErrDimensionMismatch)
	}
	var p Operator
	for i := range 2 {
		for j := range 2 {
			p[i][j] = v[i] * cmplx.Conj(v[j])
		}
	}
	return p, nil
}

// Pauli labels a single-qubit observable.
type Pauli byte

const (
	PauliI Pauli = 'I'
	PauliX Pauli = 'X'
	PauliY Pauli = 'Y'
	PauliZ Pauli = 'Z'
)

var pauliTable = map[Pauli]Operator{
	PauliI: IdentityOp(),
	PauliX: PauliXOp(),
	PauliY: PauliYOp(),
	PauliZ: PauliZOp(),
}

func (p Pauli) String() string { return string(rune(p)) }

// Operator looks the label up in the fixed Pauli table.
func (p Pauli) Operator() (Operator, error) {
	op, ok := pauliTable[p]
	if !ok {
		return Operator{}, fmt.Errorf("%q: %w", rune(p), ErrUnknownObservableLabel)
	}
	return op, nil
}

// ParsePauli accepts exactly one of "I", "X", "Y", "Z".
func ParsePauli(s string) (Pauli, error) {
	if len(s) == 1 {
		if _, ok := pauliTable[Pauli(s[0])]; ok {
			return Pauli(s[0]), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownObservableLabel)
}

// ParsePaulis parses one label per qubit. A single string such as "XYI" is
// also accepted and split per character.
func ParsePaulis(labels ...string) ([]Pauli, error) {
	if len(labels) == 1 && len(labels[0]) > 1 {
		s := labels[0]
		labels = make([]string, len(s))
		for i := range s {
			labels[i] = s[i : i+1]
		}
	}
	out := make([]Pauli, len(labels))
	for i, l := range labels {
		p, err := ParsePauli(l)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// Observable returns the tensor product of one Pauli per qubit as a dense
// matrix, qubit 0 first.
func Observable(labels []Pauli) (*Matrix, error) {
	ops := make([]Operator, len(labels))
	for q, l := range labels {
		op, err := l.Operator()
		if err != nil {
			return nil, err
		}
		ops[q] = op
	}
	return KronAll(ops), nil
}
