// Package measure analyses a captured state vector: Born-rule
// probabilities, projective collapse, and Pauli expectation values.
package measure

import (
	"fmt"
	"math"
	"math/cmplx"
	"slices"

	"qstatesim/quantum"
)

// Engine holds its own copy of a state. Several engines created from the
// same amplitudes are independent, so each can explore a different collapse
// outcome.
type Engine struct {
	n             int
	state         []complex128
	probabilities []float64
	labels        []string

	collapsed           bool
	collapseProbability float64
}

// New captures a copy of amplitudes. The length must be a power of two.
func New(amplitudes []complex128) (*Engine, error) {
	n, err := quantum.QubitsFor(len(amplitudes))
	if err != nil {
		return nil, err
	}
	state := make([]complex128, len(amplitudes))
	copy(state, amplitudes)
	e := &Engine{
		n:      n,
		state:  state,
		labels: quantum.BasisLabels(n),
	}
	e.probabilities = bornProbabilities(state)
	return e, nil
}

// FromState captures a StateVector.
func FromState(s *quantum.StateVector) (*Engine, error) {
	return New(s.Amplitudes())
}

// bornProbabilities returns Re(conj(a)·a) for every amplitude.
func bornProbabilities(state []complex128) []float64 {
	p := make([]float64, len(state))
	for i, a := range state {
		p[i] = real(cmplx.Conj(a) * a)
	}
	return p
}

// NumQubits is the width of the captured state.
func (e *Engine) NumQubits() int { return e.n }

// State returns a copy of the held amplitudes.
func (e *Engine) State() []complex128 {
	out := make([]complex128, len(e.state))
	copy(out, e.state)
	return out
}

// Probabilities returns |amplitude_i|^2 for the held state.
func (e *Engine) Probabilities() []float64 {
	out := make([]float64, len(e.probabilities))
	copy(out, e.probabilities)
	return out
}

// BasisLabels returns the ket label of each probability.
func (e *Engine) BasisLabels() []string {
	out := make([]string, len(e.labels))
	copy(out, e.labels)
	return out
}

// Collapsed reports whether Collapse has succeeded on this engine.
func (e *Engine) Collapsed() bool { return e.collapsed }

// CollapseProbability is the squared norm of the projected state from the
// most recent successful Collapse.
func (e *Engine) CollapseProbability() float64 { return e.collapseProbability }

// Collapse projects the listed qubits onto targets and renormalizes.
// Targets are consumed in ascending qubit order: targets[0] projects the
// lowest listed qubit, whatever order qubits is given in. Unlisted qubits
// are left alone. On error the held state is unchanged.
func (e *Engine) Collapse(qubits []int, targets [][]complex128) error {
	if len(qubits) != len(targets) {
		return fmt.Errorf("%d qubits, %d target sub-states: %w", len(qubits), len(targets), quantum.ErrDimensionMismatch)
	}
	if err := quantum.CheckQubits(e.n, qubits...); err != nil {
		return err
	}
	ordered := slices.Sorted(slices.Values(qubits))
	projectors := make([]quantum.Operator, len(targets))
	for k, v := range targets {
		p, err := quantum.Projector(v)
		if err != nil {
			return fmt.Errorf("target for qubit %d: %w", ordered[k], err)
		}
		projectors[k] = p
	}

	projected := e.State()
	for k, q := range ordered {
		quantum.ApplyOperator(projected, e.n, q, projectors[k])
	}
	norm := quantum.Norm(projected)
	if norm < quantum.Tolerance {
		return fmt.Errorf("qubits %v: %w", qubits, quantum.ErrZeroProbabilityCollapse)
	}
	for i := range projected {
		projected[i] /= complex(norm, 0)
	}

	e.state = projected
	e.probabilities = bornProbabilities(projected)
	e.collapsed = true
	e.collapseProbability = norm * norm
	return nil
}

// Expectation returns <state|O|state> for O the tensor product of one
// Pauli per qubit, qubit 0 first.
func (e *Engine) Expectation(labels []quantum.Pauli) (complex128, error) {
	if len(labels) != e.n {
		return 0, fmt.Errorf("%d labels for %d qubits: %w", len(labels), e.n, quantum.ErrDimensionMismatch)
	}
	ops := make([]quantum.Operator, len(labels))
	for q, l := range labels {
		op, err := l.Operator()
		if err != nil {
			return 0, err
		}
		ops[q] = op
	}
	applied := e.State()
	for q, l := range labels {
		if l != quantum.PauliI {
			quantum.ApplyOperator(applied, e.n, q, ops[q])
		}
	}
	return quantum.Inner(e.state, applied), nil
}

// ExpectationOf parses labels such as "XZI" or "X", "Z", "I" and calls
// Expectation.
func (e *Engine) ExpectationOf(labels ...string) (complex128, error) {
	ps, err := quantum.ParsePaulis(labels...)
	if err != nil {
		return 0, err
	}
	return e.Expectation(ps)
}

// QubitProbability is the marginal distribution of one qubit.
type QubitProbability struct {
	Prob0 float64 `json:"prob0"`
	Prob1 float64 `json:"prob1"`
}

// QubitProbabilities returns the marginal of every qubit.
func (e *Engine) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, e.n)
	for i, p := range e.probabilities {
		for q := range e.n {
			if quantum.BitOf(i, e.n, q) == 1 {
				probs[q].Prob1 += p
			} else {
				probs[q].Prob0 += p
			}
		}
	}
	return probs
}

// Outcome pairs a basis label with its probability.
type Outcome struct {
	Label       string
	Probability float64
}

// Outcomes returns every basis outcome whose probability exceeds cutoff.
func (e *Engine) Outcomes(cutoff float64) []Outcome {
	var out []Outcome
	for i, p := range e.probabilities {
		if p > cutoff {
			out = append(out, Outcome{Label: e.labels[i], Probability: p})
		}
	}
	return out
}

// TotalProbability is the sum of the probability vector; 1 for a normalized
// state.
func (e *Engine) TotalProbability() float64 {
	var sum float64
	for _, p := range e.probabilities {
		sum += p
	}
	return sum
}

// String writes the held state as a sum of kets.
func (e *Engine) String() string {
	return quantum.Representation(e.state)
}

// IsNormalized reports whether the held state has unit norm within tol.
func (e *Engine) IsNormalized(tol float64) bool {
	return math.Abs(quantum.Norm(e.state)-1) <= tol
}
