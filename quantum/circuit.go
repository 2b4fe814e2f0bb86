package quantum

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Op records one operation applied to a Circuit.
type Op struct {
	Name   string
	Qubits []int     // controls first, then targets
	Params []float64 // phase angle, or k for CP
	State  []complex128
}

// Load is the Op name recorded by SetState.
const Load = "LOAD"

// Circuit owns a StateVector and mutates it through gate calls. Every call
// is recorded so the run can be replayed up to any step.
type Circuit struct {
	state   *StateVector
	initial []complex128
	ops     []Op
	dense   bool
	logger  *log.Logger
}

// Option configures a Circuit.
type Option func(*Circuit) error

// WithLogger logs every applied operation at debug level.
func WithLogger(l *log.Logger) Option {
	return func(c *Circuit) error {
		c.logger = l
		return nil
	}
}

// WithDenseExpansion applies single-qubit gates through the full Kronecker
// expanded operator instead of the pair kernel.
func WithDenseExpansion() Option {
	return func(c *Circuit) error {
		c.dense = true
		return nil
	}
}

// WithInitialState starts the circuit from amplitudes instead of |0...0>.
func WithInitialState(amplitudes []complex128) Option {
	return func(c *Circuit) error {
		return c.state.SetAmplitudes(amplitudes)
	}
}

// NewCircuit creates an n-qubit circuit.
func NewCircuit(n int, opts ...Option) (*Circuit, error) {
	state, err := NewStateVector(n)
	if err != nil {
		return nil, err
	}
	c := &Circuit{state: state, logger: log.New(io.Discard)}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	c.initial = c.state.Amplitudes()
	return c, nil
}

func (c *Circuit) NumQubits() int { return c.state.n }

// State returns the live state vector.
func (c *Circuit) State() *StateVector { return c.state }

// Amplitudes returns a copy of the current amplitudes.
func (c *Circuit) Amplitudes() []complex128 { return c.state.Amplitudes() }

func (c *Circuit) BasisLabels() []string { return c.state.BasisLabels() }

// Ops returns the recorded operations.
func (c *Circuit) Ops() []Op {
	out := make([]Op, len(c.ops))
	copy(out, c.ops)
	return out
}

// SetState substitutes amplitudes into the circuit, e.g. a branch collapsed
// by a measurement engine.
func (c *Circuit) SetState(amplitudes []complex128) error {
	state := make([]complex128, len(amplitudes))
	copy(state, amplitudes)
	return c.exec(Op{Name: Load, State: state})
}

// H applies a Hadamard to q.
func (c *Circuit) H(q int) error { return c.exec(Op{Name: "H", Qubits: []int{q}}) }

// X flips q.
func (c *Circuit) X(q int) error { return c.exec(Op{Name: "X", Qubits: []int{q}}) }

// Y applies Pauli-Y to q.
func (c *Circuit) Y(q int) error { return c.exec(Op{Name: "Y", Qubits: []int{q}}) }

// Z flips the phase of q.
func (c *Circuit) Z(q int) error { return c.exec(Op{Name: "Z", Qubits: []int{q}}) }

// S applies diag(1, i) to q.
func (c *Circuit) S(q int) error { return c.exec(Op{Name: "S", Qubits: []int{q}}) }

// SInverse applies S† to q.
func (c *Circuit) SInverse(q int) error { return c.exec(Op{Name: "SDG", Qubits: []int{q}}) }

// T applies the T gate to q.
func (c *Circuit) T(q int) error { return c.exec(Op{Name: "T", Qubits: []int{q}}) }

// TInverse applies T† to q.
func (c *Circuit) TInverse(q int) error { return c.exec(Op{Name: "TDG", Qubits: []int{q}}) }

// P applies diag(1, e^{i·phi}) to q.
func (c *Circuit) P(q int, phi float64) error {
	return c.exec(Op{Name: "P", Qubits: []int{q}, Params: []float64{phi}})
}

// RX rotates q about X by phi.
func (c *Circuit) RX(q int, phi float64) error {
	return c.exec(Op{Name: "RX", Qubits: []int{q}, Params: []float64{phi}})
}

// RY rotates q about Y by phi.
func (c *Circuit) RY(q int, phi float64) error {
	return c.exec(Op{Name: "RY", Qubits: []int{q}, Params: []float64{phi}})
}

// RZ rotates q about Z by phi.
func (c *Circuit) RZ(q int, phi float64) error {
	return c.exec(Op{Name: "RZ", Qubits: []int{q}, Params: []float64{phi}})
}

// CX flips target when control is 1.
func (c *Circuit) CX(control, target int) error {
	return c.exec(Op{Name: "CX", Qubits: []int{control, target}})
}

// CY applies Y to target when control is 1.
func (c *Circuit) CY(control, target int) error {
	return c.exec(Op{Name: "CY", Qubits: []int{control, target}})
}

// CZ negates the amplitude where both qubits are 1.
func (c *Circuit) CZ(control, target int) error {
	return c.exec(Op{Name: "CZ", Qubits: []int{control, target}})
}

// CP multiplies the amplitude where both qubits are 1 by e^{i·2π/2^k}.
func (c *Circuit) CP(control, target, k int) error {
	return c.exec(Op{Name: "CP", Qubits: []int{control, target}, Params: []float64{float64(k)}})
}

// Swap exchanges q1 and q2.
func (c *Circuit) Swap(q1, q2 int) error {
	return c.exec(Op{Name: "SWAP", Qubits: []int{q1, q2}})
}

// CCX flips target when both controls are 1.
func (c *Circuit) CCX(control1, control2, target int) error {
	return c.exec(Op{Name: "CCX", Qubits: []int{control1, control2, target}})
}

// CSwap exchanges q1 and q2 when control is 1.
func (c *Circuit) CSwap(control, q1, q2 int) error {
	return c.exec(Op{Name: "CSWAP", Qubits: []int{control, q1, q2}})
}

func (c *Circuit) exec(op Op) error {
	if err := applyOp(c.state, op, c.dense); err != nil {
		return fmt.Errorf("%s %v: %w", op.Name, op.Qubits, err)
	}
	c.ops = append(c.ops, op)
	c.logger.Debug("applied", "op", op.Name, "qubits", op.Qubits, "params", op.Params, "step", len(c.ops))
	return nil
}

// Replay re-runs the first upTo recorded operations from the initial state
// into a fresh StateVector. upTo < 0 or past the end replays everything.
func (c *Circuit) Replay(upTo int) (*StateVector, error) {
	if upTo < 0 || upTo > len(c.ops) {
		upTo = len(c.ops)
	}
	s, err := NewStateVectorFrom(c.state.n, c.initial)
	if err != nil {
		return nil, err
	}
	for i, op := range c.ops[:upTo] {
		if err := applyOp(s, op, c.dense); err != nil {
			return nil, fmt.Errorf("replay step %d: %w", i, err)
		}
	}
	return s, nil
}

// singleQubitOperator resolves a single-qubit op name to its 2x2 matrix.
func singleQubitOperator(op Op) (Operator, bool) {
	phi := 0.0
	if len(op.Params) > 0 {
		phi = op.Params[0]
	}
	switch op.Name {
	case "H":
		return Hadamard(), true
	case "X":
		return PauliXOp(), true
	case "Y":
		return PauliYOp(), true
	case "Z":
		return PauliZOp(), true
	case "S":
		return SGate(), true
	case "SDG":
		return SInverseGate(), true
	case "T":
		return TGate(), true
	case "TDG":
		return TInverseGate(), true
	case "P":
		return PhaseGate(phi), true
	case "RX":
		return RXGate(phi), true
	case "RY":
		return RYGate(phi), true
	case "RZ":
		return RZGate(phi), true
	}
	return Operator{}, false
}

var multiQubitArity = map[string]int{
	"CX": 2, "CY": 2, "CZ": 2, "CP": 2, "SWAP": 2,
	"CCX": 3, "CSWAP": 3,
	Load: 0,
}

func applyOp(s *StateVector, op Op, dense bool) error {
	if u, ok := singleQubitOperator(op); ok {
		if len(op.Qubits) != 1 {
			return fmt.Errorf("%s takes 1 qubit, got %d: %w", op.Name, len(op.Qubits), ErrInvalidQubitIndex)
		}
		if dense {
			return s.ApplyDense(op.Qubits[0], u)
		}
		return s.ApplySingleQubitGate(op.Qubits[0], u)
	}

	q := op.Qubits
	arity, known := multiQubitArity[op.Name]
	if !known {
		return fmt.Errorf("unknown operation %q", op.Name)
	}
	if len(q) != arity {
		return fmt.Errorf("%s takes %d qubits, got %d: %w", op.Name, arity, len(q), ErrInvalidQubitIndex)
	}

	switch op.Name {
	case "CX":
		return s.CX(q[0], q[1])
	case "CY":
		return s.CY(q[0], q[1])
	case "CZ":
		return s.CZ(q[0], q[1])
	case "CP":
		k := 0
		if len(op.Params) > 0 {
			k = int(op.Params[0])
		}
		return s.CP(q[0], q[1], k)
	case "SWAP":
		return s.Swap(q[0], q[1])
	case "CCX":
		return s.CCX(q[0], q[1], q[2])
	case "CSWAP":
		return s.CSwap(q[0], q[1], q[2])
	default:
		return s.SetAmplitudes(op.State)
	}
}
