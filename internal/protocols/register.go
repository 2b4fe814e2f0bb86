package protocols

import (
	"fmt"
	"strings"

	"qstatesim/quantum"
)

// GHZ prepares (|0...0> + |1...1>)/√2 on n qubits with H and a CX chain.
func (r *Runner) GHZ(n int) (*Run, error) {
	if n < 2 {
		return nil, fmt.Errorf("ghz needs at least 2 qubits, got %d: %w", n, quantum.ErrDimensionMismatch)
	}
	r.logger.Info("preparing ghz state", "qubits", n)

	c, err := r.circuit(NameGHZ, n)
	if err != nil {
		return nil, err
	}
	if err := c.H(0); err != nil {
		return nil, err
	}
	for q := 1; q < n; q++ {
		if err := c.CX(q-1, q); err != nil {
			return nil, err
		}
	}

	run := &Run{
		Name:        NameGHZ,
		Description: fmt.Sprintf("GHZ state (|%s> + |%s>)/√2", strings.Repeat("0", n), strings.Repeat("1", n)),
		Circuit:     c,
	}
	return r.finish(run, strings.Repeat("Z", n), strings.Repeat("X", n))
}

// QFT applies the quantum Fourier transform to the basis state |input>.
// Qubit 0 is the most significant bit of input.
func (r *Runner) QFT(n, input int) (*Run, error) {
	if n < 1 {
		return nil, fmt.Errorf("qft needs at least 1 qubit, got %d: %w", n, quantum.ErrDimensionMismatch)
	}
	if input < 0 || input >= quantum.Dimension(n) {
		return nil, fmt.Errorf("qft input %d for %d qubits: %w", input, n, quantum.ErrInvalidIndex)
	}
	r.logger.Info("applying qft", "qubits", n, "input", input)

	initial := make([]complex128, quantum.Dimension(n))
	initial[input] = 1
	c, err := r.circuit(NameQFT, n, quantum.WithInitialState(initial))
	if err != nil {
		return nil, err
	}
	if err := ApplyQFT(c); err != nil {
		return nil, err
	}

	run := &Run{
		Name:        NameQFT,
		Description: fmt.Sprintf("QFT of |%0*b> on %d qubits", n, input, n),
		Circuit:     c,
	}
	return r.finish(run)
}

// ApplyQFT appends the Fourier transform over every qubit of c: a Hadamard
// on each qubit followed by CP(k) rotations from the less significant
// qubits, then a swap network reversing the qubit order.
func ApplyQFT(c *quantum.Circuit) error {
	n := c.NumQubits()
	for j := range n {
		if err := c.H(j); err != nil {
			return err
		}
		for k := j + 1; k < n; k++ {
			if err := c.CP(k, j, k-j+1); err != nil {
				return err
			}
		}
	}
	for q := range n / 2 {
		if err := c.Swap(q, n-1-q); err != nil {
			return err
		}
	}
	return nil
}
