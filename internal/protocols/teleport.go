package protocols

import (
	"fmt"
	"math"
	"math/cmplx"

	"qstatesim/internal/angle"
	"qstatesim/measure"
	"qstatesim/quantum"
)

// BellOutcomes are Alice's possible results for qubits 0 and 1.
var BellOutcomes = []string{"00", "01", "10", "11"}

// corrections maps Alice's result to the gates Bob applies to qubit 2.
var corrections = map[string][]string{
	"00": nil,
	"01": {"X"},
	"10": {"Z"},
	"11": {"X", "Z"},
}

// TeleportInput returns cos(θ/2)|0> + sin(θ/2)|1>.
func TeleportInput(theta float64) []complex128 {
	return []complex128{complex(math.Cos(theta/2), 0), complex(math.Sin(theta/2), 0)}
}

// Teleport sends TeleportInput(theta) from qubit 0 to qubit 2 over a phi+
// pair shared by qubits 1 and 2. Each of the four Bell measurement outcomes
// is explored on its own measurement engine and corrected separately.
func (r *Runner) Teleport(theta float64) (*Run, error) {
	psi := TeleportInput(theta)
	r.logger.Info("teleporting", "theta", angle.Format(theta), "psi", quantum.Representation(psi))

	pair, err := r.circuit(NameTeleport, 2)
	if err != nil {
		return nil, err
	}
	if err := pair.H(0); err != nil {
		return nil, err
	}
	if err := pair.CX(0, 1); err != nil {
		return nil, err
	}
	product := quantum.KronVector(psi, pair.Amplitudes())

	c, err := r.bellMeasurementBasis(product)
	if err != nil {
		return nil, err
	}

	run := &Run{
		Name:        NameTeleport,
		Description: fmt.Sprintf("Teleport |psi> = %s from qubit 0 to qubit 2", quantum.Representation(psi)),
		Circuit:     c,
		Target:      psi,
	}

	// Every branch starts from the same captured amplitudes.
	captured := c.Amplitudes()
	for _, outcome := range BellOutcomes {
		b, err := r.teleportBranch(captured, outcome, psi)
		if err != nil {
			return nil, fmt.Errorf("outcome %s: %w", outcome, err)
		}
		run.Branches = append(run.Branches, b)
	}
	return r.finish(run)
}

// bellMeasurementBasis rotates qubits 0 and 1 of product so a computational
// basis measurement on them is a Bell measurement.
func (r *Runner) bellMeasurementBasis(product []complex128) (*quantum.Circuit, error) {
	c, err := r.circuit(NameTeleport, 3, quantum.WithInitialState(product))
	if err != nil {
		return nil, err
	}
	if err := c.CX(0, 1); err != nil {
		return nil, err
	}
	if err := c.H(0); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *Runner) teleportBranch(captured []complex128, outcome string, psi []complex128) (Branch, error) {
	e, err := measure.New(captured)
	if err != nil {
		return Branch{}, err
	}
	targets := make([][]complex128, len(outcome))
	for k, bit := range outcome {
		if bit == '0' {
			targets[k] = []complex128{1, 0}
		} else {
			targets[k] = []complex128{0, 1}
		}
	}
	if err := e.Collapse([]int{0, 1}, targets); err != nil {
		return Branch{}, err
	}
	r.logger.Debug("alice measured", "outcome", outcome, "probability", e.CollapseProbability(), "state", e.String())

	c, err := r.circuit(NameTeleport, 3)
	if err != nil {
		return Branch{}, err
	}
	if err := c.SetState(e.State()); err != nil {
		return Branch{}, err
	}
	for _, gate := range corrections[outcome] {
		switch gate {
		case "X":
			err = c.X(2)
		case "Z":
			err = c.Z(2)
		}
		if err != nil {
			return Branch{}, err
		}
	}

	received := bobQubit(c.Amplitudes(), outcome)
	fidelity := cmplx.Abs(quantum.Inner(psi, received))
	b := Branch{
		Outcome:     outcome,
		Engine:      e,
		Circuit:     c,
		Corrections: corrections[outcome],
		Received:    received,
		Fidelity:    fidelity * fidelity,
	}
	r.logger.Debug("bob corrected", "outcome", outcome, "corrections", b.Corrections, "fidelity", b.Fidelity)
	return b, nil
}

// bobQubit reads qubit 2 out of a state whose qubits 0 and 1 are fixed to
// outcome.
func bobQubit(amps []complex128, outcome string) []complex128 {
	base := 0
	for _, bit := range outcome {
		base <<= 1
		if bit == '1' {
			base |= 1
		}
	}
	base <<= 1
	return []complex128{amps[base], amps[base|1]}
}
