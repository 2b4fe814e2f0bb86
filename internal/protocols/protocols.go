// Package protocols drives the simulator through the textbook call
// sequences: the four Bell states, teleportation over every Bell
// measurement outcome, GHZ preparation and the quantum Fourier transform.
package protocols

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"qstatesim/measure"
	"qstatesim/quantum"
)

// Protocol names accepted by Runner.Run.
const (
	NameBell     = "bell"
	NameTeleport = "teleport"
	NameGHZ      = "ghz"
	NameQFT      = "qft"
)

// Names lists every protocol in display order.
var Names = []string{NameBell, NameTeleport, NameGHZ, NameQFT}

// Request selects a protocol and its inputs.
type Request struct {
	Protocol string
	Variant  Variant // bell
	Qubits   int     // ghz, qft
	Input    int     // qft basis index
	Theta    float64 // teleport input angle
}

// Expectation is one measured Pauli observable.
type Expectation struct {
	Labels string
	Value  complex128
}

// Branch is one measurement outcome explored on its own engine.
type Branch struct {
	Outcome     string
	Engine      *measure.Engine  // collapsed snapshot
	Circuit     *quantum.Circuit // collapsed state plus corrections
	Corrections []string
	Received    []complex128 // state of the untouched qubit after corrections
	Fidelity    float64      // |<psi|received>|^2
}

// Run is the outcome of one protocol.
type Run struct {
	Name         string
	Description  string
	Circuit      *quantum.Circuit
	Engine       *measure.Engine
	Expectations []Expectation
	Target       []complex128 // teleport input state
	Branches     []Branch
}

// Runner builds circuits with a shared logger and gate application mode.
type Runner struct {
	logger *log.Logger
	dense  bool
}

// NewRunner returns a Runner. A nil logger discards output.
func NewRunner(logger *log.Logger, dense bool) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{logger: logger, dense: dense}
}

// Run dispatches req to the matching protocol.
func (r *Runner) Run(req Request) (*Run, error) {
	switch strings.ToLower(req.Protocol) {
	case NameBell:
		return r.Bell(req.Variant)
	case NameTeleport:
		return r.Teleport(req.Theta)
	case NameGHZ:
		return r.GHZ(req.Qubits)
	case NameQFT:
		return r.QFT(req.Qubits, req.Input)
	}
	return nil, fmt.Errorf("unknown protocol %q (want one of %s)", req.Protocol, strings.Join(Names, ", "))
}

func (r *Runner) circuit(name string, n int, opts ...quantum.Option) (*quantum.Circuit, error) {
	opts = append(opts, quantum.WithLogger(r.logger.With("protocol", name)))
	if r.dense {
		opts = append(opts, quantum.WithDenseExpansion())
	}
	return quantum.NewCircuit(n, opts...)
}

// finish captures the final state and evaluates observables on it.
func (r *Runner) finish(run *Run, observables ...string) (*Run, error) {
	e, err := measure.FromState(run.Circuit.State())
	if err != nil {
		return nil, err
	}
	run.Engine = e
	for _, labels := range observables {
		v, err := e.ExpectationOf(labels)
		if err != nil {
			return nil, fmt.Errorf("expectation %s: %w", labels, err)
		}
		run.Expectations = append(run.Expectations, Expectation{Labels: labels, Value: v})
	}
	r.logger.Info("protocol finished", "protocol", run.Name, "state", e.String())
	return run, nil
}
