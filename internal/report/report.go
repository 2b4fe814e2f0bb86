// Package report writes a finished protocol run in one of the headless
// output formats.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"qstatesim/internal/protocols"
	"qstatesim/internal/render"
	"qstatesim/measure"
	"qstatesim/quantum"
)

// Amplitude is one basis component of a state.
type Amplitude struct {
	Basis       string  `json:"basis"`
	Re          float64 `json:"re"`
	Im          float64 `json:"im"`
	Probability float64 `json:"probability"`
}

// Op is a recorded gate in its display form.
type Op struct {
	Step   int       `json:"step"`
	Name   string    `json:"name"`
	Qubits []int     `json:"qubits,omitempty"`
	Params []float64 `json:"params,omitempty"`
	Text   string    `json:"text"`
}

// Expectation is a Pauli observable value.
type Expectation struct {
	Labels string  `json:"labels"`
	Re     float64 `json:"re"`
	Im     float64 `json:"im"`
}

// Branch summarises one measurement outcome.
type Branch struct {
	Outcome       string      `json:"outcome"`
	Probability   float64     `json:"probability"`
	Collapsed     string      `json:"collapsed"`
	Corrections   []string    `json:"corrections"`
	Corrected     string      `json:"corrected"`
	Received      []Amplitude `json:"received"`
	Fidelity      float64     `json:"fidelity"`
	CorrectionOps []Op        `json:"correction_ops"`
}

// Report is the serialisable view of a protocol run.
type Report struct {
	Protocol       string                     `json:"protocol"`
	Description    string                     `json:"description"`
	Qubits         int                        `json:"qubits"`
	Ops            []Op                       `json:"ops"`
	Representation string                     `json:"representation"`
	State          []Amplitude                `json:"state"`
	Marginals      []measure.QubitProbability `json:"marginals"`
	Expectations   []Expectation              `json:"expectations,omitempty"`
	Target         []Amplitude                `json:"target,omitempty"`
	Branches       []Branch                   `json:"branches,omitempty"`
}

func amplitudes(amps []complex128) []Amplitude {
	n, err := quantum.QubitsFor(len(amps))
	if err != nil {
		return nil
	}
	labels := quantum.BasisLabels(n)
	out := make([]Amplitude, len(amps))
	for i, a := range amps {
		out[i] = Amplitude{
			Basis:       labels[i],
			Re:          real(a),
			Im:          imag(a),
			Probability: real(a)*real(a) + imag(a)*imag(a),
		}
	}
	return out
}

func ops(recorded []quantum.Op) []Op {
	out := make([]Op, len(recorded))
	for i, op := range recorded {
		out[i] = Op{
			Step:   i + 1,
			Name:   op.Name,
			Qubits: op.Qubits,
			Params: op.Params,
			Text:   render.DescribeOp(op),
		}
	}
	return out
}

// Build collects everything worth writing about run.
func Build(run *protocols.Run) Report {
	r := Report{
		Protocol:       run.Name,
		Description:    run.Description,
		Qubits:         run.Circuit.NumQubits(),
		Ops:            ops(run.Circuit.Ops()),
		Representation: run.Engine.String(),
		State:          amplitudes(run.Engine.State()),
		Marginals:      run.Engine.QubitProbabilities(),
	}
	for _, e := range run.Expectations {
		r.Expectations = append(r.Expectations, Expectation{Labels: e.Labels, Re: real(e.Value), Im: imag(e.Value)})
	}
	if run.Target != nil {
		r.Target = amplitudes(run.Target)
	}
	for _, b := range run.Branches {
		r.Branches = append(r.Branches, Branch{
			Outcome:       b.Outcome,
			Probability:   b.Engine.CollapseProbability(),
			Collapsed:     b.Engine.String(),
			Corrections:   b.Corrections,
			Corrected:     b.Circuit.State().String(),
			Received:      amplitudes(b.Received),
			Fidelity:      b.Fidelity,
			CorrectionOps: ops(b.Circuit.Ops()),
		})
	}
	return r
}

// Writers maps a format name to its writer.
var Writers = map[string]func(w io.Writer, run *protocols.Run) error{
	"text": WriteText,
	"json": WriteJSON,
	"dump": WriteDump,
}

// Formats returns the registered format names, sorted.
func Formats() []string {
	return slices.Sorted(maps.Keys(Writers))
}

// Write dispatches to the writer registered for format.
func Write(format string, w io.Writer, run *protocols.Run) error {
	fn, ok := Writers[format]
	if !ok {
		return fmt.Errorf("unknown format %q (want one of %v)", format, Formats())
	}
	return fn(w, run)
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, run *protocols.Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Build(run))
}
