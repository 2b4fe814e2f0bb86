package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"qstatesim/internal/protocols"
	"qstatesim/internal/render"
	"qstatesim/quantum"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// WriteDump writes the report as a go-spew dump.
func WriteDump(w io.Writer, run *protocols.Run) error {
	dumper.Fdump(w, Build(run))
	return nil
}

// WriteText writes a human-readable summary with the wire diagram, the
// amplitude table and probability bars.
func WriteText(w io.Writer, run *protocols.Run) error {
	var sb strings.Builder
	c := run.Circuit

	fmt.Fprintf(&sb, "%s: %s\n\n", strings.ToUpper(run.Name), run.Description)
	sb.WriteString(render.Diagram(c.NumQubits(), c.Ops(), render.DiagramOptions{}))
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "State: %s\n", run.Engine.String())
	sb.WriteString(render.Amplitudes(run.Engine.BasisLabels(), run.Engine.State(), 1e-12))
	sb.WriteString("\n\nProbabilities\n")
	sb.WriteString(render.Histogram(run.Engine.BasisLabels(), run.Engine.Probabilities(), 0))
	sb.WriteString("\n\nQubit marginals\n")
	sb.WriteString(render.Marginals(run.Engine.QubitProbabilities(), 0))
	sb.WriteString("\n")

	if len(run.Expectations) > 0 {
		sb.WriteString("\nExpectation values\n")
		for _, e := range run.Expectations {
			fmt.Fprintf(&sb, "  <%s> = %s\n", e.Labels, render.FormatAmplitude(e.Value))
		}
	}

	if run.Target != nil {
		fmt.Fprintf(&sb, "\n|psi> = %s\n", quantum.Representation(run.Target))
	}
	for _, b := range run.Branches {
		corr := "none"
		if len(b.Corrections) > 0 {
			corr = strings.Join(b.Corrections, " then ")
		}
		fmt.Fprintf(&sb, "\nOutcome %s (p=%.4f)\n", b.Outcome, b.Engine.CollapseProbability())
		fmt.Fprintf(&sb, "  collapsed:  %s\n", b.Engine.String())
		fmt.Fprintf(&sb, "  correction: %s on q[2]\n", corr)
		fmt.Fprintf(&sb, "  corrected:  %s\n", b.Circuit.State().String())
		fmt.Fprintf(&sb, "  received:   %s (fidelity %.6f)\n", quantum.Representation(b.Received), b.Fidelity)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
