package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"qstatesim/measure"
	"qstatesim/quantum"
)

func traceCircuit(t *testing.T) *quantum.Circuit {
	t.Helper()
	c, err := quantum.NewCircuit(3)
	if err != nil {
		t.Fatalf("NewCircuit: %v", err)
	}
	steps := []func() error{
		func() error { return c.H(0) },
		func() error { return c.CX(0, 2) },
		func() error { return c.CCX(0, 1, 2) },
		func() error { return c.SInverse(1) },
		func() error { return c.SetState([]complex128{0, 1, 0, 0, 0, 0, 0, 0}) },
		func() error { return c.CP(2, 0, 3) },
		func() error { return c.RY(1, 1.5707963267948966) },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	return c
}

func TestDiagramRowWidths(t *testing.T) {
	c := traceCircuit(t)
	ops := c.Ops()
	out := Diagram(c.NumQubits(), ops, DiagramOptions{Cursor: 3})
	lines := strings.Split(out, "\n")

	if len(lines) != 1+3*c.NumQubits() {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), 1+3*c.NumQubits(), out)
	}
	want := labelVisualW + cellW*len(ops)
	for i, line := range lines[1:] {
		if w := lipgloss.Width(line); w != want {
			t.Errorf("line %d: width %d, want %d: %q", i+1, w, want, line)
		}
	}
}

func TestDiagramSymbols(t *testing.T) {
	c := traceCircuit(t)
	out := Diagram(c.NumQubits(), c.Ops(), DiagramOptions{})

	for _, sym := range []string{"⊕", "●", "┼", "S†", "╫", "RY", "H", "q[2]"} {
		if !strings.Contains(out, sym) {
			t.Errorf("diagram missing %q:\n%s", sym, out)
		}
	}
	if strings.Contains(out, "╔") {
		t.Errorf("no cursor given, but a cell is boxed:\n%s", out)
	}
}

func TestDiagramWindowFollowsCursor(t *testing.T) {
	c := traceCircuit(t)
	out := Diagram(c.NumQubits(), c.Ops(), DiagramOptions{Cursor: 5, Width: labelVisualW + 2*cellW})

	if !strings.Contains(out, "showing steps 4–5") {
		t.Errorf("expected window message, got:\n%s", out)
	}
	if !strings.Contains(out, "╔") {
		t.Errorf("expected boxed cursor cell:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n")[2:] {
		if w := lipgloss.Width(line); w != labelVisualW+2*cellW {
			t.Errorf("width %d, want %d: %q", w, labelVisualW+2*cellW, line)
		}
	}
}

func TestDiagramEmptyTrace(t *testing.T) {
	out := Diagram(2, nil, DiagramOptions{Cursor: 4})
	lines := strings.Split(out, "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[2], "q[0]") || !strings.Contains(lines[5], "q[1]") {
		t.Errorf("qubit labels missing:\n%s", out)
	}
}

func TestPadCenter(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"H", 5, "  H  "},
		{"RX", 5, " RX  "},
		{"S†", 5, " S†  "},
		{"CSWAP", 5, "CSWAP"},
		{"TOOLONG", 5, "TOOLO"},
	}
	for _, tt := range tests {
		if got := padCenter(tt.s, tt.width); got != tt.want {
			t.Errorf("padCenter(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestDescribeOp(t *testing.T) {
	c := traceCircuit(t)
	ops := c.Ops()
	tests := []struct {
		index int
		want  string
	}{
		{0, "H q[0]"},
		{2, "CCX q[0],q[1],q[2]"},
		{3, "S† q[1]"},
		{4, "LOAD (1+0i)|001>"},
		{5, "CP q[2],q[0] k=3"},
		{6, "RY q[1] (pi/2)"},
	}
	for _, tt := range tests {
		if got := DescribeOp(ops[tt.index]); got != tt.want {
			t.Errorf("DescribeOp(op %d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestHistogram(t *testing.T) {
	out := Histogram([]string{"|0>", "|1>"}, []float64{0.25, 0.75}, 20)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if n := strings.Count(lines[0], "█"); n != 5 {
		t.Errorf("0.25 bar has %d cells, want 5", n)
	}
	if n := strings.Count(lines[1], "█"); n != 15 {
		t.Errorf("0.75 bar has %d cells, want 15", n)
	}
	if !strings.Contains(lines[1], "0.750") {
		t.Errorf("missing value: %q", lines[1])
	}
	if lipgloss.Width(lines[0]) != lipgloss.Width(lines[1]) {
		t.Errorf("bars not aligned:\n%s", out)
	}
}

func TestMarginals(t *testing.T) {
	out := Marginals([]measure.QubitProbability{{Prob0: 1}, {Prob0: 0.5, Prob1: 0.5}}, 10)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if strings.Count(lines[0], "█") != 0 || strings.Count(lines[1], "█") != 5 {
		t.Errorf("unexpected bars:\n%s", out)
	}
}

func TestAmplitudes(t *testing.T) {
	h := complex(0.7071067811865476, 0)
	out := Amplitudes(quantum.BasisLabels(2), []complex128{h, 0, 0, -h}, 1e-9)
	for _, want := range []string{"basis", "|00>", "|11>", "+0.7071+0.0000i", "-0.7071+0.0000i", "0.5000"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "|01>") {
		t.Errorf("zero-probability row not filtered:\n%s", out)
	}
}

func TestFormatAmplitude(t *testing.T) {
	if got := FormatAmplitude(complex(0.5, -0.25)); got != "+0.5000-0.2500i" {
		t.Errorf("FormatAmplitude = %q", got)
	}
}
