package render

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"qstatesim/measure"
)

// FormatAmplitude writes a complex amplitude with four decimals, e.g.
// "+0.7071-0.0000i".
func FormatAmplitude(a complex128) string {
	return fmt.Sprintf("%+.4f%+.4fi", real(a), imag(a))
}

// Amplitudes tabulates every basis state whose probability exceeds cutoff.
// A negative cutoff keeps every row.
func Amplitudes(labels []string, amps []complex128, cutoff float64) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("basis", "amplitude", "prob", "phase")
	for i, a := range amps {
		p := real(cmplx.Conj(a) * a)
		if p <= cutoff {
			continue
		}
		t.Row(labels[i], FormatAmplitude(a), fmt.Sprintf("%.4f", p), fmt.Sprintf("%+.3f", cmplx.Phase(a)))
	}
	return t.String()
}

// bar draws a horizontal bar of p·width cells.
func bar(p float64, width int) string {
	filled := int(math.Round(p * float64(width)))
	filled = min(max(filled, 0), width)
	return barStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}

// Histogram draws one bar per basis label. Probability 1 fills width cells;
// width <= 0 uses the default.
func Histogram(labels []string, probs []float64, width int) string {
	if width <= 0 {
		width = barW
	}
	labelW := 0
	for _, l := range labels {
		labelW = max(labelW, lipgloss.Width(l))
	}
	var sb strings.Builder
	for i, p := range probs {
		fmt.Fprintf(&sb, "%-*s %s %s\n", labelW, labels[i], bar(p, width), valueStyle.Render(fmt.Sprintf("%.3f", p)))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// Marginals draws P(1) for every qubit.
func Marginals(probs []measure.QubitProbability, width int) string {
	if width <= 0 {
		width = barW
	}
	var sb strings.Builder
	for q, p := range probs {
		label := qubitLabelStyle.Render(fmt.Sprintf("%-5s", fmt.Sprintf("q[%d]", q)))
		fmt.Fprintf(&sb, "%s P(1) %s %s\n", label, bar(p.Prob1, width), valueStyle.Render(fmt.Sprintf("%.3f", p.Prob1)))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
