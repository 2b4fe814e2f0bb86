package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"qstatesim/internal/render"
	"qstatesim/measure"
	"qstatesim/quantum"
)

const controlsHeight = 5

// circuitHeight is the height of the circuit panel including its border.
func (m Model) circuitHeight() int {
	return 3*m.current().circuit.NumQubits() + 7
}

// stateView renders the state after m.step ops of the current frame.
func (m Model) stateView() string {
	var sb strings.Builder
	f := m.current()
	ops := f.circuit.Ops()

	if m.step == 0 {
		fmt.Fprintf(&sb, "%s\n", titleStyle.Render(fmt.Sprintf("Step 0/%d  initial state", len(ops))))
	} else {
		fmt.Fprintf(&sb, "%s\n", titleStyle.Render(fmt.Sprintf("Step %d/%d  %s", m.step, len(ops), render.DescribeOp(ops[m.step-1]))))
	}

	s, err := f.circuit.Replay(m.step)
	if err != nil {
		return sb.String() + errorStyle.Render(err.Error())
	}
	e, err := measure.FromState(s)
	if err != nil {
		return sb.String() + errorStyle.Render(err.Error())
	}

	barWidth := max(min(m.viewport.Width-30, 40), 10)
	fmt.Fprintf(&sb, "State: %s\n", e.String())
	sb.WriteString(render.Amplitudes(e.BasisLabels(), e.State(), 1e-12))
	sb.WriteString("\n\n" + activeStyle.Render("Probabilities") + "\n")
	sb.WriteString(render.Histogram(e.BasisLabels(), e.Probabilities(), barWidth))
	sb.WriteString("\n\n" + activeStyle.Render("Qubit marginals") + "\n")
	sb.WriteString(render.Marginals(e.QubitProbabilities(), barWidth))
	sb.WriteString("\n")

	if m.step < len(ops) {
		return sb.String()
	}
	if b := f.branch; b != nil {
		corr := "none"
		if len(b.Corrections) > 0 {
			corr = strings.Join(b.Corrections, " then ") + " on q[2]"
		}
		sb.WriteString("\n" + activeStyle.Render("Measurement") + "\n")
		fmt.Fprintf(&sb, "  outcome %s with probability %.4f\n", b.Outcome, b.Engine.CollapseProbability())
		fmt.Fprintf(&sb, "  collapsed:  %s\n", b.Engine.String())
		fmt.Fprintf(&sb, "  correction: %s\n", corr)
		fmt.Fprintf(&sb, "  received:   %s (fidelity %.6f)\n", quantum.Representation(b.Received), b.Fidelity)
		return sb.String()
	}
	if len(m.run.Expectations) > 0 {
		sb.WriteString("\n" + activeStyle.Render("Expectation values") + "\n")
		for _, ex := range m.run.Expectations {
			fmt.Fprintf(&sb, "  <%s> = %s\n", ex.Labels, render.FormatAmplitude(ex.Value))
		}
	}
	if m.run.Target != nil {
		fmt.Fprintf(&sb, "\n|psi> = %s  (tab to see each measurement outcome)\n", quantum.Representation(m.run.Target))
	}
	return sb.String()
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	circuitPanel := m.renderCircuitPanel(m.width - 4)
	statePanel := stateStyle.Width(m.width - 2).Render(m.viewport.View())
	controlsPanel := controlsStyle.Width(m.width - 2).Render(m.help.View(m.keys))

	frame := lipgloss.JoinVertical(lipgloss.Left, circuitPanel, statePanel, controlsPanel)

	switch m.focus {
	case focusMenu:
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	case focusTheta:
		frame = overlayAt(frame, m.renderThetaInput(), 2, 2)
	}
	return frame
}

// renderCircuitPanel renders the frame tabs and the wire diagram.
func (m Model) renderCircuitPanel(width int) string {
	var sb strings.Builder
	f := m.current()

	sb.WriteString(titleStyle.Render(m.run.Description))
	sb.WriteString("\n")

	tabs := make([]string, len(m.frames))
	for i, fr := range m.frames {
		if i == m.frameIdx {
			tabs[i] = activeTabStyle.Render(fr.title)
		} else {
			tabs[i] = tabStyle.Render(fr.title)
		}
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	sb.WriteString("\n")

	sb.WriteString(render.Diagram(f.circuit.NumQubits(), f.circuit.Ops(), render.DiagramOptions{Cursor: m.step, Width: width - 2}))
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "  Step %d of %d", m.step, len(f.circuit.Ops()))
	if m.statusMsg != "" {
		fmt.Fprintf(&sb, "  │  %s", activeStyle.Render(m.statusMsg))
	}

	return circuitStyle.Width(width + 2).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at position (x, y).
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces visible columns starting at position x in bgLine
// with overlay, keeping the ANSI styling on either side.
func spliceLineAt(bgLine, overlay string, x int) string {
	prefix := ansi.Truncate(bgLine, x, "")
	if w := ansi.StringWidth(prefix); w < x {
		prefix += strings.Repeat(" ", x-w)
	}
	suffix := ansi.TruncateLeft(bgLine, x+ansi.StringWidth(overlay), "")
	return prefix + overlay + suffix
}
