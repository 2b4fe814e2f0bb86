// Package render draws simulator output as terminal text: a wire diagram of
// the recorded operations, an amplitude table and probability bar charts.
package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qstatesim/internal/angle"
	"qstatesim/quantum"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		r := []rune(s)
		if len(r) > width {
			r = r[:width]
		}
		return string(r)
	}
	total := width - w
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// gateDisplayName returns a short display name for an op.
func gateDisplayName(name string) string {
	switch name {
	case "SDG":
		return "S†"
	case "TDG":
		return "T†"
	default:
		return name
	}
}

// controlDot marks a control qubit on its wire.
const controlDot = "●"

// targetSymbol returns the wire symbol for the target qubit of a controlled gate.
func targetSymbol(name string) string {
	switch name {
	case "CZ", "CP":
		return "●"
	case "CY":
		return "Y"
	case "SWAP", "CSWAP":
		return "×"
	default:
		return "⊕"
	}
}

// roles splits the qubits of a multi-qubit op into controls and targets.
func roles(op quantum.Op) (controls, targets []int) {
	q := op.Qubits
	switch op.Name {
	case "CX", "CY", "CZ", "CP":
		return q[:1], q[1:]
	case "CCX":
		return q[:2], q[2:]
	case "CSWAP":
		return q[:1], q[1:]
	default:
		return nil, q
	}
}

// ──────────────────────────── Cell rendering ────────────────────────────

// cellInfo describes what occupies a single cell in the diagram.
type cellInfo struct {
	op          *quantum.Op
	isControl   bool
	isTarget    bool
	vertAbove   bool
	vertBelow   bool
	passThrough bool
	isLoad      bool
}

// getCellInfo returns rendering information for op on the given qubit.
func getCellInfo(op *quantum.Op, qubit int) cellInfo {
	var info cellInfo
	if op.Name == quantum.Load {
		info.op = op
		info.isLoad = true
		return info
	}
	if len(op.Qubits) == 0 {
		return info
	}
	if len(op.Qubits) == 1 {
		if op.Qubits[0] == qubit {
			info.op = op
		}
		return info
	}

	controls, targets := roles(*op)
	info.isControl = slices.Contains(controls, qubit)
	info.isTarget = slices.Contains(targets, qubit)
	if info.isControl || info.isTarget {
		info.op = op
	}

	minQ, maxQ := slices.Min(op.Qubits), slices.Max(op.Qubits)
	if qubit >= minQ && qubit <= maxQ {
		if qubit > minQ {
			info.vertAbove = true
		}
		if qubit < maxQ {
			info.vertBelow = true
		}
		if qubit > minQ && qubit < maxQ && info.op == nil {
			info.passThrough = true
		}
	}
	return info
}

// renderCell returns 3 lines (top, mid, bot) for a single cell.
// Each line is exactly cellW (11) visual characters wide.
func renderCell(info cellInfo, highlight bool) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)
	loadRow := strings.Repeat(" ", halfW) + loadStyle.Render("║") + strings.Repeat(" ", cellW-halfW-1)

	// ── Highlighted cell (the most recently applied op) ──
	if highlight {
		bdr := cursorBoxStyle
		innerW := cellW - 2
		dashL := (innerW - 1) / 2
		dashR := innerW - dashL - 1

		top = bdr.Render("╔" + strings.Repeat("═", innerW) + "╗")
		bot = bdr.Render("╚" + strings.Repeat("═", innerW) + "╝")

		switch {
		case info.isLoad:
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + loadStyle.Render("╫") + strings.Repeat("─", dashR) + bdr.Render("║")
		case info.isControl:
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + gateStyle.Render(controlDot) + strings.Repeat("─", dashR) + bdr.Render("║")
		case info.isTarget:
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + gateStyle.Render(targetSymbol(info.op.Name)) + strings.Repeat("─", dashR) + bdr.Render("║")
		case info.op != nil:
			name := padCenter(gateDisplayName(info.op.Name), gateNameW)
			mid = bdr.Render("║") + "─┤" + gateStyle.Render(name) + "├─" + bdr.Render("║")
		case info.passThrough:
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR) + bdr.Render("║")
		default:
			mid = bdr.Render("║") + strings.Repeat("─", innerW) + bdr.Render("║")
		}
		return
	}

	// ── Normal (non-highlighted) cells ──
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	wire := func(sym string) {
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		mid = strings.Repeat("─", dashL) + sym + strings.Repeat("─", dashR)
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}
	}

	switch {
	case info.isLoad:
		top = loadRow
		mid = strings.Repeat("─", dashL) + loadStyle.Render("╫") + strings.Repeat("─", dashR)
		bot = loadRow
	case info.isControl:
		wire(gateStyle.Render(controlDot))
	case info.isTarget:
		wire(gateStyle.Render(targetSymbol(info.op.Name)))
	case info.op != nil:
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		name := padCenter(gateDisplayName(info.op.Name), gateNameW)

		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)
	case info.passThrough:
		wire("┼")
	default:
		wire("─")
	}
	return
}

// ──────────────────────────── Diagram ────────────────────────────

// DiagramOptions controls which part of a trace is drawn.
type DiagramOptions struct {
	// Cursor is the number of applied ops; the op at Cursor-1 is boxed.
	// Zero or less highlights nothing.
	Cursor int
	// Width is the available width in columns. Zero or less draws every op.
	Width int
}

// Diagram draws one column per recorded op and three lines per qubit.
func Diagram(n int, ops []quantum.Op, opts DiagramOptions) string {
	var sb strings.Builder

	maxSteps := len(ops)
	if opts.Width > 0 {
		maxSteps = max((opts.Width-labelVisualW)/cellW, 1)
	}
	highlight := min(opts.Cursor, len(ops)) - 1

	startStep := 0
	if highlight >= maxSteps {
		startStep = highlight - maxSteps + 1
	}
	endStep := min(startStep+maxSteps, len(ops))

	if startStep > 0 {
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d\n", startStep+1, endStep)
	}

	// Step number header
	header := strings.Repeat(" ", labelVisualW)
	for step := startStep; step < endStep; step++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", step+1), cellW))
	}
	sb.WriteString(strings.TrimRight(header, " ") + "\n")

	// Render each qubit as 3 lines
	for qubit := range n {
		topLine := strings.Repeat(" ", labelVisualW)
		label := fmt.Sprintf("q[%d]", qubit)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-5s", label)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		if startStep == endStep {
			top, mid, bot := renderCell(cellInfo{}, false)
			topLine += top
			midLine += mid
			botLine += bot
		}
		for step := startStep; step < endStep; step++ {
			info := getCellInfo(&ops[step], qubit)
			top, mid, bot := renderCell(info, step == highlight)
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// DescribeOp writes an op as a single line, e.g. "CP q[0],q[2] k=3".
func DescribeOp(op quantum.Op) string {
	if op.Name == quantum.Load {
		return fmt.Sprintf("%s %s", op.Name, quantum.Representation(op.State))
	}
	qs := make([]string, len(op.Qubits))
	for i, q := range op.Qubits {
		qs[i] = fmt.Sprintf("q[%d]", q)
	}
	s := gateDisplayName(op.Name) + " " + strings.Join(qs, ",")
	if len(op.Params) == 0 {
		return s
	}
	if op.Name == "CP" {
		return fmt.Sprintf("%s k=%d", s, int(op.Params[0]))
	}
	return fmt.Sprintf("%s (%s)", s, angle.Format(op.Params[0]))
}
