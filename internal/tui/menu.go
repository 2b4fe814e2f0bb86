package tui

import (
	"fmt"
	"strings"

	"qstatesim/internal/protocols"
)

// menuItem is one protocol choice in the picker.
type menuItem struct {
	name   string
	symbol string
	req    protocols.Request
}

// protocolMenu lists the runs reachable from the picker. Teleport takes
// its angle from the model.
var protocolMenu = []menuItem{
	{name: "Bell Φ+", symbol: "|00>+|11>", req: protocols.Request{Protocol: protocols.NameBell, Variant: protocols.PhiPlus}},
	{name: "Bell Ψ+", symbol: "|01>+|10>", req: protocols.Request{Protocol: protocols.NameBell, Variant: protocols.PsiPlus}},
	{name: "Bell Φ-", symbol: "|00>-|11>", req: protocols.Request{Protocol: protocols.NameBell, Variant: protocols.PhiMinus}},
	{name: "Bell Ψ-", symbol: "|01>-|10>", req: protocols.Request{Protocol: protocols.NameBell, Variant: protocols.PsiMinus}},
	{name: "Teleport", symbol: "q0 → q2", req: protocols.Request{Protocol: protocols.NameTeleport}},
	{name: "GHZ", symbol: "3 qubits", req: protocols.Request{Protocol: protocols.NameGHZ, Qubits: 3}},
	{name: "GHZ", symbol: "4 qubits", req: protocols.Request{Protocol: protocols.NameGHZ, Qubits: 4}},
	{name: "QFT", symbol: "|001>", req: protocols.Request{Protocol: protocols.NameQFT, Qubits: 3, Input: 1}},
	{name: "QFT", symbol: "|101>", req: protocols.Request{Protocol: protocols.NameQFT, Qubits: 3, Input: 5}},
}

// renderMenu renders the floating protocol picker.
func (m Model) renderMenu() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Run Protocol"))
	sb.WriteString("\n\n")
	for i, item := range protocolMenu {
		line := fmt.Sprintf("%-10s %s", item.name, dimStyle.Render(item.symbol))
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render("▸ " + line))
		} else {
			sb.WriteString(menuNormalStyle.Render("  " + line))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("↑↓ Select  ⏎ Run  Esc ✕"))
	return menuBorderStyle.Render(sb.String())
}

// renderThetaInput renders the teleport angle input overlay.
func (m Model) renderThetaInput() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Teleport Angle θ"))
	sb.WriteString("\n\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("Examples: pi/2, 3*pi/4, 1.57"))
	return menuBorderStyle.Render(sb.String())
}
