// Package tui is an interactive bubbletea viewer over protocol runs. It
// steps through the recorded operations of a run and switches between its
// measurement branches.
package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"qstatesim/internal/angle"
	"qstatesim/internal/protocols"
	"qstatesim/quantum"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusViewer focus = iota
	focusMenu
	focusTheta
)

// frame is one circuit shown by the viewer: the main run or a branch.
type frame struct {
	title   string
	circuit *quantum.Circuit
	branch  *protocols.Branch
}

// Model represents the TUI application state.
type Model struct {
	runner *protocols.Runner
	req    protocols.Request
	run    *protocols.Run
	logger *log.Logger

	frames   []frame
	frameIdx int
	step     int // ops applied in the current frame

	width    int
	height   int
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	input    textinput.Model
	focus    focus

	menuItem  int
	statusMsg string // transient status message
}

// New builds a viewer over run. req is kept so the run can be repeated with
// another teleport angle.
func New(runner *protocols.Runner, req protocols.Request, run *protocols.Run, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ti := textinput.New()
	ti.Placeholder = "2*pi/3"
	ti.Prompt = "θ = "
	ti.CharLimit = 32

	m := Model{
		runner:   runner,
		req:      req,
		logger:   logger,
		viewport: viewport.New(80, 20),
		help:     help.New(),
		keys:     defaultKeyMap(),
		input:    ti,
	}
	m.load(run)
	return m
}

// load replaces the displayed run and shows its final state.
func (m *Model) load(run *protocols.Run) {
	m.run = run
	m.frames = []frame{{title: run.Name, circuit: run.Circuit}}
	for i := range run.Branches {
		b := &run.Branches[i]
		m.frames = append(m.frames, frame{title: "outcome " + b.Outcome, circuit: b.Circuit, branch: b})
	}
	m.frameIdx = 0
	m.step = len(run.Circuit.Ops())
	m.resize()
}

// resize fits the state viewport between the circuit panel, which grows with
// the qubit count, and the controls.
func (m *Model) resize() {
	if m.width > 0 {
		m.help.Width = m.width - 4
		m.viewport.Width = max(m.width-4, 20)
		m.viewport.Height = max(m.height-m.circuitHeight()-controlsHeight-2, 4)
	}
	m.refresh()
}

func (m *Model) current() frame { return m.frames[m.frameIdx] }

func (m *Model) opCount() int { return len(m.current().circuit.Ops()) }

func (m *Model) setFrame(i int) {
	n := len(m.frames)
	m.frameIdx = ((i % n) + n) % n
	m.step = m.opCount()
	m.refresh()
}

func (m *Model) setStep(s int) {
	m.step = min(max(s, 0), m.opCount())
	m.refresh()
}

// refresh re-renders the state panel for the current frame and step.
func (m *Model) refresh() {
	m.viewport.SetContent(m.stateView())
}

// rerun executes req and loads the result.
func (m *Model) rerun(req protocols.Request) {
	run, err := m.runner.Run(req)
	if err != nil {
		m.logger.Error("protocol failed", "protocol", req.Protocol, "err", err)
		m.statusMsg = fmt.Sprintf("Run error: %v", err)
		return
	}
	m.req = req
	m.load(run)
	m.statusMsg = "Ran " + run.Description
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusViewer:
			m.statusMsg = ""
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit
			case key.Matches(msg, m.keys.Next):
				m.setStep(m.step + 1)
			case key.Matches(msg, m.keys.Prev):
				m.setStep(m.step - 1)
			case key.Matches(msg, m.keys.First):
				m.setStep(0)
			case key.Matches(msg, m.keys.Last):
				m.setStep(m.opCount())
			case key.Matches(msg, m.keys.NextFrame):
				m.setFrame(m.frameIdx + 1)
			case key.Matches(msg, m.keys.PrevFrame):
				m.setFrame(m.frameIdx - 1)
			case key.Matches(msg, m.keys.Menu):
				m.focus = focusMenu
				m.menuItem = 0
			case key.Matches(msg, m.keys.Theta):
				m.focus = focusTheta
				m.input.SetValue(angle.Format(m.req.Theta))
				cmds = append(cmds, m.input.Focus())
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
			default:
				var cmd tea.Cmd
				m.viewport, cmd = m.viewport.Update(msg)
				cmds = append(cmds, cmd)
			}

		case focusMenu:
			switch msg.String() {
			case "esc":
				m.focus = focusViewer
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				if m.menuItem < len(protocolMenu)-1 {
					m.menuItem++
				}
			case "enter":
				req := protocolMenu[m.menuItem].req
				req.Theta = m.req.Theta
				m.focus = focusViewer
				m.rerun(req)
			}

		case focusTheta:
			switch msg.String() {
			case "esc":
				m.focus = focusViewer
				m.input.Blur()
			case "enter":
				theta, err := angle.Parse(m.input.Value())
				if err != nil {
					m.statusMsg = fmt.Sprintf("Invalid angle %q", m.input.Value())
					break
				}
				m.focus = focusViewer
				m.input.Blur()
				req := m.req
				req.Protocol = protocols.NameTeleport
				req.Theta = theta
				m.rerun(req)
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
			}
		}

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// Run starts the viewer on the terminal and blocks until it exits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
