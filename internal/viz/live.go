package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rideview/internal/playback"
	"github.com/san-kum/rideview/internal/telemetry"
)

const (
	canvasCols  = 80
	canvasRows  = 14
	chartWidth  = 70
	chartHeight = 6
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 2)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	brakeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160")).Bold(true).Padding(0, 1)
	infoStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 2, 0, 2)
	helpStyle   = lipgloss.NewStyle().Padding(1, 2, 0, 2)
)

type TickMsg time.Time

type keyMap struct {
	Pause   key.Binding
	Restart key.Binding
	Next    key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Restart, k.Next, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Pause, k.Restart}, {k.Next, k.Quit}}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab/1-9", "vehicle"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model is the live playback screen: animation canvas on top, braking
// banner and info box in the middle, pitch strip chart below.
type Model struct {
	engine  *playback.Engine
	names   []string
	period  time.Duration
	canvas  *Canvas
	keys    keyMap
	help    help.Model
	frame   playback.Frame
	curve   []float64
	bounds  telemetry.ChartBounds
	running bool
	loadErr string
}

// NewModel wraps an engine that already has its initial vehicle loaded.
// names is the switch ring for tab and the number keys.
func NewModel(engine *playback.Engine, names []string, displayPeriod float64) *Model {
	m := &Model{
		engine:  engine,
		names:   names,
		period:  time.Duration(displayPeriod * float64(time.Second)),
		canvas:  NewCanvas(canvasCols, canvasRows),
		keys:    defaultKeyMap(),
		help:    help.New(),
		running: true,
	}
	m.rebind()
	return m
}

// rebind refreshes the cached chart curve after the active series
// changed and renders the first frame.
func (m *Model) rebind() {
	if s := m.engine.Series(); s != nil {
		m.curve = s.PitchDeg()
		m.bounds = s.Bounds()
	} else {
		m.curve = nil
		m.bounds = telemetry.ChartBounds{}
	}
	m.frame = m.engine.Tick()
}

func (m *Model) switchTo(name string) {
	if err := m.engine.SwitchVehicle(name); err != nil {
		m.loadErr = err.Error()
		return
	}
	m.loadErr = ""
	m.running = true
	m.rebind()
}

func (m *Model) cycleVehicle() {
	if len(m.names) == 0 {
		return
	}
	current := m.engine.Vehicle().Name
	for i, name := range m.names {
		if name == current {
			m.switchTo(m.names[(i+1)%len(m.names)])
			return
		}
	}
	m.switchTo(m.names[0])
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.period, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.running = !m.running
		case key.Matches(msg, m.keys.Restart):
			m.engine.Reset(m.engine.Vehicle(), m.engine.Series())
			m.running = true
			m.rebind()
		case key.Matches(msg, m.keys.Next):
			m.cycleVehicle()
		default:
			s := msg.String()
			if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
				if i := int(s[0] - '1'); i < len(m.names) {
					m.switchTo(m.names[i])
				}
			}
		}
	case TickMsg:
		if m.running {
			m.frame = m.engine.Tick()
			if m.frame.Done {
				m.running = false
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder

	status := "RUNNING"
	switch {
	case m.frame.Done:
		status = "DONE"
	case !m.running:
		status = "PAUSED"
	}
	b.WriteString("  " + headerStyle.Render("RIDEVIEW") + "  " + statusStyle.Render(status) + "\n")
	if m.loadErr != "" {
		b.WriteString("  " + errorStyle.Render(m.loadErr) + "\n")
	}

	Draw(m.canvas, m.frame)
	b.WriteString(canvasStyle.Render(m.canvas.String()) + "\n")

	banner := "       "
	if m.frame.Braking {
		banner = brakeStyle.Render("BRAKING")
	}
	info := infoStyle.Render(m.frame.Summary())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, "  "+banner+"  ", info) + "\n")

	if chart := m.chartView(); chart != "" {
		b.WriteString(graphStyle.Render(chart) + "\n")
	}

	b.WriteString(helpStyle.Render(m.vehicleLine()+"\n"+m.help.View(m.keys)) + "\n")
	return b.String()
}

func (m *Model) vehicleLine() string {
	parts := make([]string, 0, len(m.names))
	for i, name := range m.names {
		label := fmt.Sprintf("%d:%s", i+1, name)
		if name == m.engine.Vehicle().Name {
			label = headerStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

// chartView plots the full pitch curve with a marker row underneath
// tracking the playback position.
func (m *Model) chartView() string {
	if len(m.curve) < 2 {
		return ""
	}
	chart := asciigraph.Plot(m.curve,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.LowerBound(m.bounds.PitchDegMin),
		asciigraph.UpperBound(m.bounds.PitchDegMax),
		asciigraph.Caption("pitch [deg]"),
	)
	return chart + "\n" + markerRow(chart, m.bounds, m.frame.Pointer.X)
}

// markerRow builds the pointer line under the chart. The label margin
// asciigraph prepends varies with the bound formatting, so the plot
// column is located from the axis rune of the first row.
func markerRow(chart string, bounds telemetry.ChartBounds, t float64) string {
	first, _, _ := strings.Cut(chart, "\n")
	margin := -1
	for i, r := range []rune(first) {
		if r == '┤' || r == '┼' {
			margin = i
			break
		}
	}
	if margin < 0 || bounds.TimeMax <= bounds.TimeMin {
		return ""
	}
	frac := (t - bounds.TimeMin) / (bounds.TimeMax - bounds.TimeMin)
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}
	col := int(frac * float64(chartWidth-1))
	return strings.Repeat(" ", margin+1+col) + "▲"
}
