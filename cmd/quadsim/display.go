package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/alexwhite-1/MDE4806-S26-14/pkg/sim"
)

type DisplayCommand struct {
	Profile string `long:"profile" description:"Replay a YAML trajectory profile"`
	Config  string `long:"config" description:"JSON config file (quadsim.json is picked up automatically)"`
}

const (
	headerHeight = 2 // title + blank line
	statusHeight = 3 // angle readout + legend + blank
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border

	// Each signal occupies its own lane on the shared chart: a low value
	// sits on the lane baseline, a high value 0.8 above it.
	laneHigh = 0.8
)

// Signal colors - distinct colors for each channel
var signalColors = map[string]string{
	"A1": "46",  // green
	"B1": "51",  // cyan
	"A2": "226", // yellow
	"B2": "201", // magenta
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	indexOnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	indexOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type displayModel struct {
	runner   *sim.Runner
	chart    *streamlinechart.Model
	signals  []string // lane order, top to bottom
	width    int      // terminal width
	height   int      // terminal height
	logs     []string // last N log messages
	last     sim.Sample
	haveData bool
	quitting bool
}

func (m *displayModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// Messages from the runner
type sampleMsg sim.Sample
type logMsg string

func waitForSample(r *sim.Runner) tea.Cmd {
	return func() tea.Msg {
		return sampleMsg(<-r.Samples())
	}
}

func waitForLog(r *sim.Runner) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-r.Logs())
	}
}

// chartSize calculates the size of the chart based on terminal dimensions
func (m *displayModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 16 // default size before we know terminal size
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - statusHeight - footerHeight - borderSize
	if height < 8 {
		height = 8
	}
	return width, height
}

func (m *displayModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

// laneValue stacks signal i (top lane first) onto the shared Y axis.
func (m *displayModel) laneValue(i, v int) float64 {
	lane := len(m.signals) - 1 - i
	return float64(lane) + float64(v)*laneHigh
}

func initialDisplayModel(r *sim.Runner) displayModel {
	signals := []string{"A1", "B1"}
	if r.Axes() == 2 {
		signals = append(signals, "A2", "B2")
	}

	chart := streamlinechart.New(80, 16,
		streamlinechart.WithYRange(-0.2, float64(len(signals)-1)+1.0),
	)
	for _, name := range signals {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(signalColors[name]))
		chart.SetDataSetStyles(name, runes.ThinLineStyle, style)
	}

	return displayModel{
		runner:  r,
		chart:   &chart,
		signals: signals,
	}
}

func (m displayModel) Init() tea.Cmd {
	// Start listening for sample and log updates
	return tea.Batch(
		waitForSample(m.runner),
		waitForLog(m.runner),
	)
}

func (m displayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case sampleMsg:
		s := sim.Sample(msg)
		values := []int{s.Frame.Axis1A, s.Frame.Axis1B, s.Frame.Axis2A, s.Frame.Axis2B}
		for i, name := range m.signals {
			m.chart.PushDataSet(name, m.laneValue(i, values[i]))
		}
		m.chart.DrawAll()
		m.last = s
		m.haveData = true
		return m, waitForSample(m.runner)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.runner)
	}

	return m, nil
}

func (m displayModel) View() string {
	if m.quitting {
		return "Display stopped.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("Quadsim Display"))
	sb.WriteString(fmt.Sprintf(" - %d Hz", m.runner.Hz()))
	if m.width > 0 {
		sb.WriteString(statusStyle.Render(fmt.Sprintf("  [%dx%d]", m.width, m.height)))
	}
	sb.WriteString("\n\n")

	// Chart
	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	// Angle readout and index indicator
	sb.WriteString(m.renderStatus())
	sb.WriteString("\n")

	// Legend
	sb.WriteString(renderLegend(m.signals))
	sb.WriteString("\n")

	// Log box
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width - 4).
		Foreground(lipgloss.Color("250"))

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("Press 'q' to quit")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func (m displayModel) renderStatus() string {
	if !m.haveData {
		return statusStyle.Render("waiting for samples...")
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("Axis1: %8.3f°", m.last.Angle1))
	if m.last.Axes == 2 {
		parts = append(parts, fmt.Sprintf("Axis2: %8.3f°", m.last.Angle2))
	}
	if m.last.Frame.Index == 1 {
		parts = append(parts, indexOnStyle.Render("● IDX"))
	} else {
		parts = append(parts, indexOffStyle.Render("○ IDX"))
	}
	return strings.Join(parts, "   ")
}

func renderLegend(signals []string) string {
	var items []string
	for _, name := range signals {
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(signalColors[name])).Bold(true)
		items = append(items, colorStyle.Render("━━")+" "+name)
	}
	return strings.Join(items, "  ")
}

func (c *DisplayCommand) Execute(args []string) error {
	cfg, err := loadSimConfig(c.Profile, c.Config, sim.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runner := sim.NewRunner(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := runner.Start(ctx); err != nil && err != context.Canceled {
			log.Printf("Runner error: %v", err)
		}
	}()

	p := tea.NewProgram(initialDisplayModel(runner), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}

	return nil
}
