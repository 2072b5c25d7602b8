// Package ui renders live broadcast payloads as a terminal dashboard. It
// is an ordinary hub subscriber; the engine neither knows nor waits for it.
package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/hostpulse/hostpulse/internal/hub"
	"github.com/hostpulse/hostpulse/internal/model"
)

// Model renders the latest payload received from the hub.
type Model struct {
	latest    model.Payload
	seen      bool
	stream    <-chan model.Payload
	subID     uuid.UUID
	hub       *hub.Hub
	ctxCancel context.CancelFunc
	width     int
	height    int
}

func New(h *hub.Hub, cancel context.CancelFunc) *Model {
	id, stream := h.Subscribe()
	return &Model{
		stream:    stream,
		subID:     id,
		hub:       h,
		ctxCancel: cancel,
		width:     120,
		height:    40,
	}
}

type tickMsg struct{}

func tickCmd() tea.Cmd { return tea.Tick(time.Second/5, func(time.Time) tea.Msg { return tickMsg{} }) }

func (m *Model) Init() tea.Cmd { return tickCmd() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.hub.Unsubscribe(m.subID)
			m.ctxCancel()
			return m, tea.Quit
		}
	case tickMsg:
		// Drain the buffer so a burst of ticks collapses to the newest.
		for drained := false; !drained; {
			select {
			case payload, ok := <-m.stream:
				if ok {
					m.latest = payload
					m.seen = true
				} else {
					drained = true
				}
			default:
				drained = true
			}
		}
		return m, tickCmd()
	}
	return m, nil
}

// Styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	criticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	gaugeFill     = "█"
	gaugeEmpty    = "░"
	cardStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1).
			MarginRight(1)
)

func (m *Model) View() string {
	if !m.seen {
		return subtleStyle.Render("waiting for first sample...")
	}
	p := m.latest
	s := p.Snapshot

	header := titleStyle.Render("hostpulse") + "  " +
		subtleStyle.Render(s.Timestamp.Format("Mon Jan 2 15:04:05 MST 2006"))

	cpuCard := card("CPU",
		fmt.Sprintf("%s  %d cores @ %.0f MHz",
			gaugeBar(s.CPU.Percent, 28), s.CPU.Count, s.CPU.FreqMHz))

	memCard := card("Memory",
		fmt.Sprintf("%s  %.1f/%.1f GiB | Swap %3.0f%%",
			gaugeBar(s.Memory.Percent, 28),
			bytesToGiB(s.Memory.Used),
			bytesToGiB(s.Memory.Total),
			s.Swap.Percent))

	diskCard := card("Disk",
		fmt.Sprintf("%s  %.1f/%.1f GiB",
			gaugeBar(s.Disk.Percent, 20),
			bytesToGiB(s.Disk.Used),
			bytesToGiB(s.Disk.Total)))

	netCard := card("Network",
		fmt.Sprintf("TX %.2f GiB   RX %.2f GiB",
			bytesToGiB(s.Network.BytesSent), bytesToGiB(s.Network.BytesRecv)))

	gpuCard := ""
	if len(s.GPUs) > 0 {
		lines := make([]string, 0, len(s.GPUs))
		for _, g := range s.GPUs {
			lines = append(lines,
				fmt.Sprintf("%d %s %4.0f%% mem:%4.0f/%-4.0fMiB %2.0f°C",
					g.ID, truncate(g.Name, 10), g.Utilization,
					g.MemoryUsedMB, g.MemoryTotalMB, g.TemperatureC))
		}
		gpuCard = card("GPU", strings.Join(lines, "\n"))
	}

	battCard := ""
	if s.Battery != nil {
		state := "discharging"
		if s.Battery.PowerPlugged {
			state = "plugged"
		}
		battCard = card("Battery", fmt.Sprintf("%.0f%% (%s)", s.Battery.Percent, state))
	}

	columns := []string{cpuCard, memCard, diskCard, netCard}
	if gpuCard != "" {
		columns = append(columns, gpuCard)
	}
	if battCard != "" {
		columns = append(columns, battCard)
	}

	line1 := lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	line2 := lipgloss.JoinHorizontal(lipgloss.Top,
		m.alertsCard(p.Alerts), m.forecastCard(p.Forecast), m.tempsCard(s), m.topCard(s.CPU.Top))

	return lipgloss.JoinVertical(lipgloss.Left, header, line1, line2)
}

func (m *Model) alertsCard(alerts []model.Alert) string {
	if len(alerts) == 0 {
		return card("Alerts", subtleStyle.Render("none"))
	}
	lines := make([]string, 0, len(alerts))
	for _, a := range alerts {
		style := warnStyle
		if a.Severity == model.SeverityCritical {
			style = criticalStyle
		}
		lines = append(lines, style.Render(fmt.Sprintf("[%s] %s", a.Severity, a.Message)))
	}
	return card("Alerts", strings.Join(lines, "\n"))
}

func (m *Model) forecastCard(f model.Forecast) string {
	if len(f.Values) == 0 {
		return card("CPU Forecast", subtleStyle.Render("warming up"))
	}
	parts := make([]string, len(f.Values))
	for i, v := range f.Values {
		parts[i] = fmt.Sprintf("%.0f", v)
	}
	age := subtleStyle.Render(fmt.Sprintf("fit %s ago", time.Since(f.ComputedAt).Round(time.Second)))
	return card("CPU Forecast", strings.Join(parts, " ")+"%\n"+age)
}

func (m *Model) tempsCard(s model.Snapshot) string {
	if len(s.Temperatures) == 0 {
		return ""
	}
	groups := make([]string, 0, len(s.Temperatures))
	for name := range s.Temperatures {
		groups = append(groups, name)
	}
	sort.Strings(groups)
	lines := make([]string, 0, len(groups))
	for _, name := range groups {
		for _, r := range s.Temperatures[name] {
			if len(lines) >= 8 {
				return card("Temperatures", strings.Join(lines, "\n"))
			}
			lines = append(lines, fmt.Sprintf("%-20s %5.1f°C", truncate(r.Label, 20), r.Current))
		}
	}
	return card("Temperatures", strings.Join(lines, "\n"))
}

func (m *Model) topCard(top []model.ProcessUsage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-18s %-7s %-6s\n", "name", "pid", "cpu")
	for _, p := range top {
		fmt.Fprintf(&b, "%-18s %-7d %5.1f%%\n", truncate(p.Name, 18), p.PID, p.CPUPercent)
	}
	return card("Top CPU (normalized)", strings.TrimRight(b.String(), "\n"))
}

// Helpers
func gaugeBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int((pct / 100) * float64(width))
	if filled > width {
		filled = width
	}
	return fmt.Sprintf("[%s%s] %5.1f%%",
		strings.Repeat(gaugeFill, filled),
		strings.Repeat(gaugeEmpty, width-filled),
		pct)
}

func card(title, body string) string {
	return cardStyle.Render(labelStyle.Render(title) + "\n" + body)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func bytesToGiB(b uint64) float64 { return float64(b) / (1024 * 1024 * 1024) }

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(h *hub.Hub, cancel context.CancelFunc) error {
	prog := tea.NewProgram(New(h, cancel), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
