package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/opsdeck/internal/engine"
	"github.com/tonhe/opsdeck/tui/components"
	"github.com/tonhe/opsdeck/tui/styles"
)

// Column width constants (minimum widths).
const (
	colServer   = 16
	colPing     = 8
	colStatus   = 9
	colSparkMin = 8
)

// ServersView is the monitoring table showing every probed target.
type ServersView struct {
	theme    styles.Theme
	sty      *styles.Styles
	statuses []engine.ServerStatus
	width    int
	height   int
}

// NewServersView creates a new ServersView with the given theme.
func NewServersView(theme styles.Theme) ServersView {
	return ServersView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// SetStatuses replaces the rows shown by the table.
func (v *ServersView) SetStatuses(statuses []engine.ServerStatus) {
	v.statuses = statuses
}

// SetSize updates the outer dimensions of the panel.
func (v *ServersView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// Counts returns the number of online targets and the total.
func (v ServersView) Counts() (online, total int) {
	for _, s := range v.statuses {
		if s.Online {
			online++
		}
	}
	return online, len(v.statuses)
}

// View renders the servers panel.
func (v ServersView) View() string {
	return renderPanel(v.sty, "Servers", v.renderTable(), v.width, v.height, false)
}

// columnWidths calculates column widths for the inner panel width. The trend
// column gets all remaining space, up to one cell per history sample.
func (v ServersView) columnWidths() (server, ping, status, spark int) {
	inner := v.width - 2
	ping = colPing
	status = colStatus
	server = colServer
	spark = inner - server - ping - status
	if spark > engine.HistorySize {
		server += spark - engine.HistorySize
		spark = engine.HistorySize
	}
	if spark < colSparkMin {
		spark = 0
		server = inner - ping - status
	}
	if server < 4 {
		server = 4
	}
	return
}

func (v ServersView) renderTable() string {
	if len(v.statuses) == 0 {
		return v.sty.TableCellDim.Render("No targets configured.")
	}
	wServer, wPing, wStatus, wSpark := v.columnWidths()

	head := v.sty.TableHeader
	header := head.Render(padRight("Server", wServer)) +
		head.Render(padLeft("Ping", wPing-1)) + " " +
		head.Render(padRight("Status", wStatus))
	if wSpark > 0 {
		header += head.Render(padRight("Trend", wSpark))
	}

	lines := []string{header}
	for _, s := range v.statuses {
		lines = append(lines, v.renderRow(s, wServer, wPing, wStatus, wSpark))
	}
	return strings.Join(lines, "\n")
}

func (v ServersView) renderRow(s engine.ServerStatus, wServer, wPing, wStatus, wSpark int) string {
	name := v.sty.TableRow.Render(padRight(s.Name, wServer))

	pingStyle := lipgloss.NewStyle().Foreground(components.LatencyColor(v.theme, s.Latency, s.Online))
	ping := pingStyle.Render(padLeft(components.FormatLatency(s.Latency, s.Online), wPing-1)) + " "

	var status string
	switch s.State {
	case engine.StateOnline:
		status = v.sty.StatusUp.Render(padRight("● up", wStatus))
	case engine.StateOffline:
		status = v.sty.StatusDown.Render(padRight("● down", wStatus))
	default:
		status = v.sty.StatusWarn.Render(padRight("○ ...", wStatus))
	}

	row := name + ping + status
	if wSpark > 0 {
		row += v.sty.SparklineStyle.Render(components.HistorySparkline(s.History, engine.OfflineSample, wSpark))
	}
	return row
}
