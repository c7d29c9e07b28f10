// Package tui provides the Bubble Tea live rate view.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/meizfl/evhz2/internal/model"
	"github.com/meizfl/evhz2/internal/rate"
)

// sparklineLen bounds the recent-average history shown per device.
const sparklineLen = 32

// SampleMsg delivers an accepted sample to the view.
type SampleMsg model.Sample

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

type deviceRow struct {
	device  string
	name    string
	hz      int
	average int
	count   uint64
	recent  *rate.Ring
}

// Model implements the live device-rate table.
type Model struct {
	cancel context.CancelFunc
	rows   map[string]*deviceRow
	order  []string
	tbl    table.Model
	width  int
	height int
}

// NewModel constructs a live view. cancel stops the monitor loop when the
// user quits.
func NewModel(cancel context.CancelFunc) *Model {
	columns := []table.Column{
		{Title: "Device", Width: 30},
		{Title: "Latest", Width: 8},
		{Title: "Average", Width: 8},
		{Title: "Samples", Width: 8},
		{Title: "History", Width: sparklineLen},
	}
	styles := table.DefaultStyles()
	styles.Header = headerStyle
	styles.Cell = cellStyle
	styles.Selected = cellStyle
	tbl := table.New(table.WithColumns(columns), table.WithStyles(styles))
	return &Model{
		cancel: cancel,
		rows:   make(map[string]*deviceRow),
		tbl:    tbl,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		height := msg.Height - 4
		if height < 3 {
			height = 3
		}
		m.tbl.SetHeight(height)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
		return m, nil
	case SampleMsg:
		m.applySample(model.Sample(msg))
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) applySample(s model.Sample) {
	row, ok := m.rows[s.Device]
	if !ok {
		row = &deviceRow{
			device: s.Device,
			name:   s.Name,
			recent: rate.NewRing(sparklineLen),
		}
		m.rows[s.Device] = row
		m.order = append(m.order, s.Device)
	}
	row.hz = s.Hz
	row.average = s.Average
	row.count++
	row.recent.Push(s.Hz)
	m.tbl.SetRows(m.tableRows())
}

func (m *Model) tableRows() []table.Row {
	rows := make([]table.Row, 0, len(m.order))
	for _, id := range m.order {
		row := m.rows[id]
		rows = append(rows, table.Row{
			row.name,
			fmt.Sprintf("%dHz", row.hz),
			fmt.Sprintf("%dHz", row.average),
			fmt.Sprintf("%d", row.count),
			sparkline(row.recent.Window()),
		})
	}
	return rows
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	if len(m.order) == 0 {
		body = footerStyle.Render("Waiting for input events...")
	} else {
		body = m.tbl.View()
	}
	return titleStyle.Render("evhz — input device rates") + "\n\n" +
		body + "\n\n" +
		footerStyle.Render("q: quit")
}
