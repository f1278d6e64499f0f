package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"rhystmorgan/thorDeck/internal/history"
	"rhystmorgan/thorDeck/internal/registry"
	"rhystmorgan/thorDeck/internal/utils"
)

const (
	historyTableRows  = 10
	historyGraphLimit = 96
)

type HistoryLoadedMsg struct {
	Snapshots []history.Snapshot
	Series    []float64
	Error     error
}

// HistoryPageModel charts the recorded balance snapshots for one
// address: a VET graph over the stored series and a table of the most
// recent readings.
type HistoryPageModel struct {
	address  string
	registry *registry.Registry
	history  *history.Store

	snapshots []history.Snapshot
	series    []float64
	loading   bool
	loadError error

	width  int
	height int
}

func NewHistoryPageModel(address string, reg *registry.Registry) *HistoryPageModel {
	return &HistoryPageModel{
		address:  address,
		registry: reg,
		loading:  true,
	}
}

func (m *HistoryPageModel) SetHistoryStore(store *history.Store) {
	m.history = store
}

func (m *HistoryPageModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m HistoryPageModel) Init() tea.Cmd {
	return m.load()
}

func (m HistoryPageModel) load() tea.Cmd {
	if m.history == nil {
		return func() tea.Msg {
			return HistoryLoadedMsg{Error: fmt.Errorf("history store not available")}
		}
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
		defer cancel()

		snapshots, err := m.history.RecentSnapshots(ctx, m.address, historyTableRows)
		if err != nil {
			return HistoryLoadedMsg{Error: err}
		}

		series, err := m.history.VETSeries(ctx, m.address, historyGraphLimit)
		if err != nil {
			return HistoryLoadedMsg{Error: err}
		}

		return HistoryLoadedMsg{Snapshots: snapshots, Series: series}
	}
}

func (m HistoryPageModel) Update(msg tea.Msg) (HistoryPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m.back()
		case "r", "R":
			m.loading = true
			return m, m.load()
		}

	case HistoryLoadedMsg:
		m.loading = false
		m.loadError = msg.Error
		if msg.Error == nil {
			m.snapshots = msg.Snapshots
			m.series = msg.Series
		}
	}

	return m, nil
}

// back returns to whichever page the address belongs on.
func (m HistoryPageModel) back() (HistoryPageModel, tea.Cmd) {
	if m.registry.HasAccount(m.address) {
		return m, NavigateTo(ViewAccountPage, m.address)
	}
	return m, NavigateTo(ViewAddressPage, m.address)
}

func (m HistoryPageModel) View() string {
	containerStyle := lipgloss.NewStyle().
		Padding(1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Mauve))

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Mauve)).
		Bold(true)

	subtleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Balance History"))
	content.WriteString("\n")
	content.WriteString(subtleStyle.Render(utils.FormatAddress(m.address, 10, 8)))
	content.WriteString("\n\n")

	switch {
	case m.loading:
		content.WriteString(subtleStyle.Render("Loading history..."))
	case m.loadError != nil:
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Red))
		content.WriteString(errorStyle.Render("Failed to load history: " + m.loadError.Error()))
	case len(m.snapshots) == 0:
		content.WriteString(subtleStyle.Render("No snapshots recorded yet. Balances are recorded on every refresh."))
	default:
		content.WriteString(m.renderGraph())
		content.WriteString("\n\n")
		content.WriteString(m.renderTable())
	}

	helpStyle := subtleStyle.Italic(true)
	content.WriteString("\n\n")
	content.WriteString(helpStyle.Render("r: reload • esc: back"))

	return containerStyle.Render(content.String())
}

func (m HistoryPageModel) renderGraph() string {
	if len(m.series) < 2 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Subtext0)).
			Render("Not enough snapshots to chart yet.")
	}

	width := m.width - 16
	if width < 24 {
		width = 24
	}
	if width > 80 {
		width = 80
	}

	return asciigraph.Plot(m.series,
		asciigraph.Height(8),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.Caption("VET"),
	)
}

func (m HistoryPageModel) renderTable() string {
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Bold(true)

	rowStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text))

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-22s %18s %18s", "Taken", "VET", "VTHO")))
	b.WriteString("\n")

	for _, snap := range m.snapshots {
		b.WriteString(rowStyle.Render(fmt.Sprintf("%-22s %18s %18s",
			snap.TakenAt.Local().Format("2006-01-02 15:04:05"),
			utils.FormatAmount(snap.VET, 4),
			utils.FormatAmount(snap.VTHO, 4),
		)))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
