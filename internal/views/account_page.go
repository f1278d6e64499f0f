package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/mdp/qrterminal/v3"

	"rhystmorgan/thorDeck/internal/blockchain"
	"rhystmorgan/thorDeck/internal/history"
	"rhystmorgan/thorDeck/internal/models"
	"rhystmorgan/thorDeck/internal/registry"
	"rhystmorgan/thorDeck/internal/utils"
)

const (
	sparklineHeight = 6
	sparklinePoints = 48
	snapshotTimeout = 5 * time.Second
)

type FeedbackMessage struct {
	Type     FeedbackType
	Message  string
	Duration time.Duration
	ShowTime time.Time
}

type FeedbackType string

const (
	FeedbackSuccess FeedbackType = "success"
	FeedbackError   FeedbackType = "error"
	FeedbackWarning FeedbackType = "warning"
	FeedbackInfo    FeedbackType = "info"
)

type BalanceUpdateMsg struct {
	Balance *blockchain.Balance
	Error   error
}

type AutoRefreshMsg struct{}

type CopyAddressMsg struct{}

type SnapshotSavedMsg struct {
	Error error
}

type SeriesLoadedMsg struct {
	Series []float64
	Error  error
}

// AccountPageModel is the full page for one watched account: summary
// card, balance and network cards, balance sparkline, QR code, and the
// copy/refresh actions. Balance refreshes append snapshots to the
// history store so the sparkline grows over time.
type AccountPageModel struct {
	account  *models.Account
	registry *registry.Registry
	chain    *blockchain.Client
	history  *history.Store

	balanceLoading bool
	balanceError   error
	lastRefresh    time.Time
	spinner        spinner.Model

	networkStatus   blockchain.NetworkStatus
	feedbackMessage *FeedbackMessage
	showQR          bool
	series          []float64

	lastRefreshRequest time.Time
	refreshInterval    time.Duration

	width  int
	height int
}

func NewAccountPageModel(account *models.Account, reg *registry.Registry) *AccountPageModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Blue))

	return &AccountPageModel{
		account:         account,
		registry:        reg,
		spinner:         s,
		balanceLoading:  true, // Init fires a refresh immediately
		refreshInterval: 30 * time.Second,
	}
}

func (m *AccountPageModel) SetChainClient(chain *blockchain.Client) {
	m.chain = chain
	if chain != nil {
		m.networkStatus = chain.GetStatus()
	}
}

func (m *AccountPageModel) SetHistoryStore(store *history.Store) {
	m.history = store
}

func (m *AccountPageModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *AccountPageModel) SetRefreshInterval(interval time.Duration) {
	if interval > 0 {
		m.refreshInterval = interval
	}
}

func (m AccountPageModel) Init() tea.Cmd {
	return tea.Batch(
		refreshBalance(m.chain, m.account.Address),
		m.startAutoRefresh(),
		loadSeries(m.history, m.account.Address),
		m.spinner.Tick,
	)
}

func (m AccountPageModel) Update(msg tea.Msg) (AccountPageModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.balanceLoading {
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, NavigateTo(ViewDeck, nil)
		case "r", "R":
			// Debounce so holding the key does not hammer the node.
			if time.Since(m.lastRefreshRequest) > 2*time.Second {
				m.lastRefreshRequest = time.Now()
				m.balanceLoading = true
				m.showFeedback(FeedbackInfo, "Refreshing balance...", 2*time.Second)
				cmds = append(cmds, refreshBalance(m.chain, m.account.Address), m.spinner.Tick)
			} else {
				m.showFeedback(FeedbackWarning, "Please wait before refreshing again", 2*time.Second)
			}
		case "c", "C":
			cmds = append(cmds, copyAddress(m.account.Address))
		case "q", "Q":
			m.showQR = !m.showQR
		case "h", "H":
			return m, NavigateTo(ViewHistoryPage, m.account.Address)
		case "?":
			m.showFeedback(FeedbackInfo, "r: refresh • c: copy • q: QR • h: history • esc: back", 5*time.Second)
		}

	case BalanceUpdateMsg:
		m.balanceLoading = false
		if msg.Error != nil {
			m.balanceError = msg.Error
			m.showFeedback(FeedbackError, fmt.Sprintf("Failed to fetch balance: %s", msg.Error.Error()), 5*time.Second)
		} else if msg.Balance != nil {
			m.balanceError = nil
			m.lastRefresh = time.Now()
			m.account.SetBalance(msg.Balance.VET, msg.Balance.VTHO)
			cmds = append(cmds,
				recordSnapshot(m.history, m.account.Address, msg.Balance),
			)
		}

	case SnapshotSavedMsg:
		if msg.Error != nil {
			m.showFeedback(FeedbackWarning, "Balance history not recorded", 3*time.Second)
		} else {
			cmds = append(cmds, loadSeries(m.history, m.account.Address))
		}

	case SeriesLoadedMsg:
		if msg.Error == nil {
			m.series = msg.Series
		}

	case AutoRefreshMsg:
		if m.account.NeedsBalanceRefresh() && !m.balanceLoading {
			m.balanceLoading = true
			cmds = append(cmds, refreshBalance(m.chain, m.account.Address), m.spinner.Tick)
		}
		cmds = append(cmds, m.startAutoRefresh())

	case CopyAddressMsg:
		m.showFeedback(FeedbackSuccess, "Address copied to clipboard!", 3*time.Second)
	}

	if m.chain != nil {
		m.networkStatus = m.chain.GetStatus()
	}

	if m.feedbackMessage != nil && time.Since(m.feedbackMessage.ShowTime) > m.feedbackMessage.Duration {
		m.feedbackMessage = nil
	}

	return m, tea.Batch(cmds...)
}

func (m AccountPageModel) View() string {
	containerStyle := lipgloss.NewStyle().
		Padding(1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Blue))

	var content strings.Builder

	card := SummaryCard{
		Account: m.account,
		Balance: m.account.CachedBalance,
	}
	content.WriteString(card.Render())
	content.WriteString("\n\n")

	content.WriteString(m.renderActionLine())
	content.WriteString("\n\n")

	content.WriteString(renderBalanceAndNetwork(
		m.renderBalanceCard(),
		renderNetworkStatusCard(m.networkStatus, m.width),
		m.width,
	))

	if len(m.series) > 1 {
		content.WriteString("\n\n")
		content.WriteString(m.renderSparkline())
	}

	if m.showQR {
		content.WriteString("\n\n")
		content.WriteString(renderAddressQR(m.account.Address))
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)
	content.WriteString("\n\n")
	content.WriteString(helpStyle.Render("r: refresh • c: copy address • q: QR • h: history • ?: help • esc: back"))

	if m.feedbackMessage != nil {
		content.WriteString("\n\n")
		content.WriteString(renderFeedbackMessage(m.feedbackMessage))
	}

	return containerStyle.Render(content.String())
}

func (m AccountPageModel) renderActionLine() string {
	addressStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 1)

	buttonStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Green)).
		Background(lipgloss.Color(utils.Colours.Surface1)).
		Padding(0, 1).
		Bold(true)

	refreshText := "[Refresh]"
	if m.balanceLoading {
		refreshText = "[" + m.spinner.View() + "]"
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		addressStyle.Render("Address: "+utils.FormatAddress(m.account.Address, 10, 8)),
		" ",
		buttonStyle.Render("[Copy]"),
		" ",
		buttonStyle.Render(refreshText),
	)
}

func (m AccountPageModel) renderBalanceCard() string {
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Green)).
		Padding(1).
		Width(cardWidth(m.width, 30))

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Green)).
		Bold(true).
		Align(lipgloss.Center)

	balanceStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text))

	ageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Balances"))
	content.WriteString("\n\n")

	switch {
	case m.balanceLoading && m.account.CachedBalance == nil:
		content.WriteString(balanceStyle.Render("VET:  Loading..."))
		content.WriteString("\n")
		content.WriteString(balanceStyle.Render("VTHO: Loading..."))
	case m.balanceError != nil && m.account.CachedBalance == nil:
		content.WriteString(balanceStyle.Render("VET:  Error"))
		content.WriteString("\n")
		content.WriteString(balanceStyle.Render("VTHO: Error"))
	default:
		vet, vtho := m.account.GetDisplayBalance()
		content.WriteString(balanceStyle.Render("VET:  " + vet))
		content.WriteString("\n")
		content.WriteString(balanceStyle.Render("VTHO: " + vtho))
	}

	content.WriteString("\n\n")

	if !m.lastRefresh.IsZero() {
		content.WriteString(ageStyle.Render("Updated: " + utils.FormatDuration(time.Since(m.lastRefresh)) + " ago"))
	} else if m.account.CachedBalance != nil {
		content.WriteString(ageStyle.Render("Updated: " + utils.FormatDuration(m.account.GetBalanceAge()) + " ago"))
	} else {
		content.WriteString(ageStyle.Render("Never updated"))
	}

	return cardStyle.Render(content.String())
}

func (m AccountPageModel) renderSparkline() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Mauve)).
		Bold(true)

	width := m.width - 14
	if width < 20 {
		width = 20
	}
	if width > 72 {
		width = 72
	}

	graph := asciigraph.Plot(m.series,
		asciigraph.Height(sparklineHeight),
		asciigraph.Width(width),
		asciigraph.Precision(2),
	)

	return titleStyle.Render("VET balance") + "\n" + graph
}

func (m *AccountPageModel) showFeedback(feedbackType FeedbackType, message string, duration time.Duration) {
	m.feedbackMessage = &FeedbackMessage{
		Type:     feedbackType,
		Message:  message,
		Duration: duration,
		ShowTime: time.Now(),
	}
}

func (m AccountPageModel) startAutoRefresh() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return AutoRefreshMsg{}
	})
}

// Shared page helpers. The address page renders the same cards for
// addresses that are not watched accounts.

func refreshBalance(chain *blockchain.Client, address string) tea.Cmd {
	if chain == nil {
		return func() tea.Msg {
			return BalanceUpdateMsg{Error: fmt.Errorf("chain client not available")}
		}
	}
	return func() tea.Msg {
		balance, err := chain.RefreshBalance(address)
		return BalanceUpdateMsg{Balance: balance, Error: err}
	}
}

func copyAddress(address string) tea.Cmd {
	return func() tea.Msg {
		if err := utils.CopyToClipboard(address); err != nil {
			return BalanceUpdateMsg{Error: fmt.Errorf("failed to copy address: %w", err)}
		}
		return CopyAddressMsg{}
	}
}

func recordSnapshot(store *history.Store, address string, balance *blockchain.Balance) tea.Cmd {
	if store == nil || balance == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
		defer cancel()
		err := store.AddSnapshot(ctx, address, balance.VET, balance.VTHO, balance.LastUpdated)
		return SnapshotSavedMsg{Error: err}
	}
}

func loadSeries(store *history.Store, address string) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
		defer cancel()
		series, err := store.VETSeries(ctx, address, sparklinePoints)
		return SeriesLoadedMsg{Series: series, Error: err}
	}
}

func renderBalanceAndNetwork(balanceCard, networkCard string, width int) string {
	// Stack vertically on narrow terminals.
	if width < 80 {
		return lipgloss.JoinVertical(lipgloss.Left, balanceCard, "", networkCard)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, balanceCard, "  ", networkCard)
}

func renderNetworkStatusCard(status blockchain.NetworkStatus, width int) string {
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Blue)).
		Padding(1).
		Width(cardWidth(width, 25))

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Bold(true).
		Align(lipgloss.Center)

	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Network"))
	content.WriteString("\n\n")

	statusColor := utils.Colours.Red
	statusText := "● Disconnected"
	if status.Connected {
		statusColor = utils.Colours.Green
		statusText = "● Connected"
	}
	content.WriteString(statusStyle.Foreground(lipgloss.Color(statusColor)).Render(statusText))
	content.WriteString("\n")

	networkText := "Unknown"
	if strings.Contains(status.NodeURL, "mainnet") {
		networkText = "Mainnet"
	} else if strings.Contains(status.NodeURL, "testnet") {
		networkText = "Testnet"
	}
	content.WriteString(statusStyle.Render(networkText))
	content.WriteString("\n")

	if status.BlockHeight > 0 {
		content.WriteString(statusStyle.Render(fmt.Sprintf("Block: %d", status.BlockHeight)))
		content.WriteString("\n")
	}

	if !status.LastChecked.IsZero() {
		ageStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Subtext0)).
			Italic(true)
		content.WriteString("\n")
		content.WriteString(ageStyle.Render("Checked: " + utils.FormatDuration(time.Since(status.LastChecked)) + " ago"))
	}

	return cardStyle.Render(content.String())
}

func renderAddressQR(address string) string {
	var qr strings.Builder
	qrterminal.GenerateWithConfig(address, qrterminal.Config{
		Level:      qrterminal.L,
		Writer:     &qr,
		HalfBlocks: true,
		QuietZone:  1,
	})

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Mauve)).
		Bold(true)

	return titleStyle.Render("Address QR") + "\n" + qr.String()
}

func renderFeedbackMessage(feedback *FeedbackMessage) string {
	if feedback == nil {
		return ""
	}

	var color string
	switch feedback.Type {
	case FeedbackSuccess:
		color = utils.Colours.Green
	case FeedbackError:
		color = utils.Colours.Red
	case FeedbackWarning:
		color = utils.Colours.Yellow
	case FeedbackInfo:
		color = utils.Colours.Blue
	default:
		color = utils.Colours.Text
	}

	feedbackStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 1).
		Bold(true)

	return feedbackStyle.Render(feedback.Message)
}

func cardWidth(terminalWidth, preferred int) int {
	if terminalWidth >= 80 || terminalWidth == 0 {
		return preferred
	}
	width := terminalWidth - 10
	if width < 20 {
		width = 20
	}
	return width
}
