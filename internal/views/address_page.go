package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/thorDeck/internal/blockchain"
	"rhystmorgan/thorDeck/internal/history"
	"rhystmorgan/thorDeck/internal/models"
	"rhystmorgan/thorDeck/internal/registry"
	"rhystmorgan/thorDeck/internal/utils"
)

type RecentTouchedMsg struct{}

// AddressPageModel is the page for an address that is not a watched
// account: a saved contact or a free-typed address. It shows the
// contact-mode summary card, fetches the balance, and offers saving
// unknown addresses as contacts. Opening the page records the address
// in the recents list.
type AddressPageModel struct {
	address  string
	registry *registry.Registry
	chain    *blockchain.Client
	history  *history.Store

	contact *models.Contact
	balance *models.CachedBalance

	balanceLoading bool
	balanceError   error
	spinner        spinner.Model

	networkStatus   blockchain.NetworkStatus
	feedbackMessage *FeedbackMessage
	showQR          bool

	width  int
	height int
}

func NewAddressPageModel(address string, reg *registry.Registry) *AddressPageModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Blue))

	return &AddressPageModel{
		address:        address,
		registry:       reg,
		contact:        reg.Contacts().FindByAddress(address),
		spinner:        s,
		balanceLoading: true,
	}
}

func (m *AddressPageModel) SetChainClient(chain *blockchain.Client) {
	m.chain = chain
	if chain != nil {
		m.networkStatus = chain.GetStatus()
	}
}

func (m *AddressPageModel) SetHistoryStore(store *history.Store) {
	m.history = store
}

func (m *AddressPageModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m AddressPageModel) Init() tea.Cmd {
	return tea.Batch(
		refreshBalance(m.chain, m.address),
		m.touchRecent(),
		m.spinner.Tick,
	)
}

// touchRecent records the opened address; a contact's use counters
// move with it.
func (m AddressPageModel) touchRecent() tea.Cmd {
	return func() tea.Msg {
		contactName := ""
		if m.contact != nil {
			m.contact.Use()
			contactName = m.contact.Name
			if err := m.registry.SaveContacts(); err != nil {
				return ErrorMsg{Err: err}
			}
		}
		if err := m.registry.TouchRecent(m.address, contactName); err != nil {
			return ErrorMsg{Err: err}
		}
		return RecentTouchedMsg{}
	}
}

func (m AddressPageModel) Update(msg tea.Msg) (AddressPageModel, tea.Cmd) {
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
			if !m.balanceLoading {
				m.balanceLoading = true
				cmds = append(cmds, refreshBalance(m.chain, m.address), m.spinner.Tick)
			}
		case "c", "C":
			cmds = append(cmds, copyAddress(m.address))
		case "q", "Q":
			m.showQR = !m.showQR
		case "h", "H":
			return m, NavigateTo(ViewHistoryPage, m.address)
		case "s", "S":
			if m.contact == nil {
				// Hand off to the contacts view with the address
				// prefilled for naming.
				return m, NavigateTo(ViewContacts, m.address)
			}
		}

	case BalanceUpdateMsg:
		m.balanceLoading = false
		if msg.Error != nil {
			m.balanceError = msg.Error
			m.showFeedback(FeedbackError, fmt.Sprintf("Failed to fetch balance: %s", msg.Error.Error()), 5*time.Second)
		} else if msg.Balance != nil {
			m.balanceError = nil
			m.balance = &models.CachedBalance{
				VET:         msg.Balance.VET,
				VTHO:        msg.Balance.VTHO,
				LastUpdated: msg.Balance.LastUpdated,
			}
			cmds = append(cmds, recordSnapshot(m.history, m.address, msg.Balance))
		}

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

func (m AddressPageModel) View() string {
	containerStyle := lipgloss.NewStyle().
		Padding(1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Mauve))

	var content strings.Builder

	card := SummaryCard{
		Account: m.cardAccount(),
		Balance: m.balance,
		Contact: true,
	}
	content.WriteString(card.Render())
	content.WriteString("\n\n")

	content.WriteString(m.renderStatusLine())
	content.WriteString("\n\n")

	content.WriteString(renderNetworkStatusCard(m.networkStatus, m.width))

	if m.showQR {
		content.WriteString("\n\n")
		content.WriteString(renderAddressQR(m.address))
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)

	help := "r: refresh • c: copy • q: QR • h: history • esc: back"
	if m.contact == nil {
		help = "s: save as contact • " + help
	}
	content.WriteString("\n\n")
	content.WriteString(helpStyle.Render(help))

	if m.feedbackMessage != nil {
		content.WriteString("\n\n")
		content.WriteString(renderFeedbackMessage(m.feedbackMessage))
	}

	return containerStyle.Render(content.String())
}

// cardAccount shapes the page data into the record the summary card
// renders. Unknown addresses carry no name and fall back to "Unnamed".
func (m AddressPageModel) cardAccount() *models.Account {
	account := &models.Account{Address: m.address}
	if m.contact != nil {
		account.Name = m.contact.Name
	}
	return account
}

func (m AddressPageModel) renderStatusLine() string {
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0))

	if m.balanceLoading {
		return labelStyle.Render(m.spinner.View() + " fetching balance...")
	}

	if m.contact != nil {
		label := "Saved contact"
		if m.contact.IsFavorite {
			label = "★ Favorite contact"
		}
		return labelStyle.Foreground(lipgloss.Color(utils.Colours.Teal)).Render(label)
	}
	return labelStyle.Render("Not saved. Press s to save as a contact.")
}

func (m *AddressPageModel) showFeedback(feedbackType FeedbackType, message string, duration time.Duration) {
	m.feedbackMessage = &FeedbackMessage{
		Type:     feedbackType,
		Message:  message,
		Duration: duration,
		ShowTime: time.Now(),
	}
}
