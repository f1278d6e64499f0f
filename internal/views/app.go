package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"rhystmorgan/thorDeck/internal/blockchain"
	"rhystmorgan/thorDeck/internal/config"
	"rhystmorgan/thorDeck/internal/history"
	"rhystmorgan/thorDeck/internal/registry"
	"rhystmorgan/thorDeck/internal/utils"
)

type ViewState int

const (
	ViewDeck ViewState = iota
	ViewAccountPage
	ViewAddressPage
	ViewHistoryPage
	ViewOpenAddress
	ViewAccountAdd
	ViewContacts
)

type AppModel struct {
	state  ViewState
	width  int
	height int

	config   *config.Config
	logger   *log.Logger
	registry *registry.Registry
	chain    *blockchain.Client
	history  *history.Store

	deck        *DeckModel
	accountPage *AccountPageModel
	addressPage *AddressPageModel
	historyPage *HistoryPageModel
	openAddress *OpenAddressModel
	accountAdd  *AccountAddModel
	contacts    *ContactsModel

	err error
}

type NavigateMsg struct {
	State ViewState
	Data  interface{}
}

type ErrorMsg struct {
	Err error
}

// NewAppModel wires the shell over dependencies constructed in main.
// Views reach the registry, chain client and history store through the
// shell; none of them open their own resources.
func NewAppModel(cfg *config.Config, logger *log.Logger, reg *registry.Registry, chain *blockchain.Client, hist *history.Store) *AppModel {
	app := &AppModel{
		state:    ViewDeck,
		config:   cfg,
		logger:   logger,
		registry: reg,
		chain:    chain,
		history:  hist,
	}

	app.deck = NewDeckModel(reg, chain)

	return app
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			// Only the deck treats q as quit; every other view has
			// text entry or its own use for the key.
			if m.state == ViewDeck {
				return m, tea.Quit
			}
		}

	case NavigateMsg:
		return m.navigateTo(msg.State, msg.Data)

	case ErrorMsg:
		m.err = msg.Err
		m.logger.Error("view error", "err", msg.Err)
		return m, nil
	}

	switch m.state {
	case ViewDeck:
		if m.deck != nil {
			*m.deck, cmd = m.deck.Update(msg)
		}
	case ViewAccountPage:
		if m.accountPage != nil {
			*m.accountPage, cmd = m.accountPage.Update(msg)
		}
	case ViewAddressPage:
		if m.addressPage != nil {
			*m.addressPage, cmd = m.addressPage.Update(msg)
		}
	case ViewHistoryPage:
		if m.historyPage != nil {
			*m.historyPage, cmd = m.historyPage.Update(msg)
		}
	case ViewOpenAddress:
		if m.openAddress != nil {
			*m.openAddress, cmd = m.openAddress.Update(msg)
		}
	case ViewAccountAdd:
		if m.accountAdd != nil {
			*m.accountAdd, cmd = m.accountAdd.Update(msg)
		}
	case ViewContacts:
		if m.contacts != nil {
			*m.contacts, cmd = m.contacts.Update(msg)
		}
	}

	return m, cmd
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content string

	switch m.state {
	case ViewDeck:
		if m.deck != nil {
			content = m.deck.View()
		}
	case ViewAccountPage:
		if m.accountPage != nil {
			content = m.accountPage.View()
		}
	case ViewAddressPage:
		if m.addressPage != nil {
			content = m.addressPage.View()
		}
	case ViewHistoryPage:
		if m.historyPage != nil {
			content = m.historyPage.View()
		}
	case ViewOpenAddress:
		if m.openAddress != nil {
			content = m.openAddress.View()
		}
	case ViewAccountAdd:
		if m.accountAdd != nil {
			content = m.accountAdd.View()
		}
	case ViewContacts:
		if m.contacts != nil {
			content = m.contacts.View()
		}
	default:
		content = "Unknown view"
	}

	if m.err != nil {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Red)).
			Bold(true).
			Padding(1)
		content += "\n" + errorStyle.Render(fmt.Sprintf("Error: %s", m.err.Error()))
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m AppModel) navigateTo(state ViewState, data interface{}) (tea.Model, tea.Cmd) {
	m.state = state
	m.err = nil
	m.logger.Debug("navigate", "view", m.viewName(state))

	var cmd tea.Cmd

	switch state {
	case ViewDeck:
		if m.deck == nil {
			m.deck = NewDeckModel(m.registry, m.chain)
		}

	case ViewAccountPage:
		address, _ := data.(string)
		account := m.registry.AccountByAddress(address)
		if account == nil {
			// Opened an address that was never watched; the address
			// page is the right home for it.
			return m.navigateTo(ViewAddressPage, address)
		}
		m.accountPage = NewAccountPageModel(account, m.registry)
		m.accountPage.SetChainClient(m.chain)
		m.accountPage.SetHistoryStore(m.history)
		if m.config != nil {
			m.accountPage.SetRefreshInterval(m.config.RefreshInterval)
		}
		m.accountPage.SetSize(m.width, m.height)
		cmd = m.accountPage.Init()

	case ViewAddressPage:
		address, _ := data.(string)
		m.addressPage = NewAddressPageModel(address, m.registry)
		m.addressPage.SetChainClient(m.chain)
		m.addressPage.SetHistoryStore(m.history)
		m.addressPage.SetSize(m.width, m.height)
		cmd = m.addressPage.Init()

	case ViewHistoryPage:
		address, _ := data.(string)
		m.historyPage = NewHistoryPageModel(address, m.registry)
		m.historyPage.SetHistoryStore(m.history)
		m.historyPage.SetSize(m.width, m.height)
		cmd = m.historyPage.Init()

	case ViewOpenAddress:
		m.openAddress = NewOpenAddressModel(m.registry)
		m.openAddress.Show()

	case ViewAccountAdd:
		if m.accountAdd == nil {
			m.accountAdd = NewAccountAddModel(m.registry)
		}
		m.accountAdd.Reset()

	case ViewContacts:
		if m.contacts == nil {
			m.contacts = NewContactsModel(m.registry)
		}
		m.contacts.SetSize(m.width, m.height)
		if address, ok := data.(string); ok && address != "" {
			m.contacts.StartCreate(address)
		}
	}

	return m, cmd
}

func (m *AppModel) viewName(state ViewState) string {
	switch state {
	case ViewDeck:
		return "deck"
	case ViewAccountPage:
		return "account_page"
	case ViewAddressPage:
		return "address_page"
	case ViewHistoryPage:
		return "history_page"
	case ViewOpenAddress:
		return "open_address"
	case ViewAccountAdd:
		return "account_add"
	case ViewContacts:
		return "contacts"
	default:
		return "unknown"
	}
}

func NavigateTo(state ViewState, data interface{}) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{State: state, Data: data}
	}
}

// OpenRoute turns a SummaryCard target into a navigation command.
// Unknown routes fall back to the deck.
func OpenRoute(target string) tea.Cmd {
	switch {
	case strings.HasPrefix(target, "/account/"):
		return NavigateTo(ViewAccountPage, strings.TrimPrefix(target, "/account/"))
	case strings.HasPrefix(target, "/address/"):
		return NavigateTo(ViewAddressPage, strings.TrimPrefix(target, "/address/"))
	default:
		return NavigateTo(ViewDeck, nil)
	}
}

func ShowError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}
