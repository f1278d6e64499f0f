package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/thorDeck/internal/blockchain"
	"rhystmorgan/thorDeck/internal/models"
	"rhystmorgan/thorDeck/internal/registry"
	"rhystmorgan/thorDeck/internal/utils"
)

const deckRecentLimit = 5

// DeckModel is the landing view: every watched account rendered as a
// summary card, followed by the action rows and a recents footer. The
// cursor runs over cards first, then the actions.
type DeckModel struct {
	registry *registry.Registry
	chain    *blockchain.Client
	cursor   int

	confirmUnwatch bool
}

var deckActions = []struct {
	label string
	state ViewState
}{
	{"Watch New Address", ViewAccountAdd},
	{"Open Address", ViewOpenAddress},
	{"Contacts", ViewContacts},
}

func NewDeckModel(reg *registry.Registry, chain *blockchain.Client) *DeckModel {
	return &DeckModel{
		registry: reg,
		chain:    chain,
	}
}

func (m DeckModel) Init() tea.Cmd {
	return nil
}

func (m DeckModel) Update(msg tea.Msg) (DeckModel, tea.Cmd) {
	accounts := m.registry.Accounts()
	lastRow := len(accounts) + len(deckActions) - 1

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirmUnwatch {
		switch keyMsg.String() {
		case "y", "Y":
			m.confirmUnwatch = false
			if m.cursor < len(accounts) {
				if err := m.registry.RemoveAccount(accounts[m.cursor].ID); err != nil {
					return m, ShowError(err)
				}
				if m.cursor > 0 {
					m.cursor--
				}
			}
		default:
			m.confirmUnwatch = false
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < lastRow {
			m.cursor++
		}
	case "d":
		if m.cursor < len(accounts) {
			m.confirmUnwatch = true
		}
	case "enter", " ":
		return m.open()
	}
	return m, nil
}

// open follows the highlighted row: account cards navigate by their
// card target, action rows by their view state.
func (m DeckModel) open() (DeckModel, tea.Cmd) {
	accounts := m.registry.Accounts()

	if m.cursor < len(accounts) {
		account := accounts[m.cursor]
		card := SummaryCard{Account: &account}
		return m, OpenRoute(card.Target())
	}

	action := m.cursor - len(accounts)
	if action < len(deckActions) {
		return m, NavigateTo(deckActions[action].state, nil)
	}
	return m, nil
}

func (m DeckModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Bold(true).
		Padding(1, 0)

	var content strings.Builder
	content.WriteString(titleStyle.Render("ThorDeck") + "\n\n")

	accounts := m.registry.Accounts()

	if len(accounts) == 0 {
		content.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Subtext0)).
			Render("No watched addresses yet. Watch one to get started.") + "\n\n")
	} else {
		for i := range accounts {
			content.WriteString(m.renderCardRow(&accounts[i], m.cursor == i))
			content.WriteString("\n")
		}
		content.WriteString("\n")
	}

	for i, action := range deckActions {
		content.WriteString(m.renderActionRow(action.label, m.cursor == len(accounts)+i))
		content.WriteString("\n")
	}

	if footer := m.renderRecents(); footer != "" {
		content.WriteString("\n" + footer)
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)

	if m.confirmUnwatch {
		warningStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Yellow)).
			Bold(true)
		content.WriteString("\n" + warningStyle.Render("Stop watching this address?") + " " +
			helpStyle.Render("y confirm • any other key cancels"))
	}

	content.WriteString("\n" + helpStyle.Render("↑/↓ navigate • Enter open • d unwatch • q quit"))

	return content.String()
}

func (m DeckModel) renderCardRow(account *models.Account, selected bool) string {
	card := SummaryCard{
		Account: account,
		Balance: m.cachedBalance(account),
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Surface1)).
		Padding(0, 1)
	if selected {
		cardStyle = cardStyle.BorderForeground(lipgloss.Color(utils.Colours.Green))
	}

	return cardStyle.Render(card.Render())
}

// cachedBalance surfaces whatever the chain cache already holds; the
// deck never triggers a fetch of its own.
func (m DeckModel) cachedBalance(account *models.Account) *models.CachedBalance {
	if account.CachedBalance != nil {
		return account.CachedBalance
	}
	if m.chain == nil {
		return nil
	}
	balance, ok := m.chain.GetCachedBalance(account.Address)
	if !ok {
		return nil
	}
	return &models.CachedBalance{
		VET:         balance.VET,
		VTHO:        balance.VTHO,
		LastUpdated: balance.LastUpdated,
	}
}

func (m DeckModel) renderActionRow(label string, selected bool) string {
	itemStyle := lipgloss.NewStyle().Padding(0, 2)
	cursor := " "
	if selected {
		cursor = ">"
		itemStyle = itemStyle.
			Foreground(lipgloss.Color(utils.Colours.Green)).
			Background(lipgloss.Color(utils.Colours.Surface0))
	}
	return itemStyle.Render(fmt.Sprintf("%s %s", cursor, label))
}

func (m DeckModel) renderRecents() string {
	recents := m.registry.Recents().GetRecentAddresses(deckRecentLimit)
	if len(recents) == 0 {
		return ""
	}

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Mauve)).
		Bold(true)
	rowStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0))

	var b strings.Builder
	b.WriteString(headerStyle.Render("Recently opened") + "\n")
	for _, recent := range recents {
		b.WriteString(rowStyle.Render("  "+utils.FormatAddressWithName(recent.Address, recent.ContactName)) + "\n")
	}
	return b.String()
}
