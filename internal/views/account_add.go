package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/thorDeck/internal/models"
	"rhystmorgan/thorDeck/internal/registry"
	"rhystmorgan/thorDeck/internal/utils"
)

type AccountWatchedMsg struct {
	Account *models.Account
}

// AccountAddModel is the watch-new-address form: a name field and an
// address field. Tab moves focus, enter advances and finally submits.
// The address must be a valid hex address and not already watched.
type AccountAddModel struct {
	registry *registry.Registry

	nameInput    textinput.Model
	addressInput textinput.Model
	focusIdx     int

	nameError    string
	addressError string
}

func NewAccountAddModel(reg *registry.Registry) *AccountAddModel {
	name := textinput.New()
	name.Placeholder = "Account name"
	name.CharLimit = 50
	name.Width = 44
	name.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Blue))

	address := textinput.New()
	address.Placeholder = "0x..."
	address.CharLimit = 42
	address.Width = 44
	address.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Blue))

	return &AccountAddModel{
		registry:     reg,
		nameInput:    name,
		addressInput: address,
	}
}

// Reset clears the form for a fresh entry.
func (m *AccountAddModel) Reset() {
	m.nameInput.SetValue("")
	m.addressInput.SetValue("")
	m.nameError = ""
	m.addressError = ""
	m.focusIdx = 0
	m.nameInput.Focus()
	m.addressInput.Blur()
}

func (m AccountAddModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m AccountAddModel) Update(msg tea.Msg) (AccountAddModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, NavigateTo(ViewDeck, nil)

		case "tab", "shift+tab":
			m.focusIdx = 1 - m.focusIdx
			if m.focusIdx == 0 {
				m.addressInput.Blur()
				return m, m.nameInput.Focus()
			}
			m.nameInput.Blur()
			return m, m.addressInput.Focus()

		case "enter":
			if m.focusIdx == 0 {
				m.focusIdx = 1
				m.nameInput.Blur()
				return m, m.addressInput.Focus()
			}
			return m.submit()

		case "ctrl+v":
			if m.focusIdx == 1 {
				if pasted, err := utils.PasteFromClipboard(); err == nil {
					m.addressInput.SetValue(strings.TrimSpace(pasted))
					m.addressError = ""
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.focusIdx == 0 {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.addressInput, cmd = m.addressInput.Update(msg)
	}
	return m, cmd
}

func (m AccountAddModel) submit() (AccountAddModel, tea.Cmd) {
	m.nameError = ""
	m.addressError = ""

	if issues := utils.ValidateAccountName(m.nameInput.Value()); len(issues) > 0 {
		m.nameError = issues[0]
	}

	address := strings.TrimSpace(m.addressInput.Value())
	if err := utils.ValidateVeChainAddress(address); err != nil {
		m.addressError = err.Error()
	} else if m.registry.HasAccount(address) {
		m.addressError = "Address is already watched"
	}

	if m.nameError != "" || m.addressError != "" {
		return m, nil
	}

	account, err := models.NewAccount(m.nameInput.Value(), address)
	if err != nil {
		m.addressError = err.Error()
		return m, nil
	}

	if err := m.registry.AddAccount(account); err != nil {
		return m, ShowError(err)
	}

	return m, tea.Batch(
		func() tea.Msg { return AccountWatchedMsg{Account: account} },
		NavigateTo(ViewDeck, nil),
	)
}

func (m AccountAddModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Red))

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Watch New Address"))
	content.WriteString("\n\n")

	content.WriteString(labelStyle.Render("Name"))
	content.WriteString("\n")
	content.WriteString(m.nameInput.View())
	content.WriteString("\n")
	if m.nameError != "" {
		content.WriteString(errorStyle.Render(m.nameError))
		content.WriteString("\n")
	}
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("Address"))
	content.WriteString("\n")
	content.WriteString(m.addressInput.View())
	content.WriteString("\n")
	if m.addressError != "" {
		content.WriteString(errorStyle.Render(m.addressError))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(helpStyle.Render("Tab switch field • Enter next/save • Ctrl+V paste address • Esc back"))

	return lipgloss.NewStyle().Padding(1).Render(content.String())
}
