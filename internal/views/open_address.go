package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/thorDeck/internal/models"
	"rhystmorgan/thorDeck/internal/registry"
	"rhystmorgan/thorDeck/internal/utils"
)

type AddressTypedMsg struct {
	Value string
}

type AddressChosenMsg struct {
	Address string
}

// OpenAddressModel hosts the dual-mode address picker. A confirmed
// selection opens immediately; typed input is kept until enter and
// validated before opening. Watched addresses open as account pages,
// everything else as address pages.
type OpenAddressModel struct {
	registry *registry.Registry
	picker   *AddressSelectModel

	typed           string
	validationError string
}

func NewOpenAddressModel(reg *registry.Registry) *OpenAddressModel {
	m := &OpenAddressModel{registry: reg}

	picker := NewAddressSelectModel(reg)
	picker.SetOnChange(func(value string) tea.Cmd {
		if picker.Editing() {
			return func() tea.Msg { return AddressTypedMsg{Value: value} }
		}
		return func() tea.Msg { return AddressChosenMsg{Address: value} }
	})
	m.picker = picker

	return m
}

func (m *OpenAddressModel) Show() {
	m.typed = ""
	m.validationError = ""
	m.picker.Show()
}

func (m OpenAddressModel) Init() tea.Cmd {
	return nil
}

func (m OpenAddressModel) Update(msg tea.Msg) (OpenAddressModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.picker.Hide()
			return m, NavigateTo(ViewDeck, nil)
		case "enter":
			// The edit branch confirms on enter; the picker itself
			// only confirms select-branch rows.
			if m.picker.Editing() {
				return m.confirmTyped()
			}
		}

	case AddressTypedMsg:
		m.typed = msg.Value
		m.validationError = ""
		return m, nil

	case AddressChosenMsg:
		return m, m.open(msg.Address)
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

// confirmTyped validates the free-typed address before opening it.
// Picked entries skip this; they came from the registry.
func (m OpenAddressModel) confirmTyped() (OpenAddressModel, tea.Cmd) {
	if err := utils.ValidateVeChainAddress(m.typed); err != nil {
		m.validationError = err.Error()
		return m, nil
	}
	return m, m.open(m.typed)
}

func (m OpenAddressModel) open(address string) tea.Cmd {
	m.picker.Hide()

	card := SummaryCard{
		Account: &models.Account{Address: address},
		Contact: !m.registry.HasAccount(address),
	}
	return OpenRoute(card.Target())
}

func (m OpenAddressModel) View() string {
	content := m.picker.View()

	if m.validationError != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Red))
		content += "\n\n" + errorStyle.Render(m.validationError)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
