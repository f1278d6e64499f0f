package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/thorDeck/internal/identicon"
	"rhystmorgan/thorDeck/internal/models"
	"rhystmorgan/thorDeck/internal/registry"
	"rhystmorgan/thorDeck/internal/utils"
)

const selectMaxDisplayItems = 8

// AddressSelectModel is a dual-mode address picker. One branch selects
// from the known entries, the other takes a free-text address; a single
// toggle key flips between them and `editing` has no other transitions.
// Confirmed or typed values reach the host through the onChange
// callback, invoked synchronously inside Update.
type AddressSelectModel struct {
	provider registry.EntryProvider
	entries  []models.Entry

	editing  bool
	cursor   int
	input    textinput.Model
	onChange func(value string) tea.Cmd

	visible      bool
	scrollOffset int
}

func NewAddressSelectModel(provider registry.EntryProvider) *AddressSelectModel {
	input := textinput.New()
	input.Placeholder = "0x..."
	input.CharLimit = 42
	input.Width = 44
	input.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Blue))
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Text))

	return &AddressSelectModel{
		provider: provider,
		input:    input,
	}
}

// SetOnChange registers the callback receiving a confirmed entry
// address or, on the edit branch, each typed value verbatim.
func (m *AddressSelectModel) SetOnChange(callback func(value string) tea.Cmd) {
	m.onChange = callback
}

// Show opens the picker with a fresh snapshot of the provider entries.
// Every open starts on the select branch with the cursor at the top.
func (m *AddressSelectModel) Show() {
	m.visible = true
	m.editing = false
	m.cursor = 0
	m.scrollOffset = 0
	m.entries = m.provider.Entries()
	m.input.SetValue("")
	m.input.Blur()
}

func (m *AddressSelectModel) Hide() {
	m.visible = false
}

func (m *AddressSelectModel) IsVisible() bool {
	return m.visible
}

// Editing reports which branch is active. Hosts use it to decide what
// enter means while the picker is open.
func (m *AddressSelectModel) Editing() bool {
	return m.editing
}

func (m *AddressSelectModel) Entries() []models.Entry {
	return m.entries
}

func (m *AddressSelectModel) Update(msg tea.Msg) (*AddressSelectModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.visible {
		return m, nil
	}

	if keyMsg.String() == "tab" {
		return m, m.toggle()
	}

	if m.editing {
		return m.updateEditing(keyMsg)
	}
	return m.updateSelecting(keyMsg)
}

// toggle flips between the select and edit branches. It is the only
// transition of editing; there is no guard and no terminal state.
func (m *AddressSelectModel) toggle() tea.Cmd {
	m.editing = !m.editing
	if m.editing {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

func (m *AddressSelectModel) updateSelecting(msg tea.KeyMsg) (*AddressSelectModel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.scrollToCursor()
		}

	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
			m.scrollToCursor()
		}

	case "enter":
		return m, m.confirm()
	}

	return m, nil
}

// confirm resolves the highlighted row by the address it carries. The
// row value was captured when the snapshot was taken, so a provider
// mutated since Show cannot shift which address is confirmed.
func (m *AddressSelectModel) confirm() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.entries) || m.onChange == nil {
		return nil
	}
	return m.onChange(m.entries[m.cursor].Address)
}

func (m *AddressSelectModel) updateEditing(msg tea.KeyMsg) (*AddressSelectModel, tea.Cmd) {
	before := m.input.Value()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// Forward every change verbatim. Validation is the host's concern.
	if value := m.input.Value(); value != before && m.onChange != nil {
		return m, tea.Batch(cmd, m.onChange(value))
	}
	return m, cmd
}

func (m *AddressSelectModel) scrollToCursor() {
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+selectMaxDisplayItems {
		m.scrollOffset = m.cursor - selectMaxDisplayItems + 1
	}
}

func (m *AddressSelectModel) View() string {
	if !m.visible {
		return ""
	}

	if m.editing {
		return m.renderEditing()
	}
	return m.renderSelecting()
}

func (m *AddressSelectModel) renderSelecting() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Bold(true)

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Select Address") + "\n\n")

	if len(m.entries) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Overlay1))
		content.WriteString(emptyStyle.Render("No saved addresses yet.") + "\n")
	} else {
		end := m.scrollOffset + selectMaxDisplayItems
		if end > len(m.entries) {
			end = len(m.entries)
		}

		if m.scrollOffset > 0 {
			content.WriteString(helpStyle.Render(fmt.Sprintf("  ↑ %d more", m.scrollOffset)) + "\n")
		}

		for i := m.scrollOffset; i < end; i++ {
			content.WriteString(m.renderEntry(m.entries[i], i == m.cursor) + "\n")
		}

		if remaining := len(m.entries) - end; remaining > 0 {
			content.WriteString(helpStyle.Render(fmt.Sprintf("  ↓ %d more", remaining)) + "\n")
		}
	}

	content.WriteString("\n" + helpStyle.Render("↑/↓ navigate • Enter open • Tab type an address • Esc back"))
	return content.String()
}

func (m *AddressSelectModel) renderEntry(entry models.Entry, selected bool) string {
	nameStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text))

	addressStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Overlay1))

	cursor := "  "
	if selected {
		cursor = lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Green)).
			Render("> ")
		nameStyle = nameStyle.
			Foreground(lipgloss.Color(utils.Colours.Green)).
			Background(lipgloss.Color(utils.Colours.Surface0))
	}

	return fmt.Sprintf("%s%s %s %s",
		cursor,
		identicon.Glyph(entry.Address),
		nameStyle.Render(entry.DisplayName()),
		addressStyle.Render(utils.FormatAddress(entry.Address, 6, 4)),
	)
}

func (m *AddressSelectModel) renderEditing() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Bold(true)

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Enter Address") + "\n\n")
	content.WriteString(m.input.View() + "\n")
	content.WriteString("\n" + helpStyle.Render("Enter open • Tab saved addresses • Esc back"))
	return content.String()
}
