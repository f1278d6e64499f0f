package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/thorDeck/internal/identicon"
	"rhystmorgan/thorDeck/internal/models"
	"rhystmorgan/thorDeck/internal/registry"
	"rhystmorgan/thorDeck/internal/utils"
)

type contactsMode int

const (
	contactsModeList contactsMode = iota
	contactsModeCreate
	contactsModeEdit
	contactsModeConfirmDelete
)

type contactSort int

const (
	sortByName contactSort = iota
	sortByRecent
	sortByMostUsed
)

const contactsPageSize = 10

// ContactsModel manages the saved address book: browse, search, sort,
// create, edit, delete and favorite. All writes go through the
// registry so the deck and selectors see changes immediately.
type ContactsModel struct {
	registry *registry.Registry

	mode     contactsMode
	filtered []models.Contact
	cursor   int
	page     int
	sortMode contactSort

	searchInput  textinput.Model
	nameInput    textinput.Model
	addressInput textinput.Model
	notesInput   textinput.Model
	formFocus    int
	searching    bool

	editingID  string
	deletingID string
	formError  string
	status     string

	width  int
	height int
}

func NewContactsModel(reg *registry.Registry) *ContactsModel {
	search := textinput.New()
	search.Placeholder = "Search name or address"
	search.CharLimit = 64
	search.Width = 40

	name := textinput.New()
	name.Placeholder = "Contact name"
	name.CharLimit = 50
	name.Width = 44

	address := textinput.New()
	address.Placeholder = "0x..."
	address.CharLimit = 42
	address.Width = 44

	notes := textinput.New()
	notes.Placeholder = "Notes (optional)"
	notes.CharLimit = 200
	notes.Width = 44

	m := &ContactsModel{
		registry:     reg,
		searchInput:  search,
		nameInput:    name,
		addressInput: address,
		notesInput:   notes,
	}
	m.applyFiltersAndSort()
	return m
}

func (m *ContactsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// StartCreate opens the create form with the address prefilled. The
// address page uses it for save-as-contact.
func (m *ContactsModel) StartCreate(address string) {
	m.enterForm(contactsModeCreate)
	m.addressInput.SetValue(address)
}

func (m *ContactsModel) enterForm(mode contactsMode) {
	m.mode = mode
	m.formFocus = 0
	m.formError = ""
	m.status = ""
	m.nameInput.SetValue("")
	m.addressInput.SetValue("")
	m.notesInput.SetValue("")
	m.nameInput.Focus()
	m.addressInput.Blur()
	m.notesInput.Blur()
}

func (m ContactsModel) Init() tea.Cmd {
	return nil
}

func (m ContactsModel) Update(msg tea.Msg) (ContactsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case contactsModeList:
			return m.updateList(msg)
		case contactsModeCreate, contactsModeEdit:
			return m.updateForm(msg)
		case contactsModeConfirmDelete:
			return m.updateConfirmDelete(msg)
		}
	}
	return m, nil
}

func (m ContactsModel) updateList(msg tea.KeyMsg) (ContactsModel, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.searchInput.Blur()
			m.searchInput.SetValue("")
			m.applyFiltersAndSort()
		case "enter":
			m.searching = false
			m.searchInput.Blur()
		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			m.applyFiltersAndSort()
			return m, cmd
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return m, NavigateTo(ViewDeck, nil)

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.page*contactsPageSize+m.cursor < len(m.filtered)-1 && m.cursor < contactsPageSize-1 {
			m.cursor++
		}
	case "left", "h":
		if m.page > 0 {
			m.page--
			m.cursor = 0
		}
	case "right", "l":
		if (m.page+1)*contactsPageSize < len(m.filtered) {
			m.page++
			m.cursor = 0
		}

	case "/":
		m.searching = true
		return m, m.searchInput.Focus()

	case "o":
		m.sortMode = (m.sortMode + 1) % 3
		m.applyFiltersAndSort()

	case "n":
		m.enterForm(contactsModeCreate)

	case "e":
		if contact := m.selectedContact(); contact != nil {
			id := contact.ID
			m.enterForm(contactsModeEdit)
			m.editingID = id
			m.nameInput.SetValue(contact.Name)
			m.addressInput.SetValue(contact.Address)
			m.notesInput.SetValue(contact.Notes)
		}

	case "d":
		if contact := m.selectedContact(); contact != nil {
			m.mode = contactsModeConfirmDelete
			m.deletingID = contact.ID
		}

	case "f":
		if contact := m.selectedContact(); contact != nil {
			if live := m.registry.Contacts().FindByID(contact.ID); live != nil {
				live.ToggleFavorite()
				if err := m.registry.SaveContacts(); err != nil {
					return m, ShowError(err)
				}
				m.applyFiltersAndSort()
			}
		}

	case "enter":
		if contact := m.selectedContact(); contact != nil {
			return m, NavigateTo(ViewAddressPage, contact.Address)
		}
	}
	return m, nil
}

func (m ContactsModel) updateForm(msg tea.KeyMsg) (ContactsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = contactsModeList
		m.editingID = ""
		return m, nil

	case "tab":
		return m.focusFormField((m.formFocus + 1) % 3)
	case "shift+tab":
		return m.focusFormField((m.formFocus + 2) % 3)

	case "enter":
		if m.formFocus < 2 {
			return m.focusFormField(m.formFocus + 1)
		}
		return m.submitForm()
	}

	var cmd tea.Cmd
	switch m.formFocus {
	case 0:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case 1:
		m.addressInput, cmd = m.addressInput.Update(msg)
	case 2:
		m.notesInput, cmd = m.notesInput.Update(msg)
	}
	return m, cmd
}

func (m ContactsModel) focusFormField(idx int) (ContactsModel, tea.Cmd) {
	m.formFocus = idx
	m.nameInput.Blur()
	m.addressInput.Blur()
	m.notesInput.Blur()
	switch idx {
	case 0:
		return m, m.nameInput.Focus()
	case 1:
		return m, m.addressInput.Focus()
	default:
		return m, m.notesInput.Focus()
	}
}

func (m ContactsModel) submitForm() (ContactsModel, tea.Cmd) {
	name := strings.TrimSpace(m.nameInput.Value())
	address := strings.TrimSpace(m.addressInput.Value())
	notes := m.notesInput.Value()

	if name == "" {
		m.formError = "Contact name cannot be empty"
		return m, nil
	}
	if err := utils.ValidateVeChainAddress(address); err != nil {
		m.formError = err.Error()
		return m, nil
	}

	contacts := m.registry.Contacts()

	if m.mode == contactsModeCreate {
		if existing := contacts.FindByAddress(address); existing != nil {
			m.formError = fmt.Sprintf("Address already saved as %q", existing.Name)
			return m, nil
		}
		contacts.Add(models.NewContact(name, address, notes))
		m.status = fmt.Sprintf("Saved contact %q", name)
	} else {
		contact := contacts.FindByID(m.editingID)
		if contact == nil {
			m.formError = "Contact no longer exists"
			return m, nil
		}
		if existing := contacts.FindByAddress(address); existing != nil && existing.ID != contact.ID {
			m.formError = fmt.Sprintf("Address already saved as %q", existing.Name)
			return m, nil
		}
		contact.Update(name, address, notes)
		m.status = fmt.Sprintf("Updated contact %q", name)
		if err := m.registry.RenameRecent(address, name); err != nil {
			return m, ShowError(err)
		}
	}

	if err := m.registry.SaveContacts(); err != nil {
		return m, ShowError(err)
	}

	m.mode = contactsModeList
	m.editingID = ""
	m.applyFiltersAndSort()
	return m, nil
}

func (m ContactsModel) updateConfirmDelete(msg tea.KeyMsg) (ContactsModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		contacts := m.registry.Contacts()
		if contact := contacts.FindByID(m.deletingID); contact != nil {
			name := contact.Name
			address := contact.Address
			if err := contacts.Remove(m.deletingID); err != nil {
				return m, ShowError(err)
			}
			if err := m.registry.SaveContacts(); err != nil {
				return m, ShowError(err)
			}
			if err := m.registry.ForgetRecent(address); err != nil {
				return m, ShowError(err)
			}
			m.status = fmt.Sprintf("Deleted contact %q", name)
		}
		m.mode = contactsModeList
		m.deletingID = ""
		m.applyFiltersAndSort()
		if m.cursor >= len(m.filtered) && m.cursor > 0 {
			m.cursor--
		}
	case "n", "N", "esc":
		m.mode = contactsModeList
		m.deletingID = ""
	}
	return m, nil
}

func (m *ContactsModel) selectedContact() *models.Contact {
	idx := m.page*contactsPageSize + m.cursor
	if idx < 0 || idx >= len(m.filtered) {
		return nil
	}
	return &m.filtered[idx]
}

// applyFiltersAndSort rebuilds the visible list from the registry.
// Favorites float to the top within every sort order.
func (m *ContactsModel) applyFiltersAndSort() {
	contacts := m.registry.Contacts()

	var all []models.Contact
	switch m.sortMode {
	case sortByRecent:
		all = contacts.GetRecentlyUsed(len(contacts.Contacts))
	case sortByMostUsed:
		all = contacts.GetMostUsed(len(contacts.Contacts))
	default:
		all = contacts.Contacts
	}

	query := strings.ToLower(strings.TrimSpace(m.searchInput.Value()))

	filtered := make([]models.Contact, 0, len(all))
	for _, contact := range all {
		if query == "" ||
			strings.Contains(strings.ToLower(contact.Name), query) ||
			strings.Contains(strings.ToLower(contact.Address), query) {
			filtered = append(filtered, contact)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].IsFavorite != filtered[j].IsFavorite {
			return filtered[i].IsFavorite
		}
		if m.sortMode == sortByName {
			return strings.ToLower(filtered[i].Name) < strings.ToLower(filtered[j].Name)
		}
		return false
	})

	m.filtered = filtered
	if m.page*contactsPageSize >= len(filtered) {
		m.page = 0
	}
	if idx := m.page*contactsPageSize + m.cursor; idx >= len(filtered) {
		m.cursor = 0
	}
}

func (m ContactsModel) View() string {
	switch m.mode {
	case contactsModeCreate, contactsModeEdit:
		return m.viewForm()
	case contactsModeConfirmDelete:
		return m.viewConfirmDelete()
	default:
		return m.viewList()
	}
}

func (m ContactsModel) viewList() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Bold(true)

	subtleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Contacts"))
	content.WriteString("  ")
	content.WriteString(subtleStyle.Render(fmt.Sprintf("(%d, sorted by %s)", len(m.filtered), m.sortLabel())))
	content.WriteString("\n\n")

	if m.searching || m.searchInput.Value() != "" {
		content.WriteString(m.searchInput.View())
		content.WriteString("\n\n")
	}

	if len(m.filtered) == 0 {
		content.WriteString(subtleStyle.Render("No contacts found. Press n to add one."))
		content.WriteString("\n")
	} else {
		start := m.page * contactsPageSize
		end := start + contactsPageSize
		if end > len(m.filtered) {
			end = len(m.filtered)
		}

		for i := start; i < end; i++ {
			content.WriteString(m.renderContactRow(m.filtered[i], i-start == m.cursor))
			content.WriteString("\n")
		}

		if len(m.filtered) > contactsPageSize {
			totalPages := (len(m.filtered) + contactsPageSize - 1) / contactsPageSize
			content.WriteString("\n")
			content.WriteString(subtleStyle.Render(fmt.Sprintf("Page %d/%d", m.page+1, totalPages)))
			content.WriteString("\n")
		}
	}

	if m.status != "" {
		statusStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Green))
		content.WriteString("\n")
		content.WriteString(statusStyle.Render(m.status))
		content.WriteString("\n")
	}

	helpStyle := subtleStyle.Italic(true)
	content.WriteString("\n")
	content.WriteString(helpStyle.Render("↑/↓ move • ←/→ page • Enter open • n new • e edit • d delete • f favorite • / search • o sort • Esc back"))

	return lipgloss.NewStyle().Padding(1).Render(content.String())
}

func (m ContactsModel) renderContactRow(contact models.Contact, selected bool) string {
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

	name := contact.Name
	if name == "" {
		name = "Unnamed"
	}
	favorite := " "
	if contact.IsFavorite {
		favorite = lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Yellow)).
			Render("★")
	}

	return fmt.Sprintf("%s%s %s %s %s",
		cursor,
		favorite,
		identicon.Glyph(contact.Address),
		nameStyle.Render(utils.TruncateString(name, 24)),
		addressStyle.Render(utils.FormatAddress(contact.Address, 6, 4)),
	)
}

func (m ContactsModel) sortLabel() string {
	switch m.sortMode {
	case sortByRecent:
		return "recently used"
	case sortByMostUsed:
		return "most used"
	default:
		return "name"
	}
}

func (m ContactsModel) viewForm() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text))

	title := "New Contact"
	if m.mode == contactsModeEdit {
		title = "Edit Contact"
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render(title))
	content.WriteString("\n\n")

	fields := []struct {
		label string
		input textinput.Model
	}{
		{"Name", m.nameInput},
		{"Address", m.addressInput},
		{"Notes", m.notesInput},
	}
	for i, field := range fields {
		content.WriteString(labelStyle.Render(field.label))
		content.WriteString("\n")
		content.WriteString(field.input.View())
		content.WriteString("\n")
		if i < len(fields)-1 {
			content.WriteString("\n")
		}
	}

	if m.formError != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Red))
		content.WriteString("\n")
		content.WriteString(errorStyle.Render(m.formError))
		content.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)
	content.WriteString("\n")
	content.WriteString(helpStyle.Render("Tab switch field • Enter next/save • Esc cancel"))

	return lipgloss.NewStyle().Padding(1).Render(content.String())
}

func (m ContactsModel) viewConfirmDelete() string {
	contact := m.registry.Contacts().FindByID(m.deletingID)
	name := "this contact"
	if contact != nil && contact.Name != "" {
		name = fmt.Sprintf("%q", contact.Name)
	}

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Yellow)).
		Bold(true)
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)

	content := warningStyle.Render(fmt.Sprintf("Delete %s?", name)) +
		"\n\n" + helpStyle.Render("y confirm • n cancel")

	return lipgloss.NewStyle().Padding(1).Render(content)
}
