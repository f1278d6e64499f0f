package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/thorDeck/internal/identicon"
	"rhystmorgan/thorDeck/internal/models"
	"rhystmorgan/thorDeck/internal/utils"
)

const explorerAccountURL = "https://explore.vechain.org/accounts/%s"

// SummaryCard renders one address as a card: identity icon, a title
// linked to the VeChain explorer, the raw address byline, balances and
// any child lines appended after. It is a pure render over the data the
// host hands it; a nil account renders as the empty string.
type SummaryCard struct {
	Account  *models.Account
	Balance  *models.CachedBalance
	Contact  bool
	Children []string
}

// Target is the route the card opens to. Contact cards open the address
// page, watched accounts the account page.
func (c SummaryCard) Target() string {
	if c.Account == nil {
		return ""
	}
	if c.Contact {
		return "/address/" + c.Account.Address
	}
	return "/account/" + c.Account.Address
}

func (c SummaryCard) Render() string {
	if c.Account == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Bold(true)

	name := c.Account.Name
	if name == "" {
		name = "Unnamed"
	}

	explorer := fmt.Sprintf(explorerAccountURL, c.Account.Address)
	title := identicon.Glyph(c.Account.Address) + " " + hyperlink(explorer, titleStyle.Render(name))
	byline := identicon.Gradient(c.Account.Address, c.Account.Address)

	lines := []string{title, byline, c.renderBalance()}
	lines = append(lines, c.Children...)

	return strings.Join(lines, "\n")
}

func (c SummaryCard) renderBalance() string {
	balanceStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0))

	if c.Balance == nil {
		return balanceStyle.Render("balance not loaded")
	}

	vet := utils.FormatBalanceWithCommas(c.Balance.VET, "VET", 4)
	if c.Balance.VTHO == nil {
		return balanceStyle.Render(vet)
	}

	vtho := utils.FormatBalanceWithCommas(c.Balance.VTHO, "VTHO", 4)
	return balanceStyle.Render(vet + " • " + vtho)
}

// hyperlink wraps text in an OSC 8 escape so terminals that support it
// make the text clickable: \x1b]8;;URL\x1b\\TEXT\x1b]8;;\x1b\\
func hyperlink(url, text string) string {
	return fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, text)
}
