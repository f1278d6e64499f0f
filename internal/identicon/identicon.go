// Package identicon derives stable visual identities for addresses.
// Every address maps to a block glyph and a colour gradient; the same
// address always produces the same output, regardless of hex casing.
package identicon

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/gamut"
	"golang.org/x/crypto/sha3"

	"rhystmorgan/thorDeck/internal/utils"
)

const glyphCells = 3

var blocks = []rune{'█', '▓', '▒', '░', '▀', '▄', '▌', '▐', '▚', '▞'}

// Glyph returns a small coloured block icon for the address.
func Glyph(address string) string {
	digest := digestOf(address)
	first, second := colourPair(digest)

	var b strings.Builder
	for i := 0; i < glyphCells; i++ {
		block := blocks[int(digest[2+i])%len(blocks)]
		colour := first
		if digest[5+i]%2 == 1 {
			colour = second
		}
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(colour)).Render(string(block)))
	}
	return b.String()
}

// Gradient renders the given text blended between the address's two
// identity colours. Bylines pass the address itself as the text.
func Gradient(address, text string) string {
	digest := digestOf(address)
	first, second := colourPair(digest)

	steps := len(text)
	if steps < 2 {
		steps = 2
	}
	blends := gamut.Blends(gamut.Hex(first), gamut.Hex(second), steps)

	var b strings.Builder
	for i, r := range text {
		col, _ := colorful.MakeColor(blends[i%len(blends)])
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(col.Hex())).Render(string(r)))
	}
	return b.String()
}

func digestOf(address string) [32]byte {
	return sha3.Sum256([]byte(strings.ToLower(strings.TrimSpace(address))))
}

// colourPair picks two distinct palette accents from the digest.
func colourPair(digest [32]byte) (string, string) {
	accents := utils.Colours.Accents()

	first := accents[int(digest[0])%len(accents)]
	second := accents[int(digest[1])%len(accents)]
	if first == second {
		second = accents[(int(digest[1])+7)%len(accents)]
	}

	return first, second
}
