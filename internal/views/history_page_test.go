package views

import (
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"rhystmorgan/thorDeck/internal/history"
	"rhystmorgan/thorDeck/internal/models"
)

var errTest = errors.New("history unavailable")

func vetWei(whole int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(whole), big.NewInt(1e18))
}

func TestHistoryPageRendersSnapshots(t *testing.T) {
	reg := viewTestRegistry(t)
	page := NewHistoryPageModel("0x1111111111111111111111111111111111111111", reg)
	page.SetSize(100, 40)

	taken := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	model, _ := page.Update(HistoryLoadedMsg{
		Snapshots: []history.Snapshot{
			{Address: "0x1111111111111111111111111111111111111111", VET: vetWei(120), VTHO: vetWei(3), TakenAt: taken},
			{Address: "0x1111111111111111111111111111111111111111", VET: vetWei(100), VTHO: vetWei(2), TakenAt: taken.Add(-time.Hour)},
		},
		Series: []float64{100, 120},
	})

	out := model.View()
	for _, want := range []string{"Balance History", "Taken", "120.0000", "100.0000", "VET"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected history view to contain %q, got:\n%s", want, out)
		}
	}
}

func TestHistoryPageEmptyState(t *testing.T) {
	reg := viewTestRegistry(t)
	page := NewHistoryPageModel("0x1111111111111111111111111111111111111111", reg)

	model, _ := page.Update(HistoryLoadedMsg{})
	if out := model.View(); !strings.Contains(out, "No snapshots recorded yet") {
		t.Errorf("Expected empty state, got:\n%s", out)
	}
}

func TestHistoryPageLoadError(t *testing.T) {
	reg := viewTestRegistry(t)
	page := NewHistoryPageModel("0x1111111111111111111111111111111111111111", reg)

	model, _ := page.Update(HistoryLoadedMsg{Error: errTest})
	if out := model.View(); !strings.Contains(out, "Failed to load history") {
		t.Errorf("Expected error state, got:\n%s", out)
	}
}

func TestHistoryPageBackRouting(t *testing.T) {
	reg := viewTestRegistry(t)
	address := "0x1111111111111111111111111111111111111111"

	// Unknown address goes back to the address page.
	page := NewHistoryPageModel(address, reg)
	_, cmd := page.Update(keyPress(tea.KeyEsc))
	nav := findNavigate(t, drainCmd(cmd))
	if nav.State != ViewAddressPage {
		t.Errorf("Expected ViewAddressPage for unknown address, got %v", nav.State)
	}

	// A watched address goes back to its account page.
	account, err := models.NewAccount("Treasury", address)
	if err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}
	if err := reg.AddAccount(account); err != nil {
		t.Fatalf("Failed to add account: %v", err)
	}

	_, cmd = page.Update(keyPress(tea.KeyEsc))
	nav = findNavigate(t, drainCmd(cmd))
	if nav.State != ViewAccountPage {
		t.Errorf("Expected ViewAccountPage for watched address, got %v", nav.State)
	}
}
