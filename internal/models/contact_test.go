package models

import (
	"testing"
	"time"
)

func TestNewContactTrimsFields(t *testing.T) {
	contact := NewContact("  Alice  ", " 0x1111111111111111111111111111111111111111 ", "  exchange  ")

	if contact.Name != "Alice" {
		t.Errorf("Expected trimmed name 'Alice', got '%s'", contact.Name)
	}
	if contact.Address != "0x1111111111111111111111111111111111111111" {
		t.Errorf("Expected trimmed address, got '%s'", contact.Address)
	}
	if contact.Notes != "exchange" {
		t.Errorf("Expected trimmed notes 'exchange', got '%s'", contact.Notes)
	}
	if contact.ID == "" {
		t.Error("Expected generated contact ID")
	}
}

func TestContactListFindByAddress(t *testing.T) {
	list := &ContactList{}
	list.Add(NewContact("Alice", "0xAbCd111111111111111111111111111111111111", ""))

	// Lookup is case-insensitive
	found := list.FindByAddress("0xabcd111111111111111111111111111111111111")
	if found == nil {
		t.Fatal("Expected case-insensitive address match")
	}
	if found.Name != "Alice" {
		t.Errorf("Expected 'Alice', got '%s'", found.Name)
	}

	if list.FindByAddress("0x2222222222222222222222222222222222222222") != nil {
		t.Error("Expected nil for unknown address")
	}
}

func TestContactListFindReturnsLiveEntry(t *testing.T) {
	list := &ContactList{}
	list.Add(NewContact("Alice", "0x1111111111111111111111111111111111111111", ""))

	found := list.FindByAddress("0x1111111111111111111111111111111111111111")
	found.Name = "Alicia"

	// FindByAddress hands back a pointer into the list, so edits stick.
	if list.Contacts[0].Name != "Alicia" {
		t.Errorf("Expected in-place edit visible in list, got '%s'", list.Contacts[0].Name)
	}
}

func TestContactUse(t *testing.T) {
	contact := NewContact("Alice", "0x1111111111111111111111111111111111111111", "")
	before := time.Now()

	contact.Use()
	contact.Use()

	if contact.UseCount != 2 {
		t.Errorf("Expected use count 2, got %d", contact.UseCount)
	}
	if contact.LastUsed.Before(before) {
		t.Error("Expected LastUsed bumped by Use")
	}
}

func TestContactToggleFavorite(t *testing.T) {
	contact := NewContact("Alice", "0x1111111111111111111111111111111111111111", "")

	contact.ToggleFavorite()
	if !contact.IsFavorite {
		t.Error("Expected favorite after first toggle")
	}

	contact.ToggleFavorite()
	if contact.IsFavorite {
		t.Error("Expected not favorite after second toggle")
	}
}

func TestContactUpdateKeepsFieldsWhenBlank(t *testing.T) {
	contact := NewContact("Alice", "0x1111111111111111111111111111111111111111", "old note")

	contact.Update("", "", "new note")

	if contact.Name != "Alice" {
		t.Errorf("Expected name kept on blank update, got '%s'", contact.Name)
	}
	if contact.Address != "0x1111111111111111111111111111111111111111" {
		t.Errorf("Expected address kept on blank update, got '%s'", contact.Address)
	}
	if contact.Notes != "new note" {
		t.Errorf("Expected notes replaced, got '%s'", contact.Notes)
	}
}

func TestContactListRemove(t *testing.T) {
	list := &ContactList{}
	contact := NewContact("Alice", "0x1111111111111111111111111111111111111111", "")
	list.Add(contact)

	if err := list.Remove(contact.ID); err != nil {
		t.Fatalf("Failed to remove contact: %v", err)
	}
	if len(list.Contacts) != 0 {
		t.Errorf("Expected empty list, got %d contacts", len(list.Contacts))
	}

	if err := list.Remove("missing"); err == nil {
		t.Error("Expected error removing unknown contact ID, got nil")
	}
}

func TestContactListGetFavorites(t *testing.T) {
	list := &ContactList{}
	starred := NewContact("Starred", "0x1111111111111111111111111111111111111111", "")
	starred.IsFavorite = true
	list.Add(starred)
	list.Add(NewContact("Plain", "0x2222222222222222222222222222222222222222", ""))

	favorites := list.GetFavorites()
	if len(favorites) != 1 {
		t.Fatalf("Expected 1 favorite, got %d", len(favorites))
	}
	if favorites[0].Name != "Starred" {
		t.Errorf("Expected 'Starred', got '%s'", favorites[0].Name)
	}
}

func TestContactListGetMostUsed(t *testing.T) {
	list := &ContactList{}
	quiet := NewContact("Quiet", "0x1111111111111111111111111111111111111111", "")
	busy := NewContact("Busy", "0x2222222222222222222222222222222222222222", "")
	busy.Use()
	busy.Use()
	middling := NewContact("Middling", "0x3333333333333333333333333333333333333333", "")
	middling.Use()
	list.Add(quiet)
	list.Add(busy)
	list.Add(middling)

	ranked := list.GetMostUsed(2)
	if len(ranked) != 2 {
		t.Fatalf("Expected 2 contacts after limit, got %d", len(ranked))
	}
	if ranked[0].Name != "Busy" || ranked[1].Name != "Middling" {
		t.Errorf("Expected Busy then Middling, got '%s' then '%s'", ranked[0].Name, ranked[1].Name)
	}

	// The source list keeps its insertion order
	if list.Contacts[0].Name != "Quiet" {
		t.Errorf("Expected source list untouched, got '%s' first", list.Contacts[0].Name)
	}
}

func TestContactListGetRecentlyUsed(t *testing.T) {
	list := &ContactList{}
	stale := NewContact("Stale", "0x1111111111111111111111111111111111111111", "")
	stale.LastUsed = time.Now().Add(-48 * time.Hour)
	fresh := NewContact("Fresh", "0x2222222222222222222222222222222222222222", "")
	fresh.LastUsed = time.Now()
	list.Add(stale)
	list.Add(fresh)

	recent := list.GetRecentlyUsed(0)
	if len(recent) != 2 {
		t.Fatalf("Expected 2 contacts, got %d", len(recent))
	}
	if recent[0].Name != "Fresh" {
		t.Errorf("Expected most recently used first, got '%s'", recent[0].Name)
	}
}
