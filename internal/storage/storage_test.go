package storage

import (
	"testing"

	"rhystmorgan/thorDeck/internal/models"
)

func testStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := NewStorageAt(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	return s
}

func TestAccountRoundTrip(t *testing.T) {
	s := testStorage(t)

	first, err := models.NewAccount("First", "0x1111111111111111111111111111111111111111")
	if err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}
	second, err := models.NewAccount("", "0x2222222222222222222222222222222222222222")
	if err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}

	if err := s.SaveAccount(first); err != nil {
		t.Fatalf("Failed to save account: %v", err)
	}
	if err := s.SaveAccount(second); err != nil {
		t.Fatalf("Failed to save account: %v", err)
	}

	accounts, err := s.ListAccounts()
	if err != nil {
		t.Fatalf("Failed to list accounts: %v", err)
	}

	if len(accounts) != 2 {
		t.Fatalf("Expected 2 accounts, got %d", len(accounts))
	}

	// Insertion order is the registry order
	if accounts[0].Name != "First" {
		t.Errorf("Expected first account 'First', got '%s'", accounts[0].Name)
	}
	if accounts[1].Address != second.Address {
		t.Errorf("Expected second address '%s', got '%s'", second.Address, accounts[1].Address)
	}
	if accounts[1].Name != "" {
		t.Errorf("Expected empty name to persist as empty, got '%s'", accounts[1].Name)
	}
}

func TestSaveAccountUpserts(t *testing.T) {
	s := testStorage(t)

	account, err := models.NewAccount("Original", "0x1111111111111111111111111111111111111111")
	if err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}

	if err := s.SaveAccount(account); err != nil {
		t.Fatalf("Failed to save account: %v", err)
	}

	account.Name = "Renamed"
	if err := s.SaveAccount(account); err != nil {
		t.Fatalf("Failed to re-save account: %v", err)
	}

	accounts, err := s.ListAccounts()
	if err != nil {
		t.Fatalf("Failed to list accounts: %v", err)
	}

	if len(accounts) != 1 {
		t.Fatalf("Expected 1 account after upsert, got %d", len(accounts))
	}
	if accounts[0].Name != "Renamed" {
		t.Errorf("Expected name 'Renamed', got '%s'", accounts[0].Name)
	}
}

func TestDeleteAccount(t *testing.T) {
	s := testStorage(t)

	account, err := models.NewAccount("Doomed", "0x1111111111111111111111111111111111111111")
	if err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}

	if err := s.SaveAccount(account); err != nil {
		t.Fatalf("Failed to save account: %v", err)
	}

	if err := s.DeleteAccount(account.ID); err != nil {
		t.Fatalf("Failed to delete account: %v", err)
	}

	accounts, err := s.ListAccounts()
	if err != nil {
		t.Fatalf("Failed to list accounts: %v", err)
	}
	if len(accounts) != 0 {
		t.Errorf("Expected 0 accounts after delete, got %d", len(accounts))
	}

	if err := s.DeleteAccount("missing"); err == nil {
		t.Error("Expected error deleting missing account, got nil")
	}
}

func TestListAccountsMissingFile(t *testing.T) {
	s := testStorage(t)

	accounts, err := s.ListAccounts()
	if err != nil {
		t.Fatalf("Expected empty list for missing file, got error: %v", err)
	}
	if len(accounts) != 0 {
		t.Errorf("Expected 0 accounts, got %d", len(accounts))
	}
}

func TestContactsRoundTrip(t *testing.T) {
	s := testStorage(t)

	list := &models.ContactList{}
	list.Add(models.NewContact("Bob", "0x2222222222222222222222222222222222222222", "exchange"))
	list.Add(models.NewContact("", "0x3333333333333333333333333333333333333333", ""))

	if err := s.SaveContacts(list); err != nil {
		t.Fatalf("Failed to save contacts: %v", err)
	}

	loaded, err := s.LoadContacts()
	if err != nil {
		t.Fatalf("Failed to load contacts: %v", err)
	}

	if len(loaded.Contacts) != 2 {
		t.Fatalf("Expected 2 contacts, got %d", len(loaded.Contacts))
	}

	if loaded.Contacts[0].Name != "Bob" {
		t.Errorf("Expected first contact 'Bob', got '%s'", loaded.Contacts[0].Name)
	}
	if loaded.Contacts[0].Notes != "exchange" {
		t.Errorf("Expected notes 'exchange', got '%s'", loaded.Contacts[0].Notes)
	}
	if loaded.Contacts[1].Name != "" {
		t.Errorf("Expected empty contact name to persist as empty, got '%s'", loaded.Contacts[1].Name)
	}
}

func TestLoadContactsMissingFile(t *testing.T) {
	s := testStorage(t)

	contacts, err := s.LoadContacts()
	if err != nil {
		t.Fatalf("Expected empty contacts for missing file, got error: %v", err)
	}
	if len(contacts.Contacts) != 0 {
		t.Errorf("Expected 0 contacts, got %d", len(contacts.Contacts))
	}
}

func TestRecentsRoundTrip(t *testing.T) {
	s := testStorage(t)

	manager := models.NewRecentAddressManager(50)
	manager.AddAddress("0x1111111111111111111111111111111111111111", "Alice")

	if err := s.SaveRecents(manager); err != nil {
		t.Fatalf("Failed to save recents: %v", err)
	}

	loaded, err := s.LoadRecents(50)
	if err != nil {
		t.Fatalf("Failed to load recents: %v", err)
	}

	recents := loaded.GetRecentAddresses(0)
	if len(recents) != 1 {
		t.Fatalf("Expected 1 recent address, got %d", len(recents))
	}
	if recents[0].ContactName != "Alice" {
		t.Errorf("Expected contact name 'Alice', got '%s'", recents[0].ContactName)
	}
}
