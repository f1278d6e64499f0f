// Package registry owns the in-memory account and contact state and
// its persistence. Views read it through narrow interfaces so tests
// can swap in fixed data without touching the filesystem.
package registry

import (
	"fmt"
	"strings"
	"time"

	"rhystmorgan/thorDeck/internal/models"
	"rhystmorgan/thorDeck/internal/storage"
)

// EntryProvider is the read surface an address selector depends on.
// Entries returns one row per watched account followed by one row per
// contact, in registry insertion order, without deduplication. An
// address that is both watched and saved as a contact appears twice.
type EntryProvider interface {
	Entries() []models.Entry
}

const (
	maxRecentEntries = 50
	recentMaxAge     = 180 * 24 * time.Hour
)

type Registry struct {
	store    *storage.Storage
	accounts []models.Account
	contacts *models.ContactList
	recents  *models.RecentAddressManager
}

// Load reads the full registry from disk. Missing files load as empty
// collections.
func Load(store *storage.Storage) (*Registry, error) {
	accounts, err := store.ListAccounts()
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	contacts, err := store.LoadContacts()
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}

	recents, err := store.LoadRecents(maxRecentEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent addresses: %w", err)
	}
	recents.CleanupOldEntries(recentMaxAge)

	return &Registry{
		store:    store,
		accounts: accounts,
		contacts: contacts,
		recents:  recents,
	}, nil
}

// Entries implements EntryProvider: accounts then contacts, insertion
// order, no dedup.
func (r *Registry) Entries() []models.Entry {
	entries := make([]models.Entry, 0, len(r.accounts)+len(r.contacts.Contacts))

	for _, account := range r.accounts {
		entries = append(entries, models.Entry{Address: account.Address, Name: account.Name})
	}

	for _, contact := range r.contacts.Contacts {
		entries = append(entries, models.Entry{Address: contact.Address, Name: contact.Name})
	}

	return entries
}

func (r *Registry) Accounts() []models.Account {
	return r.accounts
}

func (r *Registry) AccountByAddress(address string) *models.Account {
	for i, account := range r.accounts {
		if strings.EqualFold(account.Address, address) {
			return &r.accounts[i]
		}
	}
	return nil
}

func (r *Registry) AccountByID(id string) *models.Account {
	for i, account := range r.accounts {
		if account.ID == id {
			return &r.accounts[i]
		}
	}
	return nil
}

func (r *Registry) HasAccount(address string) bool {
	return r.AccountByAddress(address) != nil
}

func (r *Registry) AddAccount(account *models.Account) error {
	if r.HasAccount(account.Address) {
		return fmt.Errorf("address already watched: %s", account.Address)
	}

	if err := r.store.SaveAccount(account); err != nil {
		return err
	}

	r.accounts = append(r.accounts, *account)
	return nil
}

// UpdateAccount persists an account already present in the registry.
// Cached balances live only in memory, so the caller mutates the
// registry copy and then asks for a save.
func (r *Registry) UpdateAccount(account *models.Account) error {
	return r.store.SaveAccount(account)
}

func (r *Registry) RemoveAccount(id string) error {
	if r.AccountByID(id) == nil {
		return fmt.Errorf("account not found: %s", id)
	}

	if err := r.store.DeleteAccount(id); err != nil {
		return err
	}

	for i, account := range r.accounts {
		if account.ID == id {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			break
		}
	}
	return nil
}

func (r *Registry) Contacts() *models.ContactList {
	return r.contacts
}

// SaveContacts persists the contact list after in-place edits.
func (r *Registry) SaveContacts() error {
	return r.store.SaveContacts(r.contacts)
}

func (r *Registry) Recents() *models.RecentAddressManager {
	return r.recents
}

// TouchRecent records an opened address and persists the recents list.
func (r *Registry) TouchRecent(address, contactName string) error {
	r.recents.AddAddress(address, contactName)
	return r.store.SaveRecents(r.recents)
}

// RenameRecent updates the contact name shown for a recent address
// after a contact edit.
func (r *Registry) RenameRecent(address, contactName string) error {
	r.recents.UpdateContactName(address, contactName)
	return r.store.SaveRecents(r.recents)
}

// ForgetRecent drops an address from the recents list so a deleted
// contact's name stops surfacing on the deck.
func (r *Registry) ForgetRecent(address string) error {
	if !r.recents.RemoveAddress(address) {
		return nil
	}
	return r.store.SaveRecents(r.recents)
}
