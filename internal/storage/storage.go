package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"rhystmorgan/thorDeck/internal/models"
)

const (
	appDir       = ".thordeck"
	accountsFile = "accounts.json"
	contactsFile = "contacts.json"
	recentsFile  = "recents.json"
)

type Storage struct {
	dataDir string
}

type AccountStorage struct {
	Accounts []models.Account `json:"accounts"`
}

type RecentStorage struct {
	Addresses []models.RecentAddress `json:"addresses"`
}

func NewStorage() (*Storage, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return NewStorageAt(filepath.Join(homeDir, appDir))
}

// NewStorageAt opens a registry rooted at an explicit directory. Tests
// and the --data-dir flag use this instead of the home default.
func NewStorageAt(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &Storage{dataDir: dataDir}, nil
}

// DataDir returns the registry directory, shared with the log file and
// the balance history database.
func (s *Storage) DataDir() string {
	return s.dataDir
}

func (s *Storage) SaveAccount(account *models.Account) error {
	storage, err := s.loadAccountStorage()
	if err != nil {
		return err
	}

	for i, existing := range storage.Accounts {
		if existing.ID == account.ID {
			storage.Accounts[i] = *account
			return s.saveAccountStorage(storage)
		}
	}

	storage.Accounts = append(storage.Accounts, *account)
	return s.saveAccountStorage(storage)
}

func (s *Storage) ListAccounts() ([]models.Account, error) {
	storage, err := s.loadAccountStorage()
	if err != nil {
		return nil, err
	}
	return storage.Accounts, nil
}

func (s *Storage) DeleteAccount(id string) error {
	storage, err := s.loadAccountStorage()
	if err != nil {
		return err
	}

	for i, account := range storage.Accounts {
		if account.ID == id {
			storage.Accounts = append(storage.Accounts[:i], storage.Accounts[i+1:]...)
			return s.saveAccountStorage(storage)
		}
	}

	return fmt.Errorf("account not found")
}

func (s *Storage) SaveContacts(contacts *models.ContactList) error {
	data, err := json.MarshalIndent(contacts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal contacts: %w", err)
	}

	filePath := filepath.Join(s.dataDir, contactsFile)
	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write contacts file: %w", err)
	}

	return nil
}

func (s *Storage) LoadContacts() (*models.ContactList, error) {
	filePath := filepath.Join(s.dataDir, contactsFile)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return &models.ContactList{Contacts: []models.Contact{}}, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read contacts file: %w", err)
	}

	var contacts models.ContactList
	if err := json.Unmarshal(data, &contacts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal contacts: %w", err)
	}

	return &contacts, nil
}

func (s *Storage) SaveRecents(manager *models.RecentAddressManager) error {
	storage := RecentStorage{Addresses: manager.Export()}

	data, err := json.MarshalIndent(storage, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recent addresses: %w", err)
	}

	filePath := filepath.Join(s.dataDir, recentsFile)
	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write recents file: %w", err)
	}

	return nil
}

func (s *Storage) LoadRecents(maxEntries int) (*models.RecentAddressManager, error) {
	manager := models.NewRecentAddressManager(maxEntries)
	filePath := filepath.Join(s.dataDir, recentsFile)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return manager, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read recents file: %w", err)
	}

	var storage RecentStorage
	if err := json.Unmarshal(data, &storage); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recent addresses: %w", err)
	}

	manager.Import(storage.Addresses)
	return manager, nil
}

func (s *Storage) loadAccountStorage() (*AccountStorage, error) {
	filePath := filepath.Join(s.dataDir, accountsFile)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return &AccountStorage{Accounts: []models.Account{}}, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts file: %w", err)
	}

	var storage AccountStorage
	if err := json.Unmarshal(data, &storage); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account storage: %w", err)
	}

	return &storage, nil
}

func (s *Storage) saveAccountStorage(storage *AccountStorage) error {
	data, err := json.MarshalIndent(storage, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal account storage: %w", err)
	}

	filePath := filepath.Join(s.dataDir, accountsFile)
	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write accounts file: %w", err)
	}

	return nil
}
