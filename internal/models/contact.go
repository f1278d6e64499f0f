package models

import (
	"fmt"
	"strings"
	"time"
)

type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	IsFavorite bool      `json:"is_favorite"`
	LastUsed   time.Time `json:"last_used,omitempty"`
	UseCount   int       `json:"use_count"`
}

type ContactList struct {
	Contacts []Contact `json:"contacts"`
}

func NewContact(name, address, notes string) *Contact {
	return &Contact{
		ID:        generateContactID(),
		Name:      strings.TrimSpace(name),
		Address:   strings.TrimSpace(address),
		Notes:     strings.TrimSpace(notes),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func (c *Contact) Update(name, address, notes string) {
	if name != "" {
		c.Name = strings.TrimSpace(name)
	}

	if address != "" {
		c.Address = strings.TrimSpace(address)
	}

	c.Notes = strings.TrimSpace(notes)
	c.UpdatedAt = time.Now()
}

func (c *Contact) ToggleFavorite() {
	c.IsFavorite = !c.IsFavorite
	c.UpdatedAt = time.Now()
}

// Use records that the contact was opened or picked in a selector.
func (c *Contact) Use() {
	c.UseCount++
	c.LastUsed = time.Now()
	c.UpdatedAt = time.Now()
}

func (cl *ContactList) Add(contact *Contact) {
	cl.Contacts = append(cl.Contacts, *contact)
}

func (cl *ContactList) Remove(id string) error {
	for i, contact := range cl.Contacts {
		if contact.ID == id {
			cl.Contacts = append(cl.Contacts[:i], cl.Contacts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("contact not found: %s", id)
}

func (cl *ContactList) FindByID(id string) *Contact {
	for i, contact := range cl.Contacts {
		if contact.ID == id {
			return &cl.Contacts[i]
		}
	}
	return nil
}

func (cl *ContactList) FindByAddress(address string) *Contact {
	for i, contact := range cl.Contacts {
		if strings.EqualFold(contact.Address, address) {
			return &cl.Contacts[i]
		}
	}
	return nil
}

func (cl *ContactList) GetFavorites() []Contact {
	var favorites []Contact
	for _, contact := range cl.Contacts {
		if contact.IsFavorite {
			favorites = append(favorites, contact)
		}
	}
	return favorites
}

func (cl *ContactList) GetMostUsed(limit int) []Contact {
	if limit <= 0 {
		limit = 10
	}

	// Create a copy and sort by use count
	contacts := make([]Contact, len(cl.Contacts))
	copy(contacts, cl.Contacts)

	// Sort by use count (descending), then by last used (descending)
	for i := 0; i < len(contacts)-1; i++ {
		for j := i + 1; j < len(contacts); j++ {
			if contacts[i].UseCount < contacts[j].UseCount ||
				(contacts[i].UseCount == contacts[j].UseCount && contacts[i].LastUsed.Before(contacts[j].LastUsed)) {
				contacts[i], contacts[j] = contacts[j], contacts[i]
			}
		}
	}

	if len(contacts) > limit {
		contacts = contacts[:limit]
	}

	return contacts
}

func (cl *ContactList) GetRecentlyUsed(limit int) []Contact {
	if limit <= 0 {
		limit = 10
	}

	// Create a copy and sort by last used
	contacts := make([]Contact, len(cl.Contacts))
	copy(contacts, cl.Contacts)

	// Sort by last used (descending)
	for i := 0; i < len(contacts)-1; i++ {
		for j := i + 1; j < len(contacts); j++ {
			if contacts[i].LastUsed.Before(contacts[j].LastUsed) {
				contacts[i], contacts[j] = contacts[j], contacts[i]
			}
		}
	}

	if len(contacts) > limit {
		contacts = contacts[:limit]
	}

	return contacts
}

func generateContactID() string {
	return "contact_" + time.Now().Format("20060102150405.000000")
}
