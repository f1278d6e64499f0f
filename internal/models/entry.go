package models

// Entry is one pickable row in an address selector: a watched account
// or a contact, reduced to the two fields the picker needs.
type Entry struct {
	Address string
	Name    string
}

// DisplayName returns the entry name, falling back to "Unnamed" for
// entries saved without one.
func (e Entry) DisplayName() string {
	if e.Name == "" {
		return "Unnamed"
	}
	return e.Name
}
