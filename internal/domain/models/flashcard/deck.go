package flashcard

import (
	"time"
)

// AccessLevel controls who can see a deck
type AccessLevel string

const (
	AccessPrivate AccessLevel = "PRIVATE"
	AccessShared  AccessLevel = "SHARED"
	AccessPublic  AccessLevel = "PUBLIC"

	// AccessDefault is only accepted as create-time input; it resolves to the
	// parent's level (or PRIVATE for a root deck) and is never stored.
	AccessDefault AccessLevel = "DEFAULT"
)

// Valid reports whether the level is one of the known values (DEFAULT included)
func (a AccessLevel) Valid() bool {
	switch a {
	case AccessPrivate, AccessShared, AccessPublic, AccessDefault:
		return true
	}
	return false
}

// PathDelimiter separates ancestor names in a deck path
const PathDelimiter = "::"

type Deck struct {
	ID          string      `json:"id" db:"id"`
	OwnerID     string      `json:"owner_id" db:"owner_id"`
	ParentID    *string     `json:"parent_id" db:"parent_id"` // NULL = root deck
	Name        string      `json:"name" db:"name"`
	Path        string      `json:"path" db:"path"` // Derived from ancestor names, unique per owner
	AccessLevel AccessLevel `json:"access_level" db:"access_level"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// IsRoot reports whether the deck has no parent
func (d *Deck) IsRoot() bool {
	return d.ParentID == nil
}

// DeckPathUpdate is one row of a rename batch
type DeckPathUpdate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}
