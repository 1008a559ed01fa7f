package flashcard

// DeckNode is a deck with its nested children, used for the owner's deck forest
type DeckNode struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Path        string      `json:"path"`
	ParentID    *string     `json:"parent_id"`
	AccessLevel AccessLevel `json:"access_level"`
	Children    []*DeckNode `json:"children"` // Pointers for proper nesting
}
