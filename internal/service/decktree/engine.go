package decktree

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"memoria/internal/domain"
	"memoria/internal/domain/models/flashcard"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Limits bounds deck names and derived paths
type Limits struct {
	MaxNameLength int
	MaxPathLength int
}

// Engine computes deck tree mutations. It holds no mutable state and performs
// no I/O: every operation takes the owner's flat deck list and returns what
// the caller must persist in one transaction.
type Engine struct {
	limits Limits
}

// NewEngine creates a deck tree engine
func NewEngine(limits Limits) *Engine {
	return &Engine{limits: limits}
}

// RenamePlan is the full batch produced by a rename, target first,
// then descendants with every parent before its children.
type RenamePlan struct {
	Target      flashcard.DeckPathUpdate
	Descendants []flashcard.DeckPathUpdate
}

// Updates returns the target update followed by the descendant updates
func (p *RenamePlan) Updates() []flashcard.DeckPathUpdate {
	return append([]flashcard.DeckPathUpdate{p.Target}, p.Descendants...)
}

// Create validates a new deck and returns it fully specified except for its ID.
// parentPath selects the parent by exact path; blank means a root deck.
func (e *Engine) Create(ownerID string, ownerDecks []flashcard.Deck, parentPath, name string, requested flashcard.AccessLevel) (*flashcard.Deck, error) {
	trimmed, err := e.validateName(name)
	if err != nil {
		return nil, err
	}

	ix := NewTreeIndex(ownerDecks)

	var parent *flashcard.Deck
	if strings.TrimSpace(parentPath) != "" {
		p, ok := ix.FindByPath(parentPath)
		if !ok {
			return nil, domain.NewNotFoundError("parent path", "parent path not found: %s", parentPath)
		}
		parent = p
	}

	path := ComputePath(parent, trimmed)
	if err := e.validatePathLength(path); err != nil {
		return nil, err
	}
	if err := checkUniquePath(ix, path, ""); err != nil {
		return nil, err
	}

	deck := &flashcard.Deck{
		OwnerID:     ownerID,
		Name:        trimmed,
		Path:        path,
		AccessLevel: ResolveAccessLevel(requested, parent),
	}
	if parent != nil {
		parentID := parent.ID
		deck.ParentID = &parentID
	}
	return deck, nil
}

// Rename recomputes the target's path and cascades the new prefix to all of
// its descendants. Identity and parent never change.
func (e *Engine) Rename(target *flashcard.Deck, newName string, ownerDecks []flashcard.Deck) (*RenamePlan, error) {
	trimmed, err := e.validateName(newName)
	if err != nil {
		return nil, err
	}

	ix := NewTreeIndex(ownerDecks)

	var parent *flashcard.Deck
	if target.ParentID != nil {
		p, ok := ix.Get(*target.ParentID)
		if !ok {
			return nil, domain.NewNotFoundError("deck", "parent deck %s not found", *target.ParentID)
		}
		parent = p
	}

	newPath := ComputePath(parent, trimmed)
	if err := e.validatePathLength(newPath); err != nil {
		return nil, err
	}
	if err := checkUniquePath(ix, newPath, target.ID); err != nil {
		return nil, err
	}

	plan := &RenamePlan{
		Target: flashcard.DeckPathUpdate{ID: target.ID, Name: trimmed, Path: newPath},
	}

	// Pre-order: a descendant's parent path is always computed before it is needed
	newPaths := map[string]string{target.ID: newPath}
	root := target
	if indexed, ok := ix.Get(target.ID); ok {
		root = indexed
	}
	for _, d := range ix.CollectDescendants(root) {
		p := JoinPath(newPaths[*d.ParentID], d.Name)
		if err := e.validatePathLength(p); err != nil {
			return nil, err
		}
		newPaths[d.ID] = p
		plan.Descendants = append(plan.Descendants, flashcard.DeckPathUpdate{
			ID:   d.ID,
			Name: d.Name,
			Path: p,
		})
	}

	return plan, nil
}

// Delete returns the ids of the target's whole subtree, target first.
// Unless force is set, a subtree with any deck listed in nonEmpty is refused
// with a ConflictError naming those decks.
func (e *Engine) Delete(target *flashcard.Deck, ownerDecks []flashcard.Deck, nonEmpty map[string]bool, force bool) ([]string, error) {
	ix := NewTreeIndex(ownerDecks)

	root := target
	if indexed, ok := ix.Get(target.ID); ok {
		root = indexed
	}
	subtree := ix.CollectSubtree(root)

	ids := make([]string, 0, len(subtree))
	var offending []string
	for _, d := range subtree {
		ids = append(ids, d.ID)
		if nonEmpty[d.ID] {
			offending = append(offending, d.ID)
		}
	}

	if !force && len(offending) > 0 {
		return nil, &domain.ConflictError{
			Message:      fmt.Sprintf("cannot delete deck(s) containing cards without force flag: %s", strings.Join(offending, ", ")),
			ResourceType: "deck",
			ResourceID:   target.ID,
			ResourceIDs:  offending,
		}
	}

	return ids, nil
}

// validateName trims a deck name and applies the naming rules
func (e *Engine) validateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	err := validation.Validate(trimmed,
		validation.Required.Error("deck name cannot be empty"),
		validation.RuneLength(1, e.limits.MaxNameLength).Error(fmt.Sprintf("deck name must be at most %d characters", e.limits.MaxNameLength)),
		validation.By(noDelimiter),
	)
	if err != nil {
		return "", &domain.ValidationError{Message: err.Error()}
	}
	return trimmed, nil
}

func (e *Engine) validatePathLength(path string) error {
	if e.limits.MaxPathLength > 0 && utf8.RuneCountInString(path) > e.limits.MaxPathLength {
		return domain.NewValidationError("deck path exceeds %d characters", e.limits.MaxPathLength)
	}
	return nil
}

func noDelimiter(value interface{}) error {
	s, _ := value.(string)
	if strings.Contains(s, flashcard.PathDelimiter) {
		return errors.New("deck name cannot contain \"" + flashcard.PathDelimiter + "\"")
	}
	return nil
}

// checkUniquePath fails with a ConflictError when another deck (not excludeID) has path
func checkUniquePath(ix *TreeIndex, path, excludeID string) error {
	if existing, ok := ix.FindByPath(path); ok && existing.ID != excludeID {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("path already exists: %s", path),
			ResourceType: "deck",
			ResourceID:   existing.ID,
		}
	}
	return nil
}
