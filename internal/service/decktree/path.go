package decktree

import (
	"strings"

	"memoria/internal/domain/models/flashcard"
)

// ComputePath derives a deck path from its parent and its own name.
// Both sides are trimmed. A missing parent, or one with a blank path, yields the bare name.
//
// Examples:
//   - ComputePath(nil, " Spanish ") → "Spanish"
//   - ComputePath(&Deck{Path: "Spanish"}, "Verbs") → "Spanish::Verbs"
func ComputePath(parent *flashcard.Deck, name string) string {
	if parent == nil || strings.TrimSpace(parent.Path) == "" {
		return strings.TrimSpace(name)
	}
	return strings.TrimSpace(parent.Path) + flashcard.PathDelimiter + strings.TrimSpace(name)
}

// JoinPath appends a child name to an already-computed parent path
func JoinPath(parentPath, name string) string {
	return ComputePath(&flashcard.Deck{Path: parentPath}, name)
}

// ParentPath returns everything before the last delimiter, or false for a root path
func ParentPath(path string) (string, bool) {
	i := strings.LastIndex(path, flashcard.PathDelimiter)
	if i == -1 {
		return "", false
	}
	return path[:i], true
}

// ResolveAccessLevel decides the access level of a new deck.
//   - DEFAULT inherits from the parent, or PRIVATE for a root deck
//   - any other supplied level is used as-is
//   - no level supplied means PRIVATE
//
// It runs once at creation. Later changes to the parent are not propagated.
func ResolveAccessLevel(requested flashcard.AccessLevel, parent *flashcard.Deck) flashcard.AccessLevel {
	switch requested {
	case flashcard.AccessDefault:
		if parent == nil {
			return flashcard.AccessPrivate
		}
		return parent.AccessLevel
	case "":
		return flashcard.AccessPrivate
	default:
		return requested
	}
}
