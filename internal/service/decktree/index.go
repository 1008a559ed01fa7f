package decktree

import (
	"memoria/internal/domain/models/flashcard"
)

// TreeIndex is an adjacency view over one owner's flat deck list.
// All traversals use an explicit work stack, so memory is bounded by the
// width of the tree rather than by its depth.
type TreeIndex struct {
	byID     map[string]*flashcard.Deck
	children map[string][]*flashcard.Deck // parent ID → children, in input order
	roots    []*flashcard.Deck
}

// NewTreeIndex builds the parent → children map in a single pass.
// Decks whose parent is absent from the list are treated as roots.
func NewTreeIndex(decks []flashcard.Deck) *TreeIndex {
	ix := &TreeIndex{
		byID:     make(map[string]*flashcard.Deck, len(decks)),
		children: make(map[string][]*flashcard.Deck),
	}
	for i := range decks {
		ix.byID[decks[i].ID] = &decks[i]
	}
	for i := range decks {
		d := &decks[i]
		if d.ParentID != nil {
			if _, ok := ix.byID[*d.ParentID]; ok {
				ix.children[*d.ParentID] = append(ix.children[*d.ParentID], d)
				continue
			}
		}
		ix.roots = append(ix.roots, d)
	}
	return ix
}

// Len returns the number of indexed decks
func (ix *TreeIndex) Len() int {
	return len(ix.byID)
}

// Get returns the deck with the given ID
func (ix *TreeIndex) Get(id string) (*flashcard.Deck, bool) {
	d, ok := ix.byID[id]
	return d, ok
}

// FindByPath returns the deck with exactly this path
func (ix *TreeIndex) FindByPath(path string) (*flashcard.Deck, bool) {
	for _, d := range ix.byID {
		if d.Path == path {
			return d, true
		}
	}
	return nil, false
}

// Children returns the direct children of a deck
func (ix *TreeIndex) Children(id string) []*flashcard.Deck {
	return ix.children[id]
}

// Roots returns decks without an indexed parent, in input order
func (ix *TreeIndex) Roots() []*flashcard.Deck {
	return ix.roots
}

// CollectSubtree returns root followed by all of its descendants.
// Order is depth-first pre-order: every deck appears after its parent.
func (ix *TreeIndex) CollectSubtree(root *flashcard.Deck) []*flashcard.Deck {
	var out []*flashcard.Deck
	ix.walk(root, func(d *flashcard.Deck) {
		out = append(out, d)
	})
	return out
}

// CollectDescendants is CollectSubtree without the root itself
func (ix *TreeIndex) CollectDescendants(root *flashcard.Deck) []*flashcard.Deck {
	subtree := ix.CollectSubtree(root)
	return subtree[1:]
}

// walk visits root and its descendants in pre-order.
// Children are pushed in reverse so they pop in input order; the visited
// set guarantees termination even if the stored parent links form a cycle.
func (ix *TreeIndex) walk(root *flashcard.Deck, visit func(*flashcard.Deck)) {
	visited := make(map[string]bool)
	stack := []*flashcard.Deck{root}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[current.ID] {
			continue
		}
		visited[current.ID] = true
		visit(current)

		kids := ix.children[current.ID]
		for i := len(kids) - 1; i >= 0; i-- {
			if !visited[kids[i].ID] {
				stack = append(stack, kids[i])
			}
		}
	}
}

// Forest builds the nested node view of every indexed deck
func (ix *TreeIndex) Forest() []*flashcard.DeckNode {
	nodes := make(map[string]*flashcard.DeckNode, len(ix.byID))
	forest := make([]*flashcard.DeckNode, 0, len(ix.roots))

	for _, root := range ix.roots {
		ix.walk(root, func(d *flashcard.Deck) {
			node := &flashcard.DeckNode{
				ID:          d.ID,
				Name:        d.Name,
				Path:        d.Path,
				ParentID:    d.ParentID,
				AccessLevel: d.AccessLevel,
				Children:    []*flashcard.DeckNode{},
			}
			nodes[d.ID] = node

			// Pre-order guarantees the parent node already exists
			if d.ParentID != nil {
				if parent, ok := nodes[*d.ParentID]; ok && d.ID != root.ID {
					parent.Children = append(parent.Children, node)
					return
				}
			}
			forest = append(forest, node)
		})
	}
	return forest
}
