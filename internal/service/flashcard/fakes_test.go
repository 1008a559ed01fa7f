package flashcard

import (
	"cmp"
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"memoria/internal/domain"
	models "memoria/internal/domain/models/flashcard"
	"memoria/internal/domain/repositories"

	"github.com/google/uuid"
)

// memStore backs the deck, card and template fakes with plain maps
type memStore struct {
	mu        sync.Mutex
	decks     map[string]models.Deck
	cards     map[string]*models.Card
	templates map[string]*models.Template
	locks     []string
}

func newMemStore() *memStore {
	return &memStore{
		decks:     map[string]models.Deck{},
		cards:     map[string]*models.Card{},
		templates: map[string]*models.Template{},
	}
}

type passthroughTx struct{ calls int }

func (p *passthroughTx) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	p.calls++
	return fn(ctx)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// deckRepo

type fakeDeckRepo struct{ s *memStore }

func (r *fakeDeckRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Deck, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Deck
	for _, d := range r.s.decks {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	slices.SortFunc(out, func(a, b models.Deck) int { return cmp.Compare(a.Path, b.Path) })
	return out, nil
}

func (r *fakeDeckRepo) GetByPath(_ context.Context, ownerID, path string) (*models.Deck, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.decks {
		if d.OwnerID == ownerID && d.Path == path {
			return &d, nil
		}
	}
	return nil, domain.NewNotFoundError("deck", "deck not found: %s", path)
}

func (r *fakeDeckRepo) GetByID(_ context.Context, ownerID, id string) (*models.Deck, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.decks[id]
	if !ok || d.OwnerID != ownerID {
		return nil, domain.NewNotFoundError("deck", "deck not found: %s", id)
	}
	return &d, nil
}

func (r *fakeDeckRepo) Create(_ context.Context, deck *models.Deck) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	deck.ID = uuid.NewString()
	r.s.decks[deck.ID] = *deck
	return nil
}

func (r *fakeDeckRepo) UpdatePaths(_ context.Context, ownerID string, updates []models.DeckPathUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range updates {
		d := r.s.decks[u.ID]
		d.Name, d.Path = u.Name, u.Path
		r.s.decks[u.ID] = d
	}
	return nil
}

func (r *fakeDeckRepo) DeleteBatch(_ context.Context, ownerID string, ids []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		delete(r.s.decks, id)
		for cid, c := range r.s.cards {
			if c.DeckID == id {
				delete(r.s.cards, cid)
			}
		}
	}
	return nil
}

func (r *fakeDeckRepo) LockOwner(_ context.Context, ownerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.locks = append(r.s.locks, ownerID)
	return nil
}

// cardRepo

type fakeCardRepo struct{ s *memStore }

func cloneCard(c *models.Card) *models.Card {
	cp := *c
	cp.Fields = make([]*models.Field, len(c.Fields))
	for i, f := range c.Fields {
		fc := *f
		cp.Fields[i] = &fc
	}
	return &cp
}

func (r *fakeCardRepo) GetByID(_ context.Context, id string) (*models.Card, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.cards[id]
	if !ok {
		return nil, domain.NewNotFoundError("card", "card not found: %s", id)
	}
	return cloneCard(c), nil
}

func (r *fakeCardRepo) OwnerOf(_ context.Context, cardID string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.cards[cardID]
	if !ok {
		return "", domain.NewNotFoundError("card", "card not found: %s", cardID)
	}
	return r.s.decks[c.DeckID].OwnerID, nil
}

func (r *fakeCardRepo) ListByDeck(_ context.Context, deckID string) ([]*models.Card, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Card
	for _, c := range r.s.cards {
		if c.DeckID == deckID {
			out = append(out, cloneCard(c))
		}
	}
	return out, nil
}

func (r *fakeCardRepo) FindIDsByContent(_ context.Context, ownerID, content string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []string
	for id, c := range r.s.cards {
		if r.s.decks[c.DeckID].OwnerID != ownerID {
			continue
		}
		for _, f := range c.Fields {
			if f.Content == content {
				ids = append(ids, id)
				break
			}
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func (r *fakeCardRepo) DeckIDsWithCards(_ context.Context, deckIDs []string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []string
	for _, id := range deckIDs {
		for _, c := range r.s.cards {
			if c.DeckID == id {
				out = append(out, id)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeCardRepo) Create(_ context.Context, card *models.Card) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	card.ID = uuid.NewString()
	for _, f := range card.Fields {
		f.ID = uuid.NewString()
		f.CardID = card.ID
	}
	r.s.cards[card.ID] = cloneCard(card)
	return nil
}

func (r *fakeCardRepo) Update(_ context.Context, card *models.Card) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range card.Fields {
		if f.ID == "" {
			f.ID = uuid.NewString()
			f.CardID = card.ID
		}
	}
	r.s.cards[card.ID] = cloneCard(card)
	return nil
}

func (r *fakeCardRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.cards, id)
	return nil
}

// templateRepo

type fakeTemplateRepo struct{ s *memStore }

func (r *fakeTemplateRepo) GetByID(_ context.Context, id string) (*models.Template, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.templates[id]
	if !ok {
		return nil, domain.NewNotFoundError("template", "template not found: %s", id)
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTemplateRepo) List(_ context.Context) ([]models.Template, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Template
	for _, t := range r.s.templates {
		out = append(out, *t)
	}
	slices.SortFunc(out, func(a, b models.Template) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

func (r *fakeTemplateRepo) Upsert(_ context.Context, t *models.Template) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, existing := range r.s.templates {
		if existing.Name == t.Name {
			t.ID = id
		}
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	for i := range t.Fields {
		t.Fields[i].TemplateID = t.ID
		if t.Fields[i].ID == "" {
			t.Fields[i].ID = uuid.NewString()
		}
	}
	cp := *t
	r.s.templates[t.ID] = &cp
	return nil
}

// basicTemplate registers a FRONT/BACK template with an enum extra
func (s *memStore) basicTemplate() *models.Template {
	t := &models.Template{
		ID:   "tpl-basic",
		Name: "Basic",
		Fields: []models.TemplateField{
			{ID: "tf-front", TemplateID: "tpl-basic", Name: "Front", Role: models.RoleFront, Type: models.TextType(), Position: 0},
			{ID: "tf-back", TemplateID: "tpl-basic", Name: "Back", Role: models.RoleBack, Type: models.TextType(), Position: 1},
			{ID: "tf-level", TemplateID: "tpl-basic", Name: "Level", Role: models.RoleExtra, Type: models.EnumType("easy", "hard"), Position: 2},
		},
	}
	s.templates[t.ID] = t
	return t
}
