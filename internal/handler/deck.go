package handler

import (
	"log/slog"
	"net/http"

	flashSvc "memoria/internal/domain/services/flashcard"
	"memoria/internal/httputil"
)

// DeckHandler handles deck HTTP requests
type DeckHandler struct {
	deckService flashSvc.DeckService
	cardService flashSvc.CardService
	logger      *slog.Logger
}

// NewDeckHandler creates a new deck handler
func NewDeckHandler(deckService flashSvc.DeckService, cardService flashSvc.CardService, logger *slog.Logger) *DeckHandler {
	return &DeckHandler{
		deckService: deckService,
		cardService: cardService,
		logger:      logger,
	}
}

// GetDeckTree returns the caller's decks as a forest
// GET /api/decks
func (h *DeckHandler) GetDeckTree(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	forest, err := h.deckService.GetDeckTree(r.Context(), userID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, forest)
}

// CreateDeck creates a deck under an optional parent path
// POST /api/decks
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req flashSvc.CreateDeckRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.OwnerID = userID

	deck, err := h.deckService.CreateDeck(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, deck)
}

// GetDeck retrieves one deck
// GET /api/decks/{id}
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	deck, err := h.deckService.GetDeck(r.Context(), userID, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, deck)
}

// RenameDeck renames a deck; descendant paths follow
// PATCH /api/decks/{id}
func (h *DeckHandler) RenameDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req flashSvc.RenameDeckRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.OwnerID = userID
	req.DeckID = id

	deck, err := h.deckService.RenameDeck(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, deck)
}

// DeleteDeck deletes a deck and its subtree
// DELETE /api/decks/{id}?force=true
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	force, ok := queryFlag(w, r, "force")
	if !ok {
		return
	}

	deleted, err := h.deckService.DeleteDeck(r.Context(), userID, id, force)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"deleted_ids": deleted})
}

// ListDeckCards returns a deck together with its cards
// GET /api/decks/{id}/cards
func (h *DeckHandler) ListDeckCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.cardService.ListDeckCards(r.Context(), userID, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
