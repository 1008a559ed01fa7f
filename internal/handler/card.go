package handler

import (
	"log/slog"
	"net/http"

	flashSvc "memoria/internal/domain/services/flashcard"
	"memoria/internal/httputil"
)

// CardHandler handles card HTTP requests
type CardHandler struct {
	cardService flashSvc.CardService
	logger      *slog.Logger
}

// NewCardHandler creates a new card handler
func NewCardHandler(cardService flashSvc.CardService, logger *slog.Logger) *CardHandler {
	return &CardHandler{
		cardService: cardService,
		logger:      logger,
	}
}

// CreateCard creates a card from field submissions
// POST /api/cards?allow_duplicate=true
// Returns 409 with card_ids when the content already exists
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	allow, ok := queryFlag(w, r, "allow_duplicate")
	if !ok {
		return
	}

	var req flashSvc.CreateCardRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !httputil.IsUUID(req.DeckID) || !httputil.IsUUID(req.TemplateID) {
		httputil.RespondError(w, http.StatusBadRequest, "deck_id and template_id must be valid ids")
		return
	}
	req.OwnerID = userID
	req.AllowDuplicate = allow

	card, err := h.cardService.CreateCard(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, card)
}

// GetCard returns a card with every template field, blanks included
// GET /api/cards/{id}
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	view, err := h.cardService.GetCard(r.Context(), userID, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// UpdateCard merges submitted fields into a card
// PATCH /api/cards/{id}?allow_duplicate=true
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	allow, ok := queryFlag(w, r, "allow_duplicate")
	if !ok {
		return
	}

	var req flashSvc.UpdateCardRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.OwnerID = userID
	req.CardID = id
	req.AllowDuplicate = allow

	card, err := h.cardService.UpdateCard(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, card)
}

// DeleteCard deletes a card
// DELETE /api/cards/{id}
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), userID, id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
