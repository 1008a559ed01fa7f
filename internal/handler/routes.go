package handler

import "net/http"

// Handlers bundles every HTTP handler the API serves
type Handlers struct {
	Decks     *DeckHandler
	Cards     *CardHandler
	Templates *TemplateHandler
}

// RegisterRoutes mounts the API on mux using Go 1.22 method patterns
func RegisterRoutes(mux *http.ServeMux, h *Handlers) {
	mux.HandleFunc("GET /health", HealthCheck)

	// Deck routes
	mux.HandleFunc("GET /api/decks", h.Decks.GetDeckTree)
	mux.HandleFunc("POST /api/decks", h.Decks.CreateDeck)
	mux.HandleFunc("GET /api/decks/{id}", h.Decks.GetDeck)
	mux.HandleFunc("PATCH /api/decks/{id}", h.Decks.RenameDeck)
	mux.HandleFunc("DELETE /api/decks/{id}", h.Decks.DeleteDeck)
	mux.HandleFunc("GET /api/decks/{id}/cards", h.Decks.ListDeckCards)

	// Card routes
	mux.HandleFunc("POST /api/cards", h.Cards.CreateCard)
	mux.HandleFunc("GET /api/cards/{id}", h.Cards.GetCard)
	mux.HandleFunc("PATCH /api/cards/{id}", h.Cards.UpdateCard)
	mux.HandleFunc("DELETE /api/cards/{id}", h.Cards.DeleteCard)

	// Template catalog
	mux.HandleFunc("GET /api/templates", h.Templates.ListTemplates)
	mux.HandleFunc("GET /api/templates/{id}", h.Templates.GetTemplate)
}
