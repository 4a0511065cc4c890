package controller

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"vitrine-catalogo/models"
	"vitrine-catalogo/service"
)

// CatalogController handles HTTP requests for catalog browsing
type CatalogController struct {
	catalog   *service.CatalogService
	presenter *service.PresenterService
	reviews   *service.ReviewService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalog *service.CatalogService, presenter *service.PresenterService, reviews *service.ReviewService) *CatalogController {
	return &CatalogController{
		catalog:   catalog,
		presenter: presenter,
		reviews:   reviews,
	}
}

// sessionID extracts the client session from the query string, defaulting
// to a shared session for clients that don't send one.
func sessionID(r *http.Request) string {
	if s := r.URL.Query().Get("session"); s != "" {
		return s
	}
	return "default"
}

// List handles GET /catalog?term=&category=
// Returns the filtered, sorted card list. When the catalog document failed
// to load, the stored inline error ships with an empty list.
func (c *CatalogController) List(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 List: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	term := r.URL.Query().Get("term")
	category := r.URL.Query().Get("category")

	response := models.CatalogResponse{
		Mode:  c.catalog.Mode(),
		Items: c.presenter.Cards(term, category),
		Error: c.catalog.LoadError(),
	}

	writeJSON(w, response)
}

// Get handles GET /catalog/{id}
// Opens the modal view for an entry (resetting the session's carousel
// cursor) and attaches that entry's reviews.
func (c *CatalogController) Get(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Get: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entryID := strings.TrimPrefix(r.URL.Path, "/catalog/")
	if entryID == "" {
		http.Error(w, "entry id is required", http.StatusBadRequest)
		return
	}

	modal, ok := c.presenter.OpenModal(sessionID(r), entryID)
	if !ok {
		http.Error(w, "Entry not found", http.StatusNotFound)
		return
	}

	modal.Reviews = c.reviews.Load(r.Context(), entryID)
	writeJSON(w, modal)
}

// Open handles GET /catalog/open?product=ID
// Deep-link resolution: answers with the modal view when the id resolves,
// 204 when it doesn't (a miss is a no-op, not an error).
func (c *CatalogController) Open(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Open: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	modal, ok := c.presenter.ResolveDeepLink(sessionID(r), r.URL.Query().Get("product"))
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	modal.Reviews = c.reviews.Load(r.Context(), modal.Entry.ID)
	writeJSON(w, modal)
}

// Share handles GET /catalog/{id}/share
// Returns the deep link URL embedding the entry id.
func (c *CatalogController) Share(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Share: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/catalog/")
	entryID := strings.TrimSuffix(path, "/share")

	url, ok := c.presenter.ShareURL(entryID)
	if !ok {
		http.Error(w, "Entry not found", http.StatusNotFound)
		return
	}

	writeJSON(w, models.ShareResponse{EntryID: entryID, URL: url})
}

// Carousel handles POST /catalog/{id}/carousel?session=&dir=prev|next
// Steps the session's carousel cursor for the entry, wrapping at both ends.
func (c *CatalogController) Carousel(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Carousel: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/catalog/")
	entryID := strings.TrimSuffix(path, "/carousel")

	dir := r.URL.Query().Get("dir")
	if dir != service.CarouselPrev {
		dir = service.CarouselNext
	}

	step, ok := c.presenter.StepCarousel(sessionID(r), entryID, dir)
	if !ok {
		http.Error(w, "Entry not found or has no images", http.StatusNotFound)
		return
	}

	writeJSON(w, step)
}

// writeJSON encodes v as the JSON response body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ writeJSON: Error encoding response: %v", err)
	}
}
