package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"vitrine-catalogo/models"
	"vitrine-catalogo/repository"
)

// BannerController handles the promotional banner collapsed state
type BannerController struct {
	repository repository.BannerRepositoryInterface
}

// NewBannerController creates a new BannerController
func NewBannerController(repo repository.BannerRepositoryInterface) *BannerController {
	return &BannerController{
		repository: repo,
	}
}

// Get handles GET /banner/{session}
func (c *BannerController) Get(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetBanner: Received %s request to %s", r.Method, r.URL.Path)

	session := strings.TrimPrefix(r.URL.Path, "/banner/")
	if session == "" {
		http.Error(w, "session id is required", http.StatusBadRequest)
		return
	}

	collapsed, err := c.repository.GetCollapsed(r.Context(), session)
	if err != nil {
		// Banner state is cosmetic; failures default to expanded.
		log.Printf("⚠️  GetBanner: Falling back to expanded: %v", err)
		collapsed = false
	}

	writeJSON(w, models.BannerState{Collapsed: collapsed})
}

// Put handles PUT /banner/{session}
// Example request: {"collapsed": true}
func (c *BannerController) Put(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 PutBanner: Received %s request to %s", r.Method, r.URL.Path)

	session := strings.TrimPrefix(r.URL.Path, "/banner/")
	if session == "" {
		http.Error(w, "session id is required", http.StatusBadRequest)
		return
	}

	var state models.BannerState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		log.Printf("❌ PutBanner: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := c.repository.SetCollapsed(r.Context(), session, state.Collapsed); err != nil {
		log.Printf("❌ PutBanner: Error saving banner state: %v", err)
		http.Error(w, fmt.Sprintf("Failed to save banner state: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, state)
}
