package service

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"vitrine-catalogo/models"
)

// Carousel navigation directions.
const (
	CarouselPrev = "prev"
	CarouselNext = "next"
)

// descriptionLimit is the rune count past which a modal description is
// considered truncated and gets the "show more" control (general mode only).
const descriptionLimit = 180

// PresenterService projects catalog entries into cards and modal views and
// owns the per-session carousel cursors. Navigation wraps at both ends;
// opening a modal resets that entry's cursor to 0.
type PresenterService struct {
	catalog     *CatalogService
	publicURL   string // page URL used for share deep links
	bulkEntryID string // the one entry allowed a user-editable quantity

	mu      sync.Mutex
	cursors map[string]int // "{session}|{entry}" -> image index
}

// NewPresenterService creates a new PresenterService.
func NewPresenterService(catalog *CatalogService, publicURL, bulkEntryID string) *PresenterService {
	return &PresenterService{
		catalog:     catalog,
		publicURL:   strings.TrimRight(publicURL, "/"),
		bulkEntryID: bulkEntryID,
		cursors:     make(map[string]int),
	}
}

// Cards filters the catalog and projects each matching entry to a card.
func (s *PresenterService) Cards(term, category string) []models.Card {
	entries := s.catalog.Filter(term, category)
	cards := make([]models.Card, 0, len(entries))
	for _, e := range entries {
		cards = append(cards, models.Card{
			ID:          e.ID,
			Title:       e.Name,
			Description: e.Description,
			Badge:       s.badge(e),
			Images:      e.Images,
			Available:   e.Available,
			ShareURL:    s.shareURL(e.ID),
		})
	}
	return cards
}

// badge picks the chip text for a card: price text (or an availability
// label) in colors mode, the uppercased material tag in general mode.
func (s *PresenterService) badge(e models.CatalogEntry) string {
	if s.catalog.ColorsMode() {
		if e.PriceText != "" {
			return e.PriceText
		}
		return "Disponível"
	}
	if e.Material != "" {
		return strings.ToUpper(e.Material)
	}
	return ""
}

// OpenModal builds the modal view for an entry and resets the session's
// carousel cursor for it. Returns false when the id is unknown (a lookup
// miss is a no-op, not an error).
func (s *PresenterService) OpenModal(sessionID, entryID string) (models.ModalView, bool) {
	entry, ok := s.catalog.FindByID(entryID)
	if !ok {
		return models.ModalView{}, false
	}

	s.mu.Lock()
	s.cursors[cursorKey(sessionID, entryID)] = 0
	s.mu.Unlock()

	colors := s.catalog.ColorsMode()
	short, truncated := truncateDescription(entry.Description)

	return models.ModalView{
		Entry:            entry,
		ImageIndex:       0,
		ShowSwatch:       colors,
		QuantityEditable: entry.ID == s.bulkEntryID,
		Quantity:         1,
		ShortDescription: short,
		Truncated:        truncated,
		// Colors pages never show the expand control, whatever the length.
		ShowMoreControl: truncated && !colors,
		ShareURL:        s.shareURL(entry.ID),
		Reviews:         []models.Review{},
	}, true
}

// StepCarousel advances or retreats the session's cursor for an entry,
// wrapping modulo the image count. Unknown ids and image-less entries
// report ok=false.
func (s *PresenterService) StepCarousel(sessionID, entryID, dir string) (models.CarouselResponse, bool) {
	entry, found := s.catalog.FindByID(entryID)
	if !found || len(entry.Images) == 0 {
		return models.CarouselResponse{}, false
	}

	n := len(entry.Images)
	key := cursorKey(sessionID, entryID)

	s.mu.Lock()
	idx := s.cursors[key]
	if dir == CarouselPrev {
		idx = (idx - 1 + n) % n
	} else {
		idx = (idx + 1) % n
	}
	s.cursors[key] = idx
	s.mu.Unlock()

	return models.CarouselResponse{
		EntryID:    entryID,
		ImageIndex: idx,
		Image:      entry.Images[idx],
	}, true
}

// ShareURL builds the deep link embedding the entry id, for the share
// action. Returns false when the id is unknown.
func (s *PresenterService) ShareURL(entryID string) (string, bool) {
	if _, ok := s.catalog.FindByID(entryID); !ok {
		return "", false
	}
	return s.shareURL(entryID), true
}

func (s *PresenterService) shareURL(entryID string) string {
	return fmt.Sprintf("%s?product=%s", s.publicURL, url.QueryEscape(entryID))
}

// ResolveDeepLink answers the ?product=ID auto-open: the modal view when
// the id resolves, ok=false otherwise.
func (s *PresenterService) ResolveDeepLink(sessionID, entryID string) (models.ModalView, bool) {
	if entryID == "" {
		return models.ModalView{}, false
	}
	return s.OpenModal(sessionID, entryID)
}

func cursorKey(sessionID, entryID string) string {
	return sessionID + "|" + entryID
}

// truncateDescription returns the short form of a description and whether
// truncation happened. Runs on runes so accented text is cut cleanly.
func truncateDescription(desc string) (string, bool) {
	runes := []rune(desc)
	if len(runes) <= descriptionLimit {
		return desc, false
	}
	return string(runes[:descriptionLimit]) + "…", true
}
