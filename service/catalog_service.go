package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"vitrine-catalogo/models"
	"vitrine-catalogo/utils"
)

// Catalog operating modes. Colors mode shows the swatch catalog
// (cores.json) and sorts available entries first; products mode shows the
// general catalog (produtos.json) in source order.
const (
	ModeColors   = "colors"
	ModeProducts = "products"
)

// loadErrorMessage is the inline error shown when the catalog document
// cannot be fetched or parsed. There is no retry: the catalog stays empty.
const loadErrorMessage = "Erro ao carregar dados. Verifique o console."

// CatalogService owns the catalog snapshot for the session: it fetches the
// JSON document once at startup, normalizes every legacy shape into
// models.CatalogEntry, and answers filter/sort queries over the immutable
// result.
type CatalogService struct {
	source string // base URL or directory holding the JSON documents
	mode   string

	client   *http.Client
	collator *collate.Collator

	mu      sync.RWMutex
	entries []models.CatalogEntry
	loadErr string
}

// NewCatalogService creates a CatalogService reading from source, which is
// either a base URL (http/https) or a local directory.
func NewCatalogService(source, mode string) *CatalogService {
	if mode != ModeColors {
		mode = ModeProducts
	}
	return &CatalogService{
		source:   strings.TrimRight(source, "/"),
		mode:     mode,
		client:   &http.Client{Timeout: 15 * time.Second},
		collator: collate.New(language.BrazilianPortuguese),
	}
}

// Mode returns the operating mode ("colors" or "products").
func (s *CatalogService) Mode() string { return s.mode }

// ColorsMode reports whether the service runs against the color catalog.
func (s *CatalogService) ColorsMode() bool { return s.mode == ModeColors }

// dataFile returns the JSON document name for the current mode.
func (s *CatalogService) dataFile() string {
	if s.mode == ModeColors {
		return "cores.json"
	}
	return "produtos.json"
}

// Load fetches and normalizes the catalog document. On any failure the
// catalog is left empty and the inline error message is recorded for the
// listing endpoint; the error is also returned so the caller can log it.
func (s *CatalogService) Load(ctx context.Context) error {
	raw, err := s.fetch(ctx)
	if err != nil {
		s.mu.Lock()
		s.entries = nil
		s.loadErr = loadErrorMessage
		s.mu.Unlock()
		log.Printf("❌ Load: Error loading %s: %v", s.dataFile(), err)
		return err
	}

	var rawEntries []models.RawEntry
	if err := json.Unmarshal(raw, &rawEntries); err != nil {
		s.mu.Lock()
		s.entries = nil
		s.loadErr = loadErrorMessage
		s.mu.Unlock()
		log.Printf("❌ Load: Error parsing %s: %v", s.dataFile(), err)
		return fmt.Errorf("failed to parse %s: %w", s.dataFile(), err)
	}

	entries := make([]models.CatalogEntry, 0, len(rawEntries))
	for i := range rawEntries {
		entries = append(entries, NormalizeEntry(&rawEntries[i]))
	}

	s.mu.Lock()
	s.entries = entries
	s.loadErr = ""
	s.mu.Unlock()

	log.Printf("✓ Load: Loaded %d entries from %s (mode=%s)", len(entries), s.dataFile(), s.mode)
	return nil
}

// fetch reads the catalog document from the configured source.
func (s *CatalogService) fetch(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(s.source, "http://") || strings.HasPrefix(s.source, "https://") {
		url := s.source + "/" + s.dataFile()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}

	path := filepath.Join(s.source, s.dataFile())
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// LoadError returns the inline error message from a failed load, or "".
func (s *CatalogService) LoadError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Entries returns a copy of the full catalog in source order.
func (s *CatalogService) Entries() []models.CatalogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CatalogEntry(nil), s.entries...)
}

// FindByID looks up an entry by id. A miss is not an error: callers treat
// it as "entry absent" and no-op.
func (s *CatalogService) FindByID(id string) (models.CatalogEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return models.CatalogEntry{}, false
}

// Filter returns the entries matching term (case-insensitive substring of
// name or description) and category ("" matches any; otherwise exact).
// The result is a fresh slice; the stored catalog is never mutated.
//
// In colors mode the filtered result is re-sorted so available entries
// precede unavailable ones, with locale-aware name order inside each group.
// Products mode keeps source order.
func (s *CatalogService) Filter(term, category string) []models.CatalogEntry {
	term = strings.ToLower(term)

	s.mu.RLock()
	filtered := make([]models.CatalogEntry, 0, len(s.entries))
	for _, e := range s.entries {
		matchTerm := strings.Contains(strings.ToLower(e.Name), term) ||
			strings.Contains(strings.ToLower(e.Description), term)
		matchCat := category == "" || e.Category == category
		if matchTerm && matchCat {
			filtered = append(filtered, e)
		}
	}
	s.mu.RUnlock()

	if s.mode == ModeColors {
		sort.SliceStable(filtered, func(i, j int) bool {
			a, b := filtered[i], filtered[j]
			if a.Available != b.Available {
				return a.Available
			}
			return s.collator.CompareString(a.Name, b.Name) < 0
		})
	}

	return filtered
}

// ApplyDriveImages fills in discovered image URLs for entries that shipped
// without any. Entries that already carry images are left untouched.
func (s *CatalogService) ApplyDriveImages(images map[string][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	applied := 0
	for i := range s.entries {
		if len(s.entries[i].Images) > 0 {
			continue
		}
		if imgs, ok := images[s.entries[i].ID]; ok && len(imgs) > 0 {
			s.entries[i].Images = append([]string(nil), imgs...)
			applied++
		}
	}
	if applied > 0 {
		log.Printf("✓ ApplyDriveImages: Filled images for %d entries from Drive", applied)
	}
}

// NormalizeEntry maps one raw catalog record into the canonical entry
// representation: the legacy singular "img" is wrapped into the image list,
// the display price is parsed into cents once, and availability is resolved
// through the classifier.
func NormalizeEntry(raw *models.RawEntry) models.CatalogEntry {
	images := raw.Images
	if len(images) == 0 && raw.Img != "" {
		images = []string{raw.Img}
	}

	return models.CatalogEntry{
		ID:          raw.ID,
		Name:        raw.Name,
		Description: raw.Desc,
		Category:    raw.Category,
		PriceText:   raw.Price,
		PriceCents:  utils.ParsePriceCents(raw.Price),
		Images:      append([]string(nil), images...),
		Hex:         raw.Hex,
		Material:    raw.Material,
		Available:   entryAvailable(raw),
		StatusText:  raw.Status,
	}
}

// entryAvailable decides whether a raw entry is available. First matching
// rule wins:
//  1. an explicit "available" field, coerced from bool true, "true", 1, "1";
//  2. a status text: unavailable iff it contains "indispon" (the substring
//     already covers the accented and unaccented spellings);
//  3. the price text, same substring rule;
//  4. otherwise available (missing or empty price included).
//
// A nil entry is unavailable. Every branch has a defined fallthrough; the
// classifier never panics on odd data.
func entryAvailable(raw *models.RawEntry) bool {
	if raw == nil {
		return false
	}

	if len(raw.Available) > 0 {
		return coerceFlag(raw.Available)
	}

	if raw.Status != "" {
		return !strings.Contains(strings.ToLower(raw.Status), "indispon")
	}

	if raw.Price != "" {
		return !strings.Contains(strings.ToLower(raw.Price), "indispon")
	}

	return true
}

// coerceFlag interprets the historically loose "available" JSON values.
// Only bool true, "true", "1" and the number 1 count as available.
func coerceFlag(raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "1"
	case float64:
		return t == 1
	default:
		return false
	}
}
