package models

import "encoding/json"

// RawEntry is a catalog record exactly as it appears in produtos.json or
// cores.json. Older records use the singular "img" field and infer
// availability from "status" or "price"; newer ones carry "images" and an
// explicit "available" flag (which historically has been written as a bool,
// a string or a number).
type RawEntry struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Desc      string          `json:"desc"`
	Category  string          `json:"category"`
	Price     string          `json:"price"`
	Images    []string        `json:"images"`
	Img       string          `json:"img"`
	Hex       string          `json:"hex"`
	Material  string          `json:"material"`
	Available json.RawMessage `json:"available"`
	Status    string          `json:"status"`
}

// CatalogEntry is the canonical in-memory representation. Every legacy
// shape is mapped into it once at ingestion: the image list is always a
// slice, the price is parsed into cents next to its display text, and
// availability is resolved up front. Entries are immutable for the session.
type CatalogEntry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	PriceText   string   `json:"priceText"`
	PriceCents  int64    `json:"priceCents"`
	Images      []string `json:"images"`
	Hex         string   `json:"hex,omitempty"`
	Material    string   `json:"material,omitempty"`
	Available   bool     `json:"available"`
	StatusText  string   `json:"status,omitempty"`
}

// Clone returns an independent copy of the entry. Cart lines must never
// alias catalog entries, so the image slice is copied as well.
func (e CatalogEntry) Clone() CatalogEntry {
	c := e
	c.Images = append([]string(nil), e.Images...)
	return c
}
