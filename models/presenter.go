package models

// Card represents one entry projected for the catalog grid.
// Badge carries the price text (or availability label) in colors mode and
// the uppercased material tag in general mode.
type Card struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Badge       string   `json:"badge,omitempty"`
	Images      []string `json:"images"`
	Available   bool     `json:"available"`
	ShareURL    string   `json:"shareUrl"`
}

// CatalogResponse is the payload for GET /catalog.
// Example response:
// {
//   "mode": "colors",
//   "items": [{"id": "p2", "title": "Vermelho", "badge": "R$10", ...}],
//   "error": ""
// }
type CatalogResponse struct {
	Mode  string `json:"mode"`
	Items []Card `json:"items"`
	Error string `json:"error,omitempty"`
}

// ModalView is the detail payload shown when a card is opened. ImageIndex
// is the carousel cursor for the requesting session, reset to 0 on open.
type ModalView struct {
	Entry            CatalogEntry `json:"entry"`
	ImageIndex       int          `json:"imageIndex"`
	ShowSwatch       bool         `json:"showSwatch"`
	QuantityEditable bool         `json:"quantityEditable"`
	Quantity         int          `json:"quantity"`
	ShortDescription string       `json:"shortDescription"`
	Truncated        bool         `json:"truncated"`
	ShowMoreControl  bool         `json:"showMoreControl"`
	ShareURL         string       `json:"shareUrl"`
	Reviews          []Review     `json:"reviews"`
}

// CarouselResponse reports the cursor position after a navigation step.
type CarouselResponse struct {
	EntryID    string `json:"entryId"`
	ImageIndex int    `json:"imageIndex"`
	Image      string `json:"image"`
}

// ShareResponse carries the deep link URL for an entry.
type ShareResponse struct {
	EntryID string `json:"entryId"`
	URL     string `json:"url"`
}
