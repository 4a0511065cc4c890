package models

// CartLine is a snapshot of a catalog entry plus a quantity. The entry is a
// deep copy taken at add time, so later catalog mutations never leak into
// the cart.
type CartLine struct {
	Entry         CatalogEntry `json:"entry"`
	Quantity      int          `json:"quantity"`
	SubtotalCents int64        `json:"subtotalCents"`
	Subtotal      string       `json:"subtotal"`
}

// CartResponse represents the full cart for a session.
// Example response:
// {
//   "lines": [{"entry": {...}, "quantity": 2, "subtotal": "20.00"}],
//   "count": 1,
//   "totalCents": 2000,
//   "total": "20.00"
// }
type CartResponse struct {
	Lines      []CartLine `json:"lines"`
	Count      int        `json:"count"`
	TotalCents int64      `json:"totalCents"`
	Total      string     `json:"total"`
}

// AddCartItemRequest is the body for POST /cart/{session}/items.
// Example: {"entryId": "p05", "quantity": 3}
type AddCartItemRequest struct {
	EntryID  string `json:"entryId"`
	Quantity int    `json:"quantity"`
}

// OrderLinkResponse carries the serialized order message and the WhatsApp
// deep link that hands it off.
type OrderLinkResponse struct {
	Message string `json:"message"`
	Link    string `json:"link"`
}
