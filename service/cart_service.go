package service

import (
	"errors"
	"log"
	"sync"

	"vitrine-catalogo/models"
	"vitrine-catalogo/utils"
)

// Cart errors surfaced to controllers.
var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrEmptyCart     = errors.New("cart is empty")
)

// CartService keeps one cart ledger per session, in memory only. Carts are
// ordered lists of deep-copied entries; nothing survives a restart, by
// contract.
type CartService struct {
	catalog     *CatalogService
	bulkEntryID string
	phone       string

	mu    sync.Mutex
	carts map[string][]models.CartLine
}

// NewCartService creates a new CartService. phone is the WhatsApp number
// that receives orders.
func NewCartService(catalog *CatalogService, bulkEntryID, phone string) *CartService {
	return &CartService{
		catalog:     catalog,
		bulkEntryID: bulkEntryID,
		carts:       make(map[string][]models.CartLine),
		phone:       phone,
	}
}

// Add appends a line for the given entry. The entry is deep-copied so the
// cart never aliases the catalog. Quantity is clamped to at least 1, and
// only the bulk entry id may keep a quantity above 1.
func (s *CartService) Add(sessionID, entryID string, qty int) (models.CartLine, error) {
	entry, ok := s.catalog.FindByID(entryID)
	if !ok {
		log.Printf("⚠️  Add: Entry not found: id=%s", entryID)
		return models.CartLine{}, ErrEntryNotFound
	}

	if qty < 1 {
		qty = 1
	}
	if entryID != s.bulkEntryID {
		qty = 1
	}

	line := models.CartLine{
		Entry:    entry.Clone(),
		Quantity: qty,
	}
	line.SubtotalCents = int64(qty) * entry.PriceCents
	line.Subtotal = utils.FormatCents2(line.SubtotalCents)

	s.mu.Lock()
	s.carts[sessionID] = append(s.carts[sessionID], line)
	count := len(s.carts[sessionID])
	s.mu.Unlock()

	log.Printf("✅ Add: session=%s entry=%s qty=%d (cart size=%d)", sessionID, entryID, qty, count)
	return line, nil
}

// Remove deletes the line at index; later lines shift down. An
// out-of-range index is a no-op.
func (s *CartService) Remove(sessionID string, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.carts[sessionID]
	if index < 0 || index >= len(cart) {
		return
	}
	s.carts[sessionID] = append(cart[:index], cart[index+1:]...)
}

// Cart returns the session's cart with per-line subtotals and the total
// formatted to two decimal places.
func (s *CartService) Cart(sessionID string) models.CartResponse {
	s.mu.Lock()
	cart := append([]models.CartLine(nil), s.carts[sessionID]...)
	s.mu.Unlock()

	var total int64
	for i := range cart {
		cart[i].SubtotalCents = int64(cart[i].Quantity) * cart[i].Entry.PriceCents
		cart[i].Subtotal = utils.FormatCents2(cart[i].SubtotalCents)
		total += cart[i].SubtotalCents
	}

	return models.CartResponse{
		Lines:      cart,
		Count:      len(cart),
		TotalCents: total,
		Total:      utils.FormatCents2(total),
	}
}

// OrderLink serializes the cart into the order message and wraps it in a
// WhatsApp deep link. Sending an empty cart is refused.
func (s *CartService) OrderLink(sessionID string) (models.OrderLinkResponse, error) {
	s.mu.Lock()
	cart := append([]models.CartLine(nil), s.carts[sessionID]...)
	s.mu.Unlock()

	if len(cart) == 0 {
		return models.OrderLinkResponse{}, ErrEmptyCart
	}

	lines := make([]string, 0, len(cart))
	for _, l := range cart {
		lines = append(lines, utils.OrderLineText(l.Entry.Name, l.Quantity))
	}
	message := utils.OrderMessage(lines)

	return models.OrderLinkResponse{
		Message: message,
		Link:    utils.WhatsAppLink(s.phone, message),
	}, nil
}
