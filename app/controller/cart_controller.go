package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"vitrine-catalogo/models"
	"vitrine-catalogo/service"
)

// CartController handles HTTP requests for session carts
type CartController struct {
	cart *service.CartService
}

// NewCartController creates a new CartController
func NewCartController(cart *service.CartService) *CartController {
	return &CartController{
		cart: cart,
	}
}

// cartPath splits "/cart/{session}/..." into the session id and the rest.
func cartPath(r *http.Request) (session string, rest string) {
	path := strings.TrimPrefix(r.URL.Path, "/cart/")
	parts := strings.SplitN(path, "/", 2)
	session = parts[0]
	if len(parts) > 1 {
		rest = parts[1]
	}
	return session, rest
}

// Get handles GET /cart/{session}
// Returns the cart lines with subtotals and the formatted total.
func (c *CartController) Get(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetCart: Received %s request to %s", r.Method, r.URL.Path)

	session, _ := cartPath(r)
	if session == "" {
		http.Error(w, "session id is required", http.StatusBadRequest)
		return
	}

	writeJSON(w, c.cart.Cart(session))
}

// AddItem handles POST /cart/{session}/items
// Example request: {"entryId": "p05", "quantity": 3}
// The quantity is honored only for the bulk entry id; everything else is
// fixed at 1.
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 AddItem: Received %s request to %s", r.Method, r.URL.Path)

	session, _ := cartPath(r)
	if session == "" {
		http.Error(w, "session id is required", http.StatusBadRequest)
		return
	}

	var req models.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ AddItem: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.EntryID) == "" {
		http.Error(w, "entryId is required", http.StatusBadRequest)
		return
	}

	line, err := c.cart.Add(session, req.EntryID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			http.Error(w, "Entry not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ AddItem: Error adding to cart: %v", err)
		http.Error(w, fmt.Sprintf("Failed to add to cart: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, line)
}

// RemoveItem handles DELETE /cart/{session}/items/{index}
// Removing an out-of-range index is a no-op; the remaining cart comes back
// either way.
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 RemoveItem: Received %s request to %s", r.Method, r.URL.Path)

	session, rest := cartPath(r)
	if session == "" {
		http.Error(w, "session id is required", http.StatusBadRequest)
		return
	}

	indexStr := strings.TrimPrefix(rest, "items/")
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		http.Error(w, "invalid line index", http.StatusBadRequest)
		return
	}

	c.cart.Remove(session, index)
	writeJSON(w, c.cart.Cart(session))
}

// OrderLink handles GET /cart/{session}/order-link
// Serializes the cart into the order message and the WhatsApp deep link.
// An empty cart is refused with 409.
func (c *CartController) OrderLink(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 OrderLink: Received %s request to %s", r.Method, r.URL.Path)

	session, _ := cartPath(r)
	if session == "" {
		http.Error(w, "session id is required", http.StatusBadRequest)
		return
	}

	link, err := c.cart.OrderLink(session)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			http.Error(w, "Cart is empty", http.StatusConflict)
			return
		}
		log.Printf("❌ OrderLink: Error building order link: %v", err)
		http.Error(w, fmt.Sprintf("Failed to build order link: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, link)
}
