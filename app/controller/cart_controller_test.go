package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine-catalogo/models"
	"vitrine-catalogo/service"
)

func newTestCartController(t *testing.T) *CartController {
	t.Helper()

	dir := t.TempDir()
	doc := `[
		{"id": "p1", "name": "Anel", "price": "R$ 50,00", "img": "anel.jpg"},
		{"id": "p05", "name": "Botão avulso", "price": "R$ 2,00"}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "produtos.json"), []byte(doc), 0o644))

	catalog := service.NewCatalogService(dir, service.ModeProducts)
	require.NoError(t, catalog.Load(context.Background()))

	return NewCartController(service.NewCartService(catalog, "p05", "5519988822112"))
}

func addItem(t *testing.T, c *CartController, session, entryID string, qty int) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(models.AddCartItemRequest{EntryID: entryID, Quantity: qty})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/cart/"+session+"/items", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	c.AddItem(rec, req)
	return rec
}

func TestAddItemEndpoint(t *testing.T) {
	c := newTestCartController(t)

	t.Run("adds a line", func(t *testing.T) {
		rec := addItem(t, c, "s1", "p1", 1)
		require.Equal(t, http.StatusOK, rec.Code)

		var line models.CartLine
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &line))
		assert.Equal(t, "p1", line.Entry.ID)
		assert.Equal(t, "50.00", line.Subtotal)
	})

	t.Run("unknown entry is 404", func(t *testing.T) {
		rec := addItem(t, c, "s1", "missing", 1)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing entry id is 400", func(t *testing.T) {
		rec := addItem(t, c, "s1", "", 1)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/cart/s1/items", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		c.AddItem(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetCartEndpoint(t *testing.T) {
	c := newTestCartController(t)
	addItem(t, c, "s1", "p1", 1)
	addItem(t, c, "s1", "p05", 3)

	req := httptest.NewRequest(http.MethodGet, "/cart/s1", nil)
	rec := httptest.NewRecorder()
	c.Get(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var cart models.CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	assert.Equal(t, 2, cart.Count)
	assert.Equal(t, "56.00", cart.Total)
}

func TestRemoveItemEndpoint(t *testing.T) {
	c := newTestCartController(t)
	addItem(t, c, "s1", "p1", 1)

	t.Run("non-numeric index is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/cart/s1/items/abc", nil)
		rec := httptest.NewRecorder()
		c.RemoveItem(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("out of range is a no-op", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/cart/s1/items/9", nil)
		rec := httptest.NewRecorder()
		c.RemoveItem(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var cart models.CartResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
		assert.Equal(t, 1, cart.Count)
	})

	t.Run("removes the line", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/cart/s1/items/0", nil)
		rec := httptest.NewRecorder()
		c.RemoveItem(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var cart models.CartResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
		assert.Equal(t, 0, cart.Count)
	})
}

func TestOrderLinkEndpoint(t *testing.T) {
	c := newTestCartController(t)

	t.Run("empty cart is 409", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cart/s1/order-link", nil)
		rec := httptest.NewRecorder()
		c.OrderLink(rec, req)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("returns message and link", func(t *testing.T) {
		addItem(t, c, "s1", "p1", 1)

		req := httptest.NewRequest(http.MethodGet, "/cart/s1/order-link", nil)
		rec := httptest.NewRecorder()
		c.OrderLink(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.OrderLinkResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Message, "- Anel")
		assert.Contains(t, resp.Link, "https://wa.me/5519988822112?text=")
	})
}
