package service

import (
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
)

// writeCatalogFile drops a catalog document into a temp dir and returns the
// dir, ready to be used as a file source.
func writeCatalogFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	return dir
}

func TestLoadFromFile(t *testing.T) {
	dir := writeCatalogFile(t, "produtos.json", `[
		{"id": "p1", "name": "Anel", "desc": "Anel dourado", "price": "R$ 10,00", "img": "anel.jpg"},
		{"id": "p2", "name": "Colar", "desc": "Colar prata", "price": "R$ 25,50", "images": ["c1.jpg", "c2.jpg"]}
	]`)

	svc := NewCatalogService(dir, ModeProducts)
	require.NoError(t, svc.Load(context.Background()))

	entries := svc.Entries()
	require.Len(t, entries, 2)
	assert.Empty(t, svc.LoadError())

	// Legacy singular img is wrapped into the image list.
	assert.Equal(t, []string{"anel.jpg"}, entries[0].Images)
	assert.Equal(t, int64(1000), entries[0].PriceCents)
	assert.Equal(t, []string{"c1.jpg", "c2.jpg"}, entries[1].Images)
	assert.Equal(t, int64(2550), entries[1].PriceCents)
}

func TestLoadFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cores.json", r.URL.Path)
		w.Write([]byte(`[{"id": "c1", "name": "Azul", "hex": "#0000ff", "available": true}]`))
	}))
	defer server.Close()

	svc := NewCatalogService(server.URL, ModeColors)
	require.NoError(t, svc.Load(context.Background()))

	entries := svc.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Azul", entries[0].Name)
	assert.True(t, entries[0].Available)
}

func TestLoadFailureKeepsServing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewCatalogService(server.URL, ModeProducts)
	err := svc.Load(context.Background())
	require.Error(t, err)

	// The catalog keeps answering: empty list plus the inline error.
	assert.Empty(t, svc.Entries())
	assert.Equal(t, "Erro ao carregar dados. Verifique o console.", svc.LoadError())
}

func TestLoadMalformedDocument(t *testing.T) {
	dir := writeCatalogFile(t, "produtos.json", `{"not": "an array"}`)

	svc := NewCatalogService(dir, ModeProducts)
	require.Error(t, svc.Load(context.Background()))
	assert.Empty(t, svc.Entries())
	assert.NotEmpty(t, svc.LoadError())
}

func TestEntryAvailable(t *testing.T) {
	raw := func(s string) json.RawMessage { return json.RawMessage(s) }

	tests := []struct {
		name  string
		entry *models.RawEntry
		want  bool
	}{
		{"nil entry", nil, false},
		{"explicit bool true", &models.RawEntry{Available: raw(`true`)}, true},
		{"explicit bool false", &models.RawEntry{Available: raw(`false`)}, false},
		{"string true", &models.RawEntry{Available: raw(`"true"`)}, true},
		{"string one", &models.RawEntry{Available: raw(`"1"`)}, true},
		{"string yes is not truthy", &models.RawEntry{Available: raw(`"yes"`)}, false},
		{"number one", &models.RawEntry{Available: raw(`1`)}, true},
		{"number zero", &models.RawEntry{Available: raw(`0`)}, false},
		{"null flag is not truthy", &models.RawEntry{Available: raw(`null`)}, false},
		{"garbage flag", &models.RawEntry{Available: raw(`{`)}, false},
		{"status indisponível", &models.RawEntry{Status: "Indisponível"}, false},
		{"status indisponivel unaccented", &models.RawEntry{Status: "indisponivel"}, false},
		{"status anything else", &models.RawEntry{Status: "Em estoque"}, true},
		{"price indisponível", &models.RawEntry{Price: "Indisponível"}, false},
		{"price normal", &models.RawEntry{Price: "R$ 10,00"}, true},
		{"flag wins over status", &models.RawEntry{Available: raw(`true`), Status: "Indisponível"}, true},
		{"status wins over price", &models.RawEntry{Status: "Em estoque", Price: "Indisponível"}, true},
		{"nothing set defaults available", &models.RawEntry{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entryAvailable(tt.entry))
		})
	}
}

func TestFilter(t *testing.T) {
	dir := writeCatalogFile(t, "produtos.json", `[
		{"id": "p1", "name": "Anel dourado", "desc": "dourado fino", "category": "aneis", "price": "R$ 10"},
		{"id": "p2", "name": "Colar", "desc": "prata com pingente", "category": "colares", "price": "R$ 20"},
		{"id": "p3", "name": "Pulseira", "desc": "Dourada grossa", "category": "pulseiras", "price": "R$ 30"}
	]`)

	svc := NewCatalogService(dir, ModeProducts)
	require.NoError(t, svc.Load(context.Background()))

	t.Run("term matches name or description", func(t *testing.T) {
		got := svc.Filter("doura", "")
		require.Len(t, got, 2)
		assert.Equal(t, "p1", got[0].ID)
		assert.Equal(t, "p3", got[1].ID)
	})

	t.Run("category is exact", func(t *testing.T) {
		got := svc.Filter("", "colares")
		require.Len(t, got, 1)
		assert.Equal(t, "p2", got[0].ID)
	})

	t.Run("term and category combine", func(t *testing.T) {
		assert.Empty(t, svc.Filter("doura", "colares"))
	})

	t.Run("empty filter returns everything in source order", func(t *testing.T) {
		got := svc.Filter("", "")
		require.Len(t, got, 3)
		assert.Equal(t, "p1", got[0].ID)
		assert.Equal(t, "p3", got[2].ID)
	})

	t.Run("filtering is idempotent", func(t *testing.T) {
		first := svc.Filter("doura", "")
		second := svc.Filter("doura", "")
		assert.Equal(t, first, second)
	})

	t.Run("result does not alias the catalog", func(t *testing.T) {
		got := svc.Filter("", "")
		got[0].Name = "mutated"
		again := svc.Filter("", "")
		assert.Equal(t, "Anel dourado", again[0].Name)
	})
}

func TestColorsModeSortsAvailableFirst(t *testing.T) {
	dir := writeCatalogFile(t, "cores.json", `[
		{"id": "c1", "name": "Azul", "price": "Indisponível"},
		{"id": "c2", "name": "Vermelho", "price": "R$10"}
	]`)

	svc := NewCatalogService(dir, ModeColors)
	require.NoError(t, svc.Load(context.Background()))

	got := svc.Filter("", "")
	require.Len(t, got, 2)
	assert.Equal(t, "c2", got[0].ID)
	assert.True(t, got[0].Available)
	assert.Equal(t, "c1", got[1].ID)
	assert.False(t, got[1].Available)
}

func TestColorsModeSortsNamesWithinGroup(t *testing.T) {
	dir := writeCatalogFile(t, "cores.json", `[
		{"id": "c1", "name": "Verde", "available": true},
		{"id": "c2", "name": "Água", "available": true},
		{"id": "c3", "name": "Amarelo", "available": true},
		{"id": "c4", "name": "Cinza", "available": false}
	]`)

	svc := NewCatalogService(dir, ModeColors)
	require.NoError(t, svc.Load(context.Background()))

	got := svc.Filter("", "")
	require.Len(t, got, 4)
	// Locale-aware order: "Água" sorts with the A's, not after Z.
	assert.Equal(t, "Água", got[0].Name)
	assert.Equal(t, "Amarelo", got[1].Name)
	assert.Equal(t, "Verde", got[2].Name)
	assert.Equal(t, "Cinza", got[3].Name)
}

func TestApplyDriveImages(t *testing.T) {
	dir := writeCatalogFile(t, "produtos.json", `[
		{"id": "p1", "name": "Anel", "img": "original.jpg"},
		{"id": "p2", "name": "Colar"}
	]`)

	svc := NewCatalogService(dir, ModeProducts)
	require.NoError(t, svc.Load(context.Background()))

	svc.ApplyDriveImages(map[string][]string{
		"p1": {"drive1.jpg"},
		"p2": {"drive2.jpg", "drive3.jpg"},
	})

	e1, _ := svc.FindByID("p1")
	e2, _ := svc.FindByID("p2")
	// Entries with their own images are left alone.
	assert.Equal(t, []string{"original.jpg"}, e1.Images)
	assert.Equal(t, []string{"drive2.jpg", "drive3.jpg"}, e2.Images)
}

func TestFindByID(t *testing.T) {
	dir := writeCatalogFile(t, "produtos.json", `[{"id": "p1", "name": "Anel"}]`)

	svc := NewCatalogService(dir, ModeProducts)
	require.NoError(t, svc.Load(context.Background()))

	_, ok := svc.FindByID("p1")
	assert.True(t, ok)

	_, ok = svc.FindByID("missing")
	assert.False(t, ok)
}
