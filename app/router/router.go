package router

import (
	"net/http"
	"strings"

	"vitrine-catalogo/app/controller"
)

type Controllers struct {
	Catalog *controller.CatalogController
	Cart    *controller.CartController
	Review  *controller.ReviewController
	Banner  *controller.BannerController
	Export  *controller.ExportController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Catalog routes
	// Filtered card list
	http.HandleFunc("/catalog", controllers.Catalog.List)

	// Deep-link resolution (?product=ID)
	http.HandleFunc("/catalog/open", controllers.Catalog.Open)

	// Printable sheet and snapshots
	http.HandleFunc("/catalog/render", controllers.Export.Render)
	http.HandleFunc("/catalog/export/pdf", controllers.Export.ExportPDF)
	http.HandleFunc("/catalog/export/png", controllers.Export.ExportPNG)

	// Catalog entry routes (must be after the fixed paths above)
	http.HandleFunc("/catalog/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/catalog/")

		// Route to specific actions first
		if strings.HasSuffix(path, "/share") {
			controllers.Catalog.Share(w, r)
			return
		}
		if strings.HasSuffix(path, "/carousel") {
			controllers.Catalog.Carousel(w, r)
			return
		}

		// Otherwise, treat as GET /catalog/:id
		controllers.Catalog.Get(w, r)
	})

	// Cart routes, keyed by client session
	http.HandleFunc("/cart/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/cart/")

		if strings.HasSuffix(path, "/order-link") && r.Method == http.MethodGet {
			controllers.Cart.OrderLink(w, r)
			return
		}
		// Handle DELETE /cart/:session/items/:index
		if strings.Contains(path, "/items/") && r.Method == http.MethodDelete {
			controllers.Cart.RemoveItem(w, r)
			return
		}
		// Handle POST /cart/:session/items
		if strings.HasSuffix(path, "/items") && r.Method == http.MethodPost {
			controllers.Cart.AddItem(w, r)
			return
		}

		// Otherwise, treat as GET /cart/:session
		if r.Method == http.MethodGet && !strings.Contains(path, "/") {
			controllers.Cart.Get(w, r)
			return
		}

		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	// Review routes - handles both GET (list) and POST (submit)
	http.HandleFunc("/reviews/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Review.List(w, r)
		} else if r.Method == http.MethodPost {
			controllers.Review.Submit(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Banner collapsed-state routes - handles both GET and PUT
	http.HandleFunc("/banner/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Banner.Get(w, r)
		} else if r.Method == http.MethodPut {
			controllers.Banner.Put(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
}
