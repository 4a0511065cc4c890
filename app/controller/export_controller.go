package controller

import (
	"fmt"
	"log"
	"net/http"

	"vitrine-catalogo/service"
)

// ExportController handles the printable catalog sheet and its snapshots
type ExportController struct {
	export *service.ExportService
}

// NewExportController creates a new ExportController
func NewExportController(export *service.ExportService) *ExportController {
	return &ExportController{
		export: export,
	}
}

// Render handles GET /catalog/render?term=&category=
// Serves the printable HTML sheet that the snapshot endpoints navigate to.
func (c *ExportController) Render(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Render: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	html, err := c.export.RenderHTML(r.URL.Query().Get("term"), r.URL.Query().Get("category"))
	if err != nil {
		log.Printf("❌ Render: Error rendering catalog sheet: %v", err)
		http.Error(w, fmt.Sprintf("Failed to render catalog: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// ExportPDF handles GET /catalog/export/pdf?term=&category=
func (c *ExportController) ExportPDF(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ExportPDF: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	pdf, err := c.export.GeneratePDF(r.Context(), r.URL.Query().Get("term"), r.URL.Query().Get("category"))
	if err != nil {
		log.Printf("❌ ExportPDF: Error generating PDF: %v", err)
		http.Error(w, fmt.Sprintf("Failed to generate PDF: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ ExportPDF: Generated PDF (%d bytes)", len(pdf))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="catalogo.pdf"`)
	w.Write(pdf)
}

// ExportPNG handles GET /catalog/export/png?term=&category=
func (c *ExportController) ExportPNG(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ExportPNG: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	png, err := c.export.GeneratePNG(r.Context(), r.URL.Query().Get("term"), r.URL.Query().Get("category"))
	if err != nil {
		log.Printf("❌ ExportPNG: Error generating PNG: %v", err)
		http.Error(w, fmt.Sprintf("Failed to generate PNG: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ ExportPNG: Generated PNG (%d bytes)", len(png))
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="catalogo.png"`)
	w.Write(png)
}
