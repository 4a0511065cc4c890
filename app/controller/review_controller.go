package controller

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"vitrine-catalogo/models"
	"vitrine-catalogo/service"
)

// maxReviewUploadBytes bounds the multipart form held in memory.
const maxReviewUploadBytes = 16 << 20

// ReviewController handles HTTP requests for entry reviews
type ReviewController struct {
	catalog *service.CatalogService
	reviews *service.ReviewService
}

// NewReviewController creates a new ReviewController
func NewReviewController(catalog *service.CatalogService, reviews *service.ReviewService) *ReviewController {
	return &ReviewController{
		catalog: catalog,
		reviews: reviews,
	}
}

// List handles GET /reviews/{entryId}
// Always answers with a list; remote or cache failures degrade to empty.
func (c *ReviewController) List(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListReviews: Received %s request to %s", r.Method, r.URL.Path)

	entryID := strings.TrimPrefix(r.URL.Path, "/reviews/")
	if entryID == "" {
		http.Error(w, "entry id is required", http.StatusBadRequest)
		return
	}

	writeJSON(w, models.ReviewListResponse{
		EntryID: entryID,
		Reviews: c.reviews.Load(r.Context(), entryID),
	})
}

// Submit handles POST /reviews/{entryId}
// Multipart form with fields "rating", "comment" and up to six "photos"
// files. The stored review is returned; the remote mirror runs in the
// background and never blocks the response.
func (c *ReviewController) Submit(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SubmitReview: Received %s request to %s", r.Method, r.URL.Path)

	entryID := strings.TrimPrefix(r.URL.Path, "/reviews/")
	if entryID == "" {
		http.Error(w, "entry id is required", http.StatusBadRequest)
		return
	}

	if _, ok := c.catalog.FindByID(entryID); !ok {
		http.Error(w, "Entry not found", http.StatusNotFound)
		return
	}

	if err := r.ParseMultipartForm(maxReviewUploadBytes); err != nil {
		log.Printf("❌ SubmitReview: Failed to parse form: %v", err)
		http.Error(w, fmt.Sprintf("Invalid form: %v", err), http.StatusBadRequest)
		return
	}

	rating, err := strconv.Atoi(r.FormValue("rating"))
	if err != nil {
		rating = 5
	}
	comment := r.FormValue("comment")

	photos, err := readPhotos(r)
	if err != nil {
		log.Printf("❌ SubmitReview: Failed to read photos: %v", err)
		http.Error(w, fmt.Sprintf("Failed to read photos: %v", err), http.StatusBadRequest)
		return
	}

	review, err := c.reviews.Submit(r.Context(), entryID, rating, comment, photos)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateSubmit) {
			http.Error(w, "Duplicate submission", http.StatusTooManyRequests)
			return
		}
		log.Printf("❌ SubmitReview: Error storing review: %v", err)
		http.Error(w, fmt.Sprintf("Failed to store review: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ SubmitReview: Stored review for entry=%s", entryID)
	writeJSON(w, review)
}

// readPhotos reads the uploaded photo files, at most MaxReviewPhotos of
// them.
func readPhotos(r *http.Request) ([][]byte, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	files := r.MultipartForm.File["photos"]
	if len(files) > service.MaxReviewPhotos {
		files = files[:service.MaxReviewPhotos]
	}

	photos := make([][]byte, 0, len(files))
	for _, header := range files {
		f, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", header.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", header.Filename, err)
		}
		photos = append(photos, data)
	}
	return photos, nil
}
