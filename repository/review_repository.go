package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"vitrine-catalogo/db"
	"vitrine-catalogo/models"
)

// ReviewRepository handles database operations for the local review cache
type ReviewRepository struct{}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

// Ensure ReviewRepository implements ReviewRepositoryInterface
var _ ReviewRepositoryInterface = (*ReviewRepository)(nil)

// GetReviews returns the cached review list for an entry. A missing row or
// a corrupt payload both come back as an empty list: the cache must never
// fail the caller over bad persisted data.
func (r *ReviewRepository) GetReviews(ctx context.Context, entryID string) ([]models.Review, error) {
	query := `SELECT payload FROM entry_reviews WHERE entry_id = $1`

	var payload []byte
	err := db.DB.QueryRowContext(ctx, query, entryID).Scan(&payload)
	if err == sql.ErrNoRows {
		return []models.Review{}, nil
	}
	if err != nil {
		log.Printf("❌ GetReviews: Error querying reviews for entry_id=%s: %v", entryID, err)
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}

	var reviews []models.Review
	if err := json.Unmarshal(payload, &reviews); err != nil {
		log.Printf("⚠️  GetReviews: Corrupt payload for entry_id=%s, treating as empty: %v", entryID, err)
		return []models.Review{}, nil
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

// SaveReviews replaces the cached review list for an entry.
func (r *ReviewRepository) SaveReviews(ctx context.Context, entryID string, reviews []models.Review) error {
	payload, err := json.Marshal(reviews)
	if err != nil {
		return fmt.Errorf("failed to serialize reviews: %w", err)
	}

	query := `
		INSERT INTO entry_reviews (entry_id, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (entry_id)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
	`

	if _, err := db.DB.ExecContext(ctx, query, entryID, payload); err != nil {
		log.Printf("❌ SaveReviews: Error saving reviews for entry_id=%s: %v", entryID, err)
		return fmt.Errorf("failed to save reviews: %w", err)
	}

	return nil
}
