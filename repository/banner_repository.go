package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"vitrine-catalogo/db"
)

// BannerRepository persists the promotional banner collapsed state per session
type BannerRepository struct{}

// NewBannerRepository creates a new BannerRepository
func NewBannerRepository() *BannerRepository {
	return &BannerRepository{}
}

// Ensure BannerRepository implements BannerRepositoryInterface
var _ BannerRepositoryInterface = (*BannerRepository)(nil)

// GetCollapsed returns the stored state for a session. Unknown sessions
// default to expanded (false).
func (r *BannerRepository) GetCollapsed(ctx context.Context, sessionID string) (bool, error) {
	query := `SELECT collapsed FROM banner_state WHERE session_id = $1`

	var collapsed bool
	err := db.DB.QueryRowContext(ctx, query, sessionID).Scan(&collapsed)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		log.Printf("❌ GetCollapsed: Error querying banner state for session=%s: %v", sessionID, err)
		return false, fmt.Errorf("failed to query banner state: %w", err)
	}
	return collapsed, nil
}

// SetCollapsed stores the state for a session.
func (r *BannerRepository) SetCollapsed(ctx context.Context, sessionID string, collapsed bool) error {
	query := `
		INSERT INTO banner_state (session_id, collapsed, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (session_id)
		DO UPDATE SET collapsed = EXCLUDED.collapsed, updated_at = now()
	`

	if _, err := db.DB.ExecContext(ctx, query, sessionID, collapsed); err != nil {
		log.Printf("❌ SetCollapsed: Error saving banner state for session=%s: %v", sessionID, err)
		return fmt.Errorf("failed to save banner state: %w", err)
	}
	return nil
}
