package service

import (
	"context"

	"vitrine-catalogo/models"
)

// RemoteReviewStoreInterface defines the contract for the remote review
// mirror: a single shared document mapping entry ids to review lists,
// read and written whole.
type RemoteReviewStoreInterface interface {
	// Enabled reports whether the remote store is configured. When false,
	// the review adapter runs in local-only mode.
	Enabled() bool
	// LoadAll fetches the full document. A missing document is an empty
	// map, not an error.
	LoadAll(ctx context.Context) (map[string][]models.Review, error)
	// SaveAll writes the full document back with a commit message.
	SaveAll(ctx context.Context, all map[string][]models.Review, message string) error
}
