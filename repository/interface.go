package repository

import (
	"context"

	"vitrine-catalogo/models"
)

// ReviewRepositoryInterface defines the contract for the local review
// cache: one serialized review list per entry id, read back as an empty
// list on any kind of corruption.
type ReviewRepositoryInterface interface {
	GetReviews(ctx context.Context, entryID string) ([]models.Review, error)
	SaveReviews(ctx context.Context, entryID string, reviews []models.Review) error
}

// BannerRepositoryInterface defines the contract for the promotional banner
// collapsed/expanded state, keyed by session.
type BannerRepositoryInterface interface {
	GetCollapsed(ctx context.Context, sessionID string) (bool, error)
	SetCollapsed(ctx context.Context, sessionID string, collapsed bool) error
}
