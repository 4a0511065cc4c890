package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"vitrine-catalogo/models"
	"vitrine-catalogo/repository"
)

// ErrDuplicateSubmit is returned when an identical review arrives within
// the debounce window (two handlers racing on a double click).
var ErrDuplicateSubmit = errors.New("duplicate review submission")

// submitDebounce is the window inside which an identical (entry, rating,
// comment) submission is considered a duplicate click.
const submitDebounce = 2 * time.Second

// ReviewService is the review store adapter: reads prefer the remote
// mirror and fall back to the local cache, writes persist locally first and
// mirror remotely in the background. Nothing in here ever surfaces a
// storage failure to the caller as anything worse than an empty list.
type ReviewService struct {
	repo   repository.ReviewRepositoryInterface
	remote RemoteReviewStoreInterface

	now func() time.Time

	mu     sync.Mutex
	recent map[string]time.Time
}

// NewReviewService creates a new ReviewService. remote may be nil for
// local-only mode.
func NewReviewService(repo repository.ReviewRepositoryInterface, remote RemoteReviewStoreInterface) *ReviewService {
	return &ReviewService{
		repo:   repo,
		remote: remote,
		now:    time.Now,
		recent: make(map[string]time.Time),
	}
}

// remoteEnabled reports whether the mirror is configured and usable.
func (s *ReviewService) remoteEnabled() bool {
	return s.remote != nil && s.remote.Enabled()
}

// Load returns the reviews for an entry: remote document first, local
// cache on any remote failure, empty list on total failure. Never returns
// an error.
func (s *ReviewService) Load(ctx context.Context, entryID string) []models.Review {
	if s.remoteEnabled() {
		all, err := s.remote.LoadAll(ctx)
		if err == nil {
			if reviews, ok := all[entryID]; ok {
				return reviews
			}
			return []models.Review{}
		}
		log.Printf("⚠️  Load: Remote review fetch failed for entry=%s, falling back to cache: %v", entryID, err)
	}

	reviews, err := s.repo.GetReviews(ctx, entryID)
	if err != nil {
		log.Printf("⚠️  Load: Local review cache failed for entry=%s, returning empty: %v", entryID, err)
		return []models.Review{}
	}
	return reviews
}

// Submit builds a review from the form input, prepends it to the entry's
// list, persists locally (synchronously, best-effort) and then mirrors the
// result remotely in the background. The returned review reflects the
// local copy; the caller re-renders from it regardless of the mirror's
// fate.
func (s *ReviewService) Submit(ctx context.Context, entryID string, rating int, comment string, photos [][]byte) (models.Review, error) {
	if rating < 1 || rating > 5 {
		rating = 5
	}

	if s.isDuplicate(entryID, rating, comment) {
		log.Printf("⚠️  Submit: Dropping duplicate submission for entry=%s", entryID)
		return models.Review{}, ErrDuplicateSubmit
	}

	review := models.Review{
		Rating:  rating,
		Comment: comment,
		Photos:  PhotosToDataURLs(photos),
		Date:    s.now().UnixMilli(),
		Name:    "",
	}

	existing := s.Load(ctx, entryID)
	reviews := append([]models.Review{review}, existing...)

	// Local persistence always happens before the remote mirror starts.
	if err := s.repo.SaveReviews(ctx, entryID, reviews); err != nil {
		log.Printf("⚠️  Submit: Local persist failed for entry=%s: %v", entryID, err)
	}

	if s.remoteEnabled() {
		go s.mirror(entryID, reviews)
	}

	log.Printf("✅ Submit: Stored review for entry=%s (rating=%d, photos=%d)", entryID, rating, len(review.Photos))
	return review, nil
}

// mirror performs the fire-and-forget remote write: read the shared
// document, replace this entry's list, write it back. Failures are logged
// and the local copy stays the source of truth.
func (s *ReviewService) mirror(entryID string, reviews []models.Review) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	all, err := s.remote.LoadAll(ctx)
	if err != nil {
		log.Printf("⚠️  mirror: Could not read remote document for entry=%s: %v", entryID, err)
		all = map[string][]models.Review{}
	}
	all[entryID] = reviews

	message := fmt.Sprintf("Novo comentário para produto %s", entryID)
	if err := s.remote.SaveAll(ctx, all, message); err != nil {
		log.Printf("❌ mirror: Remote review write failed for entry=%s: %v", entryID, err)
		return
	}
	log.Printf("✓ mirror: Mirrored %d reviews for entry=%s", len(reviews), entryID)
}

// isDuplicate records the submission fingerprint and reports whether the
// same one was seen inside the debounce window.
func (s *ReviewService) isDuplicate(entryID string, rating int, comment string) bool {
	key := fmt.Sprintf("%s|%d|%s", entryID, rating, comment)
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if last, ok := s.recent[key]; ok && now.Sub(last) < submitDebounce {
		return true
	}
	s.recent[key] = now

	// Drop stale fingerprints so the table stays small.
	for k, t := range s.recent {
		if now.Sub(t) >= submitDebounce {
			delete(s.recent, k)
		}
	}
	return false
}
