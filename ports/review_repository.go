package ports

import (
	"context"

	"gopanel/domain/committee"
	"gopanel/models"

	"github.com/google/uuid"
)

// ReviewRepository defines the interface for review session persistence.
// Implementations must enforce the independent-scoring protocol at the
// storage layer: score inserts are write-once, and scores are not returned
// for sessions still in the collecting state except to the aggregation
// trigger itself.
type ReviewRepository interface {
	// CreateReview creates a new review session in the collecting state
	CreateReview(ctx context.Context, subject string, level committee.ReviewLevel, metadata map[string]interface{}) (*models.ReviewSession, error)

	// GetReview retrieves a session by ID. For collecting sessions the
	// returned scores are redacted.
	GetReview(ctx context.Context, reviewID uuid.UUID) (*models.ReviewSession, error)

	// GetReviewForAggregation retrieves a session with its full score set.
	// Only the aggregation trigger calls this.
	GetReviewForAggregation(ctx context.Context, reviewID uuid.UUID) (*models.ReviewSession, error)

	// AddExpert registers an expert on a collecting session
	AddExpert(ctx context.Context, reviewID uuid.UUID, expert committee.Expert) error

	// SubmitScore inserts one write-once score entry. A second submission for
	// the same (expert, angle) pair fails.
	SubmitScore(ctx context.Context, reviewID uuid.UUID, entry committee.ScoreEntry) error

	// MarkDecided transitions the session to decided and caches the rendered
	// result with its fingerprint.
	MarkDecided(ctx context.Context, reviewID uuid.UUID, resultJSON string, fingerprint string) error

	// ListReviews returns recent sessions, newest first
	ListReviews(ctx context.Context, limit int) ([]*models.ReviewSession, error)
}
