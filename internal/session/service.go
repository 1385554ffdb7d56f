// Package session orchestrates the review lifecycle around the aggregation
// engine: expert registration, write-once score collection, and the decide
// trigger that discloses scores and computes the verdict.
package session

import (
	"context"
	"encoding/json"

	"gopanel/domain/committee"
	"gopanel/internal"
	"gopanel/internal/aggregate"
	"gopanel/internal/errors"
	"gopanel/internal/report"
	"gopanel/models"
	"gopanel/ports"

	"github.com/google/uuid"
)

// ReviewService coordinates the collection layer and the pure engine.
// The engine never sees a partially collected session: Decide assembles the
// complete input set first, and the repository enforces write-once scores.
type ReviewService struct {
	repo   ports.ReviewRepository
	engine *aggregate.Engine
	log    *internal.Logger
}

// NewReviewService creates a review service
func NewReviewService(repo ports.ReviewRepository, engine *aggregate.Engine, log *internal.Logger) *ReviewService {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &ReviewService{repo: repo, engine: engine, log: log}
}

// CreateReview opens a new collecting session at a fixed review level
func (s *ReviewService) CreateReview(ctx context.Context, subject string, level committee.ReviewLevel, metadata map[string]interface{}) (*models.ReviewSession, error) {
	session, err := s.repo.CreateReview(ctx, subject, level, metadata)
	if err != nil {
		return nil, errors.Categorize(err)
	}
	s.log.Info("review %s created: level=%s subject=%q", session.ID, level, subject)
	return session, nil
}

// RegisterExpert adds a committee member to a collecting session
func (s *ReviewService) RegisterExpert(ctx context.Context, reviewID uuid.UUID, expert committee.Expert) error {
	validated, err := committee.NewExpert(expert.ID, expert.Domain, expert.DomainWeight, expert.Tier)
	if err != nil {
		return errors.Categorize(err)
	}
	if err := s.repo.AddExpert(ctx, reviewID, validated); err != nil {
		return errors.Categorize(err)
	}
	return nil
}

// SubmitScore records one independent judgment. Submissions are write-once;
// the protocol forbids revision after disclosure, and the storage layer
// rejects duplicates.
func (s *ReviewService) SubmitScore(ctx context.Context, reviewID uuid.UUID, entry committee.ScoreEntry) error {
	if err := s.repo.SubmitScore(ctx, reviewID, entry); err != nil {
		return errors.Categorize(err)
	}
	return nil
}

// Decide triggers aggregation: the session's scores are disclosed, the full
// pipeline runs, and the session transitions to decided with the rendered
// result cached by fingerprint.
func (s *ReviewService) Decide(ctx context.Context, reviewID uuid.UUID) (*aggregate.Result, error) {
	session, err := s.repo.GetReviewForAggregation(ctx, reviewID)
	if err != nil {
		return nil, errors.Categorize(err)
	}
	if !session.IsOpen() {
		return s.cachedResult(session)
	}

	result, err := s.engine.Aggregate(session.ToReviewInput())
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode result")
	}
	if err := s.repo.MarkDecided(ctx, reviewID, string(payload), result.Fingerprint.String()); err != nil {
		return nil, errors.Categorize(err)
	}

	s.log.Info("review %s decided: verdict=%s enhanced=%.2f n=%d", reviewID, result.Verdict, result.EnhancedScore, result.N)
	return result, nil
}

// GetReview returns a session with scores redacted while collecting
func (s *ReviewService) GetReview(ctx context.Context, reviewID uuid.UUID) (*models.ReviewSession, error) {
	session, err := s.repo.GetReview(ctx, reviewID)
	if err != nil {
		return nil, errors.Categorize(err)
	}
	return session, nil
}

// ListReviews returns recent sessions, newest first
func (s *ReviewService) ListReviews(ctx context.Context, limit int) ([]*models.ReviewSession, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	sessions, err := s.repo.ListReviews(ctx, limit)
	if err != nil {
		return nil, errors.Categorize(err)
	}
	return sessions, nil
}

// RenderReport renders the decision worksheet for a decided session.
// The result is recomputed from the stored inputs, then checked against the
// cached fingerprint; a mismatch means the inputs were tampered with.
func (s *ReviewService) RenderReport(ctx context.Context, reviewID uuid.UUID, asHTML bool) ([]byte, error) {
	session, err := s.repo.GetReviewForAggregation(ctx, reviewID)
	if err != nil {
		return nil, errors.Categorize(err)
	}
	if session.IsOpen() {
		return nil, errors.New(errors.CodeProtocolError, "review not decided yet")
	}

	input := session.ToReviewInput()
	result, err := s.engine.Aggregate(input)
	if err != nil {
		return nil, err
	}
	if session.Fingerprint != "" && session.Fingerprint != result.Fingerprint.String() {
		return nil, errors.InternalError("stored fingerprint does not match recomputed inputs")
	}

	sheet := report.Worksheet{Subject: session.Subject, Input: input, Result: result}
	if asHTML {
		return report.RenderHTML(sheet), nil
	}
	return []byte(report.RenderMarkdown(sheet)), nil
}

func (s *ReviewService) cachedResult(session *models.ReviewSession) (*aggregate.Result, error) {
	if !session.ResultJSON.Valid {
		return nil, errors.InternalError("decided review has no cached result")
	}
	var result aggregate.Result
	if err := json.Unmarshal([]byte(session.ResultJSON.String), &result); err != nil {
		return nil, errors.Wrap(err, "failed to decode cached result")
	}
	return &result, nil
}
