package postgres

import (
	"context"
	"database/sql"
	"time"

	"gopanel/domain/committee"
	"gopanel/domain/core"
	"gopanel/models"
	"gopanel/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ReviewRepositoryImpl implements ReviewRepository for PostgreSQL.
// The independent-scoring protocol lives here: score inserts hit a unique
// (review_id, expert_id, angle_id) constraint, and reads of a collecting
// session never include the score rows.
type ReviewRepositoryImpl struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new PostgreSQL review repository
func NewReviewRepository(db *sqlx.DB) ports.ReviewRepository {
	return &ReviewRepositoryImpl{db: db}
}

// CreateReview creates a new review session in the collecting state
func (r *ReviewRepositoryImpl) CreateReview(ctx context.Context, subject string, level committee.ReviewLevel, metadata map[string]interface{}) (*models.ReviewSession, error) {
	if _, err := level.Profile(); err != nil {
		return nil, err
	}
	session := models.NewReviewSession(uuid.New(), subject, level, metadata)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO review_sessions (id, subject, review_level, state, correlation_class, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, session.ID, session.Subject, session.Level, session.State, session.Correlation, session.Metadata, session.CreatedAt, session.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// GetReview retrieves a session by ID with scores redacted while collecting
func (r *ReviewRepositoryImpl) GetReview(ctx context.Context, reviewID uuid.UUID) (*models.ReviewSession, error) {
	session, err := r.getSession(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if err := r.loadExperts(ctx, session); err != nil {
		return nil, err
	}
	// Scores stay invisible until the session is decided
	if session.State == models.ReviewStateDecided {
		if err := r.loadScores(ctx, session); err != nil {
			return nil, err
		}
	}
	return session, nil
}

// GetReviewForAggregation retrieves a session with its full score set
func (r *ReviewRepositoryImpl) GetReviewForAggregation(ctx context.Context, reviewID uuid.UUID) (*models.ReviewSession, error) {
	session, err := r.getSession(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if err := r.loadExperts(ctx, session); err != nil {
		return nil, err
	}
	if err := r.loadScores(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// AddExpert registers an expert on a collecting session
func (r *ReviewRepositoryImpl) AddExpert(ctx context.Context, reviewID uuid.UUID, expert committee.Expert) error {
	if err := r.requireOpen(ctx, reviewID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO review_experts (review_id, id, domain_category, domain_weight, role_tier)
		VALUES ($1, $2, $3, $4, $5)
	`, reviewID, expert.ID, expert.Domain, expert.DomainWeight, expert.Tier)
	if err != nil {
		return err
	}
	return r.touch(ctx, reviewID, time.Now())
}

// SubmitScore inserts one write-once score entry
func (r *ReviewRepositoryImpl) SubmitScore(ctx context.Context, reviewID uuid.UUID, entry committee.ScoreEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if err := r.requireOpen(ctx, reviewID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO review_scores (review_id, expert_id, angle_id, raw_score, submitted_at)
		VALUES ($1, $2, $3, $4, NOW())
	`, reviewID, entry.ExpertID, entry.AngleID, entry.RawScore)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return core.ErrScoreAlreadySubmitted
		}
		return err
	}
	return nil
}

// MarkDecided transitions the session to decided and caches the result
func (r *ReviewRepositoryImpl) MarkDecided(ctx context.Context, reviewID uuid.UUID, resultJSON string, fingerprint string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE review_sessions
		SET state = $2, result_json = $3, fingerprint = $4, decided_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND state = $5
	`, reviewID, models.ReviewStateDecided, resultJSON, fingerprint, models.ReviewStateCollecting)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return core.ErrReviewAlreadyDecided
	}
	return nil
}

// ListReviews returns recent sessions, newest first, without score rows
func (r *ReviewRepositoryImpl) ListReviews(ctx context.Context, limit int) ([]*models.ReviewSession, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT id, subject, review_level, state, correlation_class, result_json, fingerprint, metadata, created_at, updated_at, decided_at
		FROM review_sessions
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]*models.ReviewSession, 0, limit)
	for rows.Next() {
		var s models.ReviewSession
		if err := rows.StructScan(&s); err != nil {
			return nil, err
		}
		sessions = append(sessions, &s)
	}
	return sessions, rows.Err()
}

func (r *ReviewRepositoryImpl) getSession(ctx context.Context, reviewID uuid.UUID) (*models.ReviewSession, error) {
	var session models.ReviewSession
	err := r.db.GetContext(ctx, &session, `
		SELECT id, subject, review_level, state, correlation_class, result_json, fingerprint, metadata, created_at, updated_at, decided_at
		FROM review_sessions
		WHERE id = $1
	`, reviewID)
	if err == sql.ErrNoRows {
		return nil, core.NewNotFoundError("review", reviewID.String())
	}
	if err != nil {
		return nil, err
	}
	session.Experts = make([]committee.Expert, 0)
	session.Scores = make([]committee.ScoreEntry, 0)
	return &session, nil
}

func (r *ReviewRepositoryImpl) loadExperts(ctx context.Context, session *models.ReviewSession) error {
	return r.db.SelectContext(ctx, &session.Experts, `
		SELECT id, domain_category, domain_weight, role_tier
		FROM review_experts
		WHERE review_id = $1
		ORDER BY id
	`, session.ID)
}

func (r *ReviewRepositoryImpl) loadScores(ctx context.Context, session *models.ReviewSession) error {
	return r.db.SelectContext(ctx, &session.Scores, `
		SELECT expert_id, angle_id, raw_score
		FROM review_scores
		WHERE review_id = $1
		ORDER BY expert_id, angle_id
	`, session.ID)
}

func (r *ReviewRepositoryImpl) requireOpen(ctx context.Context, reviewID uuid.UUID) error {
	var state models.ReviewState
	err := r.db.GetContext(ctx, &state, `SELECT state FROM review_sessions WHERE id = $1`, reviewID)
	if err == sql.ErrNoRows {
		return core.NewNotFoundError("review", reviewID.String())
	}
	if err != nil {
		return err
	}
	if state != models.ReviewStateCollecting {
		return core.ErrReviewAlreadyDecided
	}
	return nil
}

// touch keeps UpdatedAt honest after expert registration
func (r *ReviewRepositoryImpl) touch(ctx context.Context, reviewID uuid.UUID, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE review_sessions SET updated_at = $2 WHERE id = $1`, reviewID, at)
	return err
}
