package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"time"

	"gopanel/domain/committee"

	"github.com/google/uuid"
)

// JSONBMap is a custom type for PostgreSQL JSONB columns that maps to map[string]interface{}
type JSONBMap map[string]interface{}

// Value implements driver.Valuer interface
func (j JSONBMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONBMap) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSONBMap)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*j = make(JSONBMap)
		return nil
	}

	if len(bytes) == 0 {
		*j = make(JSONBMap)
		return nil
	}

	result := make(JSONBMap)
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*j = result
	return nil
}

// ReviewState is the lifecycle state of a review session
type ReviewState string

const (
	// ReviewStateCollecting accepts write-once score submissions. Scores are
	// not readable by other experts in this state.
	ReviewStateCollecting ReviewState = "collecting"
	// ReviewStateDecided means aggregation has been triggered and the scores
	// are disclosed. No further submissions are accepted.
	ReviewStateDecided ReviewState = "decided"
)

// ReviewSession is one committee review: the subject under decision, the
// fixed level, the registered experts, and the collected scores. Expert and
// score records are created once and never mutated; the aggregation result
// is recomputed from them, and the stored copy is a render cache keyed by
// fingerprint, never a source of truth.
type ReviewSession struct {
	ID          uuid.UUID                  `json:"id" db:"id"`
	Subject     string                     `json:"subject" db:"subject"`
	Level       committee.ReviewLevel      `json:"review_level" db:"review_level"`
	State       ReviewState                `json:"state" db:"state"`
	Correlation committee.CorrelationClass `json:"correlation_class" db:"correlation_class"`

	Experts []committee.Expert     `json:"experts"` // Stored in review_experts
	Scores  []committee.ScoreEntry `json:"scores"`  // Stored in review_scores

	ResultJSON  sql.NullString `json:"-" db:"result_json"`
	Fingerprint string         `json:"fingerprint,omitempty" db:"fingerprint"`
	Metadata    JSONBMap       `json:"metadata" db:"metadata"`

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DecidedAt *time.Time `json:"decided_at,omitempty" db:"decided_at"`
}

// NewReviewSession creates a review session in the collecting state
func NewReviewSession(id uuid.UUID, subject string, level committee.ReviewLevel, metadata map[string]interface{}) *ReviewSession {
	now := time.Now()
	jsonbMetadata := JSONBMap(metadata)
	if jsonbMetadata == nil {
		jsonbMetadata = make(JSONBMap)
	}
	return &ReviewSession{
		ID:        id,
		Subject:   subject,
		Level:     level,
		State:     ReviewStateCollecting,
		Experts:   make([]committee.Expert, 0),
		Scores:    make([]committee.ScoreEntry, 0),
		Metadata:  jsonbMetadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsOpen reports whether the session still accepts score submissions
func (s *ReviewSession) IsOpen() bool {
	return s.State == ReviewStateCollecting
}

// ToReviewInput assembles the immutable input set for aggregation. A session
// without an explicit correlation class gets one derived from the committee's
// domain composition.
func (s *ReviewSession) ToReviewInput() *committee.ReviewInput {
	corr := s.Correlation
	if corr == "" {
		corr = committee.DeriveCorrelationClass(s.Experts)
	}
	return &committee.ReviewInput{
		Level:       s.Level,
		Experts:     s.Experts,
		Scores:      s.Scores,
		Correlation: corr,
	}
}
