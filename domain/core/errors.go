package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrReviewNotFound = fmt.Errorf("%w: review", ErrNotFound)
	ErrExpertNotFound = fmt.Errorf("%w: expert", ErrNotFound)

	// Validation errors
	ErrScoreOutOfRange   = errors.New("raw score outside [1,5]")
	ErrDuplicateScore    = errors.New("duplicate (expert, angle) score entry")
	ErrTooFewExperts     = errors.New("fewer than 2 distinct experts")
	ErrZeroWeights       = errors.New("all expert weights are zero")
	ErrNegativeWeight    = errors.New("negative expert weight")
	ErrUnknownLevel      = errors.New("unknown review level")
	ErrCommitteeTooLarge = errors.New("committee exceeds level maximum")

	// Configuration errors
	ErrUnknownDomain = errors.New("unknown domain category")

	// Protocol errors (independent-scoring)
	ErrScoreAlreadySubmitted = errors.New("score already submitted for this expert and angle")
	ErrReviewAlreadyDecided  = errors.New("review already decided")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewScoreRangeError(expertID, angleID string, score int) error {
	return fmt.Errorf("%w: expert %s angle %s scored %d", ErrScoreOutOfRange, expertID, angleID, score)
}

func NewDuplicateScoreError(expertID, angleID string) error {
	return fmt.Errorf("%w: expert %s angle %s", ErrDuplicateScore, expertID, angleID)
}

func NewUnknownDomainError(category string) error {
	return fmt.Errorf("%w: %q", ErrUnknownDomain, category)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrScoreOutOfRange) ||
		errors.Is(err, ErrDuplicateScore) ||
		errors.Is(err, ErrTooFewExperts) ||
		errors.Is(err, ErrZeroWeights) ||
		errors.Is(err, ErrNegativeWeight) ||
		errors.Is(err, ErrUnknownLevel) ||
		errors.Is(err, ErrCommitteeTooLarge)
}

func IsDomainError(err error) bool {
	return errors.Is(err, ErrUnknownDomain)
}

func IsProtocolError(err error) bool {
	return errors.Is(err, ErrScoreAlreadySubmitted) ||
		errors.Is(err, ErrReviewAlreadyDecided)
}
