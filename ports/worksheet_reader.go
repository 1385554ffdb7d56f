package ports

import (
	"gopanel/domain/committee"
)

// WorksheetReader ingests a committee worksheet file (xlsx or csv) into a
// validated review input set.
type WorksheetReader interface {
	// ReadReviewInput parses the worksheet and returns the assembled input.
	// Validation errors from the worksheet content surface unchanged.
	ReadReviewInput() (*committee.ReviewInput, error)
}
