package core

import (
	"fmt"
	"strings"
)

// ID represents a domain identifier
type ID string

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types. Experts and angles are named by the caller
// (worksheet columns, API payloads), not generated.
type (
	ExpertID ID
	AngleID  ID
)

// String conversions for domain IDs
func (id ExpertID) String() string { return ID(id).String() }
func (id AngleID) String() string  { return ID(id).String() }

// ParseExpertID parses a string into ExpertID
func ParseExpertID(s string) (ExpertID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("expert ID cannot be empty")
	}
	return ExpertID(strings.TrimSpace(s)), nil
}

// ParseAngleID parses a string into AngleID
func ParseAngleID(s string) (AngleID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("angle ID cannot be empty")
	}
	return AngleID(strings.TrimSpace(s)), nil
}
