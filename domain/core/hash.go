package core

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Fingerprint is a deterministic hash over an aggregation's complete input set.
// Identical inputs always produce identical fingerprints, which is what makes
// the recompute-on-demand lifecycle auditable.
type Fingerprint Hash

func (f Fingerprint) String() string { return Hash(f).String() }

// ComputeFingerprint hashes the canonical representation of a review's inputs.
// Parts are sorted so iteration order of the caller's collections cannot leak
// into the result.
func ComputeFingerprint(tableVersion string, parts []string) Fingerprint {
	sorted := make([]string, len(parts))
	copy(sorted, parts)
	sort.Strings(sorted)

	var data strings.Builder
	data.WriteString(tableVersion)
	for _, p := range sorted {
		data.WriteString("|")
		data.WriteString(p)
	}
	return Fingerprint(NewHash([]byte(data.String())))
}
