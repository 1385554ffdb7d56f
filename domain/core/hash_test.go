package core

import (
	"strings"
	"testing"
)

func TestComputeFingerprint_OrderIndependent(t *testing.T) {
	a := ComputeFingerprint("tables/1", []string{"level=L3", "score=a:x:4", "score=b:x:3"})
	b := ComputeFingerprint("tables/1", []string{"score=b:x:3", "level=L3", "score=a:x:4"})
	if a != b {
		t.Errorf("fingerprint depends on part order: %s vs %s", a, b)
	}
}

func TestComputeFingerprint_SensitiveToParts(t *testing.T) {
	base := ComputeFingerprint("tables/1", []string{"level=L3", "score=a:x:4"})
	changedScore := ComputeFingerprint("tables/1", []string{"level=L3", "score=a:x:5"})
	changedTables := ComputeFingerprint("tables/2", []string{"level=L3", "score=a:x:4"})

	if base == changedScore {
		t.Error("score change did not move the fingerprint")
	}
	if base == changedTables {
		t.Error("table version change did not move the fingerprint")
	}
}

func TestComputeFingerprint_DoesNotMutateInput(t *testing.T) {
	parts := []string{"z", "a", "m"}
	ComputeFingerprint("tables/1", parts)
	if parts[0] != "z" || parts[2] != "m" {
		t.Errorf("input slice reordered: %v", parts)
	}
}

func TestNewHash(t *testing.T) {
	h := NewHash([]byte("committee"))
	if len(h.String()) != 64 {
		t.Errorf("hash length %d, want 64 hex chars", len(h.String()))
	}
	if !strings.EqualFold(h.String(), NewHash([]byte("committee")).String()) {
		t.Error("hash not deterministic")
	}
	if h.Equals(NewHash([]byte("other"))) {
		t.Error("distinct inputs collide")
	}
}
