package ui

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gopanel/internal"
	"gopanel/internal/aggregate"
	"gopanel/internal/batch"
)

func newTestServer() *Server {
	log := internal.NewLogger(internal.LogLevelError)
	engine := aggregate.NewEngine(log)
	return NewServer(Config{
		Engine: engine,
		Batch:  batch.NewExecutor(engine, 4, log),
		Log:    log,
	})
}

const quickReviewJSON = `{
	"review_level": "L1",
	"experts": [
		{"id": "engineer", "domain_category": "build", "domain_weight": 0.9, "role_tier": "high"},
		{"id": "qa", "domain_category": "run", "domain_weight": 0.7, "role_tier": "medium"}
	],
	"scores": [
		{"expert_id": "engineer", "angle_id": "correctness", "raw_score": 5},
		{"expert_id": "qa", "angle_id": "correctness", "raw_score": 4}
	]
}`

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	newTestServer().Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
}

func TestHandleAggregate(t *testing.T) {
	rec := postJSON(t, newTestServer().Router(), "/api/aggregate", quickReviewJSON)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}

	var result struct {
		N             int     `json:"n"`
		WeightedMean  float64 `json:"weighted_mean"`
		EnhancedScore float64 `json:"enhanced_score"`
		Verdict       string  `json:"verdict"`
		Fingerprint   string  `json:"fingerprint"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.N != 2 || result.Verdict != "strong_approve" {
		t.Errorf("n=%d verdict=%s, want 2/strong_approve", result.N, result.Verdict)
	}
	if result.WeightedMean != 4.6 {
		t.Errorf("weighted mean %f, want 4.6", result.WeightedMean)
	}
	if result.Fingerprint == "" {
		t.Error("response missing fingerprint")
	}
}

func TestHandleAggregate_ValidationFailure(t *testing.T) {
	body := `{"review_level": "L1", "experts": [], "scores": []}`
	rec := postJSON(t, newTestServer().Router(), "/api/aggregate", body)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if payload["code"] != "VALIDATION_ERROR" {
		t.Errorf("code %q, want VALIDATION_ERROR", payload["code"])
	}
}

func TestHandleAggregate_MalformedJSON(t *testing.T) {
	rec := postJSON(t, newTestServer().Router(), "/api/aggregate", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}

func TestHandleAggregateBatch(t *testing.T) {
	// second slot is invalid: it must fail alone without poisoning the batch
	invalid := `{"review_level": "L9", "experts": [], "scores": []}`
	body := "[" + quickReviewJSON + "," + invalid + "]"

	rec := postJSON(t, newTestServer().Router(), "/api/aggregate/batch", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}

	var slots []struct {
		Index  int             `json:"index"`
		Result json.RawMessage `json:"result"`
		Error  string          `json:"error"`
		Code   string          `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &slots); err != nil {
		t.Fatalf("decode batch response: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2", len(slots))
	}
	if slots[0].Error != "" || len(slots[0].Result) == 0 {
		t.Errorf("slot 0 should succeed, got %+v", slots[0])
	}
	if slots[1].Code != "VALIDATION_ERROR" || len(slots[1].Result) != 0 {
		t.Errorf("slot 1 should fail validation, got %+v", slots[1])
	}
}

func TestHandleAggregateBatch_EmptyRejected(t *testing.T) {
	rec := postJSON(t, newTestServer().Router(), "/api/aggregate/batch", "[]")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}

// Without a configured review service the session routes must not exist
func TestSessionRoutesNotMounted(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/reviews/", nil)
	rec := httptest.NewRecorder()
	newTestServer().Router().ServeHTTP(rec, req)

	if rec.Code == http.StatusOK {
		t.Fatal("review routes should not be mounted without a review service")
	}
}
