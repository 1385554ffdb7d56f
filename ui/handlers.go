package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"gopanel/domain/committee"
	"gopanel/internal/errors"
)

// maxBatchSize caps one batch request; reviews beyond it belong in separate calls
const maxBatchSize = 256

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAggregate runs the full pipeline on a caller-assembled input set
func (s *Server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	var input committee.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, errors.InvalidInput("malformed review input: "+err.Error()))
		return
	}

	result, err := s.engine.Aggregate(&input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleAggregateBatch aggregates independent reviews concurrently.
// Per-review failures come back in their slot; the batch itself returns 200.
func (s *Server) handleAggregateBatch(w http.ResponseWriter, r *http.Request) {
	var inputs []*committee.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		writeError(w, errors.InvalidInput("malformed batch: "+err.Error()))
		return
	}
	if len(inputs) == 0 || len(inputs) > maxBatchSize {
		writeError(w, errors.InvalidInput("batch must contain 1 to 256 reviews"))
		return
	}

	outcomes := s.batch.Run(r.Context(), inputs)

	type slot struct {
		Index  int         `json:"index"`
		Result interface{} `json:"result,omitempty"`
		Error  string      `json:"error,omitempty"`
		Code   string      `json:"code,omitempty"`
	}
	out := make([]slot, len(outcomes))
	for i, o := range outcomes {
		out[i] = slot{Index: o.Index}
		if o.Err != nil {
			out[i].Error = o.Err.Error()
			out[i].Code = errors.GetCode(o.Err)
		} else {
			out[i].Result = o.Result
		}
	}
	writeJSON(w, http.StatusOK, out)
}

type createReviewRequest struct {
	Subject  string                 `json:"subject"`
	Level    string                 `json:"review_level"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.InvalidInput("malformed request: "+err.Error()))
		return
	}
	level, err := committee.ParseReviewLevel(req.Level)
	if err != nil {
		writeError(w, errors.Categorize(err))
		return
	}

	sessionModel, err := s.reviews.CreateReview(r.Context(), req.Subject, level, req.Metadata)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionModel)
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.reviews.ListReviews(r.Context(), 50)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := s.reviewID(w, r)
	if !ok {
		return
	}
	sessionModel, err := s.reviews.GetReview(r.Context(), reviewID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionModel)
}

func (s *Server) handleAddExpert(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := s.reviewID(w, r)
	if !ok {
		return
	}
	var expert committee.Expert
	if err := json.NewDecoder(r.Body).Decode(&expert); err != nil {
		writeError(w, errors.InvalidInput("malformed expert: "+err.Error()))
		return
	}
	if err := s.reviews.RegisterExpert(r.Context(), reviewID, expert); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expert)
}

func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := s.reviewID(w, r)
	if !ok {
		return
	}
	var entry committee.ScoreEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, errors.InvalidInput("malformed score entry: "+err.Error()))
		return
	}
	if err := s.reviews.SubmitScore(r.Context(), reviewID, entry); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "recorded"})
}

func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := s.reviewID(w, r)
	if !ok {
		return
	}
	result, err := s.reviews.Decide(r.Context(), reviewID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := s.reviewID(w, r)
	if !ok {
		return
	}
	asHTML := r.URL.Query().Get("format") == "html"

	body, err := s.reviews.RenderReport(r.Context(), reviewID, asHTML)
	if err != nil {
		writeError(w, err)
		return
	}
	if asHTML {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (s *Server) reviewID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "reviewID"))
	if err != nil {
		writeError(w, errors.InvalidInput("invalid review ID"))
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps the error taxonomy to HTTP statuses. Internal detail never
// leaks: the body carries the code and message only.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeValidationError, errors.CodeInvalidInput, errors.CodeConfigInvalid:
		status = http.StatusBadRequest
	case errors.CodeDomainError:
		status = http.StatusUnprocessableEntity
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeProtocolError:
		status = http.StatusConflict
	}

	writeJSON(w, status, map[string]string{
		"code":  code,
		"error": err.Error(),
	})
}
