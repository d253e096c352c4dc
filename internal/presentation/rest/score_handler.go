package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/application/dto"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/application/usecase"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/model"
)

// maxBodyBytes bounds request bodies; batches are the largest payloads.
const maxBodyBytes = 8 << 20

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error     string `json:"error"`
	Attribute string `json:"attribute,omitempty"`
}

// ScoreHandler exposes scoring over HTTP/JSON.
type ScoreHandler struct {
	score  *usecase.ScoreFarmerUseCase
	batch  *usecase.ScoreBatchUseCase
	list   *usecase.ListScorecardsUseCase
	logger *slog.Logger
}

// NewScoreHandler creates a scoring HTTP handler.
func NewScoreHandler(
	score *usecase.ScoreFarmerUseCase,
	batch *usecase.ScoreBatchUseCase,
	list *usecase.ListScorecardsUseCase,
	logger *slog.Logger,
) *ScoreHandler {
	return &ScoreHandler{score: score, batch: batch, list: list, logger: logger}
}

// RegisterRoutes attaches the scoring routes to the given mux.
func (h *ScoreHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/scores", h.scoreOne)
	mux.HandleFunc("POST /api/v1/scores/batch", h.scoreBatch)
	mux.HandleFunc("GET /api/v1/scorecards", h.listScorecards)
}

func (h *ScoreHandler) scoreOne(w http.ResponseWriter, r *http.Request) {
	var req dto.ScoreRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := h.score.Execute(r.Context(), req)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ScoreHandler) scoreBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchScoreRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := h.batch.Execute(r.Context(), req)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ScoreHandler) listScorecards(w http.ResponseWriter, r *http.Request) {
	resp, err := h.list.Execute(r.Context())
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body: " + err.Error()})
		return false
	}
	return true
}

func (h *ScoreHandler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var attrErr *model.AttributeError
	switch {
	case errors.As(err, &attrErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Attribute: attrErr.Attribute})
	case errors.Is(err, model.ErrScorecardNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrEmptyBatch):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		h.logger.ErrorContext(ctx, "scoring request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
