package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/QTest-hq/qtest-studio/internal/db"
	"github.com/QTest-hq/qtest-studio/pkg/testcase"
)

// SaveModelRequest is the request body for saving a draft model
type SaveModelRequest struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	ProjectRoot string          `json:"project_root,omitempty"`
	Model       json.RawMessage `json:"model"`
}

// saveModel stores a draft; a known id replaces the stored draft
func (s *Server) saveModel(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "model storage not available")
		return
	}

	var req SaveModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(req.Model) == 0 || string(req.Model) == "null" {
		respondError(w, http.StatusBadRequest, "model is required")
		return
	}

	m, err := testcase.ParseJSON(req.Model)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	saved := &db.SavedModel{
		Name:        req.Name,
		ProjectRoot: req.ProjectRoot,
		ModelData:   req.Model,
	}
	if saved.ProjectRoot == "" {
		saved.ProjectRoot = m.ProjectRoot
	}
	if req.ID != "" {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid model ID")
			return
		}
		saved.ID = id
	}

	if err := s.store.SaveModel(r.Context(), saved); err != nil {
		log.Error().Err(err).Msg("failed to save model")
		respondError(w, http.StatusInternalServerError, "failed to save model")
		return
	}

	respondJSON(w, http.StatusCreated, saved)
}

// getModel returns a saved draft
func (s *Server) getModel(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "model storage not available")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "modelID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid model ID")
		return
	}

	m, err := s.store.GetModel(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("model_id", id.String()).Msg("failed to get model")
		respondError(w, http.StatusInternalServerError, "failed to get model")
		return
	}
	if m == nil {
		respondError(w, http.StatusNotFound, "model not found")
		return
	}

	respondJSON(w, http.StatusOK, m)
}
