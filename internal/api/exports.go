package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/QTest-hq/qtest-studio/internal/config"
	"github.com/QTest-hq/qtest-studio/internal/exporter"
	"github.com/QTest-hq/qtest-studio/internal/generator"
	"github.com/QTest-hq/qtest-studio/pkg/testcase"
)

// GenerateResponse is the API response for a generated document
type GenerateResponse struct {
	Category    string `json:"category"`
	Source      string `json:"source"`
	Formatted   bool   `json:"formatted"`
	FormatError string `json:"format_error,omitempty"`
}

// CreateExportRequest is the request body for writing a test file
type CreateExportRequest struct {
	FileName string          `json:"file_name"`
	Model    *testcase.Model `json:"model"`
}

// ExportResponse is the API response for a written test file
type ExportResponse struct {
	Path        string `json:"path"`
	Category    string `json:"category"`
	Source      string `json:"source"`
	Formatted   bool   `json:"formatted"`
	FormatError string `json:"format_error,omitempty"`
}

// CheckExportResponse tells whether a file name is free
type CheckExportResponse struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

func decodeModel(r *http.Request) (*testcase.Model, error) {
	m := &testcase.Model{}
	if err := json.NewDecoder(r.Body).Decode(m); err != nil {
		return nil, err
	}
	return m, nil
}

// generate renders a model without writing anything
func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	m, err := decodeModel(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid model")
		return
	}

	doc, err := s.gen.Generate(r.Context(), m)
	var formatErr *generator.FormatError
	if err != nil && !errors.As(err, &formatErr) {
		s.respondGenerationError(w, err)
		return
	}

	resp := GenerateResponse{
		Category:  string(doc.Category),
		Source:    doc.Source,
		Formatted: doc.Formatted,
	}
	if formatErr != nil {
		resp.FormatError = formatErr.Error()
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) exporterFor(root string) (*exporter.Exporter, error) {
	projCfg, err := config.LoadProjectConfig(root)
	if err != nil {
		return nil, err
	}

	opts := []exporter.Option{
		exporter.WithProjectConfig(projCfg),
		exporter.WithFileSystem(s.fs),
		exporter.WithNotifier(s.notifier),
	}
	if s.store != nil {
		opts = append(opts, exporter.WithHistory(s.store))
	}
	return exporter.New(opts...), nil
}

// checkExport reports whether the test file for a name already exists
func (s *Server) checkExport(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	root := s.projectRoot(r)

	exp, err := s.exporterFor(root)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	path, err := exp.CheckName(root, name)
	var collision *exporter.CollisionError
	switch {
	case errors.As(err, &collision):
		respondJSON(w, http.StatusOK, CheckExportResponse{Path: path, Exists: true})
	case errors.Is(err, exporter.ErrInvalidName):
		respondError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		log.Error().Err(err).Msg("failed to check export name")
		respondError(w, http.StatusInternalServerError, "failed to check file name")
	default:
		respondJSON(w, http.StatusOK, CheckExportResponse{Path: path, Exists: false})
	}
}

// createExport generates a model and writes it into the project
func (s *Server) createExport(w http.ResponseWriter, r *http.Request) {
	var req CreateExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Model == nil {
		respondError(w, http.StatusBadRequest, "model is required")
		return
	}
	if req.Model.ProjectRoot == "" {
		req.Model.ProjectRoot = s.projectRoot(r)
	}

	exp, err := s.exporterFor(req.Model.ProjectRoot)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := exp.Export(r.Context(), req.Model, req.FileName)
	if err != nil {
		s.respondGenerationError(w, err)
		return
	}

	resp := ExportResponse{
		Path:      res.Path,
		Category:  string(res.Document.Category),
		Source:    res.Content,
		Formatted: res.Document.Formatted,
	}
	if res.FormatErr != nil {
		resp.FormatError = res.FormatErr.Error()
	}
	respondJSON(w, http.StatusCreated, resp)
}

func (s *Server) respondGenerationError(w http.ResponseWriter, err error) {
	var formatErr *generator.FormatError
	switch {
	case errors.Is(err, exporter.ErrNameCollision):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, exporter.ErrInvalidName):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, generator.ErrNoActiveCategory),
		errors.Is(err, testcase.ErrDanglingReference),
		errors.As(err, &formatErr):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Error().Err(err).Msg("export failed")
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// listExports returns the export history
func (s *Server) listExports(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "history not available")
		return
	}

	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}
	offset := 0
	if o := r.URL.Query().Get("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	exports, err := s.store.ListExports(r.Context(), r.URL.Query().Get("root"), limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list exports")
		respondError(w, http.StatusInternalServerError, "failed to list exports")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"exports": exports,
		"count":   len(exports),
	})
}
