package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lamalux/pricing/internal/core"
	"github.com/lamalux/pricing/internal/logging"
)

// handleQuote returns quotes for an exact configuration.
// All matching providers are returned; no match is a 404.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req core.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	quotes, err := s.service.GetQuote(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, quotes)
}

// handleCompare returns matching quotes ranked by price plus the
// cheapest option. An empty quote list is a valid 200 response.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req core.CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	comparison, err := s.service.CompareQuotes(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, comparison)
}

// handleHealth reports service status and the active dataset.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health, err := s.service.Health(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, health)
}

// handleOptions returns the filter values available in the active
// dataset for UI dropdowns.
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.service.ListOptions(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

// handleListDatasets returns the import history, newest first.
func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := s.service.ListDatasets(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, datasets)
}

// handleListProviders returns the provider reference entities.
func (s *Server) handleListProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := s.service.ListProviders(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, providers)
}

// handleImport accepts a multipart spreadsheet upload and imports it
// as a new dataset. Form fields: "file" (required), "name" (optional
// dataset label).
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.cfg.Import.MaxFileSize); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	if header.Size > s.cfg.Import.MaxFileSize {
		writeError(w, r, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file too large: exceeds %dMB limit", s.cfg.Import.MaxFileSize/(1024*1024)))
		return
	}

	// Imports may outrun the general request timeout on large sheets,
	// but must not run unbounded.
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Import.Timeout)
	defer cancel()

	result, err := s.service.Import(ctx, r.FormValue("name"), header.Filename, file)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("dataset imported",
		"dataset_id", result.DatasetID,
		"rows", result.Rows,
	)
	writeJSON(w, http.StatusCreated, result)
}

// handleSeed imports the generated demo dataset.
func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.Seed(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
