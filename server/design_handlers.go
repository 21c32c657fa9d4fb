package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	errs "github.com/dripapps/canva-connect/internal/errors"
)

// ImportResult is the body of the import endpoint. Failures come back with a
// 200 status and Success=false; callers must check the body, not the status
// code, so a failed import can be rendered inline next to the design.
type ImportResult struct {
	Success  bool   `json:"success"`
	DesignID string `json:"designId"`
	ImageURL string `json:"imageUrl,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ListDesignsHandler returns the user's designs with import state overlaid.
func (s *Server) ListDesignsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.catalog.List(r.Context())
		if err != nil {
			log.Err(err).Msg("Failed to list designs")
			if errs.Is(err, errs.ErrNotAuthenticated) {
				http.Error(w, "not authenticated", http.StatusUnauthorized)
				return
			}
			http.Error(w, "failed to list designs", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, list)
	}
}

// GetDesignHandler returns a single design by id.
func (s *Server) GetDesignHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		designID := r.PathValue("designId")

		design, err := s.catalog.Get(r.Context(), designID)
		if err != nil {
			log.Err(err).Str("design_id", designID).Msg("Failed to get design")
			switch {
			case errs.Is(err, errs.ErrNotFound):
				http.Error(w, "design not found", http.StatusNotFound)
			case errs.Is(err, errs.ErrNotAuthenticated):
				http.Error(w, "not authenticated", http.StatusUnauthorized)
			default:
				http.Error(w, "failed to get design", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, design)
	}
}

// ImportDesignHandler runs the blocking export-poll-download pipeline for
// one design. May take tens of seconds; the export runner bounds it.
func (s *Server) ImportDesignHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		designID := r.PathValue("designId")
		log.Info().Str("design_id", designID).Msg("Importing design")

		imageURL, err := s.catalog.Import(r.Context(), designID)
		if err != nil {
			log.Err(err).Str("design_id", designID).Msg("Failed to import design")
			writeJSON(w, http.StatusOK, ImportResult{
				Success:  false,
				DesignID: designID,
				Error:    err.Error(),
			})
			return
		}

		writeJSON(w, http.StatusOK, ImportResult{
			Success:  true,
			DesignID: designID,
			ImageURL: imageURL,
		})
	}
}
