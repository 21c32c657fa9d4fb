package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// ServeImageHandler serves imported PNGs from the upload directory.
// URL format: /images/{designId}.png
func (s *Server) ServeImageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := r.PathValue("filename")

		// The path value never contains a slash, but reject anything that
		// could still escape the upload directory.
		if filename != filepath.Base(filename) || strings.Contains(filename, "..") || !strings.HasSuffix(filename, ".png") {
			http.Error(w, "image not found", http.StatusNotFound)
			return
		}

		designID := strings.TrimSuffix(filename, ".png")

		path, ok := s.catalog.LocalImagePath(designID)
		if !ok {
			// Disk is the source of truth when the in-memory registry has no
			// entry, e.g. a file imported before a restart.
			path = filepath.Join(s.config.GetUploadDir(), filename)
		}

		if _, err := os.Stat(path); err != nil {
			log.Warn().Str("design_id", designID).Msg("Image not found")
			http.Error(w, "image not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		http.ServeFile(w, r, path)
	}
}
