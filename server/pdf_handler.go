package server

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

const pdfFilename = "site.pdf"

// PDFHandler renders the full content page to a PDF. Allowed for loopback
// callers and for visitors carrying a valid access cookie; everyone else is
// turned away before the renderer is touched.
func (s *Server) PDFHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !isLoopbackRequest(r) {
			if _, ok := s.sessionIdentity(r); !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
		}

		// The renderer fetches through loopback with the print flag so the
		// gate serves it the full content page.
		printURL := fmt.Sprintf("http://127.0.0.1%s/?print=1", s.config.GetPort())

		data, err := s.renderer.Render(r.Context(), printURL)
		if err != nil {
			log.Err(err).Msg("pdf export failed")
			http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdfFilename))
		_, _ = w.Write(data)
	}
}
