package server

import (
	"net/http"
)

// GateHandler is the catch-all routing decision: the render service's own
// loopback fetch (print flag) and authenticated visitors get the full content
// page, everyone else gets the landing page. Requests for the content page's
// entry file land here too, so the static file server can never leak it.
func (s *Server) GateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("print") && isLoopbackRequest(r) {
			s.servePage(w, r, contentFile)
			return
		}

		if _, ok := s.sessionIdentity(r); ok {
			s.servePage(w, r, contentFile)
			return
		}

		s.servePage(w, r, landingFile)
	}
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request, fileName string) {
	if err := StreamFile(w, r, fileName); err != nil {
		logError(r.Method, r.URL.Path, err.Error())
		http.Error(w, "404 - Page Not Found", http.StatusNotFound)
	}
}
