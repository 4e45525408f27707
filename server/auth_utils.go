package server

import (
	"net"
	"net/http"
)

const (
	// accessCookieName is the cookie carrying the signed access token.
	accessCookieName = "sf_access"
)

// SetAccessCookie issues the signed access token as an HTTP-only,
// same-site-lax cookie for the configured session age.
func (s *Server) SetAccessCookie(w http.ResponseWriter, r *http.Request, tok string) {
	isSecure := getScheme(r) == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     accessCookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.config.GetSessionMaxAge().Seconds()),
	})
}

// ClearAccessCookie expires the access cookie immediately (Max-Age=0).
func (s *Server) ClearAccessCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// sessionIdentity returns the verified identity from the access cookie, if
// any. An absent, malformed or tampered cookie all yield ok=false.
func (s *Server) sessionIdentity(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(accessCookieName)
	if err != nil {
		return "", false
	}
	return s.codec.Verify(cookie.Value)
}

// isLoopbackRequest reports whether the request came from the local host.
// Only the connection's remote address counts. Client-supplied headers never
// grant loopback trust.
func isLoopbackRequest(r *http.Request) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
