package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// API Routes
	RouteAPIVerify = "/api/verify"
	RouteAPILogout = "/api/logout"
	RouteAPIPDF    = "/api/pdf"
	RouteHealthz   = "/healthz"

	// Static Asset Routes (patterns)
	RouteStaticCSS    = "/css/{file}"
	RouteStaticJS     = "/js/{file}"
	RouteStaticImages = "/images/{file}"
)

const (
	// landingFile is the gated landing page served to unauthenticated visitors.
	landingFile = "index.html"
	// contentFile is the full content page. It is never served by the static
	// file routes: every request for it funnels through the gate decision.
	contentFile = "content.html"
)
