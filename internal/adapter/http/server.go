package adapthttp

import (
	"net/http"

	"internportal/internal/app"
	"internportal/internal/domain"
)

// Server is the driving HTTP adapter that routes requests to the client
// registry.
type Server struct {
	clients    *app.Registry
	cookies    *ClientCookies
	oidcConfig OIDCConfig
	webDir     string
}

// New creates a Server serving the clients of the registry.
func New(clients *app.Registry, cookies *ClientCookies, webDir string) *Server {
	return &Server{clients: clients, cookies: cookies, webDir: webDir}
}

// WithOIDC enables admin single sign-on.
func (s *Server) WithOIDC(cfg OIDCConfig) *Server {
	s.oidcConfig = cfg
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	api.HandleFunc("/config", s.handleConfig)

	api.HandleFunc("/login", s.handleLogin)
	api.HandleFunc("/logout", s.handleLogout)
	api.HandleFunc("/session", s.handleSession)
	api.HandleFunc("/navigate", s.handleNavigate)

	api.HandleFunc("/sso/login", s.handleSSOLogin)
	api.HandleFunc("/sso/callback", s.handleSSOCallback)

	admin := func(h http.HandlerFunc) http.Handler { return s.requireRole(domain.RoleAdmin, h) }
	api.Handle("/admin/stats", admin(s.handleAdminStats))
	api.Handle("/admin/candidates", admin(s.handleAdminCandidates))
	api.Handle("/admin/allocations", admin(s.handleAdminAllocations))
	api.Handle("/admin/allocations/run", admin(s.handleAdminRunAllocation))

	candidate := func(h http.HandlerFunc) http.Handler { return s.requireRole(domain.RoleCandidate, h) }
	api.Handle("/candidate/recommendations", candidate(s.handleRecommendations))
	api.Handle("/candidate/applications", candidate(s.handleApplications))
	api.Handle("/candidate/allotment", candidate(s.handleAllotment))
	api.Handle("/candidate/allotment/confirm", candidate(s.handleConfirmAllotment))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", s.withClient(api)))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
