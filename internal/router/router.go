package router

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/starwave-dev/starboard/internal/middleware"
	"github.com/starwave-dev/starboard/internal/middleware/metrics"
	"github.com/starwave-dev/starboard/internal/setup"
)

// New creates and configures the router for both the rendered board
// and the JSON API.
func New(deps *setup.Dependencies) *mux.Router {
	r := mux.NewRouter()

	// Enable gzip compression for all responses
	r.Use(handlers.CompressHandler)

	// Pages render inline styles; no external scripts are loaded
	csp := "default-src 'self'; style-src 'self' 'unsafe-inline'; frame-ancestors 'none'"
	r.Use(mw.SecurityHeadersWithCSP(deps.Config.Public.SecureCookies, csp))

	r.Use(metrics.Middleware)
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	h := deps.Handler
	authMw := deps.AuthMiddleware

	// Auth pages
	r.HandleFunc("/login", h.LoginGetHandler).Methods("GET")
	r.HandleFunc("/login", h.LoginPostHandler).Methods("POST")
	r.HandleFunc("/signup", h.RegisterGetHandler).Methods("GET")
	r.HandleFunc("/signup", h.RegisterPostHandler).Methods("POST")
	r.HandleFunc("/logout", h.LogoutHandler).Methods("POST")

	// Moderator application (open to anyone)
	r.HandleFunc("/apply", h.ApplyGetHandler).Methods("GET")
	r.HandleFunc("/apply", h.ApplyPostHandler).Methods("POST")

	// Board: reading is public, posting needs a session and browsers
	// get redirected to login instead of a bare 401
	needLogin := authMw.RedirectToLogin(authMw.NeedAuth())
	r.Handle("/", authMw.OptionalAuth()(http.HandlerFunc(h.BoardGetHandler))).Methods("GET")
	r.Handle("/", needLogin(http.HandlerFunc(h.BoardPostHandler))).Methods("POST")

	r.Handle("/dashboard", needLogin(http.HandlerFunc(h.DashboardHandler))).Methods("GET")

	// JSON API: the feed is public read; create is the only
	// access-controlled surface and answers 401 JSON-side
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(handlers.CORS(
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	))
	apiRouter.HandleFunc("/announcements/", h.FeedHandler).Methods("GET")
	apiRouter.Handle("/announcements/create/", authMw.NeedAuth()(http.HandlerFunc(h.CreateAnnouncementHandler))).Methods("POST")

	return r
}
