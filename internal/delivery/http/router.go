package http

import (
	"log/slog"
	"net/http"

	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
	"campusevents/internal/metrics"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Events        *controllers.EventController
	Auth          *controllers.AuthController
	Announcements *controllers.AnnouncementController
	Health        *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers) *http.ServeMux {
	mux := http.NewServeMux()
	admin := middleware.RequireAdmin

	// Events
	mux.HandleFunc("GET /events", c.Events.ListEvents)
	mux.HandleFunc("GET /events/previous", c.Events.PreviousEvents)
	mux.HandleFunc("GET /events/{id}", c.Events.GetEvent)
	mux.HandleFunc("POST /events/{id}/like", c.Events.LikeEvent)
	mux.HandleFunc("POST /events", admin(c.Events.CreateEvent))
	mux.HandleFunc("PUT /events/{id}", admin(c.Events.UpdateEvent))
	mux.HandleFunc("DELETE /events/{id}", admin(c.Events.DeleteEvent))

	// Dashboard
	mux.HandleFunc("GET /dashboard/stats", admin(c.Events.Stats))
	mux.HandleFunc("POST /announcements", admin(c.Announcements.Create))

	// Auth
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("POST /auth/logout", c.Auth.Logout)
	mux.HandleFunc("GET /auth/me", c.Auth.Me)

	// Operations
	mux.HandleFunc("GET /health", c.Health.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with the middleware chain, outermost first:
// CORS, request logging, session resolution, then metrics. Metrics must wrap the
// mux directly so it sees the request carrying the matched pattern.
func NewHandler(logger *slog.Logger, auth domain.AuthService, allowedOrigins []string, c Controllers) http.Handler {
	var handler http.Handler = NewRouter(c)
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.Session(auth, handler)
	handler = middleware.LoggingMiddleware(logger, handler)
	return middleware.CORS(allowedOrigins, handler)
}
