package routes

import (
	"net/http"

	"github.com/tricoghealth/intake-assistant/internal/api/handlers"
	"github.com/tricoghealth/intake-assistant/internal/api/middleware"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	chatHandler   *handlers.ChatHandler
	intakeHandler *handlers.IntakeHandler

	allowedOrigins string
}

// NewRouter creates a new router
func NewRouter(
	chatHandler *handlers.ChatHandler,
	intakeHandler *handlers.IntakeHandler,
	allowedOrigins string,
) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		chatHandler:    chatHandler,
		intakeHandler:  intakeHandler,
		allowedOrigins: allowedOrigins,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", r.intakeHandler.HealthCheck)

	// Admin endpoints
	r.mux.HandleFunc("GET /api/patients", r.intakeHandler.ListPatients)
	r.mux.HandleFunc("GET /api/patients/{sessionId}", r.intakeHandler.GetPatient)

	// Chat transport
	r.mux.HandleFunc("GET /ws/chat", r.chatHandler.HandleChat)

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)
	return handler
}
