package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"getitdone-backend/internal/handlers"
	"getitdone-backend/internal/middleware"
	"getitdone-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	focusSessionHandler *handlers.FocusSessionHandler,
	statsHandler *handlers.StatsHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── Focus Session Routes ────
		r.Route("/focus-sessions", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", focusSessionHandler.Record)
			r.Get("/", focusSessionHandler.List)
		})

		// ──── Statistics Routes ────
		r.Route("/stats", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/total", statsHandler.Total)
			r.Get("/weekly", statsHandler.Weekly)
			r.Get("/streak", statsHandler.Streak)
		})

		// Combined statistics (single snapshot read)
		r.Group(func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/statistics", statsHandler.Statistics)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
