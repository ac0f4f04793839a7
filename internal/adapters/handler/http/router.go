package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(
	coupleHandler *CoupleHandler,
	tripHandler *TripHandler,
	notificationHandler *NotificationHandler,
	eventsHandler *EventsHandler,
	userHandler *UserHandler,
	authHandler *AuthHandler,
	authMiddleware *AuthMiddleware,
	allowedOrigins []string,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(corsMiddleware(allowedOrigins))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/google/callback", authHandler.GoogleCallback)
		r.Post("/refresh", authHandler.Refresh)
		r.Post("/logout", authHandler.Logout)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/me", userHandler.GetMe)

		r.Route("/couple", func(r chi.Router) {
			r.Get("/", coupleHandler.GetCouple)
			r.Get("/membership", coupleHandler.Membership)
			r.Delete("/membership", coupleHandler.Leave)
			r.Patch("/settings", coupleHandler.UpdateSettings)
			r.Get("/events", eventsHandler.Stream)

			r.Route("/invites", func(r chi.Router) {
				r.Post("/", coupleHandler.InvitePartner)
				r.Get("/pending", coupleHandler.PendingInvite)
				r.Get("/sent", coupleHandler.SentInvites)
				r.Post("/accept", coupleHandler.AcceptInvite)
				r.Delete("/{id}", coupleHandler.CancelInvite)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Post("/", notificationHandler.Create)
				r.Get("/", notificationHandler.List)
				r.Post("/read", notificationHandler.MarkRead)
			})
		})

		r.Route("/trips", func(r chi.Router) {
			r.Post("/", tripHandler.Create)
			r.Get("/", tripHandler.List)
			r.Get("/{id}", tripHandler.Get)
			r.Put("/{id}", tripHandler.Update)
			r.Patch("/{id}/status", tripHandler.SetStatus)
			r.Delete("/{id}", tripHandler.Delete)
		})
	})

	return r
}

func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	wildcard := false
	for _, o := range allowedOrigins {
		if o == "*" {
			wildcard = true
		}
		allowed[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (wildcard || allowed[origin]) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
