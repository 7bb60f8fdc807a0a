package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"quiz-session-service/internal/app"
)

// NewRouter wires health, websocket and REST endpoints.
func NewRouter(service *app.QuizService, defaultBank string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ws", NewWSHandler(service, defaultBank).ServeWS)
	r.Route("/api", NewAPI(service, defaultBank).Routes)
	return r
}
