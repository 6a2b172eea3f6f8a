package router

import (
	"net/http"

	"pet-care-log/internal/domain/activities"
	"pet-care-log/internal/domain/pets"
	"pet-care-log/internal/domain/reminders"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	Pets       *pets.Service
	Activities *activities.Service
	Reminders  *reminders.Service
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Rutas por módulo
	pets.RegisterRoutes(r, opts.Pets)
	activities.RegisterRoutes(r, opts.Activities)
	reminders.RegisterRoutes(r, opts.Reminders)

	return r
}
