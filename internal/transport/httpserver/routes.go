package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"todo-app-go/internal/config"
	"todo-app-go/internal/transport/httpserver/handler"
	"todo-app-go/internal/transport/httpserver/middleware"
	"todo-app-go/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.NewRequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(middleware.NewCORS(cfg.CORSAllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)
		r.Get("/idle", handlers.Common.Idle)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", handlers.Todos.ListTasks)
			r.Post("/", handlers.Todos.CreateTask)
			r.Delete("/", handlers.Todos.DeleteAllTasks)
			r.Post("/refresh", handlers.Todos.RefreshTasks)
			r.Delete("/completed", handlers.Todos.ClearCompletedTasks)
			r.Get("/stats", handlers.Todos.TaskStats)

			r.Get("/{id}", handlers.Todos.GetTask)
			r.Put("/{id}", handlers.Todos.UpdateTask)
			r.Delete("/{id}", handlers.Todos.DeleteTask)
			r.Post("/{id}/complete", handlers.Todos.CompleteTask)
			r.Post("/{id}/activate", handlers.Todos.ActivateTask)
		})
	})

	return r
}
