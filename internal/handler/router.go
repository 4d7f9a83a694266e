package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// StoreChecker is the health probe dependency on the persistent store.
type StoreChecker interface {
	Ping(ctx context.Context) error
}

// Router wires the todovault HTTP API.
type Router struct {
	accountHandler *AccountHandler
	taskHandler    *TaskHandler
	middleware     *Middleware
	store          StoreChecker
	logger         zerolog.Logger
}

// RouterConfig contains configuration for the router.
type RouterConfig struct {
	AccountHandler *AccountHandler
	TaskHandler    *TaskHandler
	Middleware     *Middleware
	Store          StoreChecker
	Logger         zerolog.Logger
}

// NewRouter creates a new Router.
func NewRouter(cfg RouterConfig) *Router {
	return &Router{
		accountHandler: cfg.AccountHandler,
		taskHandler:    cfg.TaskHandler,
		middleware:     cfg.Middleware,
		store:          cfg.Store,
		logger:         cfg.Logger.With().Str("component", "router").Logger(),
	}
}

// Handler returns the main HTTP handler.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(rt.middleware.RequestID)
	r.Use(rt.middleware.Instrument)

	r.Get("/health", rt.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", rt.accountHandler.Register)
		r.Post("/login", rt.accountHandler.Login)
		r.Post("/logout", rt.accountHandler.Logout)
		r.Get("/session", rt.accountHandler.Session)
		r.Get("/history", rt.accountHandler.History)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", rt.taskHandler.List)
			r.Post("/", rt.taskHandler.Add)
			r.Delete("/", rt.taskHandler.ClearAll)
			r.Put("/{taskID}", rt.taskHandler.Edit)
			r.Post("/{taskID}/toggle", rt.taskHandler.Toggle)
			r.Delete("/{taskID}", rt.taskHandler.Delete)
		})
	})

	return r
}

// handleHealth handles health check requests.
func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := rt.store.Ping(r.Context()); err != nil {
		rt.logger.Error().Err(err).Msg("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
