package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"connectong/internal/adapter/repo"
	"connectong/internal/metrics"
	"connectong/internal/middleware"
	"connectong/internal/router"
)

// App carries what the HTTP handlers share.
type App struct {
	Router  *router.Router
	Store   *repo.PortalStore
	Metrics *metrics.Metrics
	Logger  zerolog.Logger
	// Shell is the index document served on "/".
	Shell []byte
	// Ping reports backend health for /v1/readyz; nil means always ready.
	Ping func(ctx context.Context) error
}

// session binds the store to the visitor of the request.
func (a *App) session(r *http.Request) router.Session {
	return router.Session{
		Store:  a.Store.ForVisitor(middleware.VisitorFromContext(r.Context())),
		Locale: middleware.LocaleFromContext(r.Context()),
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, errorBody{Error: code, Message: message})
}
