package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"connectong/internal/domain"
	"connectong/internal/router"
)

// Response headers carrying the continuation of a successful action.
const (
	HeaderContinueRoute = "X-Continue-Route"
	HeaderContinueAfter = "X-Continue-After-Ms"
)

// ShellPage serves the index document hosting the hash router.
func (a *App) ShellPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(a.Shell)
}

// Page renders the fragment of a route into the container markup.
func (a *App) Page(w http.ResponseWriter, r *http.Request) {
	res := a.Router.Navigate(r.Context(), a.session(r), chi.URLParam(r, "route"))
	a.writePage(w, res)
}

// PageAction runs an action on a freshly rendered page, e.g. a form submit.
func (a *App) PageAction(w http.ResponseWriter, r *http.Request) {
	form, err := readForm(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res := a.Router.Dispatch(r.Context(), a.session(r), chi.URLParam(r, "route"), chi.URLParam(r, "action"), form)
	a.writePage(w, res)
}

func (a *App) writePage(w http.ResponseWriter, res router.Result) {
	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("Cache-Control", "no-store")
	if res.Outcome != nil && res.Outcome.Continue != nil {
		h.Set(HeaderContinueRoute, res.Outcome.Continue.Route)
		h.Set(HeaderContinueAfter, strconv.FormatInt(res.Outcome.Continue.AfterMS(), 10))
	}
	w.WriteHeader(statusFor(res))
	_, _ = w.Write([]byte(res.Markup))
}

// statusFor maps a render result to an HTTP status. The markup is always
// written, so the shell can inject error pages like any other.
func statusFor(res router.Result) int {
	switch err := res.Err; {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrFragmentNotFound),
		errors.Is(err, domain.ErrUnknownAction),
		errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidKey):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
