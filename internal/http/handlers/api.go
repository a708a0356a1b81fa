package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"connectong/internal/domain"
	"connectong/internal/pages"
	"connectong/internal/router"
	"connectong/internal/validation"
)

type continuation struct {
	Route   string `json:"route"`
	AfterMS int64  `json:"after_ms"`
}

type actionResponse struct {
	Record   any           `json:"record,omitempty"`
	Message  string        `json:"message,omitempty"`
	Continue *continuation `json:"continue,omitempty"`
}

type validationResponse struct {
	Error      string                 `json:"error"`
	Message    string                 `json:"message"`
	Violations []validation.Violation `json:"violations"`
	Focus      string                 `json:"focus,omitempty"`
}

func (a *App) ListDonations(w http.ResponseWriter, r *http.Request) {
	list, err := a.session(r).Store.Donations(r.Context())
	if err != nil {
		a.storeError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": list})
}

func (a *App) DonationStats(w http.ResponseWriter, r *http.Request) {
	list, err := a.session(r).Store.Donations(r.Context())
	if err != nil {
		a.storeError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"goal":  domain.DonationGoal,
		"stats": domain.SummarizeDonations(list),
	})
}

func (a *App) CreateDonation(w http.ResponseWriter, r *http.Request) {
	a.action(w, r, pages.RouteDonations, pages.ActionDonate)
}

func (a *App) DeleteDonation(w http.ResponseWriter, r *http.Request) {
	in := validation.Form{Values: map[string][]string{"id": {chi.URLParam(r, "id")}}}
	res := a.Router.Dispatch(r.Context(), a.session(r), pages.RouteDonations, pages.ActionRemove, in)
	if res.Err != nil {
		a.actionError(w, r, res.Err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) ListContacts(w http.ResponseWriter, r *http.Request) {
	list, err := a.session(r).Store.Contacts(r.Context())
	if err != nil {
		a.storeError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": list})
}

func (a *App) CreateContact(w http.ResponseWriter, r *http.Request) {
	a.action(w, r, pages.RouteContact, pages.ActionSubmit)
}

// ListNGOs returns the persisted registrations, loading the seed file first
// when the visitor has none, exactly as the listing page does.
func (a *App) ListNGOs(w http.ResponseWriter, r *http.Request) {
	sess := a.session(r)
	list, err := seeded(r.Context(), a, sess, pages.RouteNGOListing, sess.Store.NGOs)
	if err != nil {
		a.storeError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": list})
}

func (a *App) CreateNGO(w http.ResponseWriter, r *http.Request) {
	a.action(w, r, pages.RouteNGORegistration, pages.ActionSubmit)
}

func (a *App) ListCompanies(w http.ResponseWriter, r *http.Request) {
	sess := a.session(r)
	list, err := seeded(r.Context(), a, sess, pages.RouteCompanies, sess.Store.Companies)
	if err != nil {
		a.storeError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": list})
}

func seeded[T any](ctx context.Context, a *App, sess router.Session, route string, read func(context.Context) ([]T, error)) ([]T, error) {
	list, err := read(ctx)
	if err != nil || len(list) > 0 {
		return list, err
	}
	// The listing initializer owns the seed-once rule.
	a.Router.Navigate(ctx, sess, route)
	return read(ctx)
}

func (a *App) action(w http.ResponseWriter, r *http.Request, route, name string) {
	in, err := readForm(w, r)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	res := a.Router.Dispatch(r.Context(), a.session(r), route, name, in)
	if res.Err != nil {
		if errors.Is(res.Err, domain.ErrValidation) && res.Outcome != nil {
			a.json(w, http.StatusUnprocessableEntity, validationResponse{
				Error:      "validation",
				Message:    res.Outcome.Message,
				Violations: res.Outcome.Result.Violations,
				Focus:      res.Outcome.Result.Focus,
			})
			return
		}
		a.actionError(w, r, res.Err)
		return
	}

	body := actionResponse{Record: res.Outcome.Record, Message: res.Outcome.Message}
	if c := res.Outcome.Continue; c != nil {
		body.Continue = &continuation{Route: c.Route, AfterMS: c.AfterMS()}
	}
	a.json(w, http.StatusCreated, body)
}

func (a *App) actionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrFragmentNotFound), errors.Is(err, domain.ErrFetch):
		a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("page unavailable for action")
		a.error(w, http.StatusBadGateway, "unavailable", "page resources could not be loaded")
	default:
		a.storeError(w, r, err)
	}
}

func (a *App) storeError(w http.ResponseWriter, r *http.Request, err error) {
	a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("store operation failed")
	a.error(w, http.StatusInternalServerError, "internal", "store operation failed")
}
