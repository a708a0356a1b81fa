// Package router maps hash routes to HTML fragments. Every navigation fetches
// the fragment again, injects it into a fresh container and hands the page to
// the initializer registered for the route.
package router

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"connectong/internal/dom"
	"connectong/internal/domain"
	"connectong/internal/fragment"
	"connectong/internal/validation"
)

const (
	// DefaultRoute is used when the location carries no route.
	DefaultRoute = "home"
	// Prefix is the href prefix of links handled by the router.
	Prefix = "#/"
	// ContainerID is the id of the element fragments are injected into.
	ContainerID = "content-container"
)

var routeName = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

var (
	notFoundTmpl = template.Must(template.New("notfound").Parse(
		`<div class="container py-5 text-center"><h1>Error 404</h1><p class="lead">Page not found: {{.}}</p></div>`))
	loadErrorHTML = `<div class="container py-5 text-center"><h1>Loading error</h1><p class="lead">The page content could not be loaded.</p></div>`
)

// Session is what initializers and actions need from the current visitor.
type Session struct {
	Store  domain.PortalStore
	Locale string
}

// Page is a rendered fragment handed to initializers and actions.
type Page struct {
	Route   string
	Doc     *dom.Document
	Session Session
}

// Initializer prepares a freshly injected fragment.
type Initializer func(ctx context.Context, p *Page) error

// ActionFunc handles an event on a page after its initializer ran.
type ActionFunc func(ctx context.Context, p *Page, in validation.Form) (Outcome, error)

// Continuation asks the client to navigate to Route once After has elapsed.
type Continuation struct {
	Route string        `json:"route"`
	After time.Duration `json:"-"`
}

// AfterMS is After in milliseconds, for clients.
func (c Continuation) AfterMS() int64 { return c.After.Milliseconds() }

// Outcome is what an action produced.
type Outcome struct {
	Record   any               `json:"record,omitempty"`
	Message  string            `json:"message,omitempty"`
	Result   validation.Result `json:"result"`
	Continue *Continuation     `json:"continue,omitempty"`
}

// Result is the rendered container after a navigation or action.
type Result struct {
	Route  string
	Markup string
	// Found is false when the fragment could not be fetched.
	Found   bool
	Err     error
	Outcome *Outcome
}

// Router holds the route table. It is safe for concurrent use once
// registration is complete.
type Router struct {
	source  fragment.Source
	logger  zerolog.Logger
	onFetch func(route string, err error)

	mu      sync.RWMutex
	inits   map[string]Initializer
	actions map[string]map[string]ActionFunc
}

// Option customizes a Router.
type Option func(*Router)

// WithFetchObserver registers a callback invoked after every fragment fetch.
func WithFetchObserver(fn func(route string, err error)) Option {
	return func(r *Router) { r.onFetch = fn }
}

func New(source fragment.Source, logger zerolog.Logger, opts ...Option) *Router {
	r := &Router{
		source:  source,
		logger:  logger,
		inits:   make(map[string]Initializer),
		actions: make(map[string]map[string]ActionFunc),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Register sets the initializer for route.
func (r *Router) Register(route string, fn Initializer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inits[route] = fn
}

// Handle registers an action on route.
func (r *Router) Handle(route, action string, fn ActionFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.actions[route] == nil {
		r.actions[route] = make(map[string]ActionFunc)
	}
	r.actions[route][action] = fn
}

// ResolveRoute turns a location hash such as "#/contact" into a route name.
func ResolveRoute(raw string) string {
	route := strings.TrimSpace(raw)
	route = strings.TrimPrefix(route, "#")
	route = strings.TrimPrefix(route, "/")
	route = strings.TrimSuffix(route, "/")
	if route == "" {
		return DefaultRoute
	}
	return route
}

// InterceptLink reports whether href is a router link and returns its route.
func InterceptLink(href string) (string, bool) {
	if !strings.HasPrefix(href, Prefix) {
		return "", false
	}
	return ResolveRoute(href), true
}

// Navigate fetches and injects the fragment for raw, then runs its
// initializer. Fetch failures render an inline error and skip the initializer.
func (r *Router) Navigate(ctx context.Context, sess Session, raw string) Result {
	res, page := r.render(ctx, sess, raw)
	if page == nil {
		return res
	}
	return r.finish(res, page)
}

// Dispatch navigates to raw and then runs action against the rendered page.
func (r *Router) Dispatch(ctx context.Context, sess Session, raw, action string, in validation.Form) Result {
	res, page := r.render(ctx, sess, raw)
	if page == nil {
		return res
	}

	r.mu.RLock()
	fn := r.actions[res.Route][action]
	r.mu.RUnlock()
	if fn == nil {
		res.Err = fmt.Errorf("%w: %s/%s", domain.ErrUnknownAction, res.Route, action)
		return r.finish(res, page)
	}

	outcome, err := fn(ctx, page, in)
	res.Outcome = &outcome
	if err != nil {
		res.Err = err
		if !errors.Is(err, domain.ErrValidation) && !errors.Is(err, domain.ErrNotFound) {
			r.logger.Error().Err(err).Str("route", res.Route).Str("action", action).Msg("page action failed")
		}
	}
	return r.finish(res, page)
}

func (r *Router) render(ctx context.Context, sess Session, raw string) (Result, *Page) {
	route := ResolveRoute(raw)
	res := Result{Route: route}
	doc := dom.NewContainer(ContainerID)

	var body []byte
	err := fmt.Errorf("%w: %s", domain.ErrFragmentNotFound, route)
	if routeName.MatchString(route) {
		body, err = r.source.Fetch(ctx, route+".html")
	}
	if r.onFetch != nil {
		r.onFetch(route, err)
	}
	if err != nil {
		res.Err = err
		if errors.Is(err, domain.ErrFragmentNotFound) {
			res.Markup = renderNotFound(route)
		} else {
			r.logger.Error().Err(err).Str("route", route).Msg("fragment fetch failed")
			res.Markup = loadErrorHTML
		}
		return res, nil
	}

	if err := doc.SetInnerHTML(string(body)); err != nil {
		res.Err = fmt.Errorf("%w: %v", domain.ErrFetch, err)
		res.Markup = loadErrorHTML
		return res, nil
	}
	res.Found = true

	page := &Page{Route: route, Doc: doc, Session: sess}
	r.mu.RLock()
	setup := r.inits[route]
	r.mu.RUnlock()
	if setup != nil {
		if err := setup(ctx, page); err != nil {
			r.logger.Error().Err(err).Str("route", route).Msg("page initializer failed")
			res.Err = err
			res.Markup = loadErrorHTML
			return res, nil
		}
	}
	return res, page
}

func (r *Router) finish(res Result, page *Page) Result {
	markup, err := page.Doc.InnerHTML()
	if err != nil {
		res.Err = err
		res.Markup = loadErrorHTML
		return res
	}
	res.Markup = markup
	return res
}

func renderNotFound(route string) string {
	var b strings.Builder
	_ = notFoundTmpl.Execute(&b, "pages/"+route+".html")
	return b.String()
}
