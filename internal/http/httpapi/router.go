package httpapi

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"connectong/internal/http/handlers"
	"connectong/internal/middleware"
)

// Options configures the surrounding middleware and static trees.
type Options struct {
	Logger         zerolog.Logger
	DefaultLocale  string
	CountryLookup  middleware.CountryLookup
	AllowedOrigins []string
	VisitorCookie  string
	SecureCookie   bool
	// RateLimit is the number of mutating requests per client per minute.
	RateLimit int
	// Fragments and Data are served raw under /fragments and /data. Nil
	// trees are not mounted.
	Fragments fs.FS
	Data      fs.FS
	// Gatherer backs /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(opts.Logger),
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/readyz", app.Ready)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	if opts.Fragments != nil {
		r.Handle("/fragments/*", http.StripPrefix("/fragments/", http.FileServer(http.FS(opts.Fragments))))
	}
	if opts.Data != nil {
		r.Handle("/data/*", http.StripPrefix("/data/", http.FileServer(http.FS(opts.Data))))
	}

	r.Group(func(r chi.Router) {
		r.Use(
			middleware.Visitor(opts.VisitorCookie, opts.SecureCookie),
			middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
		)
		mutating := middleware.RateLimit(opts.RateLimit, time.Minute)

		r.Get("/", app.ShellPage)
		r.Route("/pages", func(r chi.Router) {
			r.Get("/{route}", app.Page)
			r.With(mutating).Post("/{route}/{action}", app.PageAction)
		})
		r.Route("/api", func(r chi.Router) {
			r.Route("/donations", func(r chi.Router) {
				r.Get("/", app.ListDonations)
				r.Get("/stats", app.DonationStats)
				r.With(mutating).Post("/", app.CreateDonation)
				r.With(mutating).Delete("/{id}", app.DeleteDonation)
			})
			r.Get("/contacts", app.ListContacts)
			r.With(mutating).Post("/contacts", app.CreateContact)
			r.Get("/ngos", app.ListNGOs)
			r.With(mutating).Post("/ngos", app.CreateNGO)
			r.Get("/companies", app.ListCompanies)
		})
	})

	return r
}
