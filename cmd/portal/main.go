package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"connectong/internal/adapter/kv"
	"connectong/internal/adapter/repo"
	"connectong/internal/fragment"
	"connectong/internal/http/handlers"
	httpapi "connectong/internal/http/httpapi"
	"connectong/internal/infra"
	"connectong/internal/infra/geoip"
	"connectong/internal/metrics"
	"connectong/internal/pages"
	"connectong/internal/router"
	"connectong/internal/storage"
	"connectong/web"
)

func main() {
	// Load .env when present.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	backend, closeStore, err := kv.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
	}
	defer closeStore()
	store := repo.NewPortalStore(backend, repo.WithLogger(logger))

	fragments, fragmentFS, err := fragment.Open(cfg.FragmentRoot, web.Pages(), cfg.FetchTimeout)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open fragment root")
	}
	seeds, seedFS, err := fragment.Open(cfg.DataRoot, web.Data(), cfg.FetchTimeout)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open data root")
	}

	uploads, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare upload dir")
	}

	resolver, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer resolver.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	rt := router.New(fragments, logger, router.WithFetchObserver(m.ObserveFetch))
	pages.Register(rt, pages.Deps{
		Seeds:   seeds,
		Uploads: uploads,
		Metrics: m,
		Logger:  logger,
	})

	shell, err := web.Shell()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load shell")
	}
	app := &handlers.App{
		Router:  rt,
		Store:   store,
		Metrics: m,
		Logger:  logger,
		Shell:   shell,
		Ping: func(ctx context.Context) error {
			_, _, err := backend.Get(ctx, "healthcheck")
			return err
		},
	}

	handler := httpapi.NewRouter(app, httpapi.Options{
		Logger:         logger,
		DefaultLocale:  cfg.DefaultLocale,
		CountryLookup:  resolver.Lookup(),
		AllowedOrigins: cfg.AllowedOrigins,
		VisitorCookie:  cfg.VisitorCookie,
		SecureCookie:   cfg.AppEnv == "production",
		RateLimit:      cfg.RateLimitPerMin,
		Fragments:      fragmentFS,
		Data:           seedFS,
		Gatherer:       reg,
	})
	server := infra.NewHTTPServer(cfg, handler)

	go func() {
		logger.Info().Str("addr", server.Addr()).Str("driver", cfg.StoreDriver).Msg("portal listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
