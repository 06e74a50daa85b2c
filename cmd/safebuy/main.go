package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/api"
	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/app"
	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/store"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		cfg        app.Config
		configPath string
	)

	flag.StringVar(&cfg.ListenAddr, "listen", envOr("SAFEBUY_LISTEN", app.DefaultListenAddr), "HTTP listen address")
	flag.StringVar(&cfg.DatabaseDSN, "db.dsn", os.Getenv("SAFEBUY_DB_DSN"), "MySQL DSN; empty uses an in-memory store")
	flag.StringVar(&cfg.RulesPath, "rules", os.Getenv("SAFEBUY_RULES"), "Path to rule-table YAML; empty uses the embedded catalog")
	flag.StringVar(&cfg.PolicyPath, "policy", os.Getenv("SAFEBUY_POLICY"), "Path to engine policy YAML overlay")
	flag.StringVar(&cfg.ScrapeUserAgent, "scrape.ua", app.DefaultScrapeUserAgent, "User-Agent for listing fetches")
	flag.DurationVar(&cfg.ScrapeTimeout, "scrape.timeout", app.DefaultScrapeTimeout, "Per-request fetch timeout")
	flag.IntVar(&cfg.ScrapeAttempts, "scrape.attempts", app.DefaultScrapeAttempts, "Fetch attempts including the first")
	flag.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")
	flag.StringVar(&configPath, "config", os.Getenv("SAFEBUY_CONFIG"), "Optional YAML config file")
	flag.Parse()

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("config file unreadable")
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if err := app.ValidateConfig(cfg); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	st, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("store unavailable")
	}

	a, err := app.New(cfg, st)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.NewRouter(a),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("SafeBuy compliance API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal().Err(err).Msg("server failed")
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
}

func openStore(cfg app.Config) (store.Store, error) {
	if cfg.DatabaseDSN == "" {
		log.Warn().Msg("no database DSN configured; scan history will not survive restarts")
		return store.NewMemory(), nil
	}
	return store.Open(cfg.DatabaseDSN)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
