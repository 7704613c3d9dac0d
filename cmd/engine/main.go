package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"jobtrack-engine/internal/catalog"
	"jobtrack-engine/internal/config"
	"jobtrack-engine/internal/digest"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/httpapi"
	"jobtrack-engine/internal/logger"
	"jobtrack-engine/internal/rank"
	"jobtrack-engine/internal/store"
)

func main() {
	logger.Init()
	log := logger.Get()

	// Engine data dir: use env if provided (the UI shell can pass one), else local folder.
	dataDir := os.Getenv("JOBTRACK_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("create data dir")
	}

	// One engine per data dir: all persisted writes stay serialized.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatal().Err(err).Msg("acquire data dir lock")
	}
	if !locked {
		log.Fatal().Str("dir", dataDir).Msg("another engine instance owns this data dir")
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config bootstrap failed")
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		raw, err := config.Load(userCfgPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg, vr := config.NormalizeAndValidate(raw)
		if !vr.OK() {
			return config.Config{}, fmt.Errorf("config invalid: %v", vr.Errors)
		}
		for _, warn := range vr.Warnings {
			log.Warn().Str("config", userCfgPath).Msg(warn)
		}
		return cfg, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatal().Err(err).Str("path", userCfgPath).Msg("config load failed")
	}
	cfgVal.Store(cfg)

	catalogPath := cfg.Catalog.Path
	if !filepath.IsAbs(catalogPath) {
		catalogPath, err = catalog.EnsureUserCatalog(dataDir, filepath.Join("config", cfg.Catalog.Path))
		if err != nil {
			log.Fatal().Err(err).Msg("catalog bootstrap failed")
		}
	}
	postings, err := catalog.Load(catalogPath)
	if err != nil {
		log.Fatal().Err(err).Msg("catalog load failed")
	}
	log.Info().Int("postings", len(postings)).Str("path", catalogPath).Msg("catalog loaded")

	st, err := openStore(cfg, dataDir)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Storage.Backend).Msg("store open failed")
	}
	defer st.Close()

	hub := events.NewHub()
	scorer := rank.RubricScorer{}
	selector := &digest.Selector{Catalog: postings, Scorer: scorer, Store: st}

	mux := httpapi.NewMux(httpapi.Deps{
		Store:       st,
		Catalog:     postings,
		Meta:        catalog.CollectMeta(postings),
		Scorer:      scorer,
		Selector:    selector,
		Hub:         hub,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
	})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", addr).Msg("listen failed")
	}

	middlewares := []httpapi.Middleware{
		httpapi.RequestID,
		httpapi.AccessLog,
		httpapi.Recover,
		httpapi.Cors,
	}
	if cfg.API.RateLimitPerSec > 0 {
		middlewares = append(middlewares,
			httpapi.RateLimit(cfg.API.RateLimitPerSec, cfg.API.RateLimitBurst))
	}

	srv := &http.Server{
		Handler:           httpapi.Chain(mux, middlewares...),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Shutdown endpoint for the UI shell; token lands next to the lock file.
	token, err := randomToken(16)
	if err != nil {
		log.Fatal().Err(err).Msg("shutdown token")
	}
	if err := os.WriteFile(filepath.Join(dataDir, "engine.token"), []byte(token), 0o600); err != nil {
		log.Fatal().Err(err).Msg("write shutdown token")
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))

	log.Info().Str("addr", "http://"+addr).Str("backend", cfg.Storage.Backend).Msg("engine listening")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("engine stopped")
	}
	log.Info().Msg("engine stopped")
}

func openStore(cfg config.Config, dataDir string) (store.Store, error) {
	switch cfg.Storage.Backend {
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return store.OpenRedis(ctx, cfg.Storage.RedisURL)
	case "memory":
		return store.NewMemory(), nil
	default:
		return store.OpenSQLite(filepath.Join(dataDir, "jobtrack.db"))
	}
}
