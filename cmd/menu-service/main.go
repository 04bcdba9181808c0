package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/pribylovaa/menu-service/internal/auth"
	"github.com/pribylovaa/menu-service/internal/config"
	menuhttp "github.com/pribylovaa/menu-service/internal/http"
	"github.com/pribylovaa/menu-service/internal/metrics"
	"github.com/pribylovaa/menu-service/internal/service"
	"github.com/pribylovaa/menu-service/internal/storage"
	"github.com/pribylovaa/menu-service/internal/storage/memory"
	"github.com/pribylovaa/menu-service/internal/storage/postgres"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const apiBasePath = "/api"

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting menu-service", "env", cfg.Env, "storage", cfg.Storage.Driver)

	tokens, err := auth.NewTokenManager(cfg.JWT)
	if err != nil {
		var cerr *auth.ConfigurationError
		if errors.As(err, &cerr) {
			log.Error("jwt_config_invalid", slog.String("field", cerr.Field), slog.String("reason", cerr.Reason))
		} else {
			log.Error("jwt_init_failed", slog.String("err", err.Error()))
		}
		os.Exit(1)
	}

	verifier, err := auth.NewStaticVerifier(cfg.Credentials.Username, cfg.Credentials.Password)
	if err != nil {
		log.Error("verifier_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	store, err := openStorage(rootCtx, cfg, log)
	if err != nil {
		log.Error("storage_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	svc := service.New(store)
	authSvc := auth.New(verifier, tokens)
	m := metrics.New()
	log.Info("service_initialized")

	apiHandler := menuhttp.NewRouter(svc, authSvc, menuhttp.Options{
		Logger:         log,
		Timeout:        cfg.Timeouts.Service,
		BasePath:       apiBasePath,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Metrics:        m,
	})

	var ready int32 // 0 — not ready; 1 — ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}

		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	mux.Handle("/metrics", m.Handler())

	mux.Handle(apiBasePath+"/", apiHandler)
	mux.Handle("/", menuhttp.Fallback(log))

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		store.Close()
		os.Exit(1)
	}

	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)
	log.Info("service_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	log.Info("service_stopped")
}

// openStorage выбирает бэкенд по cfg.Storage.Driver.
func openStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		if cfg.DB.Migrate {
			if err := postgres.Migrate(cfg.DB.DatabaseURL); err != nil {
				return nil, err
			}
			log.Info("postgres_migrated")
		}

		dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
		defer dbCancel()

		store, err := postgres.New(dbCtx, cfg.DB.DatabaseURL)
		if err != nil {
			return nil, err
		}
		log.Info("postgres_connected")

		return store, nil
	default:
		store := memory.New()
		if cfg.Storage.Seed {
			if err := store.Seed(ctx); err != nil {
				return nil, err
			}
			log.Info("memory_seeded", slog.Int("menus", len(memory.SeedMenus())))
		}

		return store, nil
	}
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
