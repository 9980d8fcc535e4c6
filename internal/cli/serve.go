package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"hospital-admin/internal/config"
	"hospital-admin/internal/handlers"
	"hospital-admin/internal/middleware"
	"hospital-admin/internal/routes"
	"hospital-admin/internal/session"
	"hospital-admin/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	shutdownTimeout   = 30 * time.Second
	sweepInterval     = 5 * time.Minute
	readHeaderTimeout = 10 * time.Second
)

func serveCmd(envLoaded func() bool) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), envLoaded())
		},
	}
}

func runServer(ctx context.Context, envLoaded bool) error {
	// 1. Config and logger
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	if !envLoaded {
		log.Warn(".env file not found, using the process environment")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Store
	db, err := config.ConnectDB(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := config.CloseDB(db); err != nil {
			log.Warn("close database", zap.Error(err))
		}
	}()
	log.Info("connected to database", zap.String("host", cfg.Database.Host), zap.String("name", cfg.Database.Name))

	// 3. Sessions
	store, closeStore, err := sessionStore(ctx, cfg.Redis, log)
	if err != nil {
		return err
	}
	defer closeStore()
	mgr := session.NewManager(store, []byte(cfg.Session.Secret), cfg.Session.TTL, cfg.Session.CookieSecure)

	// 4. Router
	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	go limiter.Run(ctx)

	h := handlers.New(db, mgr, log, handlers.Options{
		UploadDir:      cfg.UploadDir,
		MaxUploadBytes: cfg.MaxUploadBytes,
		BcryptCost:     cfg.BcryptCost,
	})
	router, err := routes.NewRouter(h, mgr, log, routes.Options{
		RequestTimeout: cfg.RequestTimeout,
		Limiter:        limiter,
		TrustedProxies: cfg.TrustedProxies,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	// 5. Serve until a signal arrives
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// sessionStore uses Redis when REDIS_ADDR is set and an in-process store
// otherwise. Sessions in the in-process store do not survive a restart.
func sessionStore(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (session.Store, func(), error) {
	client, err := config.ConnectRedis(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if client != nil {
		log.Info("sessions in redis", zap.String("addr", cfg.Addr))
		return session.NewRedisStore(client), func() { closeRedis(client, log) }, nil
	}

	log.Warn("REDIS_ADDR not set, keeping sessions in memory")
	mem := session.NewMemoryStore()
	go mem.RunSweeper(ctx, sweepInterval)
	return mem, func() {}, nil
}

func closeRedis(client *redis.Client, log *zap.Logger) {
	if err := client.Close(); err != nil {
		log.Warn("close redis", zap.Error(err))
	}
}
