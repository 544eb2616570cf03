package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akielkucki/digitalmarketplace/internal/auth"
	"github.com/akielkucki/digitalmarketplace/internal/config"
	"github.com/akielkucki/digitalmarketplace/internal/database"
	"github.com/akielkucki/digitalmarketplace/internal/handler"
	"github.com/akielkucki/digitalmarketplace/internal/middleware"
	"github.com/akielkucki/digitalmarketplace/internal/repository"
	"github.com/akielkucki/digitalmarketplace/internal/router"
	"github.com/akielkucki/digitalmarketplace/internal/service"
	"github.com/akielkucki/digitalmarketplace/internal/session"
)

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

// New wires the application: config, database pool, repositories,
// services, middleware and routes. Every resource is constructed here and
// passed down explicitly; nothing lives in package globals.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	slog.Info("database ready")

	codec := auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	cookies := session.New(cfg.CookieName, cfg.TokenTTL, cfg.IsProduction())

	authService := service.NewAuthService(userRepo, codec)
	auditService := service.NewAuditService(auditRepo)

	authMiddleware := middleware.NewAuthMiddleware(codec, cookies)
	gate := middleware.NewAuthGate(codec, cookies)

	appRouter := router.New(cfg, authMiddleware, gate, router.Handlers{
		Auth:   handler.NewAuthHandler(authService, cookies, auditService),
		User:   handler.NewUserHandler(authService),
		Audit:  handler.NewAuditHandler(auditService),
		Guilds: handler.NewGuildsHandler(cfg.GuildsAPIURL),
		Pages:  handler.NewPageHandler(),
	}, db.Health)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		db:     db,
		cleanupFuncs: []func(){
			db.Close,
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	slog.Info("server stopped")
	return nil
}
