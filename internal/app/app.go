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

	"clinic-records/internal/auth"
	"clinic-records/internal/config"
	"clinic-records/internal/database"
	"clinic-records/internal/handler"
	"clinic-records/internal/logger"
	"clinic-records/internal/middleware"
	"clinic-records/internal/repository"
	"clinic-records/internal/router"
	"clinic-records/internal/service"
)

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.SetDefault(slog.New(logger.NewPrettyHandler(os.Stdout, &slog.HandlerOptions{
		Level: logger.ParseLevel(cfg.LogLevel),
	})))

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	userRepo := repository.NewUserRepository(db.Pool)
	patientRepo := repository.NewPatientRepository(db.Pool)
	noteRepo := repository.NewNoteRepository(db.Pool)
	slog.Info("database ready")

	authenticator, err := auth.NewAuthenticator(userRepo, cfg.BcryptCost)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize authenticator: %w", err)
	}

	tokens, err := auth.NewTokenCodec(cfg.JWTSecret, cfg.JWTAccessTTL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}

	authMiddleware := middleware.NewAuthMiddleware(auth.NewTokenResolver(tokens, userRepo))

	authService := service.NewAuthService(authenticator, tokens)
	accountService := service.NewAccountService(userRepo, cfg.BcryptCost)
	patientService := service.NewPatientService(patientRepo, noteRepo)

	if cfg.SeedDefaultUsers {
		if _, err := accountService.SeedDefaults(context.Background()); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to seed default users: %w", err)
		}
	}

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(accountService),
		Patient: handler.NewPatientHandler(patientService),
		Health:  handler.NewHealthHandler(db),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		cleanupFuncs: []func(){
			db.Close,
		},
	}, nil
}

func (a *App) Run() error {
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		a.cleanup()
		return fmt.Errorf("server failed: %w", err)
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdownErr := a.server.Shutdown(ctx)
	a.cleanup()
	if shutdownErr != nil {
		return fmt.Errorf("graceful shutdown failed: %w", shutdownErr)
	}

	slog.Info("server stopped")
	return nil
}

func (a *App) cleanup() {
	for _, fn := range a.cleanupFuncs {
		fn()
	}
}
