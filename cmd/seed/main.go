package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"clinic-records/internal/config"
	"clinic-records/internal/database"
	"clinic-records/internal/logger"
	"clinic-records/internal/model"
	"clinic-records/internal/repository"
	"clinic-records/internal/service"
	"clinic-records/internal/validation"
)

// seed creates the default accounts on an empty database, or a single account
// when -username is given.
func main() {
	username := flag.String("username", "", "create this user instead of the defaults")
	password := flag.String("password", "", "password for -username")
	role := flag.String("role", string(model.RoleGuest), "role for -username (admin, clinician, guest)")
	name := flag.String("name", "", "display name for -username")
	flag.Parse()

	slog.SetDefault(slog.New(logger.NewPrettyHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	if err := run(*username, *password, *role, *name); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(username string, password string, role string, name string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.New(ctx, cfg.DatabaseURL, 2, 1)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	accounts := service.NewAccountService(repository.NewUserRepository(db.Pool), cfg.BcryptCost)

	if username == "" {
		created, err := accounts.SeedDefaults(ctx)
		if err != nil {
			return err
		}
		slog.Info("default users seeded", "created", created)
		return nil
	}

	req := model.RegisterRequest{
		Username:    username,
		DisplayName: name,
		Password:    password,
		Role:        role,
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	user, err := accounts.Register(ctx, req)
	if err != nil {
		return err
	}
	slog.Info("user created", "username", user.Username, "role", user.Role)
	return nil
}
