package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/Varun5711/recipebook/internal/auth"
	"github.com/Varun5711/recipebook/internal/config"
	"github.com/Varun5711/recipebook/internal/database"
	"github.com/Varun5711/recipebook/internal/logger"
	"github.com/Varun5711/recipebook/internal/service"
	"github.com/Varun5711/recipebook/internal/storage"
)

// user-admin removes an account and every recipe it authored.
func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code so deferred cleanup completes before
// main exits.
func run(args []string) int {
	log := logger.New("user-admin")

	fs := flag.NewFlagSet("user-admin", flag.ContinueOnError)
	email := fs.String("email", "", "email of the account to delete")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *email == "" {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config: %v", err)
		return 1
	}

	ctx := context.Background()

	dbManager, err := database.NewDBManager(ctx, database.Config{
		PrimaryDSN:      cfg.Database.PrimaryDSN,
		MaxConns:        2,
		MinConns:        1,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return 1
	}
	defer dbManager.Close()

	users := service.NewUserService(
		storage.NewUserStorage(dbManager),
		auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
	)

	if err := users.DeleteUser(ctx, *email); err != nil {
		if errors.Is(err, service.ErrUnknownUser) {
			log.Error("No account registered for %s", *email)
		} else {
			log.Error("Failed to delete %s: %v", *email, err)
		}
		return 1
	}

	log.Info("Deleted %s and their recipes", *email)
	return 0
}
