package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/dishtail/backend/config"
	"github.com/dishtail/backend/internal/database"
	"github.com/dishtail/backend/internal/models"
	"github.com/dishtail/backend/internal/service"
)

const testPassword = "testpassword123"

var testUsers = []string{
	"john.doe@example.com",
	"jane.smith@example.com",
	"admin@example.com",
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := zap.NewNop()
	db, err := database.Open(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, cfg.Database.MigrationsDir, logger); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// admin@example.com is always seeded as an admin
	adminEmails := append([]string{"admin@example.com"}, cfg.Auth.AdminEmails...)
	authService := service.NewAuthService(db, service.AuthOptions{
		JWTSecret:   cfg.Auth.JWTSecret,
		BCryptCost:  cfg.Auth.BCryptCost,
		AdminEmails: adminEmails,
	}, logger)

	log.Println("Creating test users...")

	ctx := context.Background()
	for _, email := range testUsers {
		user, _, err := authService.Register(ctx, email, testPassword)
		if errors.Is(err, service.ErrUserExists) {
			log.Printf("User %s already exists, skipping...", email)
			continue
		}
		if err != nil {
			log.Printf("Failed to create user %s: %v", email, err)
			continue
		}
		log.Printf("Created %s user: %s", user.Role, user.Email)
	}

	var total, admins int64
	db.Model(&models.User{}).Count(&total)
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins)

	log.Printf("Total users: %d (%d admin)", total, admins)
	log.Printf("Password for seeded users: %s", testPassword)
}
