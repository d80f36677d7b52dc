package main

import (
	"context"
	"errors"
	"log"
	"time"

	"fitclub/fitness-club/internal/config"
	"fitclub/fitness-club/internal/domain"
	"fitclub/fitness-club/internal/repository"
	"fitclub/fitness-club/internal/repository/mongo"

	"golang.org/x/crypto/bcrypt"
)

// Seeds the bootstrap admin account. Safe to run repeatedly: an existing
// account with the configured email is left untouched.
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		log.Fatal("FATAL: admin.email and admin.password must be configured")
	}

	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()

	userRepo := mongo.NewMongoUserRepository(dbClient.Database(cfg.Database.Name))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	existing, err := userRepo.GetByEmail(ctx, cfg.Admin.Email)
	if err == nil {
		log.Printf("Admin account %s already exists (role=%s), nothing to do.", existing.Email, existing.Role)
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		log.Fatalf("FATAL: Failed to check for existing admin: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("FATAL: Failed to hash admin password: %v", err)
	}

	admin := &domain.User{
		Name:         cfg.Admin.Name,
		Email:        cfg.Admin.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Status:       domain.StatusActive,
	}

	id, err := userRepo.Create(ctx, admin)
	if err != nil {
		log.Fatalf("FATAL: Failed to create admin account: %v", err)
	}
	log.Printf("Admin account created: %s (%s)", admin.Email, id.Hex())
}
