package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"fitzone/gym-backend/internal/config"
	"fitzone/gym-backend/internal/domain"
	"fitzone/gym-backend/internal/repository"
	"fitzone/gym-backend/internal/repository/mongo"
	"fitzone/gym-backend/internal/service"
)

// seed-admin provisions an admin account from the command line. There is no
// HTTP endpoint for this; accounts are created by an operator with database
// access.
func main() {
	username := flag.String("username", "", "admin username (required)")
	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if *username == "" || *email == "" || *password == "" {
		log.Fatal("FATAL: -username, -email and -password are all required")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
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
	appDB := dbClient.Database(cfg.Database.Name)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// The unique index backs the duplicate check below.
	mongo.EnsureAdminIndexes(ctx, appDB.Collection("admins"))

	hash, err := service.HashPassword(*password)
	if err != nil {
		log.Fatalf("FATAL: Could not hash password: %v", err)
	}

	adminRepo := mongo.NewMongoAdminRepository(appDB)
	id, err := adminRepo.Create(ctx, &domain.Admin{
		Username:     *username,
		Email:        *email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			log.Fatalf("FATAL: An admin with that username or email already exists")
		}
		log.Fatalf("FATAL: Could not create admin: %v", err)
	}

	log.Printf("Admin %q created with ID %s", *username, id.Hex())
}
