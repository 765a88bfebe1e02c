// seed inserts a development user for local testing.
// Idempotent: skips the insert if dev@example.com already exists.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"auth-service/internal/config"
	"auth-service/internal/db"
	"auth-service/internal/security"
	userdomain "auth-service/internal/user/domain"
	userrepo "auth-service/internal/user/repository"
)

const (
	devUserEmail = "dev@example.com"
	devPassword  = "password123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	hasher := security.NewHasher(cfg.HashWorkerCount())
	users := userrepo.NewPostgresStore(conn, hasher)

	email, err := userdomain.ParseEmail(devUserEmail)
	if err != nil {
		log.Fatalf("parse email: %v", err)
	}
	password, err := userdomain.ParsePassword(devPassword)
	if err != nil {
		log.Fatalf("parse password: %v", err)
	}
	hash, err := hasher.Hash(ctx, password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	err = users.Add(ctx, &userdomain.User{Email: email, PasswordHash: hash})
	if errors.Is(err, userrepo.ErrUserExists) {
		log.Println("Seed already applied (dev@example.com exists). Skipping.")
		return
	}
	if err != nil {
		log.Fatalf("create dev user: %v", err)
	}

	log.Println("Seed completed successfully.")
	fmt.Printf("Dev login: %s / %s\n", devUserEmail, devPassword)
}
