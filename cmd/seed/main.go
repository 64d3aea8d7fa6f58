// Command seed registers a single user directly against the configured
// credential store, going through the same validation as the HTTP flow.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"authapi/internal/auth"
	"authapi/internal/config"
	"authapi/internal/repository"
	"authapi/internal/service"
)

func main() {
	name := flag.String("name", "", "display name")
	email := flag.String("email", "", "email address")
	password := flag.String("password", "", "plaintext password")
	flag.Parse()

	if *name == "" || *email == "" || *password == "" {
		flag.Usage()
		log.Fatal("name, email and password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	userRepo, closeStore, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer closeStore(context.Background())
	log.Printf("Connected to %s store", cfg.StoreDriver)

	hasher, err := auth.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		log.Fatalf("hasher: %v", err)
	}
	jwtService, err := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiresIn)
	if err != nil {
		log.Fatalf("jwt: %v", err)
	}

	user, err := service.NewAuthService(userRepo, hasher, jwtService).Register(ctx, *name, *email, *password)
	if err != nil {
		log.Fatalf("register %s: %v", *email, err)
	}
	log.Printf("Created user %s (%s)", user.ID, user.Email)
}
