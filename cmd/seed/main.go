// seed inserts demo accounts into the local storefront store.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopglow/storefront/internal/domain"
	"github.com/shopglow/storefront/internal/infrastructure/localstore"
	"github.com/shopglow/storefront/internal/storage"
	"github.com/shopglow/storefront/internal/usecase"
)

type accountSpec struct {
	name     string
	email    string
	password string
}

var accounts = []accountSpec{
	{"Demo Shopper", "demo@shop.local", "demopass1"},
	{"Alice Example", "alice@shop.local", "alicepass"},
	{"Bob Example", "bob@shop.local", "bobpass12"},
}

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	path := os.Getenv("STORE_PATH")
	if path == "" {
		path = "data/storefront.json"
	}

	store, err := storage.OpenFileStore(path)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	users := localstore.NewUserRepository(store)
	sessions := localstore.NewSessionRepository(store)
	auth := usecase.NewAuthUsecase(users, sessions, []byte("seed-only-key-never-used-for-serving!"))

	for _, spec := range accounts {
		_, _, err := auth.Register(ctx, usecase.RegisterInput{
			Name:     spec.name,
			Email:    spec.email,
			Password: spec.password,
		})
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			fmt.Printf("skip %s (already registered)\n", spec.email)
		case err != nil:
			log.Fatalf("register %s: %v", spec.email, err)
		default:
			fmt.Printf("registered %s\n", spec.email)
		}
	}

	// Registering leaves the last account as the current session; a
	// seeded store should start anonymous.
	if err := auth.Logout(ctx); err != nil {
		log.Fatalf("reset session: %v", err)
	}

	fmt.Printf("seeded %d accounts into %s\n", len(accounts), path)
}
