package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/kerval/navdock/internal/app"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	if err := app.New().Run(); err != nil {
		log.Fatalf("navdock exited: %v", err)
	}
}
