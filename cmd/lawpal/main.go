package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/lawpal/lawpal-go/internal/cli"
)

func main() {
	// Secrets come from the environment; a .env file is a convenience for
	// local development and may be absent.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] loading .env: %v", err)
	}

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
