package main

import (
	"os"

	"github.com/joho/godotenv"

	"studymate-service/internal/cli"
)

func main() {
	// Optional; API keys and the JWT secret usually live in .env during
	// development.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
