package main

import (
	"log"
	"os"

	"questionnaire/internal/app"
	"questionnaire/internal/config"
)

func main() {
	if err := config.LoadEnvFile(".env"); err != nil {
		log.Fatalf("Error loading .env: %v", err)
	}

	cfg, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("Error parsing flags: %v", err)
	}

	if err := app.ServeMCP(cfg); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
