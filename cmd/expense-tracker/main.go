// Package main is the entry point for the expense-tracker command line tool.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/expense-tracker/backend/internal/cli"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	os.Exit(cli.Execute(cli.NewRootCommand(), os.Stderr))
}
