package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/hann12-34/discovr-pipeline/internal/cli"
)

func main() {
	// Optional .env for DISCOVR_* defaults; absence is fine.
	_ = godotenv.Load()

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
