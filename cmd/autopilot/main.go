// Package main provides the entry point for the Content Autopilot HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autopilot",
	Short: "Content Autopilot HTTP API Server",
	Long:  "Content Autopilot generates social post content through AI providers with automatic fallback, validates it, and publishes it to a Twitter-compatible API via REST endpoints.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
