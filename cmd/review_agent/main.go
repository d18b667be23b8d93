// Package main provides the entry point for the Resume Review HTTP API server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "review_agent",
	Short: "AI Resume Review Server",
	Long:  "Resume Review analyzes uploaded resumes against job postings with AI feedback and runs guided optimization sessions via REST API or CLI.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
