// Package main is the admission-search command line tool. It runs one search
// and scores the results against an applicant profile without a broker.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "admission-search",
	Short: "Find and rank graduate programs for an applicant",
	Long: "admission-search resolves a program name, searches the College Scorecard (or its index mirror) " +
		"with broadening, and ranks the institutions by estimated acceptance within a two-year budget.",
	SilenceUsage: true,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config.yaml (default: configs/config.yaml lookup)")
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
