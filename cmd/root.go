package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command for the jobstack API server.
var rootCmd = &cobra.Command{
	Use:   "jobstack",
	Short: "Job board API server",
	Long:  `Backend API for the jobstack job board: user accounts, job postings, and job search.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
