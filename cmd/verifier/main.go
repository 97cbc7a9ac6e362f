package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	rootCmd    = &cobra.Command{
		Use:   "verifier",
		Short: "Lumenstage Verifier - Release verification pipeline",
		Long: `Lumenstage Verifier runs the release verification pipeline for media
generation projects. It executes phased batteries of checks (research,
engineering, testing, production readiness, verification), aggregates
their findings into a commission report, and gates the release on it.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
