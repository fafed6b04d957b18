package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "biomorph",
	Short: "Biomorph grows fractal figures from evolving L-system genomes",
	Long: `Biomorph synthesizes random L-system genomes, mutates them, expands them with a
noisy stochastic grammar and draws the result with a branching turtle.

Genomes are read from and written to YAML (or JSON) and can be kept in a
memory, file or Redis store selected in the config file.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a biomorph.yaml config file")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Seed for reproducible runs (default: random)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}
