package main

import (
	"fmt"

	"github.com/aretw0/biomorph/internal/config"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Synthesize random genomes",
	Long: `Generates random genomes and prints them as YAML documents.
With --save the genomes go to the configured store and only their IDs are printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")
		save, _ := cmd.Flags().GetBool("save")
		format, _ := cmd.Flags().GetString("format")
		if count < 1 {
			return fmt.Errorf("count must be at least 1")
		}

		out := cmd.OutOrStdout()
		if !save {
			for i := 0; i < count; i++ {
				if i > 0 && format != "json" {
					fmt.Fprintln(out, "---")
				}
				if err := writeGenome(out, a.engine.GenerateRandomGenome(), format); err != nil {
					return err
				}
			}
			return nil
		}

		if a.cfg.Store.Kind == config.StoreMemory {
			a.logger.Warn("memory store does not outlive this process; configure store.kind file or redis")
		}
		store, closeStore, err := openStore(a.cfg, a.logger)
		if err != nil {
			return err
		}
		defer closeStore()

		for i := 0; i < count; i++ {
			id := uuid.NewString()
			if err := store.Save(cmd.Context(), id, a.engine.GenerateRandomGenome()); err != nil {
				return err
			}
			fmt.Fprintln(out, id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntP("count", "n", 1, "Number of genomes to generate")
	generateCmd.Flags().Bool("save", false, "Save to the configured store and print IDs")
	generateCmd.Flags().StringP("format", "f", "yaml", "Output format: yaml or json")
}
