package main

import (
	"fmt"

	"github.com/aretw0/biomorph/internal/config"
	"github.com/aretw0/biomorph/pkg/domain"
	"github.com/aretw0/biomorph/pkg/ports"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var mutateCmd = &cobra.Command{
	Use:   "mutate",
	Short: "Derive a mutated child from a genome",
	Long: `Reads a genome (from --in or the store via --id) and prints a mutated child.
Each locus mutates with probability -p, defaulting to mutation_probability from the config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		parent, err := readGenome(cmd, a)
		if err != nil {
			return err
		}

		p := a.cfg.Probability()
		if cmd.Flags().Changed("probability") {
			v, _ := cmd.Flags().GetFloat64("probability")
			p = domain.Probability(v)
		}
		children, _ := cmd.Flags().GetInt("children")
		if children < 1 {
			return fmt.Errorf("children must be at least 1")
		}
		save, _ := cmd.Flags().GetBool("save")
		format, _ := cmd.Flags().GetString("format")

		var store ports.GenomeStore
		if save {
			if a.cfg.Store.Kind == config.StoreMemory {
				a.logger.Warn("memory store does not outlive this process; configure store.kind file or redis")
			}
			s, closeStore, err := openStore(a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer closeStore()
			store = s
		}

		out := cmd.OutOrStdout()
		for i := 0; i < children; i++ {
			child, err := a.engine.Mutate(parent, p)
			if err != nil {
				return err
			}
			if store != nil {
				id := uuid.NewString()
				if err := store.Save(cmd.Context(), id, child); err != nil {
					return err
				}
				fmt.Fprintln(out, id)
				continue
			}
			if i > 0 && format != "json" {
				fmt.Fprintln(out, "---")
			}
			if err := writeGenome(out, child, format); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mutateCmd)
	addGenomeInputFlags(mutateCmd)
	mutateCmd.Flags().Float64P("probability", "p", 0, "Per-locus mutation probability in [0, 1]")
	mutateCmd.Flags().IntP("children", "c", 1, "Number of independent children to derive")
	mutateCmd.Flags().Bool("save", false, "Save children to the configured store and print IDs")
	mutateCmd.Flags().StringP("format", "f", "yaml", "Output format: yaml or json")
}
