package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var expandCmd = &cobra.Command{
	Use:   "expand",
	Short: "Print the command string a genome grows into",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		g, err := readGenome(cmd, a)
		if err != nil {
			return err
		}

		n := generationsFlag(cmd, a)
		out, err := a.engine.Expand(g, n)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

// generationsFlag returns -g when set, else the configured default.
func generationsFlag(cmd *cobra.Command, a *app) int {
	if cmd.Flags().Changed("generations") {
		n, _ := cmd.Flags().GetInt("generations")
		return n
	}
	return a.engine.Generations()
}

func init() {
	rootCmd.AddCommand(expandCmd)
	addGenomeInputFlags(expandCmd)
	expandCmd.Flags().IntP("generations", "g", 0, "Rewriting rounds (default: config generations)")
}
