package main

import (
	"fmt"
	"os"

	"github.com/aretw0/biomorph/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Describe a genome and its developed form",
	Long:  `Prints a markdown report of the genome rules and the expanded drawing, styled when stdout is a terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		g, err := readGenome(cmd, a)
		if err != nil {
			return err
		}

		expanded, err := a.engine.Expand(g, generationsFlag(cmd, a))
		if err != nil {
			return err
		}
		ops := a.engine.Render(expanded, g.TurnAngle)
		id, _ := cmd.Flags().GetString("id")
		report := tui.Report(id, g, expanded, ops)

		out := cmd.OutOrStdout()
		plain, _ := cmd.Flags().GetBool("plain")
		if plain || out != os.Stdout || !tui.IsInteractive(os.Stdout) {
			fmt.Fprint(out, report)
			return nil
		}

		tui.PrintBanner(out)
		render, err := tui.NewRenderer(tui.Width(os.Stdout))
		if err != nil {
			return err
		}
		styled, err := render(report)
		if err != nil {
			return err
		}
		fmt.Fprint(out, styled)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	addGenomeInputFlags(inspectCmd)
	inspectCmd.Flags().IntP("generations", "g", 0, "Rewriting rounds (default: config generations)")
	inspectCmd.Flags().Bool("plain", false, "Print raw markdown even on a terminal")
}
