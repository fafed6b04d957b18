package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/biomorph/internal/presentation/svg"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Draw a genome as SVG",
	Long: `Expands a genome and writes the turtle drawing as an SVG document.
With --frames DIR every generation is written as DIR/frame-NN.svg instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		g, err := readGenome(cmd, a)
		if err != nil {
			return err
		}
		bg, _ := cmd.Flags().GetString("bg")
		stroke, _ := cmd.Flags().GetFloat64("stroke")
		opts := svg.Options{Background: bg, StrokeWidth: stroke}
		cfg := a.engine.TurtleConfig()

		if dir, _ := cmd.Flags().GetString("frames"); dir != "" {
			frames, err := a.engine.Develop(g)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create frames directory: %w", err)
			}
			for _, fr := range frames {
				path := filepath.Join(dir, fmt.Sprintf("frame-%02d.svg", fr.Generation))
				if err := writeFile(path, func(w io.Writer) error {
					return svg.Write(w, fr.Ops, cfg, opts)
				}); err != nil {
					return err
				}
				a.logger.Info("frame written", "path", path, "ops", len(fr.Ops))
			}
			return nil
		}

		cmdStr, err := a.engine.Expand(g, generationsFlag(cmd, a))
		if err != nil {
			return err
		}
		ops := a.engine.Render(cmdStr, g.TurnAngle)

		out, _ := cmd.Flags().GetString("out")
		if out == "" || out == "-" {
			return svg.Write(cmd.OutOrStdout(), ops, cfg, opts)
		}
		return writeFile(out, func(w io.Writer) error {
			return svg.Write(w, ops, cfg, opts)
		})
	},
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func init() {
	rootCmd.AddCommand(renderCmd)
	addGenomeInputFlags(renderCmd)
	renderCmd.Flags().IntP("generations", "g", 0, "Rewriting rounds (default: config generations)")
	renderCmd.Flags().StringP("out", "o", "-", "Output SVG file, - for stdout")
	renderCmd.Flags().String("frames", "", "Write one SVG per generation into this directory")
	renderCmd.Flags().String("bg", "white", "Background color, empty for transparent")
	renderCmd.Flags().Float64("stroke", 1, "Stroke width")
}
