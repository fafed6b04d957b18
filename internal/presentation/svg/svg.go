// Package svg writes turtle draw operations as a standalone SVG document.
package svg

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	"github.com/aretw0/biomorph/pkg/domain"
	"github.com/aretw0/biomorph/pkg/turtle"
)

// Options tunes the document without touching the geometry.
type Options struct {
	Background  string  // CSS color; empty means transparent
	StrokeWidth float64 // defaults to 1
}

// Write renders ops onto a canvas of cfg's size.
// Only line ops produce elements; push, pop and color ops are already folded into the lines.
func Write(w io.Writer, ops []domain.DrawOp, cfg turtle.Config, opts Options) error {
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = 1
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(cfg.Width), num(cfg.Height), num(cfg.Width), num(cfg.Height))
	if opts.Background != "" {
		fmt.Fprintf(bw, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", opts.Background)
	}
	fmt.Fprintf(bw, `<g stroke-width="%s" stroke-linecap="round">`+"\n", num(opts.StrokeWidth))
	for _, op := range ops {
		if op.Kind != domain.OpLine {
			continue
		}
		fmt.Fprintf(bw, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
			num(op.From.X), num(op.From.Y), num(op.To.X), num(op.To.Y), hex(op.Color))
	}
	fmt.Fprintln(bw, "</g>")
	fmt.Fprintln(bw, "</svg>")
	return bw.Flush()
}

// num prints coordinates rounded to hundredths without trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
