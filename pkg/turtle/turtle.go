package turtle

import (
	"image/color"
	"math"

	"github.com/aretw0/biomorph/pkg/domain"
)

// Config holds the fixed geometry of the interpreter.
type Config struct {
	Width      float64 `json:"width" yaml:"width" mapstructure:"width"`
	Height     float64 `json:"height" yaml:"height" mapstructure:"height"`
	StepLength float64 `json:"step_length" yaml:"step_length" mapstructure:"step_length"`
	// Heading is the starting bearing in radians.
	Heading float64 `json:"heading" yaml:"heading" mapstructure:"heading"`
}

// DefaultConfig returns the 200x200 canvas geometry.
func DefaultConfig() Config {
	return Config{
		Width:      200,
		Height:     200,
		StepLength: 1.8,
		Heading:    -190.3,
	}
}

// Center returns the starting position of the turtle.
func (c Config) Center() domain.Point {
	return domain.Point{X: c.Width / 2, Y: c.Height / 2}
}

// Interpreter turns command strings into draw operations.
// It holds only configuration and can be shared.
type Interpreter struct {
	cfg Config
}

// New creates an interpreter. Non-positive sizes fall back to DefaultConfig; Heading is used as given.
func New(cfg Config) *Interpreter {
	def := DefaultConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.StepLength <= 0 {
		cfg.StepLength = def.StepLength
	}
	return &Interpreter{cfg: cfg}
}

// Config returns the effective configuration.
func (in *Interpreter) Config() Config { return in.cfg }

type state struct {
	pos     domain.Point
	heading float64
	color   color.RGBA
	stack   []domain.Point
}

// Render walks cmd once and returns the draw operations in order.
func (in *Interpreter) Render(cmd string, turnAngleDegrees int) []domain.DrawOp {
	unit := float64(turnAngleDegrees) * math.Pi / 180
	st := state{pos: in.cfg.Center(), heading: in.cfg.Heading, color: DefaultColor}
	var ops []domain.DrawOp

	for i := 0; i < len(cmd); i++ {
		switch c := cmd[i]; c {
		case domain.SymbolDraw, domain.SymbolDrawH, domain.SymbolMove:
			next := domain.Point{
				X: st.pos.X + in.cfg.StepLength*math.Cos(st.heading),
				Y: st.pos.Y + in.cfg.StepLength*math.Sin(st.heading),
			}
			if c != domain.SymbolMove {
				ops = append(ops, domain.DrawOp{Kind: domain.OpLine, From: st.pos, To: next, Color: st.color})
			}
			st.pos = next
		case domain.SymbolPlus:
			st.heading += unit
		case domain.SymbolMinus:
			st.heading -= unit
		case domain.SymbolOpen:
			st.stack = append(st.stack, st.pos)
			ops = append(ops, domain.DrawOp{Kind: domain.OpPush, From: st.pos, Color: st.color})
		case domain.SymbolClose:
			if len(st.stack) == 0 {
				continue
			}
			from := st.pos
			st.pos = st.stack[len(st.stack)-1]
			st.stack = st.stack[:len(st.stack)-1]
			ops = append(ops, domain.DrawOp{Kind: domain.OpPop, From: from, To: st.pos, Color: st.color})
		default:
			if col, ok := Palette[c]; ok {
				st.color = col
				ops = append(ops, domain.DrawOp{Kind: domain.OpColor, From: st.pos, To: st.pos, Color: col})
			}
		}
	}
	return ops
}

// Render interprets cmd with the default configuration.
func Render(cmd string, turnAngleDegrees int) []domain.DrawOp {
	return New(DefaultConfig()).Render(cmd, turnAngleDegrees)
}

// Bounds returns the smallest rectangle containing every line op.
// ok is false when there are no lines.
func Bounds(ops []domain.DrawOp) (minPt, maxPt domain.Point, ok bool) {
	for _, op := range ops {
		if op.Kind != domain.OpLine {
			continue
		}
		for _, p := range [2]domain.Point{op.From, op.To} {
			if !ok {
				minPt, maxPt, ok = p, p, true
				continue
			}
			minPt.X, minPt.Y = math.Min(minPt.X, p.X), math.Min(minPt.Y, p.Y)
			maxPt.X, maxPt.Y = math.Max(maxPt.X, p.X), math.Max(maxPt.Y, p.Y)
		}
	}
	return minPt, maxPt, ok
}
