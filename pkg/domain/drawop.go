package domain

import "image/color"

// OpKind identifies the type of a draw operation.
type OpKind string

const (
	OpLine  OpKind = "line"  // Visible segment From -> To in Color
	OpColor OpKind = "color" // Current pen color switched to Color
	OpPush  OpKind = "push"  // Position From saved on the turtle stack
	OpPop   OpKind = "pop"   // Position To restored from the turtle stack
)

// Point is a position on the drawing canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DrawOp is one unit of rendering output, consumed in order by a renderer.
type DrawOp struct {
	Kind  OpKind     `json:"kind"`
	From  Point      `json:"from"`
	To    Point      `json:"to"`
	Color color.RGBA `json:"color"`
}

// IsStackOp reports whether the op records a push or a pop.
func (op DrawOp) IsStackOp() bool {
	return op.Kind == OpPush || op.Kind == OpPop
}

// CountKind returns how many ops in the slice have the given kind.
func CountKind(ops []DrawOp, kind OpKind) int {
	n := 0
	for _, op := range ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
