package turtle

import "image/color"

// Palette colors addressed by the command symbols K, R, G, B, C and O.
var (
	Black        = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	DeepRed      = color.RGBA{R: 200, G: 0, B: 0, A: 255}
	SandGreen    = color.RGBA{R: 143, G: 188, B: 139, A: 255}
	MediumPurple = color.RGBA{R: 147, G: 112, B: 219, A: 255}
	Sapphire     = color.RGBA{R: 15, G: 82, B: 186, A: 255}
	Pumpkin      = color.RGBA{R: 255, G: 117, B: 24, A: 255}
)

// Palette maps color symbols to colors.
var Palette = map[byte]color.RGBA{
	'K': Black,
	'R': DeepRed,
	'G': SandGreen,
	'B': MediumPurple,
	'C': Sapphire,
	'O': Pumpkin,
}

// DefaultColor is the pen color before any color symbol is read.
var DefaultColor = Black
