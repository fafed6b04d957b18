package library

import (
	"strings"

	"github.com/aretw0/biomorph/pkg/domain"
)

const (
	// DefaultFCount is the size of the F-component pool.
	DefaultFCount = 100
	// MaxFLength is the longest F-component generated.
	MaxFLength = 6
	// letterPercent is the chance, out of 100, that a fragment character is a letter rather than a sign.
	letterPercent = 70
)

// Slot is the placeholder replaced by an F-component inside a template.
const Slot = 'X'

// Templates are the bracket skeletons used to build B-components.
// They are structural data, not a grammar: some are deliberately unbalanced.
var Templates = [...]string{
	"X",
	"[X]X",
	"X[X",
	"[[X][X]]",
	"[X[X][X]]",
	"[[X]X[X]]",
	"[[X][X]X]",
	"[X[X]X[X]]",
	"[X[X]X[X]X]",
	"[X[X[X]X]X]",
	"[X[X[X]]]",
}

// BCount is the number of B-components in every library.
const BCount = len(Templates)

// Library is one generation's pool of fragments.
type Library struct {
	F []string
	B []string
}

// New builds a fresh library from rng.
func New(rng domain.Rand) Library {
	f := GenerateFComponents(rng, DefaultFCount)
	return Library{F: f, B: GenerateBComponents(rng, f)}
}

// GenerateFComponents returns count fragments of length 1..MaxFLength.
func GenerateFComponents(rng domain.Rand, count int) []string {
	out := make([]string, count)
	var sb strings.Builder
	for i := range out {
		sb.Reset()
		size := rng.IntN(MaxFLength) + 1
		for j := 0; j < size; j++ {
			if rng.IntN(100) < letterPercent {
				sb.WriteByte(domain.Letters[rng.IntN(len(domain.Letters))])
			} else {
				sb.WriteByte(domain.Signs[rng.IntN(len(domain.Signs))])
			}
		}
		out[i] = sb.String()
	}
	return out
}

// GenerateBComponents fills every template, sampling the pool with replacement for each slot.
// The pool must not be empty.
func GenerateBComponents(rng domain.Rand, pool []string) []string {
	out := make([]string, BCount)
	for i, tpl := range Templates {
		out[i] = Fill(tpl, func() string { return pool[rng.IntN(len(pool))] })
	}
	return out
}

// Fill replaces each Slot in tpl with the next value produced by next.
func Fill(tpl string, next func() string) string {
	var sb strings.Builder
	for i := 0; i < len(tpl); i++ {
		if tpl[i] == Slot {
			sb.WriteString(next())
			continue
		}
		sb.WriteByte(tpl[i])
	}
	return sb.String()
}

// Bracketed returns the B-components built from templates that contain brackets.
func (l Library) Bracketed() []string {
	return l.B[1:]
}

// Pick returns a uniformly chosen B-component.
func (l Library) Pick(rng domain.Rand) string {
	return l.B[rng.IntN(len(l.B))]
}

// PickBracketed returns a uniformly chosen bracketed B-component.
func (l Library) PickBracketed(rng domain.Rand) string {
	b := l.Bracketed()
	return b[rng.IntN(len(b))]
}
