package domain

import "fmt"

// Probability is the chance, in [0, 1], that a Bernoulli event occurs.
type Probability float64

const (
	Zero Probability = 0
	One  Probability = 1
)

// NewProbability validates v.
func NewProbability(v float64) (Probability, error) {
	if v < 0 || v > 1 || v != v {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidProbability, v)
	}
	return Probability(v), nil
}

// Event draws once from rng and reports whether the event occurred.
// Zero never fires and One always fires, regardless of the source.
func (p Probability) Event(rng Rand) bool {
	switch {
	case p <= 0:
		return false
	case p >= 1:
		return true
	}
	return rng.Float64() < float64(p)
}
