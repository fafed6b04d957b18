package mutation

import (
	"github.com/aretw0/biomorph/pkg/domain"
)

// MaxProbes bounds the number of scanner steps spent on a single search.
const MaxProbes = 100

// Direction is the way the scanner pointer moves.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}

// Phase is the state of a Scanner.
type Phase int

const (
	// Scanning walks the sequence looking for any bracket.
	Scanning Phase = iota
	// FoundFirst holds one bracket and walks toward its partner.
	FoundFirst
	// Matched holds an (open, close) pair. Terminal.
	Matched
	// Abandoned ran out of probes. Terminal.
	Abandoned
)

func (p Phase) String() string {
	switch p {
	case Scanning:
		return "scanning"
	case FoundFirst:
		return "found_first"
	case Matched:
		return "matched"
	case Abandoned:
		return "abandoned"
	}
	return "unknown"
}

// Outcome distinguishes a located pair from an exhausted search.
type Outcome int

const (
	OutcomeExhausted Outcome = iota
	OutcomeFound
)

// Result is the outcome of one bracket search.
type Result struct {
	Outcome  Outcome
	Open     int // index of '[' when found
	Close    int // index of ']' when found, always > Open
	Probes   int
	Restarts int
}

// Found reports whether a pair was located.
func (r Result) Found() bool { return r.Outcome == OutcomeFound }

// Scanner is the directional bracket-pair state machine.
// Indexes below lo are never read; lo marks the first scannable symbol.
type Scanner struct {
	seq []byte
	lo  int
	rng domain.Rand

	phase Phase
	ptr   int
	dir   Direction
	first int

	open, close int
	probes      int
	restarts    int
}

// NewScanner prepares a search over seq[lo:] from a random start.
func NewScanner(seq []byte, lo int, rng domain.Rand) *Scanner {
	if lo < 0 {
		lo = 0
	}
	s := &Scanner{seq: seq, lo: lo, rng: rng}
	if lo >= len(seq) {
		s.phase = Abandoned
		return s
	}
	s.reset()
	return s
}

// Locate runs a Scanner to completion.
func Locate(seq []byte, lo int, rng domain.Rand) Result {
	s := NewScanner(seq, lo, rng)
	for !s.Done() {
		s.Step()
	}
	return s.Result()
}

// Phase returns the current state.
func (s *Scanner) Phase() Phase { return s.phase }

// Pointer returns the current index and direction.
func (s *Scanner) Pointer() (int, Direction) { return s.ptr, s.dir }

// First returns the index of the held bracket while in FoundFirst.
func (s *Scanner) First() (int, bool) {
	return s.first, s.phase == FoundFirst
}

// Done reports whether the scanner reached a terminal phase.
func (s *Scanner) Done() bool {
	return s.phase == Matched || s.phase == Abandoned
}

// Result summarizes the search so far.
func (s *Scanner) Result() Result {
	r := Result{Outcome: OutcomeExhausted, Probes: s.probes, Restarts: s.restarts}
	if s.phase == Matched {
		r.Outcome = OutcomeFound
		r.Open, r.Close = s.open, s.close
	}
	return r
}

// Step performs one probe and returns the resulting phase.
func (s *Scanner) Step() Phase {
	if s.Done() {
		return s.phase
	}
	if s.probes >= MaxProbes {
		s.phase = Abandoned
		return s.phase
	}
	s.probes++

	switch s.seq[s.ptr] {
	case domain.SymbolOpen:
		s.bracket(Right)
	case domain.SymbolClose:
		s.bracket(Left)
	default:
		s.plain()
	}
	return s.phase
}

// bracket handles '[' (partner searched to the right) and ']' (to the left).
func (s *Scanner) bracket(search Direction) {
	switch {
	case s.phase == Scanning:
		s.first = s.ptr
		s.dir = search
		s.phase = FoundFirst
	case s.dir != search:
		// Heading toward the held bracket's partner and met the opposite kind.
		s.open, s.close = min(s.ptr, s.first), max(s.ptr, s.first)
		s.phase = Matched
		return
	default:
		// Same kind again: chase the nested one instead.
		s.first = s.ptr
	}
	s.advance()
	if s.ptr < s.lo || s.ptr > s.last() {
		s.restart()
	}
}

func (s *Scanner) plain() {
	atFirst, atLast := s.ptr == s.lo, s.ptr == s.last()
	if s.phase == FoundFirst && (atFirst || atLast) {
		s.restart()
		return
	}
	switch {
	case atFirst && atLast:
		return
	case atLast:
		s.dir = Left
	case atFirst:
		s.dir = Right
	}
	// A bounce also moves, otherwise the pointer would sit on the boundary until the probes run out.
	s.advance()
}

func (s *Scanner) advance() {
	if s.dir == Right {
		s.ptr++
	} else {
		s.ptr--
	}
}

func (s *Scanner) last() int { return len(s.seq) - 1 }

func (s *Scanner) restart() {
	s.restarts++
	s.reset()
}

func (s *Scanner) reset() {
	s.phase = Scanning
	s.ptr = max(s.rng.IntN(len(s.seq)), s.lo)
	s.dir = Left
	if s.rng.IntN(2) == 1 {
		s.dir = Right
	}
}
