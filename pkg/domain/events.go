package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventGenomeCreated EventType = "genome_created"
	EventMutation      EventType = "mutation"
	EventExpand        EventType = "expand"
	EventRender        EventType = "render"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// GenomeEvent is emitted when a random genome is synthesized.
type GenomeEvent struct {
	EventBase
	Genome Genome `json:"genome"`
}

// MutationEvent summarizes a single genome mutation.
type MutationEvent struct {
	EventBase
	AxiomMutated bool `json:"axiom_mutated"`
	AngleMutated bool `json:"angle_mutated"`
	RulesMutated int  `json:"rules_mutated"`
	Deletions    int  `json:"deletions"`
	Insertions   int  `json:"insertions"`
	Exhausted    int  `json:"exhausted"` // rules whose bracket search ran out of probes
}

// ExpandEvent is emitted after a grammar expansion.
type ExpandEvent struct {
	EventBase
	Generations int `json:"generations"`
	Length      int `json:"length"`
}

// RenderEvent is emitted after the turtle interpreted a command string.
type RenderEvent struct {
	EventBase
	Lines int `json:"lines"`
	Ops   int `json:"ops"`
}

// LifecycleHooks defines callbacks for engine observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnGenomeCreated func(*GenomeEvent)
	OnMutation      func(*MutationEvent)
	OnExpand        func(*ExpandEvent)
	OnRender        func(*RenderEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnGenomeCreated: chain(h.OnGenomeCreated, other.OnGenomeCreated),
		OnMutation:      chain(h.OnMutation, other.OnMutation),
		OnExpand:        chain(h.OnExpand, other.OnExpand),
		OnRender:        chain(h.OnRender, other.OnRender),
	}
}

func chain[E any](a, b func(*E)) func(*E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e *E) {
		a(e)
		b(e)
	}
}
