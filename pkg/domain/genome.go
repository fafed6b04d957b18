package domain

import (
	"fmt"
	"strings"
)

// Rule is a rewrite instruction mapping one predecessor symbol to a successor string.
// Bracket balance in Successor is not guaranteed once a rule has been mutated.
type Rule struct {
	Predecessor byte
	Successor   string
}

// ParseRule parses the textual form "p=successor".
func ParseRule(s string) (Rule, error) {
	if len(s) < 2 || s[1] != RuleSeparator {
		return Rule{}, fmt.Errorf("%w: %q is not of the form p=successor", ErrInvalidRule, s)
	}
	if !IsLetter(s[0]) {
		return Rule{}, fmt.Errorf("%w: predecessor %q must be one of %s", ErrInvalidRule, s[0], Letters)
	}
	if len(s) == 2 {
		return Rule{}, fmt.Errorf("%w: %q has an empty successor", ErrInvalidRule, s)
	}
	return Rule{Predecessor: s[0], Successor: s[2:]}, nil
}

// String renders the rule as "p=successor".
func (r Rule) String() string {
	return string(r.Predecessor) + string(RuleSeparator) + r.Successor
}

// MarshalText implements encoding.TextMarshaler so rules travel as "p=successor" in JSON and YAML.
func (r Rule) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rule) UnmarshalText(text []byte) error {
	parsed, err := ParseRule(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Genome is the evolvable representation of a biomorph.
// A Genome is treated as a value: mutation produces a new one.
type Genome struct {
	Axiom     string `json:"axiom" yaml:"axiom" mapstructure:"axiom"`
	Rules     []Rule `json:"rules" yaml:"rules" mapstructure:"rules"`
	TurnAngle int    `json:"turn_angle" yaml:"turn_angle" mapstructure:"turn_angle"`
}

// NewGenome validates the fields and returns a Genome owning its own copy of rules.
func NewGenome(axiom string, rules []Rule, turnAngle int) (Genome, error) {
	g := Genome{Axiom: axiom, Rules: append([]Rule(nil), rules...), TurnAngle: turnAngle}
	if err := g.Validate(); err != nil {
		return Genome{}, err
	}
	return g, nil
}

// Clone returns a deep copy of the genome.
func (g Genome) Clone() Genome {
	g.Rules = append([]Rule(nil), g.Rules...)
	return g
}

// RuleStrings returns the rules in their textual form.
func (g Genome) RuleStrings() []string {
	out := make([]string, len(g.Rules))
	for i, r := range g.Rules {
		out[i] = r.String()
	}
	return out
}

// String renders a compact, single-line description.
func (g Genome) String() string {
	return fmt.Sprintf("axiom=%s rules=[%s] angle=%d", g.Axiom, strings.Join(g.RuleStrings(), " "), g.TurnAngle)
}

// Validate checks the boundary invariants of a genome.
// Successors must be non-empty, but their bracket balance is not checked:
// mutated rules may legitimately be unbalanced.
func (g Genome) Validate() error {
	var errs []error

	if g.Axiom == "" {
		errs = append(errs, &ValidationError{Field: "axiom", Reason: "must not be empty"})
	}
	for i := 0; i < len(g.Axiom); i++ {
		if !IsLetter(g.Axiom[i]) {
			errs = append(errs, &ValidationError{
				Field:  "axiom",
				Reason: fmt.Sprintf("symbol at %d must be one of %s", i, Letters),
				Value:  string(g.Axiom[i]),
			})
			break
		}
	}

	if len(g.Rules) == 0 {
		errs = append(errs, &ValidationError{Field: "rules", Reason: "must not be empty"})
	}
	for i, r := range g.Rules {
		if !IsLetter(r.Predecessor) {
			errs = append(errs, &ValidationError{
				Field:  fmt.Sprintf("rules[%d]", i),
				Reason: "predecessor must be one of " + Letters,
				Value:  string(r.Predecessor),
			})
		}
		if r.Successor == "" {
			errs = append(errs, &ValidationError{
				Field:  fmt.Sprintf("rules[%d]", i),
				Reason: "successor must not be empty",
			})
		}
	}

	if g.TurnAngle <= 0 {
		errs = append(errs, &ValidationError{Field: "turn_angle", Reason: "must be positive", Value: g.TurnAngle})
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
