package domain

// Grammar alphabet.
const (
	SymbolDraw  byte = 'f' // advance and draw
	SymbolMove  byte = 'g' // advance without drawing
	SymbolDrawH byte = 'h' // advance and draw (second drawing symbol)
	SymbolPlus  byte = '+'
	SymbolMinus byte = '-'
	SymbolOpen  byte = '['
	SymbolClose byte = ']'
)

// Letters is the set of symbols allowed in axioms and rule predecessors.
const Letters = "fgh"

// Signs is the set of turn symbols found in motif fragments.
const Signs = "+-"

// RuleSeparator joins predecessor and successor in the textual rule form "f=succ".
const RuleSeparator = '='

// IsLetter reports whether c is one of f, g or h.
func IsLetter(c byte) bool {
	return c == SymbolDraw || c == SymbolMove || c == SymbolDrawH
}
