// Package grammar expands an axiom into a command string with stochastic rule selection.
//
// Selection is deliberately noisy: for every symbol a random number of rule
// indexes is drawn and only the last one is consulted. A symbol is rewritten
// only when that rule's predecessor matches it.
package grammar
