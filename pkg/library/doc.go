// Package library generates the motif fragments that genomes are built from.
//
// F-components are short strings over {f,g,h,+,-}. B-components are produced
// by filling a fixed set of bracket templates with F-components. A fresh
// Library is built on every call; nothing is cached between calls.
package library
