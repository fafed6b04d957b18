// Package factory synthesizes random genomes from a freshly generated component library.
package factory
