// Package middleware decorates a ports.GenomeStore with cross-cutting behavior.
package middleware

import "github.com/aretw0/biomorph/pkg/ports"

// Middleware allows wrapping a GenomeStore to add behavior.
type Middleware func(ports.GenomeStore) ports.GenomeStore

// Chain wraps store so that the first middleware is the outermost.
func Chain(store ports.GenomeStore, mws ...Middleware) ports.GenomeStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
