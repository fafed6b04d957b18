package biomorph

import _ "embed"

// Version is the module release, embedded from the VERSION file.
//
//go:embed VERSION
var Version string
