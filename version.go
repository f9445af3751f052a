package chaingen

import _ "embed"

// Version is the released version of chaingen.
//
//go:embed VERSION
var Version string
