// Package migrations embeds the schema migrations so the binaries can apply
// them without a copy of this directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
