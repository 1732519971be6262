package scaffold

import (
	"embed"
	"io/fs"

	"github.com/agentx-labs/stamp/internal/registry"
)

//go:embed all:scaffolds
var scaffoldFS embed.FS

// BuiltinSourceName names the source of the embedded template sets.
const BuiltinSourceName = "builtin"

// Builtin returns the embedded template sets as a registry source.
func Builtin() registry.Source {
	sub, err := fs.Sub(scaffoldFS, "scaffolds")
	if err != nil {
		panic(err) // the directory is embedded at build time
	}
	return registry.Source{Name: BuiltinSourceName, FS: sub}
}
