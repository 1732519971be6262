package cli

import (
	"github.com/agentx-labs/stamp/internal/config"
	"github.com/agentx-labs/stamp/internal/registry"
	"github.com/agentx-labs/stamp/internal/scaffold"
)

// buildSources returns template-set sources in priority order: the
// --templates-dir flag, the configured templates directory, then the
// built-in sets.
func buildSources() []registry.Source {
	var sources []registry.Source
	if templatesDir != "" {
		sources = append(sources, registry.DirSource("flag", templatesDir))
	}
	if dir := config.TemplatesDir(); dir != "" {
		sources = append(sources, registry.DirSource("user", dir))
	}
	sources = append(sources, scaffold.Builtin())
	logger.Debug("template sources", "count", len(sources))
	return sources
}
