package demo

import (
	"strings"

	"github.com/gobwas/glob"

	"microbus/component"
	"microbus/logger"
)

// Registry returns the full set of demo components, narrowed to those
// whose name matches profile. profile is a comma-separated list of
// gobwas/glob patterns matched against each component's declared name; an
// empty profile or "*" selects everything. An invalid pattern is skipped
// rather than failing the whole selection.
func Registry(profile string, log logger.Logger) []component.Spec {
	all := []component.Spec{
		NewProducer(),
		NewCollector(),
		NewCollectorStrict(),
		NewBooter(),
		NewEcho(),
		NewSplitter(),
		NewACollector(),
		NewBCollector(),
		NewSystemStats(),
		NewStatsLogger(log),
	}

	profile = strings.TrimSpace(profile)
	if profile == "" || profile == "*" {
		return all
	}

	var globs []glob.Glob

	for _, p := range strings.Split(profile, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		g, err := glob.Compile(p)
		if err != nil {
			continue
		}

		globs = append(globs, g)
	}

	if len(globs) == 0 {
		return all
	}

	filtered := make([]component.Spec, 0, len(all))

	for _, spec := range all {
		for _, g := range globs {
			if g.Match(spec.Name) {
				filtered = append(filtered, spec)
				break
			}
		}
	}

	return filtered
}
