// Package api provides the HTTP API for the application
package api

import (
	"discernio/internal/platform/config"
	"discernio/internal/platform/logger"
	phttp "discernio/internal/platform/net/http"
	"discernio/internal/platform/store"

	"discernio/internal/adapters/scripture"
	"discernio/internal/modkit"
	"discernio/internal/modkit/httpkit"
	"discernio/internal/modkit/module"
	"discernio/internal/modkit/swaggerkit"

	analyzemod "discernio/internal/services/analyze/module"
	metamod "discernio/internal/services/api/meta/module"
	mediamod "discernio/internal/services/media/module"
	searchlogsvc "discernio/internal/services/searchlog/service"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// Cross-module collaborators are built here and injected: the verse
	// resolver backs /analyze, the search log consumes media search events
	verses := scripture.NewClient(scripture.Options{})
	events := searchlogsvc.New(opt.Store.CH)

	mods := []module.Module{
		metamod.New(deps),
		analyzemod.New(deps, verses),
		mediamod.New(deps, events),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
