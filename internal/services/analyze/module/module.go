// Package module wires lyrics analysis into the API using modkit
package module

import (
	"net/http"

	"discernio/internal/adapters/lyrics"
	"discernio/internal/core/rules"
	modkit "discernio/internal/modkit"
	"discernio/internal/modkit/httpkit"
	str "discernio/internal/platform/strings"
	analyzehttp "discernio/internal/services/analyze/http"
	analyzesvc "discernio/internal/services/analyze/service"
)

// Module implements the analyze module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc analyzesvc.Service
}

// New constructs the analyze module. The rule table is loaded once here;
// a malformed table is a startup panic, not a request error
func New(deps modkit.Deps, verses analyzesvc.VerseResolver, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("analyze"), modkit.WithPrefix("/analyze")}, opts...)...)

	o := FromConfig(deps.Cfg)

	table, err := rules.Load()
	if err != nil {
		panic("analyze: rule table failed to load: " + err.Error())
	}

	svc, err := analyzesvc.New(deps.PG, table, buildProviders(o), verses, analyzesvc.Config{
		CacheTTLDays:       o.CacheTTLDays,
		DefaultTranslation: o.Translation,
	})
	if err != nil {
		panic("analyze: service construction failed: " + err.Error())
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Analyze: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		analyzehttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// buildProviders is ordered: musixmatch when a key is configured, then the
// keyless fallback
func buildProviders(o Options) []lyrics.Provider {
	var ps []lyrics.Provider
	if o.MusixmatchKey != "" {
		ps = append(ps, lyrics.NewMusixmatch(lyrics.MusixmatchOptions{APIKey: o.MusixmatchKey}))
	}
	ps = append(ps, lyrics.NewLyricsOvh(lyrics.LyricsOvhOptions{}))
	return ps
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
