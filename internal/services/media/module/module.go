// Package module wires media analysis into the API using modkit
package module

import (
	"net/http"

	"discernio/internal/adapters/ai"
	"discernio/internal/adapters/books"
	"discernio/internal/adapters/music"
	"discernio/internal/adapters/tmdb"
	modkit "discernio/internal/modkit"
	"discernio/internal/modkit/httpkit"
	str "discernio/internal/platform/strings"
	mediahttp "discernio/internal/services/media/http"
	mediasvc "discernio/internal/services/media/service"
)

// Module implements the media module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc mediasvc.Service
}

// New constructs the media module. events may be nil when search logging is
// disabled
func New(deps modkit.Deps, events mediasvc.EventSink, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("media"), modkit.WithPrefix("")}, opts...)...)

	o := FromConfig(deps.Cfg)

	analyzer := ai.NewClient(ai.Options{APIKey: o.OpenAIKey, Model: o.OpenAIModel})
	movies := tmdb.NewClient(tmdb.Options{APIKey: o.TMDBKey})
	bookdb := books.NewClient(books.Options{})
	songs := music.NewClient(music.Options{})

	svc := mediasvc.New(deps.PG, analyzer, movies, bookdb, events)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Media: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		mediahttp.Register(r, m.svc, movies, songs)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router. The media module
// owns top-level paths, so an empty prefix mounts directly
func (m *Module) MountRoutes(r httpkit.Router) {
	mount := func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	}
	if m.prefix == "" {
		mount(r)
		return
	}
	r.Route(m.prefix, mount)
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
