// pkg/serverfx/module.go
package serverfx

import (
	"net/http"
	"time"

	"github.com/joeydtaylor/minoss/pkg/core"
	"github.com/joeydtaylor/minoss/pkg/debug"
	"github.com/joeydtaylor/minoss/pkg/dispatch"
	"github.com/joeydtaylor/minoss/pkg/manifest"
	"github.com/joeydtaylor/minoss/pkg/messages"
	"github.com/joeydtaylor/minoss/pkg/middleware/logger"
	"github.com/joeydtaylor/minoss/pkg/middleware/metrics"
	"github.com/joeydtaylor/minoss/pkg/resolver"
	"github.com/joeydtaylor/minoss/pkg/transport/httpx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ---------- Options ----------

type Config struct {
	Service      string // for logs only
	ManifestPath string
	// Overrides run after the manifest and environment are applied.
	Overrides []func(*manifest.Config)
}

type Option func(*Config)

func WithService(s string) Option     { return func(c *Config) { c.Service = s } }
func WithManifest(path string) Option { return func(c *Config) { c.ManifestPath = path } }
func WithOverride(fn func(*manifest.Config)) Option {
	return func(c *Config) { c.Overrides = append(c.Overrides, fn) }
}

func defaultConfig() Config {
	return Config{
		Service:      "minoss",
		ManifestPath: core.ManifestPath(),
	}
}

// Module returns the complete fx option set for a minoss server.
func Module(opts ...Option) fx.Option {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(ProvideManifest),
		logger.Module,
		fx.Provide(fx.Annotate(metrics.ProvideMetrics, fx.ResultTags(`name:"metrics"`))),
		fx.Provide(httpx.NewChi),
		fx.Provide(
			provideCatalog,
			ProvideStore,
			provideResolver,
			provideDebug,
			provideDispatcher,
			newServer,
		),
		fx.Provide(fx.Annotate(
			provideRouter,
			fx.ParamTags(``, ``, ``, `name:"metrics"`, ``, ``),
			fx.ResultTags(`name:"app"`),
		)),
		fx.Invoke(registerHooks),
	)
}

// ---------- Providers ----------

// ProvideManifest loads the manifest and applies CLI overrides.
func ProvideManifest(cfg Config) (manifest.Config, error) {
	man, err := core.LoadConfig(cfg.ManifestPath)
	if err != nil {
		return manifest.Config{}, err
	}
	if len(cfg.Overrides) == 0 {
		return man, nil
	}
	for _, fn := range cfg.Overrides {
		fn(&man)
	}
	return man, man.Validate()
}

func provideCatalog(man manifest.Config) (*messages.Catalog, error) {
	return messages.NewCatalog(man.Messages)
}

// ProvideStore chains in-process units ahead of the module directory.
func ProvideStore(man manifest.Config) resolver.Store {
	return resolver.Chain{resolver.Default, resolver.NewDirStore(man.Modules.Root)}
}

func provideResolver(man manifest.Config, store resolver.Store) *resolver.Resolver {
	var opts []resolver.Option
	if len(man.Modules.Reserved) > 0 {
		opts = append(opts, resolver.WithReserved(man.Modules.Reserved...))
	}
	return resolver.New(store, opts...)
}

func provideDebug(man manifest.Config, r *resolver.Resolver, zl *zap.Logger) *debug.Instrument {
	return debug.New(man.Server.Debug, r, zl)
}

func provideDispatcher(
	man manifest.Config,
	r *resolver.Resolver,
	cat *messages.Catalog,
	dbg *debug.Instrument,
	zl *zap.Logger,
) *dispatch.Dispatcher {
	return dispatch.New(r,
		dispatch.WithCatalog(cat),
		dispatch.WithDebug(dbg),
		dispatch.WithLogger(zl.Named("dispatch")),
		dispatch.WithTimeout(time.Duration(man.Server.TimeoutMS)*time.Millisecond),
	)
}

// ---------- Router ----------

func provideRouter(
	man manifest.Config,
	lm *logger.Middleware,
	d *dispatch.Dispatcher,
	/* name:"metrics" */ m http.Handler,
	cat *messages.Catalog,
	r httpx.Router,
) http.Handler {
	return core.BuildRouter(man, core.BuildDeps{
		LogMW:      lm,
		Metrics:    m,
		Router:     r,
		Dispatcher: d,
		Catalog:    cat,
	})
}
