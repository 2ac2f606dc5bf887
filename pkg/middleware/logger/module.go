package logger

import (
	"github.com/joeydtaylor/minoss/pkg/manifest"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(ProvideLoggerMiddleware),
	fx.Provide(ProvideLogger),
)

// OptionsFrom maps the manifest [log] table onto Options.
func OptionsFrom(c manifest.Log) Options {
	return Options{Dir: c.Dir, Level: c.Level, Console: c.ConsoleEnabled()}
}
