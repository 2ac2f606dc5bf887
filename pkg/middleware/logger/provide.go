package logger

import (
	"github.com/joeydtaylor/minoss/pkg/manifest"
	"go.uber.org/zap"
)

func ProvideLoggerMiddleware(cfg manifest.Config) (*Middleware, error) {
	l, err := New("http-access.log", OptionsFrom(cfg.Log))
	if err != nil {
		return nil, err
	}
	return NewMiddleware(l, cfg.Log.BodyPaths...), nil
}

func ProvideLogger(cfg manifest.Config) (*zap.Logger, error) {
	return New("system.log", OptionsFrom(cfg.Log))
}
