package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how much a logger writes.
type Options struct {
	Dir     string
	Level   string
	Console bool
}

// DefaultOptions writes info and above to log/ and stdout.
func DefaultOptions() Options {
	return Options{Dir: "log", Level: "info", Console: true}
}

// New returns a JSON logger writing to <dir>/<name> through lumberjack,
// teed to stdout when o.Console is set.
func New(name string, o Options) (*zap.Logger, error) {
	if o.Dir == "" {
		o.Dir = "log"
	}
	lvl := zap.InfoLevel
	if o.Level != "" {
		l, err := zapcore.ParseLevel(o.Level)
		if err != nil {
			return nil, err
		}
		lvl = l
	}
	if err := os.MkdirAll(o.Dir, 0o755); err != nil {
		return nil, err
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(o.Dir, name),
		MaxSize:    50, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	})

	cores := []zapcore.Core{zapcore.NewCore(zapcore.NewJSONEncoder(cfg), w, lvl)}
	if o.Console {
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.Lock(os.Stdout), lvl))
	}
	return zap.New(zapcore.NewTee(cores...)), nil
}

// NewLog is New with DefaultOptions, falling back to stdout only when the
// log directory can not be created.
func NewLog(name string) *zap.Logger {
	l, err := New(name, DefaultOptions())
	if err != nil {
		return zap.New(zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.Lock(os.Stdout), zap.InfoLevel,
		))
	}
	return l
}
