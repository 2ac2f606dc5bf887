package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// Defaults applied when the manifest leaves a field empty.
const (
	DefaultListen     = ":8080"
	DefaultModuleRoot = "modules"
	DefaultLogDir     = "log"
	DefaultLogLevel   = "info"
)

// Config is the top-level server manifest.
type Config struct {
	Server   Server            `toml:"server" yaml:"server"`
	Modules  Modules           `toml:"modules" yaml:"modules"`
	Log      Log               `toml:"log" yaml:"log"`
	Metrics  Metrics           `toml:"metrics" yaml:"metrics"`
	Messages map[string]string `toml:"messages" yaml:"messages"`
	Routes   []Route           `toml:"route" yaml:"route"`
}

type Server struct {
	Listen    string `toml:"listen" yaml:"listen"`
	Debug     bool   `toml:"debug" yaml:"debug"`
	TimeoutMS int    `toml:"timeout_ms" yaml:"timeout_ms"`
	TLSCert   string `toml:"tls_cert" yaml:"tls_cert"`
	TLSKey    string `toml:"tls_key" yaml:"tls_key"`
}

type Modules struct {
	Root string `toml:"root" yaml:"root"`
	// Reserved replaces the built-in reserved module names when non-empty.
	Reserved []string `toml:"reserved" yaml:"reserved"`
}

type Log struct {
	Dir   string `toml:"dir" yaml:"dir"`
	Level string `toml:"level" yaml:"level"`
	// Console tees logs to stdout; nil means on.
	Console *bool `toml:"console" yaml:"console"`
	// BodyPaths are request paths whose small JSON bodies go into the access log.
	BodyPaths []string `toml:"body_paths" yaml:"body_paths"`
}

type Metrics struct {
	// SkipPaths are never recorded; /metrics and /ping always are skipped.
	SkipPaths []string `toml:"skip_paths" yaml:"skip_paths"`
}

// ConsoleEnabled reports whether logs are teed to stdout.
func (l Log) ConsoleEnabled() bool { return l.Console == nil || *l.Console }

// Default returns a manifest with every default applied.
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Server.Listen) == "" {
		c.Server.Listen = DefaultListen
	}
	if strings.TrimSpace(c.Modules.Root) == "" {
		c.Modules.Root = DefaultModuleRoot
	}
	if strings.TrimSpace(c.Log.Dir) == "" {
		c.Log.Dir = DefaultLogDir
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Validate applies defaults, normalizes routes and checks the result.
func (c *Config) Validate() error {
	c.applyDefaults()
	if c.Server.TimeoutMS < 0 {
		return errors.New("server.timeout_ms must be >= 0")
	}
	if (c.Server.TLSCert == "") != (c.Server.TLSKey == "") {
		return errors.New("server.tls_cert and server.tls_key must be set together")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q invalid", c.Log.Level)
	}
	for _, name := range c.Modules.Reserved {
		if !validName(name) {
			return fmt.Errorf("modules.reserved: %q is not a lowercase name", name)
		}
	}
	for _, p := range append(append([]string(nil), c.Log.BodyPaths...), c.Metrics.SkipPaths...) {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("path %q must start with /", p)
		}
	}
	for k, v := range c.Messages {
		if strings.TrimSpace(k) == "" || strings.TrimSpace(v) == "" {
			return fmt.Errorf("messages: empty key or template for %q", k)
		}
	}
	return c.validateRoutes()
}
