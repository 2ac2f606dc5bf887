package core

import (
	"os"
	"strings"

	manifest "github.com/joeydtaylor/minoss/pkg/manifest"
)

// Environment keys read at startup.
const (
	EnvManifest   = "MINOSS_MANIFEST"
	EnvListen     = "SERVER_LISTEN_ADDRESS"
	EnvDebug      = "MINOSS_DEBUG"
	EnvModules    = "MINOSS_MODULES"
	EnvTLSCert    = "SSL_SERVER_CERTIFICATE"
	EnvTLSKey     = "SSL_SERVER_KEY"
	DefaultConfig = "minoss.toml"
)

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// ManifestPath is $MINOSS_MANIFEST or minoss.toml.
func ManifestPath() string { return envOr(EnvManifest, DefaultConfig) }

// ApplyEnv overrides manifest values with any set environment keys.
func ApplyEnv(cfg *manifest.Config) {
	cfg.Server.Listen = envOr(EnvListen, cfg.Server.Listen)
	cfg.Modules.Root = envOr(EnvModules, cfg.Modules.Root)
	cfg.Server.TLSCert = envOr(EnvTLSCert, cfg.Server.TLSCert)
	cfg.Server.TLSKey = envOr(EnvTLSKey, cfg.Server.TLSKey)
	if v := strings.TrimSpace(os.Getenv(EnvDebug)); v != "" {
		cfg.Server.Debug = parseBool(v)
	}
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
