// pkg/serverfx/server.go
package serverfx

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/joeydtaylor/minoss/pkg/manifest"
	"github.com/joeydtaylor/minoss/pkg/messages"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Server owns the HTTP listener for the lifetime of the fx app.
type Server struct {
	cfg     Config
	man     manifest.Config
	catalog *messages.Catalog
	log     *zap.Logger
	srv     *http.Server

	mu sync.Mutex
	ln net.Listener
}

type serverDeps struct {
	fx.In
	Cfg     Config
	Man     manifest.Config
	Catalog *messages.Catalog
	Logger  *zap.Logger
	App     http.Handler `name:"app"`
}

func newServer(d serverDeps) *Server {
	return &Server{
		cfg:     d.Cfg,
		man:     d.Man,
		catalog: d.Catalog,
		log:     d.Logger,
		srv: &http.Server{
			Addr:              d.Man.Server.Listen,
			Handler:           d.App,
			ReadHeaderTimeout: 15 * time.Second,
			IdleTimeout:       60 * time.Second,
			TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		},
	}
}

// Addr is the bound listener address, empty before start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Start binds the listen address and serves in the background. A busy port
// is reported through the serverPortBusy message; every listen error is
// returned.
func (s *Server) Start(context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		msg := "listen failed"
		if errors.Is(err, syscall.EADDRINUSE) {
			_, port, _ := net.SplitHostPort(s.srv.Addr)
			msg = s.catalog.Format(messages.ServerPortBusy, messages.Replaces{"port": port})
		}
		s.log.Error(msg, zap.String("service", s.cfg.Service),
			zap.String("address", s.srv.Addr), zap.Error(err))
		return err
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	host, port, _ := net.SplitHostPort(ln.Addr().String())
	s.log.Info(s.catalog.Format(messages.ServerStarted, messages.Replaces{
		"hostname": displayHost(host),
		"port":     port,
	}),
		zap.String("service", s.cfg.Service),
		zap.Bool("tls", s.useTLS()),
		zap.Bool("debug", s.man.Server.Debug),
	)

	go func() {
		var err error
		if s.useTLS() {
			err = s.srv.ServeTLS(ln, s.man.Server.TLSCert, s.man.Server.TLSKey)
		} else {
			err = s.srv.Serve(ln)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Fatal("server failed", zap.Error(err))
		}
	}()
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	err := s.srv.Shutdown(ctx)
	s.log.Info(s.catalog.Format(messages.ServerStopped, nil), zap.String("service", s.cfg.Service))
	_ = s.log.Sync()
	return err
}

func (s *Server) useTLS() bool {
	return fileExists(s.man.Server.TLSCert) && fileExists(s.man.Server.TLSKey)
}

func registerHooks(lc fx.Lifecycle, s *Server) {
	lc.Append(fx.Hook{OnStart: s.Start, OnStop: s.Stop})
}

// ---------- tiny helpers ----------

func displayHost(h string) string {
	switch h {
	case "", "::", "0.0.0.0":
		if name, err := os.Hostname(); err == nil {
			return name
		}
		return "localhost"
	}
	return h
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
