package main

import (
	"github.com/joeydtaylor/minoss/pkg/manifest"
	"github.com/joeydtaylor/minoss/pkg/serverfx"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var (
	serveAddr    string
	serveDebug   bool
	serveModules string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the minoss HTTP server.

Configuration comes from the manifest (--config), then the environment,
then these flags:
  SERVER_LISTEN_ADDRESS   listen address (default :8080)
  MINOSS_DEBUG            flush the script cache after every request
  MINOSS_MODULES          module directory (default ./modules)
  SSL_SERVER_CERTIFICATE  TLS certificate file
  SSL_SERVER_KEY          TLS key file`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts := []serverfx.Option{serverfx.WithManifest(cfgFile)}
		if o := flagOverrides(cmd); o != nil {
			opts = append(opts, serverfx.WithOverride(o))
		}
		app := fx.New(serverfx.Module(opts...))
		if err := app.Err(); err != nil {
			return err
		}
		app.Run()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "debug mode")
	serveCmd.Flags().StringVar(&serveModules, "modules", "", "module directory")
}

// flagOverrides applies only the flags set on the command line.
func flagOverrides(cmd *cobra.Command) func(*manifest.Config) {
	f := cmd.Flags()
	if !f.Changed("addr") && !f.Changed("debug") && !f.Changed("modules") {
		return nil
	}
	return func(m *manifest.Config) {
		if f.Changed("addr") {
			m.Server.Listen = serveAddr
		}
		if f.Changed("debug") {
			m.Server.Debug = serveDebug
		}
		if f.Changed("modules") {
			m.Modules.Root = serveModules
		}
	}
}
