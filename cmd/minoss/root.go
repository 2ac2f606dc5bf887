package main

import (
	"fmt"
	"os"

	"github.com/joeydtaylor/minoss/pkg/core"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "minoss",
	Short: "Expose script units as HTTP endpoints",
	Long: `minoss maps /{module}/{script} onto script units and returns their
result as JSON, XML or text.

  minoss serve      # start the server
  minoss modules    # list modules and scripts
  minoss version    # print version information`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", core.ManifestPath(), "manifest file path (toml or yaml)")
}
