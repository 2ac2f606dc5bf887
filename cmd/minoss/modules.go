package main

import (
	"fmt"
	"strings"

	"github.com/joeydtaylor/minoss/pkg/core"
	"github.com/joeydtaylor/minoss/pkg/serverfx"
	"github.com/spf13/cobra"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List modules and their scripts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		man, err := core.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		if f := flagOverrides(cmd); f != nil {
			f(&man)
		}
		mods, err := serverfx.ProvideStore(man).Modules()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(mods) == 0 {
			fmt.Fprintf(out, "no modules found (root %s)\n", man.Modules.Root)
			return nil
		}
		for _, m := range mods {
			fmt.Fprintf(out, "%s: %s\n", m.Name, strings.Join(m.Scripts, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modulesCmd)

	modulesCmd.Flags().StringVar(&serveModules, "modules", "", "module directory")
}
