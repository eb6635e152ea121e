package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iota-uz/agent-etl/pkg/configuration"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "agent-etl",
		Short:         "Agent performance report ETL: CSV/XLSX to SQL store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newSmokeCmd())
	return cmd
}

func Execute() {
	conf := configuration.Use()

	if err := newRootCmd().Execute(); err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, err.Error())
		conf.Unload()
		os.Exit(code)
	}
	conf.Unload()
}
