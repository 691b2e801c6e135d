// Package cmd is the command line interface of binkit
package cmd

import (
	"github.com/spf13/cobra"
)

const version = "0.1.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "binkit",
		Short:         "BinKit - metagenomic binning summary tools",
		Version:       version,
		SilenceErrors: true,
	}
	root.AddCommand(newStatsCmd())
	return root
}

// Execute runs the command tree on args and exits non-zero on failure.
func Execute(args []string) {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fatalf("binkit: %v", err)
	}
}
