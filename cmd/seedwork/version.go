package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/seedwork"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of seedwork",
		Args:  cobra.NoArgs,
		// Skip config loading so a broken seedwork.yaml does not hide the version.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "seedwork %s %s/%s\n", strings.TrimSpace(seedwork.Version), runtime.GOOS, runtime.GOARCH)
		},
	}
}
