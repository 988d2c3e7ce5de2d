package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/seedwork/pkg/core"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Remove a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			ctx := core.WithChangeReason(cmd.Context(), "cli delete")
			if err := repo.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Category deleted: %s (%d remaining)\n", args[0], repo.Len())
			return nil
		},
	}
}
