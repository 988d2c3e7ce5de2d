package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/seedwork/pkg/core"
)

func newUpdateCmd(a *app) *cobra.Command {
	var (
		name        string
		description string
		active      bool
		output      string
	)

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Rename, describe, activate or deactivate a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			c, err := repo.FindByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			newName := c.Name()
			if cmd.Flags().Changed("name") {
				newName = name
			}
			var desc *string
			if cmd.Flags().Changed("description") {
				desc = &description
			} else if c.HasDescription() {
				current := c.Description()
				desc = &current
			}
			if err := c.Update(newName, desc); err != nil {
				return err
			}

			if cmd.Flags().Changed("active") {
				if active {
					c.Activate()
				} else {
					c.Deactivate()
				}
			}

			ctx := core.WithChangeReason(cmd.Context(), "cli update")
			if err := repo.Update(ctx, c); err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, c)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().BoolVar(&active, "active", true, "Set the active flag")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format: json or yaml")
	return cmd
}
