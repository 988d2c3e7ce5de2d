package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/seedwork"
	"github.com/aretw0/seedwork/pkg/core"
)

func newCreateCmd(a *app) *cobra.Command {
	var (
		name        string
		description string
		inactive    bool
		output      string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Validate and insert a category",
		Long: `Create validates a new category and inserts it after the seeded ones.
The repository lives in memory, so the result is printed rather than persisted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			props := seedwork.CategoryProps{Name: name}
			if cmd.Flags().Changed("description") {
				props.Description = &description
			}
			if inactive {
				active := false
				props.IsActive = &active
			}

			c, err := seedwork.NewCategory(props)
			if err != nil {
				return err
			}

			repo, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			ctx := core.WithChangeReason(cmd.Context(), "cli create")
			if err := repo.Insert(ctx, c); err != nil {
				return err
			}
			a.logger.Debug("category created", "id", c.ID(), "total", repo.Len())
			return writeOutput(cmd.OutOrStdout(), output, c)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Category name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Category description")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "Create the category deactivated")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format: json or yaml")
	return cmd
}
