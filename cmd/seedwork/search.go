package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/seedwork"
	lcadapter "github.com/aretw0/seedwork/pkg/adapters/lifecycle"
)

type searchFlags struct {
	page    string
	perPage string
	sort    string
	dir     string
	filter  string
	output  string
	watch   bool
}

func newSearchCmd(a *app) *cobra.Command {
	f := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Filter, sort and paginate the seeded categories",
		Long: `Search runs the filter → sort → paginate pipeline over the categories
loaded from the fixture files. Malformed paging values fall back to defaults
instead of failing. With --watch the search is re-run whenever a fixture changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := seedwork.SearchInput{
				Page:    f.page,
				PerPage: f.perPage,
				Sort:    f.sort,
				SortDir: f.dir,
				Filter:  f.filter,
			}
			if !cmd.Flags().Changed("per-page") {
				in.PerPage = a.cfg.Search.PerPage
			}
			params := seedwork.NewSearchParams(in)

			if !f.watch {
				return a.search(cmd.Context(), cmd.OutOrStdout(), params, f.output)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watchSearch(ctx, cmd.OutOrStdout(), params, f.output)
		},
	}

	cmd.Flags().StringVar(&f.page, "page", "", "Page number, starting at 1")
	cmd.Flags().StringVar(&f.perPage, "per-page", "", "Rows per page (default from config)")
	cmd.Flags().StringVar(&f.sort, "sort", "", "Field to sort by (name, created_at)")
	cmd.Flags().StringVar(&f.dir, "dir", "", "Sort direction: asc or desc")
	cmd.Flags().StringVar(&f.filter, "filter", "", "Case-insensitive name filter")
	cmd.Flags().StringVarP(&f.output, "output", "o", "table", "Output format: table, json, yaml or csv")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "Re-run the search when fixtures change")
	return cmd
}

func (a *app) search(ctx context.Context, w io.Writer, params seedwork.SearchParams, format string) error {
	repo, err := a.open(ctx)
	if err != nil {
		return err
	}
	result, err := repo.Search(ctx, params)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	return writeResult(w, format, result)
}

// watchSearch prints the search once, then again after every fixture change, until ctx is done.
func (a *app) watchSearch(ctx context.Context, w io.Writer, params seedwork.SearchParams, format string) error {
	if err := a.search(ctx, w, params, format); err != nil {
		return err
	}

	events, err := seedwork.WatchFixtures(ctx, a.options()...)
	if err != nil {
		return fmt.Errorf("failed to watch fixtures: %w", err)
	}

	source := lcadapter.NewSource(events, lcadapter.WithLogger(a.logger))
	if err := source.Start(ctx); err != nil {
		return err
	}

	a.logger.Info("watching fixtures", "pattern", a.cfg.Fixtures.Pattern)
	for e := range source.Events() {
		a.logger.Info("fixtures changed", "event", fmt.Sprint(e))
		if err := a.search(ctx, w, params, format); err != nil {
			// A half-written fixture is common while editing; keep watching.
			a.logger.Error("search failed after change", "error", err)
		}
	}
	return nil
}
