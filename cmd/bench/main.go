package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/seedwork"
)

func main() {
	count := flag.Int("count", 10000, "Number of categories to generate")
	files := flag.Int("files", 10, "Number of fixture files to spread them over")
	keep := flag.Bool("keep", false, "Keep the generated fixtures after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "seedwork_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	fmt.Printf("Generating %d categories in %d files under %s...\n", *count, *files, benchDir)
	startGen := time.Now()
	if err := generate(benchDir, *count, *files); err != nil {
		panic(err)
	}
	fmt.Printf("Generation took: %v\n", time.Since(startGen))

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := context.Background()

	startLoad := time.Now()
	repo, err := seedwork.OpenCategories(ctx,
		seedwork.WithLogger(logger),
		seedwork.WithFixtures(filepath.ToSlash(filepath.Join(benchDir, "*.yaml"))),
	)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Seeding took: %v (Items: %d)\n", time.Since(startLoad), repo.Len())

	runs := []struct {
		label string
		in    seedwork.SearchInput
	}{
		{"default page", seedwork.SearchInput{}},
		{"sort name asc", seedwork.SearchInput{Sort: "name"}},
		{"sort created_at desc", seedwork.SearchInput{Sort: "created_at", SortDir: "desc"}},
		{"filter + sort", seedwork.SearchInput{Filter: "7", Sort: "name", PerPage: 50}},
		{"last page", seedwork.SearchInput{Page: *count / 10, Sort: "name"}},
	}
	for _, run := range runs {
		start := time.Now()
		result, err := repo.Search(ctx, seedwork.NewSearchParams(run.in))
		if err != nil {
			panic(err)
		}
		fmt.Printf("Search %-22s %v (total=%d, page=%d/%d)\n",
			run.label+":", time.Since(start), result.Total(), result.CurrentPage(), result.LastPage())
	}
}

func generate(dir string, count, files int) error {
	if files < 1 {
		files = 1
	}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for f := 0; f < files; f++ {
		path := filepath.Join(dir, fmt.Sprintf("categories_%03d.yaml", f))
		out, err := os.Create(path)
		if err != nil {
			return err
		}
		for i := f; i < count; i += files {
			created := base.Add(time.Duration(i) * time.Minute).Format(time.RFC3339)
			fmt.Fprintf(out, "- name: Category %d\n  description: generated\n  created_at: %q\n", i, created)
		}
		if err := out.Close(); err != nil {
			return err
		}
	}
	return nil
}
