package platform

import (
	"context"
	"fmt"
	"maps"

	"github.com/aretw0/seedwork/pkg/adapters/fixture"
	"github.com/aretw0/seedwork/pkg/adapters/memory"
	"github.com/aretw0/seedwork/pkg/category"
)

// OpenCategories returns a category repository, seeded from fixtures when
// WithFixtures is given.
//
//	repo, err := seedwork.OpenCategories(ctx,
//		seedwork.WithFixtures("fixtures/*.yaml"),
//		seedwork.WithLogger(logger),
//	)
func OpenCategories(ctx context.Context, opts ...Option) (*category.Repository, error) {
	o := buildOptions(opts)

	repo := o.repository
	if repo == nil {
		repo = category.NewRepository(memory.Config{
			Name:        "categories",
			Logger:      o.logger,
			EventBuffer: o.eventBuffer,
		})
	}

	if o.fixtures == "" {
		return repo, nil
	}

	items, err := loadCategories(o)
	if err != nil {
		return nil, err
	}
	if err := repo.Seed(ctx, items...); err != nil {
		return nil, fmt.Errorf("failed to seed categories: %w", err)
	}
	return repo, nil
}

func loadCategories(o *options) ([]*category.Category, error) {
	loader := newLoader(o)
	records, err := loader.Load(o.fixtures)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixtures: %w", err)
	}

	items := make([]*category.Category, 0, len(records))
	for i, rec := range records {
		c, err := category.FromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("fixture record %d: %w", i, err)
		}
		items = append(items, c)
	}
	return items, nil
}

func newLoader(o *options) *fixture.Loader {
	var serializers map[string]fixture.Serializer
	if len(o.serializers) > 0 {
		serializers = fixture.DefaultSerializers(o.strict)
		maps.Copy(serializers, o.serializers)
	}
	return fixture.NewLoader(fixture.Config{
		Strict:      o.strict,
		Logger:      o.logger,
		Serializers: serializers,
	})
}
