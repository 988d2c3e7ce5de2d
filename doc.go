// Package seedwork is the composition root for the seedwork building blocks.
//
// It wires the domain core (identities, immutable values, entities and the
// repository contracts in pkg/core) to the in-memory adapters and exposes a
// small facade for the sample category aggregate.
//
// Building blocks:
//
//   - **Identity**: validated v4 UUID identities (`NewID`, `ParseID`).
//   - **Immutable values**: `NewValue` deep-copies data and exposes a frozen view.
//   - **Entities**: identity plus props, serializable to a flat map.
//   - **Repositories**: ordered CRUD stores plus a filter → sort → paginate search
//     that never rejects input (`NewSearchParams` normalizes it instead).
//   - **Fixtures**: JSON, YAML and CSV seed files matched by glob and watched for changes.
//
// Usage:
//
//	repo, err := seedwork.OpenCategories(ctx,
//		seedwork.WithFixtures("fixtures/**/*.yaml"),
//		seedwork.WithLogger(logger),
//	)
//
//	result, err := repo.Search(ctx, seedwork.NewSearchParams(seedwork.SearchInput{
//		Page: 1, PerPage: 20, Sort: "name", Filter: "doc",
//	}))
package seedwork
