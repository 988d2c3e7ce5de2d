package category_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/seedwork/pkg/adapters/fixture"
	"github.com/aretw0/seedwork/pkg/category"
	"github.com/aretw0/seedwork/pkg/core"
)

func TestFromRecord(t *testing.T) {
	id := "5490020a-e866-4229-9adc-aa44b83234c4"

	c, err := category.FromRecord(map[string]any{
		"id":          id,
		"name":        "Movie",
		"description": "films",
		"is_active":   false,
		"created_at":  "2023-05-01T10:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, id, c.ID())
	assert.Equal(t, "Movie", c.Name())
	assert.Equal(t, "films", c.Description())
	assert.False(t, c.IsActive())
	assert.Equal(t, time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC), c.CreatedAt())
}

func TestFromRecord_Defaults(t *testing.T) {
	c, err := category.FromRecord(map[string]any{"name": "Movie", "created_at": "2023-05-01"})
	require.NoError(t, err)

	assert.True(t, c.IsActive())
	assert.False(t, c.HasDescription())
	assert.False(t, c.Identity().IsZero())
	assert.Equal(t, 2023, c.CreatedAt().Year())
}

func TestFromRecord_Invalid(t *testing.T) {
	_, err := category.FromRecord(map[string]any{
		"name":       5,
		"is_active":  "yes",
		"created_at": "yesterday",
	})
	require.ErrorIs(t, err, core.ErrValidation)

	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, core.FieldErrors{
		"name":       {"The name must be a string"},
		"is_active":  {"The is_active must be a boolean"},
		"created_at": {"The created_at must be a date"},
	}, verr.Fields)

	_, err = category.FromRecord(map[string]any{})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"The name is required"}, verr.Fields["name"])

	_, err = category.FromRecord(map[string]any{"name": "Movie", "id": "fake id"})
	assert.ErrorIs(t, err, core.ErrInvalidID)
}

func TestFromRecord_StrictCSV(t *testing.T) {
	input := "name,is_active,created_at,id\nMovie,false,,\nSeries,TRUE,2023-05-01,\nDocs,,,\n"

	recs, err := fixture.NewCSVSerializer(true).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recs, 3)
	require.Equal(t, "false", recs[0]["is_active"])

	movie, err := category.FromRecord(recs[0])
	require.NoError(t, err)
	assert.False(t, movie.IsActive())
	assert.False(t, movie.CreatedAt().IsZero())

	series, err := category.FromRecord(recs[1])
	require.NoError(t, err)
	assert.True(t, series.IsActive())
	assert.Equal(t, 2023, series.CreatedAt().Year())

	docs, err := category.FromRecord(recs[2])
	require.NoError(t, err)
	assert.True(t, docs.IsActive())
	assert.False(t, docs.Identity().IsZero())

	assert.Equal(t, "false", recs[0]["is_active"], "the caller's record is left untouched")
}
