package category_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/seedwork/pkg/category"
	"github.com/aretw0/seedwork/pkg/core"
)

func ptr[T any](v T) *T { return &v }

func TestNew_Defaults(t *testing.T) {
	before := time.Now()
	c, err := category.New(category.Props{Name: "Movie"})
	require.NoError(t, err)

	assert.Equal(t, "Movie", c.Name())
	assert.Empty(t, c.Description())
	assert.False(t, c.HasDescription())
	assert.True(t, c.IsActive())
	assert.False(t, c.CreatedAt().Before(before))
	assert.False(t, c.Identity().IsZero())
}

func TestNew_KeepsProvidedValues(t *testing.T) {
	created := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	id := core.NewID()

	c, err := category.New(category.Props{
		Name:        "Movie",
		Description: ptr("some description"),
		IsActive:    ptr(false),
		CreatedAt:   created,
	}, id)
	require.NoError(t, err)

	assert.Equal(t, id, c.Identity())
	assert.Equal(t, "some description", c.Description())
	assert.False(t, c.IsActive())
	assert.Equal(t, created, c.CreatedAt())
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty name", "", "name should not be empty"},
		{"long name", strings.Repeat("some", 64), "name must be shorter than or equal to 255 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := category.New(category.Props{Name: tt.in})
			require.ErrorIs(t, err, core.ErrValidation)

			var verr *core.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, core.FieldErrors{"name": {tt.want}}, verr.Fields)
		})
	}
}

func TestCategory_Update(t *testing.T) {
	c, err := category.New(category.Props{Name: "Movie"})
	require.NoError(t, err)

	require.NoError(t, c.Update("Documentary", ptr("real stories")))
	assert.Equal(t, "Documentary", c.Name())
	assert.Equal(t, "real stories", c.Description())

	require.NoError(t, c.Update("Documentary", nil))
	assert.False(t, c.HasDescription())

	err = c.Update("", ptr("kept?"))
	assert.ErrorIs(t, err, core.ErrValidation)
	assert.Equal(t, "Documentary", c.Name())
	assert.False(t, c.HasDescription())
}

func TestCategory_ActivateDeactivate(t *testing.T) {
	c, err := category.New(category.Props{Name: "Movie", IsActive: ptr(false)})
	require.NoError(t, err)

	c.Activate()
	assert.True(t, c.IsActive())
	c.Deactivate()
	assert.False(t, c.IsActive())
}

func TestCategory_Serialize(t *testing.T) {
	created := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)
	c, err := category.New(category.Props{Name: "Movie", CreatedAt: created})
	require.NoError(t, err)

	out, err := c.Serialize()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"id":          c.ID(),
		"name":        "Movie",
		"description": nil,
		"is_active":   true,
		"created_at":  created,
	}, out)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+c.ID()+`","name":"Movie","description":null,"is_active":true,"created_at":"2023-05-01T10:00:00Z"}`, string(data))
}
