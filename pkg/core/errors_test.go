package core_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/seedwork/pkg/core"
)

func TestNotFoundError(t *testing.T) {
	err := fmt.Errorf("lookup failed: %w", &core.NotFoundError{ID: "fake id"})

	assert.True(t, errors.Is(err, core.ErrNotFound))
	assert.False(t, errors.Is(err, core.ErrInvalidID))
	assert.Contains(t, err.Error(), "Entity not found using ID: fake id")
}

func TestValidationError(t *testing.T) {
	fields := core.FieldErrors{}
	fields.Add("name", "name should not be empty")
	fields.Add("name", "name must be a string")
	fields.Add("is_active", "is_active must be a boolean value")

	err := &core.ValidationError{Fields: fields}

	assert.ErrorIs(t, err, core.ErrValidation)
	assert.Equal(t, []string{"is_active", "name"}, fields.Fields())
	assert.Equal(t,
		"entity validation failed (is_active: is_active must be a boolean value, name: name should not be empty; name must be a string)",
		err.Error(),
	)
	assert.Equal(t, "entity validation failed", (&core.ValidationError{}).Error())
}
