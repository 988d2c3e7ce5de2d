// Package category is the sample aggregate built on the seedwork core:
// a named, optionally described classification that can be switched on and off.
package category

import (
	"time"

	"github.com/aretw0/seedwork/pkg/core"
	"github.com/aretw0/seedwork/pkg/validation"
)

// Props holds the mutable state of a Category.
// Nil Description means "no description"; nil IsActive means "use the default".
type Props struct {
	Name        string    `json:"name" validate:"required,max=255"`
	Description *string   `json:"description"`
	IsActive    *bool     `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Category is an entity with validated Props.
type Category struct {
	*core.Entity[Props]
}

// New builds a Category, filling defaults (active, created now) before validating.
func New(props Props, id ...core.ID) (*Category, error) {
	if props.IsActive == nil {
		active := true
		props.IsActive = &active
	}
	if props.CreatedAt.IsZero() {
		props.CreatedAt = time.Now()
	}
	if err := validation.Validate(props); err != nil {
		return nil, err
	}
	return &Category{Entity: core.NewEntity(props, id...)}, nil
}

func (c *Category) Name() string {
	return c.Props.Name
}

// Description returns "" when the category has no description.
func (c *Category) Description() string {
	if c.Props.Description == nil {
		return ""
	}
	return *c.Props.Description
}

func (c *Category) HasDescription() bool {
	return c.Props.Description != nil
}

func (c *Category) IsActive() bool {
	return c.Props.IsActive == nil || *c.Props.IsActive
}

func (c *Category) CreatedAt() time.Time {
	return c.Props.CreatedAt
}

// Update replaces name and description. Nothing changes when the result is invalid.
func (c *Category) Update(name string, description *string) error {
	next := c.Props
	next.Name = name
	next.Description = description
	if err := validation.Validate(next); err != nil {
		return err
	}
	c.Props = next
	return nil
}

func (c *Category) Activate() {
	active := true
	c.Props.IsActive = &active
}

func (c *Category) Deactivate() {
	active := false
	c.Props.IsActive = &active
}
