package category

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/aretw0/seedwork/pkg/core"
	"github.com/aretw0/seedwork/pkg/validation"
)

// FromRecord builds a Category from loosely typed data such as a decoded fixture.
// Recognized keys: id, name, description, is_active, created_at. An absent id
// generates a new identity.
func FromRecord(rec map[string]any) (*Category, error) {
	rec = normalizeRecord(rec)

	fields := core.FieldErrors{}
	check := func(rules *validation.Rules) {
		var rerr *validation.RuleError
		if errors.As(rules.Err(), &rerr) {
			fields.Add(rerr.Property, rerr.Message)
		}
	}
	check(validation.Values("name", rec["name"]).Required().String().MaxLength(255))
	check(validation.Values("description", rec["description"]).String())
	check(validation.Values("is_active", rec["is_active"]).Boolean())

	createdAt, err := parseTime(rec["created_at"])
	if err != nil {
		fields.Add("created_at", "The created_at must be a date")
	}
	if len(fields) > 0 {
		return nil, &core.ValidationError{Fields: fields}
	}

	var id core.ID
	if raw, ok := rec["id"]; ok && raw != nil {
		text, _ := raw.(string)
		if id, err = core.ParseID(text); err != nil {
			return nil, err
		}
	}

	props := Props{CreatedAt: createdAt}
	props.Name, _ = rec["name"].(string)
	if d, ok := rec["description"].(string); ok {
		props.Description = &d
	}
	if a, ok := rec["is_active"].(bool); ok {
		props.IsActive = &a
	}
	return New(props, id)
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", time.DateOnly}

func parseTime(v any) (time.Time, error) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return x, nil
	case string:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, x); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time value %v", v)
}

// normalizeRecord accepts the text cells strict CSV fixtures deliver for the
// non-text keys: blank id, is_active and created_at count as absent, and
// "true"/"false" become booleans.
func normalizeRecord(rec map[string]any) map[string]any {
	out := maps.Clone(rec)
	for _, key := range []string{"id", "is_active", "created_at"} {
		if s, ok := out[key].(string); ok && strings.TrimSpace(s) == "" {
			delete(out, key)
		}
	}
	if s, ok := out["is_active"].(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true":
			out["is_active"] = true
		case "false":
			out["is_active"] = false
		}
	}
	return out
}
