package core

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Identifiable is implemented by anything a repository can hold.
type Identifiable interface {
	Identity() ID
}

// Entity couples an identity with a mutable property bag.
// Concrete entity kinds embed *Entity[P] and validate their own props.
type Entity[P any] struct {
	id    ID
	Props P
}

// NewEntity builds an entity owning props. A non-zero id is kept,
// otherwise a fresh one is generated. Props are not copied.
func NewEntity[P any](props P, id ...ID) *Entity[P] {
	e := &Entity[P]{Props: props}
	if len(id) > 0 && !id[0].IsZero() {
		e.id = id[0]
	} else {
		e.id = NewID()
	}
	return e
}

// RestoreEntity builds an entity from caller supplied identity text.
func RestoreEntity[P any](props P, idText string) (*Entity[P], error) {
	id, err := ParseID(idText)
	if err != nil {
		return nil, err
	}
	return NewEntity(props, id), nil
}

// Identity returns the owned identity.
func (e *Entity[P]) Identity() ID {
	return e.id
}

// ID returns the canonical string form of the identity.
func (e *Entity[P]) ID() string {
	return e.id.String()
}

// Serialize returns the id under "id" plus a shallow copy of every top-level prop.
// Struct props are keyed by their JSON field names and keep their Go types;
// pointer fields are dereferenced, nil becoming nil.
func (e *Entity[P]) Serialize() (map[string]any, error) {
	out := map[string]any{}

	rv := reflect.ValueOf(e.Props)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}

	switch {
	case !rv.IsValid(), rv.Kind() == reflect.Pointer:
	case rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String:
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
	case rv.Kind() == reflect.Struct:
		copyFields(out, rv)
	default:
		return nil, fmt.Errorf("props of kind %s cannot be serialized to an object", rv.Kind())
	}

	out["id"] = e.ID()
	return out, nil
}

// copyFields flattens the exported fields of a struct into out, named and
// skipped the way encoding/json would name and skip them.
func copyFields(out map[string]any, rv reflect.Value) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		fv := rv.Field(i)

		if field.Anonymous && name == "" {
			embedded := fv
			if embedded.Kind() == reflect.Pointer {
				if embedded.IsNil() {
					continue
				}
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				copyFields(out, embedded)
				continue
			}
		}
		if !field.IsExported() {
			continue
		}
		if name == "" {
			name = field.Name
		}
		if slices.Contains(strings.Split(opts, ","), "omitempty") && isEmptyValue(fv) {
			continue
		}
		out[name] = fieldValue(fv)
	}
}

func fieldValue(fv reflect.Value) any {
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return nil
		}
		return fv.Elem().Interface()
	}
	return fv.Interface()
}

// isEmptyValue mirrors the omitempty rule of encoding/json.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}

func (e *Entity[P]) MarshalJSON() ([]byte, error) {
	m, err := e.Serialize()
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}
