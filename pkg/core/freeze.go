package core

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// FrozenMap is a read-only view over string-keyed data.
// Mutators exist only to fail loudly: they panic with an error wrapping ErrFrozen.
type FrozenMap struct {
	m map[string]any
}

// Get returns the frozen member stored under key.
func (f FrozenMap) Get(key string) (any, bool) {
	v, ok := f.m[key]
	return v, ok
}

// Map returns the nested map stored under key, if any.
func (f FrozenMap) Map(key string) (FrozenMap, bool) {
	v, ok := f.m[key].(FrozenMap)
	return v, ok
}

// List returns the nested list stored under key, if any.
func (f FrozenMap) List(key string) (FrozenList, bool) {
	v, ok := f.m[key].(FrozenList)
	return v, ok
}

// Len returns the number of keys.
func (f FrozenMap) Len() int {
	return len(f.m)
}

// Keys returns the keys in lexical order.
func (f FrozenMap) Keys() []string {
	keys := make([]string, 0, len(f.m))
	for k := range f.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Range visits members in key order until fn returns false.
func (f FrozenMap) Range(fn func(key string, value any) bool) {
	for _, k := range f.Keys() {
		if !fn(k, f.m[k]) {
			return
		}
	}
}

// Set always panics.
func (f FrozenMap) Set(key string, _ any) {
	panic(fmt.Errorf("%w: cannot assign to read only property %q", ErrFrozen, key))
}

// Delete always panics.
func (f FrozenMap) Delete(key string) {
	panic(fmt.Errorf("%w: cannot delete read only property %q", ErrFrozen, key))
}

func (f FrozenMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.m)
}

// FrozenList is a read-only view over sequence data.
type FrozenList struct {
	items []any
}

// At returns the member at index i.
func (l FrozenList) At(i int) any {
	return l.items[i]
}

// Len returns the number of members.
func (l FrozenList) Len() int {
	return len(l.items)
}

// Set always panics.
func (l FrozenList) Set(i int, _ any) {
	panic(fmt.Errorf("%w: cannot assign to read only index %d", ErrFrozen, i))
}

// Append always panics.
func (l FrozenList) Append(_ ...any) {
	panic(fmt.Errorf("%w: cannot append to read only list", ErrFrozen))
}

func (l FrozenList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.items)
}

// Freeze converts dynamically shaped data into read-only views.
// String-keyed maps become FrozenMap and slices or arrays become FrozenList, recursively.
// Structs are returned as deep copies; time.Time and scalars are returned as-is.
func Freeze(v any) any {
	if v == nil {
		return nil
	}
	return freezeValue(reflect.ValueOf(v))
}

func freezeValue(rv reflect.Value) any {
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return freezeValue(rv.Elem())
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return freezeValue(rv.Elem())
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		if rv.Type().Key().Kind() != reflect.String {
			return cloneValue(rv).Interface()
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = freezeValue(iter.Value())
		}
		return FrozenMap{m: m}
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return cloneValue(rv).Interface()
		}
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = freezeValue(rv.Index(i))
		}
		return FrozenList{items: items}
	case reflect.Struct:
		if rv.Type() == timeType {
			return rv.Interface()
		}
		return cloneValue(rv).Interface()
	case reflect.Invalid:
		return nil
	default:
		if !rv.CanInterface() {
			return nil
		}
		return rv.Interface()
	}
}

// Clone returns a deep copy of v. Exported container members of structs are
// copied too; unexported struct fields are copied shallowly.
func Clone[T any](v T) T {
	var out T
	reflect.ValueOf(&out).Elem().Set(cloneValue(reflect.ValueOf(&v).Elem()))
	return out
}

func cloneValue(rv reflect.Value) reflect.Value {
	out := reflect.New(rv.Type()).Elem()
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return out
		}
		out.Set(cloneValue(rv.Elem()))
	case reflect.Pointer:
		if rv.IsNil() {
			return out
		}
		ptr := reflect.New(rv.Type().Elem())
		ptr.Elem().Set(cloneValue(rv.Elem()))
		out.Set(ptr)
	case reflect.Map:
		if rv.IsNil() {
			return out
		}
		m := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m.SetMapIndex(iter.Key(), cloneValue(iter.Value()))
		}
		out.Set(m)
	case reflect.Slice:
		if rv.IsNil() {
			return out
		}
		s := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s.Index(i).Set(cloneValue(rv.Index(i)))
		}
		out.Set(s)
	case reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(cloneValue(rv.Index(i)))
		}
	case reflect.Struct:
		out.Set(rv)
		if rv.Type() == timeType {
			return out
		}
		for i := 0; i < rv.NumField(); i++ {
			if !out.Field(i).CanSet() {
				continue
			}
			out.Field(i).Set(cloneValue(rv.Field(i)))
		}
	default:
		out.Set(rv)
	}
	return out
}
