package core

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// Value is an immutable wrapper around data of any shape.
// The wrapped data is copied on the way in and on the way out, so neither the
// constructor's argument nor the result of Get can alter it.
type Value[T any] struct {
	v T
}

// NewValue wraps v. Nil values are kept as-is.
func NewValue[T any](v T) Value[T] {
	return Value[T]{v: Clone(v)}
}

// Get returns a copy of the wrapped data.
func (v Value[T]) Get() T {
	return Clone(v.v)
}

// Frozen returns the read-only structural view of the wrapped data (see Freeze).
func (v Value[T]) Frozen() any {
	return Freeze(v.v)
}

// Equal reports structural equality.
func (v Value[T]) Equal(other Value[T]) bool {
	return reflect.DeepEqual(v.v, other.v)
}

// String returns the natural textual form of scalars and a JSON form of
// composites that do not describe themselves.
func (v Value[T]) String() string {
	return stringify(v.v)
}

func (v Value[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.v)
}

func stringify(v any) string {
	if v == nil {
		return "null"
	}
	// A nil pointer may still satisfy fmt.Stringer through a value receiver.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		if rv.IsNil() {
			return "null"
		}
	}

	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.String()
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
