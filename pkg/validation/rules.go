package validation

import (
	"fmt"
	"reflect"
	"unicode/utf8"

	"github.com/aretw0/seedwork/pkg/core"
)

// RuleError is the failure reported by a Rules chain.
type RuleError struct {
	Property string
	Message  string
}

func (e *RuleError) Error() string {
	return e.Message
}

// Is allows errors.Is(err, core.ErrValidation).
func (e *RuleError) Is(target error) bool {
	return target == core.ErrValidation
}

// Rules checks a single dynamically typed value, such as a decoded fixture field.
// The chain stops at the first failing rule; Err reports it.
//
//	err := validation.Values("name", v).Required().String().MaxLength(255).Err()
type Rules struct {
	property string
	value    any
	err      error
}

// Values starts a rule chain for property.
func Values(property string, value any) *Rules {
	return &Rules{property: property, value: value}
}

// Err returns the first failure, or nil.
func (r *Rules) Err() error {
	return r.err
}

// Required rejects nil and the empty string.
func (r *Rules) Required() *Rules {
	if r.err == nil && (isEmpty(r.value) || r.value == "") {
		r.fail("The %s is required", r.property)
	}
	return r
}

// String rejects present values that are not strings.
func (r *Rules) String() *Rules {
	if r.err != nil || isEmpty(r.value) {
		return r
	}
	if _, ok := r.value.(string); !ok {
		r.fail("The %s must be a string", r.property)
	}
	return r
}

// MaxLength rejects strings longer than max characters. Values without a length pass.
func (r *Rules) MaxLength(max int) *Rules {
	if r.err != nil || isEmpty(r.value) {
		return r
	}
	if n, ok := length(r.value); ok && n > max {
		r.fail("The %s must be a less or equal than %d characters", r.property, max)
	}
	return r
}

// Boolean rejects present values that are not booleans.
func (r *Rules) Boolean() *Rules {
	if r.err != nil || isEmpty(r.value) {
		return r
	}
	if _, ok := r.value.(bool); !ok {
		r.fail("The %s must be a boolean", r.property)
	}
	return r
}

func (r *Rules) fail(format string, args ...any) {
	r.err = &RuleError{Property: r.property, Message: fmt.Sprintf(format, args...)}
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func length(v any) (int, bool) {
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}
