package core

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var uuidV4Pattern = regexp.MustCompile(`(?i)^[0-9A-F]{8}-[0-9A-F]{4}-4[0-9A-F]{3}-[89AB][0-9A-F]{3}-[0-9A-F]{12}$`)

// ID is the identity of an entity. It always wraps a version 4 UUID.
// The zero value means "no identity" and is never produced by NewID or ParseID.
type ID struct {
	value string
}

// NewID generates a fresh random identity.
func NewID() ID {
	return ID{value: uuid.NewString()}
}

// ParseID validates text as a canonical v4 UUID and wraps it as supplied.
func ParseID(text string) (ID, error) {
	if !uuidV4Pattern.MatchString(text) {
		return ID{}, &InvalidIdentifierError{Value: text}
	}
	return ID{value: text}, nil
}

// MustParseID is like ParseID but panics on invalid input.
func MustParseID(text string) ID {
	id, err := ParseID(text)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ID) String() string {
	return id.value
}

// IsZero reports whether id was never assigned.
func (id ID) IsZero() bool {
	return id.value == ""
}

// Equal compares two identities ignoring hex digit case.
func (id ID) Equal(other ID) bool {
	return strings.EqualFold(id.value, other.value)
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and validates the input.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
