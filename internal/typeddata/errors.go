package typeddata

import (
	"errors"
	"fmt"
)

// ErrInvalidKey is wrapped by every signing-key parse failure.
var ErrInvalidKey = errors.New("invalid signing key")

// MissingTypeDefinitionError reports a composite type that is referenced but
// has no (or an empty) field list in the type table.
type MissingTypeDefinitionError struct {
	Type string
}

func (e *MissingTypeDefinitionError) Error() string {
	return fmt.Sprintf("no type definition specified: %s", e.Type)
}

// MissingFieldValueError reports an absent value for a field whose type is
// not a nested composite. Absent nested composites hash to a zero word
// instead, see encodeField.
type MissingFieldValueError struct {
	Field string
	Type  string
}

func (e *MissingFieldValueError) Error() string {
	return fmt.Sprintf("missing value for field %s of type %s", e.Field, e.Type)
}
