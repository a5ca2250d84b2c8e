package aliasing

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned for definition-time naming mistakes: a canonical
	// name without the new term, a legacy name without the old term, or a derivation
	// that produced no substitution. These are fatal configuration errors and are
	// surfaced eagerly at registration, never deferred to first use.
	ErrConfiguration = errors.New("alias configuration error")

	// ErrDuplicateAlias is returned when a legacy name is registered twice in the
	// same scope, or collides with an existing binding or attribute.
	ErrDuplicateAlias = errors.New("duplicate alias")

	// ErrUnknownAlias is returned when a legacy name is looked up in a scope that
	// has no binding for it.
	ErrUnknownAlias = errors.New("unknown alias")
)

// UnknownAttributeError is returned by AttrBag on access to an attribute that is
// neither set nor registered as a legacy alias. Its message matches ordinary
// missing-attribute reporting so genuinely absent attributes stay indistinguishable
// from never-aliased ones.
type UnknownAttributeError struct {
	TypeName string
	Attr     string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("'%s' object has no attribute '%s'", e.TypeName, e.Attr)
}
