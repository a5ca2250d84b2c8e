package aliasing

import (
	"fmt"
	"reflect"
)

// BindConstructor registers the canonical constructor of a renamed type under the
// derived (or overridden) legacy type name and returns that name. The legacy name
// is a pure alias, not a distinct type: constructing through it notifies the sink
// and yields an instance of the canonical type.
//
// The constructor must be a function returning the new instance, optionally with a
// trailing error. Niladic, fixed-arity and variadic constructors are all supported;
// Construct checks the argument shape against whichever form the constructor uses.
func (s *Scope) BindConstructor(canonicalTypeName CanonicalNameString, ctor any, opts ...BindOption) (LegacyNameString, error) {
	b, err := s.install(kindConstructor, canonicalTypeName, 1, opts, func(LegacyNameString) (any, error) {
		if err := validateConstructor(ctor); err != nil {
			return nil, err
		}

		return ctor, nil
	})
	if err != nil {
		return "", err
	}

	return b.legacyName, nil
}

// Construct instantiates the canonical type behind a legacy type name. It emits
// one CategoryName event and calls the registered constructor with the given
// arguments. A trailing error returned by the constructor propagates unchanged.
func (s *Scope) Construct(legacyName LegacyNameString, args ...any) (any, error) {
	s.mu.RLock()
	b, ok := s.bindings[legacyName]
	s.mu.RUnlock()

	if !ok || b.kind != kindConstructor {
		return nil, fmt.Errorf("%w: scope %q has no constructor binding for %q", ErrUnknownAlias, s.name, legacyName)
	}

	EmitNameUsage(fmt.Sprintf(msgTypeDeprecated, b.legacyName, b.canonicalName), 1)

	ctorValue := reflect.ValueOf(b.target)

	in, err := buildConstructorArgs(b.legacyName, ctorValue.Type(), args)
	if err != nil {
		return nil, err
	}

	out := ctorValue.Call(in)

	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}

	return out[0].Interface(), nil
}

// LegacyConstructor is the typed form of BindConstructor: it registers the
// constructor in the scope and returns a forwarder with the identical signature
// that emits the type-deprecation notification and delegates.
func LegacyConstructor[F any](s *Scope, canonicalTypeName CanonicalNameString, ctor F, opts ...BindOption) (F, error) {
	legacyName, err := s.BindConstructor(canonicalTypeName, ctor, opts...)
	if err != nil {
		var zero F
		return zero, err
	}

	forwarder, err := forwarderFor(ctor, fmt.Sprintf(msgTypeDeprecated, legacyName, canonicalTypeName))
	if err != nil {
		var zero F
		return zero, err
	}

	return forwarder.(F), nil
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

func validateConstructor(ctor any) error {
	ctorValue := reflect.ValueOf(ctor)

	if ctorValue.Kind() != reflect.Func {
		return fmt.Errorf("%w: constructor must be a function, got %T", ErrConfiguration, ctor)
	}

	if ctorValue.IsNil() {
		return fmt.Errorf("%w: constructor must not be nil", ErrConfiguration)
	}

	ctorType := ctorValue.Type()

	switch ctorType.NumOut() {
	case 1:
		if ctorType.Out(0) == errType {
			return fmt.Errorf("%w: constructor must return an instance, not only an error", ErrConfiguration)
		}
	case 2:
		if ctorType.Out(1) != errType {
			return fmt.Errorf("%w: second constructor return value must be an error", ErrConfiguration)
		}
	default:
		return fmt.Errorf("%w: constructor must return the instance and optionally an error", ErrConfiguration)
	}

	return nil
}

// buildConstructorArgs checks the argument list against the constructor's shape
// (niladic, fixed arity, or variadic) and converts it to reflect call values.
// Untyped nil arguments are allowed for nilable parameter types.
func buildConstructorArgs(legacyName LegacyNameString, ctorType reflect.Type, args []any) ([]reflect.Value, error) {
	numIn := ctorType.NumIn()

	if ctorType.IsVariadic() {
		if len(args) < numIn-1 {
			return nil, fmt.Errorf("constructing %q requires at least %d arguments, got %d",
				legacyName, numIn-1, len(args))
		}
	} else if len(args) != numIn {
		return nil, fmt.Errorf("constructing %q requires %d arguments, got %d",
			legacyName, numIn, len(args))
	}

	in := make([]reflect.Value, 0, len(args))

	for i, arg := range args {
		paramType := ctorType.In(min(i, numIn-1))
		if ctorType.IsVariadic() && i >= numIn-1 {
			paramType = ctorType.In(numIn - 1).Elem()
		}

		if arg == nil {
			if !isNilable(paramType) {
				return nil, fmt.Errorf("constructing %q: argument %d must not be nil", legacyName, i)
			}

			in = append(in, reflect.Zero(paramType))

			continue
		}

		argValue := reflect.ValueOf(arg)
		if !argValue.Type().AssignableTo(paramType) {
			return nil, fmt.Errorf("constructing %q: cannot use argument %d (type %s) as %s",
				legacyName, i, argValue.Type(), paramType)
		}

		in = append(in, argValue)
	}

	return in, nil
}

func isNilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	default:
		return false
	}
}
