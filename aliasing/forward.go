package aliasing

import (
	"fmt"
	"reflect"
)

// forwarderCallerSkip attributes forwarder notifications to the caller of the
// legacy symbol. runtime.Caller does not report the reflect.MakeFunc trampoline
// frames, so the call site sits one frame above the forwarder closure.
const forwarderCallerSkip = 1

// BindFunc installs a forwarder for a free function under its legacy name and
// returns it. The forwarder has the identical signature (variadic included),
// emits one CategoryName event per call and delegates to the canonical function,
// returning exactly what it returns.
func (s *Scope) BindFunc(canonicalName CanonicalNameString, fn any, opts ...BindOption) (any, error) {
	b, err := s.install(kindFunc, canonicalName, 1, opts, func(legacyName LegacyNameString) (any, error) {
		return forwarderFor(fn, fmt.Sprintf(msgFunctionDeprecated, legacyName, canonicalName))
	})
	if err != nil {
		return nil, err
	}

	return b.target, nil
}

// BindMethod is BindFunc for method values: pass obj.CanonicalMethod as fn.
// The only difference is the wording of the deprecation message.
func (s *Scope) BindMethod(canonicalName CanonicalNameString, method any, opts ...BindOption) (any, error) {
	b, err := s.install(kindFunc, canonicalName, 1, opts, func(legacyName LegacyNameString) (any, error) {
		return forwarderFor(method, fmt.Sprintf(msgMethodDeprecated, legacyName, canonicalName))
	})
	if err != nil {
		return nil, err
	}

	return b.target, nil
}

// BindGetter installs a forwarder for a read-only accessor (a niladic getter)
// under its legacy name, announced as a deprecated attribute.
func (s *Scope) BindGetter(canonicalName CanonicalNameString, getter any, opts ...BindOption) (any, error) {
	b, err := s.install(kindFunc, canonicalName, 1, opts, func(legacyName LegacyNameString) (any, error) {
		fnValue := reflect.ValueOf(getter)
		if fnValue.Kind() != reflect.Func || fnValue.Type().NumIn() != 0 {
			return nil, fmt.Errorf("%w: getter for %q must be a function without parameters",
				ErrConfiguration, canonicalName)
		}

		return forwarderFor(getter, fmt.Sprintf(msgAttributeDeprecated, legacyName, canonicalName))
	})
	if err != nil {
		return nil, err
	}

	return b.target, nil
}

// Func returns the forwarder bound under legacyName. Unlike Lookup it does not
// notify: forwarders announce themselves on invocation.
func (s *Scope) Func(legacyName LegacyNameString) (any, error) {
	s.mu.RLock()
	b, ok := s.bindings[legacyName]
	s.mu.RUnlock()

	if !ok || b.kind != kindFunc {
		return nil, fmt.Errorf("%w: scope %q has no function binding for %q", ErrUnknownAlias, s.name, legacyName)
	}

	return b.target, nil
}

// LegacyFunc is the typed form of Scope.BindFunc: the returned forwarder has the
// same static type as the canonical function, so it can be assigned directly to a
// package-level variable carrying the legacy name.
func LegacyFunc[F any](s *Scope, canonicalName CanonicalNameString, fn F, opts ...BindOption) (F, error) {
	forwarder, err := s.BindFunc(canonicalName, fn, opts...)
	if err != nil {
		var zero F
		return zero, err
	}

	return forwarder.(F), nil
}

// LegacyMethod is the typed form of Scope.BindMethod.
func LegacyMethod[F any](s *Scope, canonicalName CanonicalNameString, method F, opts ...BindOption) (F, error) {
	forwarder, err := s.BindMethod(canonicalName, method, opts...)
	if err != nil {
		var zero F
		return zero, err
	}

	return forwarder.(F), nil
}

// LegacyGetter is the typed form of Scope.BindGetter for a getter returning T.
func LegacyGetter[T any](s *Scope, canonicalName CanonicalNameString, getter func() T, opts ...BindOption) (func() T, error) {
	forwarder, err := s.BindGetter(canonicalName, getter, opts...)
	if err != nil {
		return nil, err
	}

	return forwarder.(func() T), nil
}

// forwarderFor wraps fn in a function of the identical signature that emits the
// given deprecation message and delegates every call to fn.
func forwarderFor(fn any, message string) (any, error) {
	fnValue := reflect.ValueOf(fn)

	if fnValue.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: alias target must be a function, got %T", ErrConfiguration, fn)
	}

	if fnValue.IsNil() {
		return nil, fmt.Errorf("%w: alias target must not be nil", ErrConfiguration)
	}

	fnType := fnValue.Type()

	forwarder := reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
		EmitNameUsage(message, forwarderCallerSkip)

		if fnType.IsVariadic() {
			return fnValue.CallSlice(args)
		}

		return fnValue.Call(args)
	})

	return forwarder.Interface(), nil
}
