package aliasing

import (
	"fmt"
	"sort"
	"sync"
)

const (
	msgValueDeprecated     = "'%s' is deprecated, use '%s' instead."
	msgFunctionDeprecated  = "'%s' function is deprecated, use '%s' instead."
	msgMethodDeprecated    = "'%s' method is deprecated, use '%s' instead."
	msgAttributeDeprecated = "'%s' attribute is deprecated, use '%s' instead."
	msgTypeDeprecated      = "'%s' type is deprecated, use '%s' instead."
)

type bindingKind int

const (
	kindValue bindingKind = iota + 1
	kindFunc
	kindConstructor
)

// binding is an installed forwarding relationship between a legacy name and its
// canonical target. Created once at definition time, immutable thereafter.
type binding struct {
	kind          bindingKind
	canonicalName CanonicalNameString
	legacyName    LegacyNameString
	target        any
	registeredAt  Location
	announceOnce  sync.Once // value bindings notify only on first pickup
}

// BindOption configures a single alias registration.
type BindOption func(*bindConfig)

type bindConfig struct {
	legacyOverride LegacyNameString
}

// WithLegacyName supplies an explicit legacy name instead of deriving one.
// The override is validated against the scope's Renaming at registration time.
func WithLegacyName(legacyName LegacyNameString) BindOption {
	return func(cfg *bindConfig) {
		cfg.legacyOverride = legacyName
	}
}

// Scope is a namespace (package-level or type-level) in which legacy names are
// installed. All registration happens at definition time and fails fast on
// configuration mistakes; bindings cannot be removed once installed.
type Scope struct {
	name     string
	renaming Renaming

	mu       sync.RWMutex
	bindings map[LegacyNameString]*binding
}

// NewScope creates a Scope with the given name (used in diagnostics) and Renaming.
func NewScope(name string, renaming Renaming) *Scope {
	return &Scope{
		name:     name,
		renaming: renaming,
		bindings: make(map[LegacyNameString]*binding),
	}
}

// Name returns the scope's name.
func (s *Scope) Name() string {
	return s.name
}

// Renaming returns the scope's Renaming.
func (s *Scope) Renaming() Renaming {
	return s.renaming
}

// BindValue installs a module-level value under its legacy name. The value itself
// is shared, not wrapped: Lookup returns it as-is. The first pickup of the binding
// notifies the sink with a CategoryModule event attributed to the registration
// site; subsequent pickups are silent.
func (s *Scope) BindValue(canonicalName CanonicalNameString, value any, opts ...BindOption) error {
	_, err := s.install(kindValue, canonicalName, 1, opts, func(LegacyNameString) (any, error) {
		return value, nil
	})

	return err
}

// Lookup returns the value bound under legacyName, reporting whether the binding
// exists. For value bindings the first successful Lookup emits one CategoryModule
// event; forwarder bindings announce on invocation instead, so Lookup stays silent
// for them.
func (s *Scope) Lookup(legacyName LegacyNameString) (any, bool) {
	s.mu.RLock()
	b, ok := s.bindings[legacyName]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if b.kind == kindValue {
		b.announceOnce.Do(func() {
			EmitModuleUsage(
				fmt.Sprintf(msgValueDeprecated, b.legacyName, b.canonicalName),
				b.registeredAt,
			)
		})
	}

	return b.target, true
}

// Value is like Lookup but returns an error wrapping ErrUnknownAlias when the
// legacy name has no binding in this scope.
func (s *Scope) Value(legacyName LegacyNameString) (any, error) {
	value, ok := s.Lookup(legacyName)
	if !ok {
		return nil, fmt.Errorf("%w: scope %q has no binding for %q", ErrUnknownAlias, s.name, legacyName)
	}

	return value, nil
}

// CanonicalNameOf returns the canonical name behind a legacy binding without
// emitting a notification. Intended for diagnostics and migration tooling.
func (s *Scope) CanonicalNameOf(legacyName LegacyNameString) (CanonicalNameString, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bindings[legacyName]
	if !ok {
		return "", false
	}

	return b.canonicalName, true
}

// Names returns the sorted legacy names bound in this scope.
func (s *Scope) Names() []LegacyNameString {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]LegacyNameString, 0, len(s.bindings))
	for name := range s.bindings {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Len returns the number of bindings in this scope.
func (s *Scope) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.bindings)
}

// install derives or validates the legacy name, checks for collisions, builds the
// target through makeTarget (which receives the resolved legacy name), and records
// the binding. registrationSkip attributes the registration site to the caller of
// the exported Bind* method.
func (s *Scope) install(
	kind bindingKind,
	canonicalName CanonicalNameString,
	registrationSkip int,
	opts []BindOption,
	makeTarget func(legacyName LegacyNameString) (any, error),
) (*binding, error) {
	var cfg bindConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	legacyName, err := s.renaming.legacyNameFor(canonicalName, cfg.legacyOverride)
	if err != nil {
		return nil, err
	}

	target, err := makeTarget(legacyName)
	if err != nil {
		return nil, err
	}

	b := &binding{
		kind:          kind,
		canonicalName: canonicalName,
		legacyName:    legacyName,
		target:        target,
		registeredAt:  callerLocation(registrationSkip + 1),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bindings[legacyName]; exists {
		return nil, fmt.Errorf("%w: %q is already bound in scope %q", ErrDuplicateAlias, legacyName, s.name)
	}

	s.bindings[legacyName] = b

	return b, nil
}
