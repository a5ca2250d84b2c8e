package aliasing

import (
	"fmt"
)

// AttrStore is the minimal host surface the compatibility layer needs: raw access
// to an instance's own named attributes, without any alias resolution.
type AttrStore interface {
	Attr(name string) (any, bool)
	PutAttr(name string, value any)
}

// AttrAliases is an embeddable per-instance compatibility layer for objects whose
// legacy attribute names cannot be enumerated statically. It records
// legacy-to-canonical mappings in registration order and answers the two capability
// questions the host needs on attribute access: "is this read an aliased read?"
// and "should this write be redirected?".
//
// The zero value is ready to use; the mapping is created lazily on the first
// registration. It lives next to the host's attributes, never inside them, so it
// cannot collide with the canonical attribute namespace. Concurrent registration
// on the same instance is out of contract.
type AttrAliases struct {
	aliases map[LegacyNameString]CanonicalNameString
	order   []LegacyNameString
}

// RegisterAliasedAttr derives (or validates, via WithLegacyName) the legacy name
// for a canonical attribute and records the mapping. It fails with an error
// wrapping ErrDuplicateAlias if the legacy name is already present among the
// host's own attributes or already registered.
func (a *AttrAliases) RegisterAliasedAttr(
	host AttrStore,
	renaming Renaming,
	canonicalName CanonicalNameString,
	opts ...BindOption,
) error {
	var cfg bindConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	legacyName, err := renaming.legacyNameFor(canonicalName, cfg.legacyOverride)
	if err != nil {
		return err
	}

	if _, exists := host.Attr(legacyName); exists {
		return fmt.Errorf("%w: %q is already an attribute of the instance", ErrDuplicateAlias, legacyName)
	}

	if _, registered := a.aliases[legacyName]; registered {
		return fmt.Errorf("%w: %q is already registered as a legacy attribute", ErrDuplicateAlias, legacyName)
	}

	if a.aliases == nil {
		a.aliases = make(map[LegacyNameString]CanonicalNameString)
	}

	a.aliases[legacyName] = canonicalName
	a.order = append(a.order, legacyName)

	return nil
}

// TryGetAliased reports whether name is a registered legacy attribute name and,
// if so, which canonical attribute a read should resolve to. It does not notify;
// emitting the Deprecation Event is the host's job once it commits to the aliased
// read.
func (a *AttrAliases) TryGetAliased(name string) (CanonicalNameString, bool) {
	canonicalName, ok := a.aliases[name]

	return canonicalName, ok
}

// TryRedirectSet reports whether a write to name must be redirected to a canonical
// attribute instead of creating a shadow field.
func (a *AttrAliases) TryRedirectSet(name string) (CanonicalNameString, bool) {
	canonicalName, ok := a.aliases[name]

	return canonicalName, ok
}

// AliasedNames returns the registered legacy attribute names in registration order.
func (a *AttrAliases) AliasedNames() []LegacyNameString {
	return append([]LegacyNameString(nil), a.order...)
}

// AttrBag is a dynamic attribute container with the compatibility layer wired in:
// reads and writes under registered legacy names are announced and redirected to
// the canonical attribute, while everything else behaves like a plain named-value
// bag.
type AttrBag struct {
	AttrAliases

	typeName string
	attrs    map[string]any
}

// NewAttrBag creates an AttrBag. typeName is used when reporting missing
// attributes, standing in for the host type's name.
func NewAttrBag(typeName string) *AttrBag {
	return &AttrBag{typeName: typeName}
}

// TypeName returns the name the bag reports itself as.
func (b *AttrBag) TypeName() string {
	return b.typeName
}

// Attr implements AttrStore: raw read of an own attribute, no alias resolution.
func (b *AttrBag) Attr(name string) (any, bool) {
	value, ok := b.attrs[name]

	return value, ok
}

// PutAttr implements AttrStore: raw write of an own attribute, no redirection.
func (b *AttrBag) PutAttr(name string, value any) {
	if b.attrs == nil {
		b.attrs = make(map[string]any)
	}

	b.attrs[name] = value
}

// RegisterAlias registers a legacy alias for a canonical attribute of this bag.
func (b *AttrBag) RegisterAlias(renaming Renaming, canonicalName CanonicalNameString, opts ...BindOption) error {
	return b.RegisterAliasedAttr(b, renaming, canonicalName, opts...)
}

// Get returns the value of an attribute. Own attributes win; a registered legacy
// name emits one CategoryName event and resolves to the canonical attribute.
// Anything else fails with *UnknownAttributeError, exactly as a never-aliased
// missing attribute would.
func (b *AttrBag) Get(name string) (any, error) {
	if value, ok := b.attrs[name]; ok {
		return value, nil
	}

	if canonicalName, ok := b.TryGetAliased(name); ok {
		EmitNameUsage(fmt.Sprintf(msgAttributeDeprecated, name, canonicalName), 1)

		if value, exists := b.attrs[canonicalName]; exists {
			return value, nil
		}

		return nil, &UnknownAttributeError{TypeName: b.typeName, Attr: canonicalName}
	}

	return nil, &UnknownAttributeError{TypeName: b.typeName, Attr: name}
}

// Set assigns an attribute. A registered legacy name emits one CategoryName event
// and redirects the write to the canonical attribute; no shadow field is created.
func (b *AttrBag) Set(name string, value any) {
	if canonicalName, ok := b.TryRedirectSet(name); ok {
		EmitNameUsage(fmt.Sprintf(msgAttributeDeprecated, name, canonicalName), 1)
		b.PutAttr(canonicalName, value)

		return
	}

	b.PutAttr(name, value)
}
