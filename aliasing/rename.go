package aliasing

import (
	"fmt"
	"strings"
	"unicode"
)

type CanonicalNameString = string
type LegacyNameString = string

// Renaming describes an API-wide terminology change: every occurrence of the new
// term in a canonical identifier maps to the old term in its legacy counterpart.
// Both the lowercase and the capitalized variant of the term pair are substituted,
// so "workerName" derives "slaveName" and "SomeWorkerStuff" derives "SomeSlaveStuff".
//
// A Renaming is a pure value: derivation and validation have no side effects and
// are safe to run at package definition time for every aliased symbol.
type Renaming struct {
	newTerm string
	oldTerm string
}

// NewRenaming creates a Renaming from a new (canonical) term and an old (legacy) term.
// Both terms must be non-empty, lowercase, and distinct.
func NewRenaming(newTerm string, oldTerm string) (Renaming, error) {
	if newTerm == "" || oldTerm == "" {
		return Renaming{}, fmt.Errorf("%w: renaming terms must not be empty", ErrConfiguration)
	}

	if newTerm != strings.ToLower(newTerm) || oldTerm != strings.ToLower(oldTerm) {
		return Renaming{}, fmt.Errorf("%w: renaming terms must be lowercase", ErrConfiguration)
	}

	if newTerm == oldTerm {
		return Renaming{}, fmt.Errorf("%w: renaming terms must differ", ErrConfiguration)
	}

	return Renaming{newTerm: newTerm, oldTerm: oldTerm}, nil
}

// MustRenaming is like NewRenaming but panics on invalid terms.
// Intended for package-level variable initialization where the terms are literals.
func MustRenaming(newTerm string, oldTerm string) Renaming {
	renaming, err := NewRenaming(newTerm, oldTerm)
	if err != nil {
		panic(err)
	}

	return renaming
}

// NewTerm returns the canonical (new) term.
func (r Renaming) NewTerm() string {
	return r.newTerm
}

// OldTerm returns the legacy (old) term.
func (r Renaming) OldTerm() string {
	return r.oldTerm
}

// DeriveLegacyName derives the legacy name for a canonical name by replacing every
// lowercase and capitalized occurrence of the new term with the old term.
//
// It returns an error wrapping ErrConfiguration if the canonical name does not
// contain the new term, already contains the old term, or if the substitution
// produced no change or left the new term behind (e.g. an all-caps occurrence).
func (r Renaming) DeriveLegacyName(canonicalName CanonicalNameString) (LegacyNameString, error) {
	canonicalLower := strings.ToLower(canonicalName)

	if !strings.Contains(canonicalLower, r.newTerm) {
		return "", fmt.Errorf("%w: canonical name %q does not contain the term %q",
			ErrConfiguration, canonicalName, r.newTerm)
	}

	if strings.Contains(canonicalLower, r.oldTerm) {
		return "", fmt.Errorf("%w: canonical name %q already contains the term %q",
			ErrConfiguration, canonicalName, r.oldTerm)
	}

	legacyName := strings.ReplaceAll(canonicalName, r.newTerm, r.oldTerm)
	legacyName = strings.ReplaceAll(legacyName, capitalize(r.newTerm), capitalize(r.oldTerm))

	if legacyName == canonicalName {
		return "", fmt.Errorf("%w: deriving a legacy name for %q produced no substitution",
			ErrConfiguration, canonicalName)
	}

	if strings.Contains(strings.ToLower(legacyName), r.newTerm) {
		return "", fmt.Errorf("%w: derived legacy name %q still contains the term %q",
			ErrConfiguration, legacyName, r.newTerm)
	}

	return legacyName, nil
}

// ValidateOverride checks an explicitly supplied legacy name against a canonical name:
// the canonical name must contain the new term, the override must contain the old term
// and must not contain the new term. It returns an error wrapping ErrConfiguration
// if any containment check fails.
func (r Renaming) ValidateOverride(canonicalName CanonicalNameString, legacyName LegacyNameString) error {
	if !strings.Contains(strings.ToLower(canonicalName), r.newTerm) {
		return fmt.Errorf("%w: canonical name %q does not contain the term %q",
			ErrConfiguration, canonicalName, r.newTerm)
	}

	legacyLower := strings.ToLower(legacyName)

	if !strings.Contains(legacyLower, r.oldTerm) {
		return fmt.Errorf("%w: legacy name %q does not contain the term %q",
			ErrConfiguration, legacyName, r.oldTerm)
	}

	if strings.Contains(legacyLower, r.newTerm) {
		return fmt.Errorf("%w: legacy name %q contains the term %q",
			ErrConfiguration, legacyName, r.newTerm)
	}

	return nil
}

// legacyNameFor resolves the legacy name for a canonical name: an explicit override
// is validated and returned unchanged, otherwise the legacy name is derived.
func (r Renaming) legacyNameFor(canonicalName CanonicalNameString, override LegacyNameString) (LegacyNameString, error) {
	if override != "" {
		if err := r.ValidateOverride(canonicalName, override); err != nil {
			return "", err
		}

		return override, nil
	}

	return r.DeriveLegacyName(canonicalName)
}

func capitalize(term string) string {
	runes := []rune(term)
	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}
