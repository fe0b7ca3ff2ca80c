package codegen

import (
	"strings"

	"github.com/teranos/gdbind/errors"
)

// InheritanceTree maintains the class hierarchy as a derived -> base map,
// keyed by Go names. Each class has at most one base.
type InheritanceTree struct {
	derivedToBase map[string]TyName
}

// NewInheritanceTree creates an empty tree
func NewInheritanceTree() *InheritanceTree {
	return &InheritanceTree{derivedToBase: make(map[string]TyName)}
}

// Insert records the base class of derived. A second insert for the same
// derived class is an error: single inheritance is enforced here.
func (t *InheritanceTree) Insert(derived, base TyName) error {
	if existing, ok := t.derivedToBase[derived.Key()]; ok {
		return errors.Wrapf(errors.ErrDuplicateInheritance,
			"class %s already inherits %s, cannot also inherit %s",
			derived.Description(), existing.Description(), base.Description())
	}
	if derived.Equal(base) {
		return errors.Wrapf(errors.ErrInheritanceCycle, "class %s inherits from itself", derived.Description())
	}
	t.derivedToBase[derived.Key()] = base
	return nil
}

// DirectBase returns the immediate base class, if any
func (t *InheritanceTree) DirectBase(derived TyName) (TyName, bool) {
	base, ok := t.derivedToBase[derived.Key()]
	return base, ok
}

// CollectAllBases returns all base classes, without the class itself, in
// order from nearest to furthest (the root).
//
// The walk assumes the tree is acyclic; Build checks that before anything
// calls this.
func (t *InheritanceTree) CollectAllBases(derived TyName) []TyName {
	var result []TyName

	current := derived
	for {
		base, ok := t.derivedToBase[current.Key()]
		if !ok {
			break
		}
		result = append(result, base)
		current = base
	}
	return result
}

// Len returns the number of recorded edges
func (t *InheritanceTree) Len() int {
	return len(t.derivedToBase)
}

// checkAcyclic walks up from every derived class and reports the first
// chain that revisits a class.
func (t *InheritanceTree) checkAcyclic() error {
	done := make(map[string]bool, len(t.derivedToBase))

	for start := range t.derivedToBase {
		if done[start] {
			continue
		}

		onPath := make(map[string]bool)
		var path []string
		key := start
		for {
			if done[key] {
				break
			}
			if onPath[key] {
				path = append(path, key)
				return errors.WithHint(
					errors.Wrapf(errors.ErrInheritanceCycle, "%s", strings.Join(path, " -> ")),
					"the snapshot is malformed; re-dump it from the engine")
			}
			onPath[key] = true
			path = append(path, key)

			base, ok := t.derivedToBase[key]
			if !ok {
				break
			}
			key = base.Key()
		}

		for k := range onPath {
			done[k] = true
		}
	}
	return nil
}
