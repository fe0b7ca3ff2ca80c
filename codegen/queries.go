package codegen

import (
	"github.com/teranos/gdbind/api"
	"github.com/teranos/gdbind/errors"
)

// TyName returns the identity of an engine class, using the name overrides
// of the context's policy.
func (c *Context) TyName(godotName string) TyName {
	return NewTyName(godotName, c.policy.GoName(godotName))
}

// Class returns the snapshot record of a known class.
// Panics if the class is unknown: callers only query identities drawn from
// the same snapshot.
func (c *Context) Class(class TyName) *api.Class {
	record, ok := c.engineClasses[class.Key()]
	if !ok {
		panic(errors.WithAssertionFailure(
			errors.Wrapf(errors.ErrUnknownClass, "no class record for %s", class.Description())))
	}
	return record
}

// LookupClass is the non-panicking form of Class
func (c *Context) LookupClass(class TyName) (*api.Class, bool) {
	record, ok := c.engineClasses[class.Key()]
	return record, ok
}

// Classes returns all known classes in snapshot order
func (c *Context) Classes() []TyName {
	out := make([]TyName, len(c.classOrder))
	copy(out, c.classOrder)
	return out
}

// IsEngineClass reports whether godotName is a known (non-excluded) class
func (c *Context) IsEngineClass(godotName string) bool {
	_, ok := c.engineClasses[c.TyName(godotName).Key()]
	return ok
}

// IsBuiltin reports whether godotName is a builtin value type. Variant is
// always builtin.
func (c *Context) IsBuiltin(godotName string) bool {
	_, ok := c.builtinTypes[godotName]
	return ok
}

// IsNativeStructure reports whether godotName is a native structure
func (c *Context) IsNativeStructure(godotName string) bool {
	_, ok := c.nativeStructureTypes[godotName]
	return ok
}

// IsSingleton reports whether godotName is a singleton class
func (c *Context) IsSingleton(godotName string) bool {
	_, ok := c.singletons[godotName]
	return ok
}

// IsExportable reports whether class is, or inherits from, an exportable root
func (c *Context) IsExportable(class TyName) bool {
	if c.policy.IsExportableRoot(class.Godot()) {
		return true
	}
	for _, base := range c.inheritanceTree.CollectAllBases(class) {
		if c.policy.IsExportableRoot(base.Godot()) {
			return true
		}
	}
	return false
}

// InheritanceTree returns the class hierarchy
func (c *Context) InheritanceTree() *InheritanceTree {
	return c.inheritanceTree
}

// FindGoType returns the cached resolution of ty, or false if it has not
// been resolved yet. The caller resolves and inserts on a miss.
func (c *Context) FindGoType(ty GodotTy) (GoTy, bool) {
	return c.cachedGoTypes.Lookup(ty)
}

// InsertGoType caches a resolution. Entries are never overwritten.
func (c *Context) InsertGoType(ty GodotTy, resolved GoTy) error {
	return c.cachedGoTypes.Insert(ty, resolved)
}

// TypeCache exposes the resolution cache
func (c *Context) TypeCache() *TypeCache {
	return c.cachedGoTypes
}

// NotificationConstants returns the notifications declared by class itself,
// in declaration order. Returns false if the class declares none, even when
// it inherits an enum.
func (c *Context) NotificationConstants(class TyName) ([]NotificationConstant, bool) {
	constants, ok := c.notificationsByClass[class.Key()]
	return constants, ok
}

// NotificationEnumName returns the notification enum of class.
// Panics if the class is unknown; every known class has one after Build.
func (c *Context) NotificationEnumName(class TyName) NotificationEnum {
	enum, ok := c.notificationEnumNamesByClass[class.Key()]
	if !ok {
		panic(errors.WithAssertionFailure(
			errors.Wrapf(errors.ErrUnknownClass, "no notification enum for %s", class.Description())))
	}
	return enum
}

// AllNotificationConstants returns every notification visible to class:
// those of its furthest base first, then nearer bases, then its own. A
// constant redeclared closer to class replaces the inherited one in place.
func (c *Context) AllNotificationConstants(class TyName) []NotificationConstant {
	bases := c.inheritanceTree.CollectAllBases(class)
	chain := make([]TyName, 0, len(bases)+1)
	for i := len(bases) - 1; i >= 0; i-- {
		chain = append(chain, bases[i])
	}
	chain = append(chain, class)

	var result []NotificationConstant
	position := make(map[string]int)
	for _, ty := range chain {
		for _, constant := range c.notificationsByClass[ty.Key()] {
			if i, ok := position[constant.Ident]; ok {
				result[i] = constant
				continue
			}
			position[constant.Ident] = len(result)
			result = append(result, constant)
		}
	}
	return result
}
