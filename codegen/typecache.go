package codegen

import (
	"fmt"
	"sync"

	"github.com/teranos/gdbind/errors"
)

// GodotTy is a type descriptor as it appears in the API snapshot
type GodotTy struct {
	// Ty is the engine type ("int", "Node", "enum::Node.ProcessMode", "typedarray::Node")
	Ty string
	// Meta narrows numeric types ("int32", "float"); empty if absent
	Meta string
}

func (t GodotTy) String() string {
	if t.Meta == "" {
		return t.Ty
	}
	return fmt.Sprintf("%s (meta %s)", t.Ty, t.Meta)
}

// GoTyKind classifies a resolved Go type
type GoTyKind int

const (
	// KindPrimitive is a Go builtin (int64, float32, bool)
	KindPrimitive GoTyKind = iota
	// KindBuiltin is an engine builtin value type (Vector2, String)
	KindBuiltin
	// KindEnum is a class or global enum/bitfield
	KindEnum
	// KindTypedArray is an array with a statically known element type
	KindTypedArray
	// KindNativeStructure is a pointer to a native structure
	KindNativeStructure
	// KindObject is a pointer to an engine class
	KindObject
)

var goTyKindNames = map[GoTyKind]string{
	KindPrimitive:       "primitive",
	KindBuiltin:         "builtin",
	KindEnum:            "enum",
	KindTypedArray:      "typed-array",
	KindNativeStructure: "native-structure",
	KindObject:          "object",
}

func (k GoTyKind) String() string {
	if name, ok := goTyKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// GoTy is a resolved Go type
type GoTy struct {
	// Expr is the Go type expression ("int64", "*Node", "TypedArray[*Node]")
	Expr string
	Kind GoTyKind
}

func (t GoTy) String() string { return t.Expr }

// TypeCache memoizes resolved Go types. Entries are write-once: the first
// resolution of a descriptor is final, and a second insert is an error.
// It is safe for concurrent use.
type TypeCache struct {
	mu      sync.RWMutex
	entries map[GodotTy]GoTy
}

// NewTypeCache creates an empty cache
func NewTypeCache() *TypeCache {
	return &TypeCache{entries: make(map[GodotTy]GoTy)}
}

// Lookup returns the resolved type, or false if it has not been resolved yet
func (c *TypeCache) Lookup(ty GodotTy) (GoTy, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	resolved, ok := c.entries[ty]
	return resolved, ok
}

// Insert records the resolution of ty. It never overwrites.
func (c *TypeCache) Insert(ty GodotTy, resolved GoTy) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.entries[ty]; ok {
		return errors.Wrapf(errors.ErrTypeOverwrite,
			"%s resolves to %s, refusing to overwrite with %s", ty, prev.Expr, resolved.Expr)
	}
	c.entries[ty] = resolved
	return nil
}

// Len returns the number of cached resolutions
func (c *TypeCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
