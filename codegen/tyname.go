package codegen

import (
	"fmt"

	"github.com/teranos/gdbind/gen/util"
)

// TyName identifies an engine class. It carries both the engine's own
// spelling and the normalized Go spelling; identity is the Go spelling, so
// two engine names that normalize to the same Go name are the same class.
type TyName struct {
	godot  string
	goName string
}

// NewTyName creates a class identity from an engine name and its Go name
func NewTyName(godot, goName string) TyName {
	return TyName{godot: godot, goName: goName}
}

// TyNameFromGodot creates a class identity using the default name conversion
func TyNameFromGodot(godot string) TyName {
	return NewTyName(godot, util.ToGoName(godot))
}

// Godot returns the engine spelling ("GLTFDocument")
func (t TyName) Godot() string { return t.godot }

// Go returns the normalized Go spelling ("GltfDocument")
func (t TyName) Go() string { return t.goName }

// Key is the map key used for this identity everywhere in the context
func (t TyName) Key() string { return t.goName }

// Equal compares by normalized identity
func (t TyName) Equal(other TyName) bool { return t.goName == other.goName }

// Description is used in log lines and error messages
func (t TyName) Description() string {
	if t.godot == t.goName {
		return t.goName
	}
	return fmt.Sprintf("%s [renamed %s]", t.goName, t.godot)
}

func (t TyName) String() string { return t.goName }
