// Package api holds the in-memory records of an engine extension API
// snapshot (the contents of extension_api.json) and loads them from disk.
//
// Records are read-only views: nothing in gdbind mutates a snapshot after
// it has been loaded.
package api

// ExtensionAPI is a complete snapshot of the engine's extension API
type ExtensionAPI struct {
	Header           Header            `json:"header" yaml:"header"`
	GlobalEnums      []Enum            `json:"global_enums" yaml:"global_enums"`
	BuiltinClasses   []BuiltinClass    `json:"builtin_classes" yaml:"builtin_classes"`
	Classes          []Class           `json:"classes" yaml:"classes"`
	Singletons       []Singleton       `json:"singletons" yaml:"singletons"`
	NativeStructures []NativeStructure `json:"native_structures" yaml:"native_structures"`
}

// Header identifies the engine build the snapshot was dumped from
type Header struct {
	VersionMajor    int    `json:"version_major" yaml:"version_major"`
	VersionMinor    int    `json:"version_minor" yaml:"version_minor"`
	VersionPatch    int    `json:"version_patch" yaml:"version_patch"`
	VersionStatus   string `json:"version_status" yaml:"version_status"`     // e.g. "stable", "beta2"
	VersionBuild    string `json:"version_build" yaml:"version_build"`       // e.g. "official"
	VersionFullName string `json:"version_full_name" yaml:"version_full_name"` // e.g. "Godot Engine v4.2.stable.official"
}

// BuiltinClass is a builtin value type (Vector2, String, Array, ...)
type BuiltinClass struct {
	Name string `json:"name" yaml:"name"`
}

// Class is an engine class record
type Class struct {
	Name           string          `json:"name" yaml:"name"`
	Inherits       string          `json:"inherits,omitempty" yaml:"inherits,omitempty"` // empty for the root class
	IsRefcounted   bool            `json:"is_refcounted" yaml:"is_refcounted"`
	IsInstantiable bool            `json:"is_instantiable" yaml:"is_instantiable"`
	APIType        string          `json:"api_type" yaml:"api_type"` // "core" or "editor"
	Constants      []ClassConstant `json:"constants,omitempty" yaml:"constants,omitempty"`
	Enums          []Enum          `json:"enums,omitempty" yaml:"enums,omitempty"`
	Methods        []Method        `json:"methods,omitempty" yaml:"methods,omitempty"`
}

// Base returns the name of the parent class, if any
func (c *Class) Base() (string, bool) {
	return c.Inherits, c.Inherits != ""
}

// ClassConstant is an integer constant declared by a class
type ClassConstant struct {
	Name  string `json:"name" yaml:"name"`
	Value int64  `json:"value" yaml:"value"`
}

// Enum is a global or class-scoped enum or bitfield
type Enum struct {
	Name       string      `json:"name" yaml:"name"`
	IsBitfield bool        `json:"is_bitfield" yaml:"is_bitfield"`
	Values     []EnumValue `json:"values" yaml:"values"`
}

// EnumValue is one enumerator
type EnumValue struct {
	Name  string `json:"name" yaml:"name"`
	Value int64  `json:"value" yaml:"value"`
}

// Method is a class method record
type Method struct {
	Name        string        `json:"name" yaml:"name"`
	IsConst     bool          `json:"is_const" yaml:"is_const"`
	IsStatic    bool          `json:"is_static" yaml:"is_static"`
	IsVirtual   bool          `json:"is_virtual" yaml:"is_virtual"`
	IsVararg    bool          `json:"is_vararg" yaml:"is_vararg"`
	Arguments   []MethodArg   `json:"arguments,omitempty" yaml:"arguments,omitempty"`
	ReturnValue *MethodReturn `json:"return_value,omitempty" yaml:"return_value,omitempty"`
}

// MethodArg is one method parameter
type MethodArg struct {
	Name         string `json:"name" yaml:"name"`
	Type         string `json:"type" yaml:"type"`
	Meta         string `json:"meta,omitempty" yaml:"meta,omitempty"` // e.g. "int32", "float"
	DefaultValue string `json:"default_value,omitempty" yaml:"default_value,omitempty"`
}

// MethodReturn describes a method's return type
type MethodReturn struct {
	Type string `json:"type" yaml:"type"`
	Meta string `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Singleton names a globally accessible engine object
type Singleton struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// NativeStructure is a plain C struct exposed by the engine (AudioFrame, ...)
type NativeStructure struct {
	Name   string `json:"name" yaml:"name"`
	Format string `json:"format" yaml:"format"`
}

// FindClass returns the class record with the given engine name
func (a *ExtensionAPI) FindClass(name string) (*Class, bool) {
	for i := range a.Classes {
		if a.Classes[i].Name == name {
			return &a.Classes[i], true
		}
	}
	return nil, false
}
