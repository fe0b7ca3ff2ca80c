// Package typemap resolves engine type descriptors ("int", "enum::Node.ProcessMode",
// "typedarray::Node", "const AudioFrame*") to Go type expressions.
//
// Resolutions are memoized in the context's type cache: each descriptor is
// resolved once per run, and the first resolution is final.
package typemap

import (
	"fmt"
	"strings"

	"github.com/teranos/gdbind/codegen"
	"github.com/teranos/gdbind/errors"
	"github.com/teranos/gdbind/logger"
)

const (
	enumPrefix       = "enum::"
	bitfieldPrefix   = "bitfield::"
	typedArrayPrefix = "typedarray::"
)

// intMeta maps the meta of an "int" descriptor to its Go type
var intMeta = map[string]string{
	"int8":   "int8",
	"int16":  "int16",
	"int32":  "int32",
	"int64":  "int64",
	"uint8":  "uint8",
	"uint16": "uint16",
	"uint32": "uint32",
	"uint64": "uint64",
	"char16": "uint16",
	"char32": "rune",
}

// floatMeta maps the meta of a "float" descriptor to its Go type
var floatMeta = map[string]string{
	"float":  "float32",
	"double": "float64",
}

// cTypes maps the C scalar types that appear behind native pointers
var cTypes = map[string]string{
	"void":     "unsafe.Pointer",
	"int8_t":   "int8",
	"int16_t":  "int16",
	"int32_t":  "int32",
	"int64_t":  "int64",
	"uint8_t":  "uint8",
	"uint16_t": "uint16",
	"uint32_t": "uint32",
	"uint64_t": "uint64",
	"float":    "float32",
	"double":   "float64",
	"real_t":   "float32",
}

// Context is the part of the generation context the mapper needs
type Context interface {
	IsBuiltin(godotName string) bool
	IsNativeStructure(godotName string) bool
	IsEngineClass(godotName string) bool
	TyName(godotName string) codegen.TyName
	FindGoType(ty codegen.GodotTy) (codegen.GoTy, bool)
	InsertGoType(ty codegen.GodotTy, resolved codegen.GoTy) error
}

// Mapper resolves type descriptors against a context
type Mapper struct {
	ctx Context
}

// New creates a mapper backed by ctx's type cache
func New(ctx Context) *Mapper {
	return &Mapper{ctx: ctx}
}

// Resolve returns the Go type of a descriptor, resolving and caching it on
// first use.
func (m *Mapper) Resolve(ty codegen.GodotTy) (codegen.GoTy, error) {
	if cached, ok := m.ctx.FindGoType(ty); ok {
		return cached, nil
	}

	resolved, err := m.resolve(ty)
	if err != nil {
		return codegen.GoTy{}, err
	}

	if err := m.ctx.InsertGoType(ty, resolved); err != nil {
		// Another emitter resolved the same descriptor first; its result is final
		if errors.Is(err, errors.ErrTypeOverwrite) {
			if cached, ok := m.ctx.FindGoType(ty); ok {
				return cached, nil
			}
		}
		return codegen.GoTy{}, err
	}

	if logger.TraceEnabled() {
		logger.Debugw("Resolved type",
			logger.FieldType, ty.Ty,
			logger.FieldMeta, ty.Meta,
			logger.FieldGoType, resolved.Expr)
	}
	return resolved, nil
}

// ResolveArg resolves a method argument or return descriptor
func (m *Mapper) ResolveArg(ty, meta string) (codegen.GoTy, error) {
	return m.Resolve(codegen.GodotTy{Ty: ty, Meta: meta})
}

func (m *Mapper) resolve(ty codegen.GodotTy) (codegen.GoTy, error) {
	name := strings.TrimSpace(ty.Ty)

	switch name {
	case "int":
		if ty.Meta == "" {
			return primitive("int64"), nil
		}
		if goType, ok := intMeta[ty.Meta]; ok {
			return primitive(goType), nil
		}
		return codegen.GoTy{}, unknown(ty, "unsupported int meta")
	case "float":
		if ty.Meta == "" {
			return primitive("float64"), nil
		}
		if goType, ok := floatMeta[ty.Meta]; ok {
			return primitive(goType), nil
		}
		return codegen.GoTy{}, unknown(ty, "unsupported float meta")
	case "bool":
		return primitive("bool"), nil
	case "Variant":
		return codegen.GoTy{Expr: "Variant", Kind: codegen.KindBuiltin}, nil
	}

	if rest, ok := strings.CutPrefix(name, enumPrefix); ok {
		return m.resolveEnum(ty, rest)
	}
	if rest, ok := strings.CutPrefix(name, bitfieldPrefix); ok {
		return m.resolveEnum(ty, rest)
	}
	if rest, ok := strings.CutPrefix(name, typedArrayPrefix); ok {
		elem, err := m.Resolve(codegen.GodotTy{Ty: rest})
		if err != nil {
			return codegen.GoTy{}, errors.Wrapf(err, "element of %s", name)
		}
		return codegen.GoTy{
			Expr: fmt.Sprintf("TypedArray[%s]", elem.Expr),
			Kind: codegen.KindTypedArray,
		}, nil
	}
	if strings.HasSuffix(name, "*") {
		return m.resolvePointer(ty, name)
	}

	if m.ctx.IsBuiltin(name) {
		return codegen.GoTy{Expr: m.ctx.TyName(name).Go(), Kind: codegen.KindBuiltin}, nil
	}
	if m.ctx.IsEngineClass(name) {
		return codegen.GoTy{Expr: "*" + m.ctx.TyName(name).Go(), Kind: codegen.KindObject}, nil
	}

	return codegen.GoTy{}, unknown(ty, "not a builtin, native structure, or engine class")
}

// resolveEnum handles "Class.Enum" (class-scoped) and "Enum" (global)
func (m *Mapper) resolveEnum(ty codegen.GodotTy, scoped string) (codegen.GoTy, error) {
	class, enum, ok := strings.Cut(scoped, ".")
	if !ok {
		return codegen.GoTy{Expr: m.ctx.TyName(scoped).Go(), Kind: codegen.KindEnum}, nil
	}
	if class == "" || enum == "" {
		return codegen.GoTy{}, unknown(ty, "malformed enum reference")
	}
	return codegen.GoTy{
		Expr: m.ctx.TyName(class).Go() + m.ctx.TyName(enum).Go(),
		Kind: codegen.KindEnum,
	}, nil
}

// resolvePointer handles native pointers ("const AudioFrame*", "uint8_t**")
func (m *Mapper) resolvePointer(ty codegen.GodotTy, name string) (codegen.GoTy, error) {
	pointee := strings.TrimPrefix(name, "const ")
	depth := 0
	for strings.HasSuffix(pointee, "*") {
		pointee = strings.TrimSpace(strings.TrimSuffix(pointee, "*"))
		depth++
	}

	var base string
	switch {
	case m.ctx.IsNativeStructure(pointee):
		base = m.ctx.TyName(pointee).Go()
	case pointee == "void":
		// void* is already a pointer
		depth--
		base = cTypes[pointee]
	default:
		goType, ok := cTypes[pointee]
		if !ok {
			return codegen.GoTy{}, unknown(ty, "pointer to unknown type")
		}
		base = goType
	}

	return codegen.GoTy{
		Expr: strings.Repeat("*", depth) + base,
		Kind: codegen.KindNativeStructure,
	}, nil
}

func primitive(goType string) codegen.GoTy {
	return codegen.GoTy{Expr: goType, Kind: codegen.KindPrimitive}
}

func unknown(ty codegen.GodotTy, reason string) error {
	return errors.WithDetail(
		errors.Wrapf(errors.ErrUnknownType, "%s", ty),
		reason)
}
