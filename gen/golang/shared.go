package golang

import (
	"fmt"
	"strings"

	"github.com/teranos/gdbind/api"
	"github.com/teranos/gdbind/codegen"
)

func generateRuntime() string {
	return `// Variant is the engine's dynamically typed value.
type Variant struct {
	opaque unsafe.Pointer
}

// TypedArray is an engine array whose elements are all of type T.
type TypedArray[T any] struct {
	opaque unsafe.Pointer
}

// NotifyHook delivers notifications to the engine. The extension entry
// point sets it before any object is created.
var NotifyHook func(object unsafe.Pointer, what int32)

// objectHandle is embedded by every root class.
type objectHandle struct {
	ptr unsafe.Pointer
}

func (h *objectHandle) notify(what int32) {
	if NotifyHook != nil {
		NotifyHook(h.ptr, what)
	}
}
`
}

// generateBuiltins declares builtin value types and native structures as
// opaque types
func generateBuiltins(snapshot *api.ExtensionAPI, ctx *codegen.Context) string {
	var sb strings.Builder

	for _, builtin := range snapshot.BuiltinClasses {
		if primitiveBuiltins[builtin.Name] || builtin.Name == "Variant" {
			continue
		}
		name := ctx.TyName(builtin.Name).Go()
		sb.WriteString(fmt.Sprintf("// %s is the builtin value type %s.\n", name, builtin.Name))
		sb.WriteString(fmt.Sprintf("type %s struct {\n\topaque unsafe.Pointer\n}\n\n", name))
	}

	for _, structure := range snapshot.NativeStructures {
		name := ctx.TyName(structure.Name).Go()
		sb.WriteString(fmt.Sprintf("// %s is the native structure %s.\n", name, structure.Name))
		if structure.Format != "" {
			sb.WriteString(fmt.Sprintf("//\n// Layout: %s\n", structure.Format))
		}
		sb.WriteString(fmt.Sprintf("type %s struct {\n\topaque unsafe.Pointer\n}\n\n", name))
	}

	return sb.String()
}

func generateGlobalEnums(enums []api.Enum, ctx *codegen.Context) string {
	var sb strings.Builder
	for _, e := range enums {
		// Variant.Type and Variant.Operator are global enums scoped to Variant
		name := strings.ReplaceAll(e.Name, ".", "")
		sb.WriteString(generateEnum(ctx.TyName(name).Go(), e))
	}
	return sb.String()
}
