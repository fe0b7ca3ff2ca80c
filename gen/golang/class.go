package golang

import (
	"fmt"
	"strings"

	"github.com/teranos/gdbind/api"
	"github.com/teranos/gdbind/codegen"
	"github.com/teranos/gdbind/errors"
	"github.com/teranos/gdbind/gen/util"
	"github.com/teranos/gdbind/typemap"
)

// generateClass emits the body of one class file. It returns the number of
// methods left out because a parameter or return type could not be mapped.
func (g *Generator) generateClass(ctx *codegen.Context, mapper *typemap.Mapper, class codegen.TyName) (string, int, error) {
	record := ctx.Class(class)
	var sb strings.Builder

	// Struct
	if record.APIType == "editor" {
		sb.WriteString(fmt.Sprintf("// %s is the engine class %s (editor only).\n", class.Go(), class.Godot()))
	} else {
		sb.WriteString(fmt.Sprintf("// %s is the engine class %s.\n", class.Go(), class.Godot()))
	}
	sb.WriteString(fmt.Sprintf("type %s struct {\n", class.Go()))
	// An excluded base is not generated, so the class starts a new root
	if base, ok := ctx.InheritanceTree().DirectBase(class); ok && ctx.IsEngineClass(base.Godot()) {
		sb.WriteString(fmt.Sprintf("\t%s\n", base.Go()))
	} else {
		sb.WriteString("\tobjectHandle\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString(fmt.Sprintf("// GodotClass returns the engine name of %s.\n", class.Go()))
	sb.WriteString(fmt.Sprintf("func (*%s) GodotClass() string { return %q }\n\n", class.Go(), class.Godot()))

	if ctx.IsExportable(class) {
		sb.WriteString(fmt.Sprintf("// Exportable marks %s as usable in exported properties.\n", class.Go()))
		sb.WriteString(fmt.Sprintf("func (*%s) Exportable() {}\n\n", class.Go()))
	}

	if ctx.IsSingleton(class.Godot()) {
		sb.WriteString(fmt.Sprintf("// %sSingleton is set when the extension initializes.\n", class.Go()))
		sb.WriteString(fmt.Sprintf("var %sSingleton *%s\n\n", class.Go(), class.Go()))
	}

	// Notifications
	enum := ctx.NotificationEnumName(class)
	if name, owned := enum.OwnName(); owned {
		sb.WriteString(generateNotificationEnum(name, class, ctx.AllNotificationConstants(class)))
	}
	sb.WriteString(fmt.Sprintf("// Notify sends a notification to this %s.\n", class.Go()))
	sb.WriteString(fmt.Sprintf("func (c *%s) Notify(what %s) {\n\tc.notify(int32(what))\n}\n\n", class.Go(), enum.Name))

	// Enums
	for _, e := range record.Enums {
		sb.WriteString(generateEnum(class.Go()+ctx.TyName(e.Name).Go(), e))
	}

	// Methods
	methods, skipped, err := generateMethods(mapper, record.Methods)
	if err != nil {
		return "", 0, err
	}
	if len(methods) > 0 {
		sb.WriteString(fmt.Sprintf("// %sMethods lists the methods %s exposes.\n", class.Go(), class.Godot()))
		sb.WriteString(fmt.Sprintf("type %sMethods interface {\n", class.Go()))
		for _, m := range methods {
			sb.WriteString("\t" + m + "\n")
		}
		sb.WriteString("}\n")
	}

	return sb.String(), skipped, nil
}

func generateNotificationEnum(name string, class codegen.TyName, constants []codegen.NotificationConstant) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("// %s lists the notifications %s and its subclasses receive.\n", name, class.Go()))
	sb.WriteString(fmt.Sprintf("type %s int32\n\n", name))
	if len(constants) > 0 {
		sb.WriteString("const (\n")
		for _, c := range constants {
			sb.WriteString(fmt.Sprintf("\t%s%s %s = %d\n", name, c.Ident, name, c.Value))
		}
		sb.WriteString(")\n\n")
	}
	return sb.String()
}

func generateEnum(name string, e api.Enum) string {
	var sb strings.Builder

	kind := "enum"
	if e.IsBitfield {
		kind = "bitfield"
	}
	sb.WriteString(fmt.Sprintf("// %s is the %s %s.\n", name, kind, e.Name))
	sb.WriteString(fmt.Sprintf("type %s int64\n\n", name))
	if len(e.Values) > 0 {
		sb.WriteString("const (\n")
		seen := make(map[string]bool, len(e.Values))
		for _, v := range e.Values {
			ident := name + enumValueIdent(e.Name, v.Name)
			if seen[ident] {
				continue
			}
			seen[ident] = true
			sb.WriteString(fmt.Sprintf("\t%s %s = %d\n", ident, name, v.Value))
		}
		sb.WriteString(")\n\n")
	}
	return sb.String()
}

// generateMethods returns interface method lines for non-virtual methods
func generateMethods(mapper *typemap.Mapper, methods []api.Method) ([]string, int, error) {
	var lines []string
	skipped := 0
	seen := make(map[string]bool, len(methods))

	for _, m := range methods {
		if m.IsVirtual {
			continue
		}
		name := util.ToPascalCase(m.Name)
		if name == "" || seen[name] {
			continue
		}

		line, err := methodSignature(mapper, name, m)
		if errors.Is(err, errors.ErrUnknownType) {
			skipped++
			continue
		}
		if err != nil {
			return nil, 0, errors.Wrapf(err, "method %s", m.Name)
		}
		seen[name] = true
		lines = append(lines, line)
	}
	return lines, skipped, nil
}

func methodSignature(mapper *typemap.Mapper, name string, m api.Method) (string, error) {
	params := make([]string, 0, len(m.Arguments)+1)
	for _, arg := range m.Arguments {
		ty, err := mapper.ResolveArg(arg.Type, arg.Meta)
		if err != nil {
			return "", err
		}
		params = append(params, fmt.Sprintf("%s %s", util.ToGoParam(arg.Name), ty.Expr))
	}
	if m.IsVararg {
		params = append(params, "args ...Variant")
	}

	signature := fmt.Sprintf("%s(%s)", name, strings.Join(params, ", "))
	if m.ReturnValue != nil {
		ret, err := mapper.ResolveArg(m.ReturnValue.Type, m.ReturnValue.Meta)
		if err != nil {
			return "", err
		}
		signature += " " + ret.Expr
	}
	return signature, nil
}
