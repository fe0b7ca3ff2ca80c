// Package golang generates Go bindings from a generation context.
//
// Each engine class becomes one file holding its struct (embedding the base
// class), its enums, its notification enum if it owns one, and an interface
// of its methods. Shared declarations (Variant, TypedArray, builtin value
// types, native structures, global enums) go into gdbind_*.go files.
//
// File names are the lowercased Go name without underscores, so that class
// names ending in an OS or architecture name do not become build constraints.
package golang

import (
	"fmt"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/teranos/gdbind/api"
	"github.com/teranos/gdbind/codegen"
	"github.com/teranos/gdbind/errors"
	"github.com/teranos/gdbind/gen"
	"github.com/teranos/gdbind/gen/util"
	"github.com/teranos/gdbind/logger"
	"github.com/teranos/gdbind/typemap"
)

// DefaultPackage is the package name of generated bindings
const DefaultPackage = "godot"

// primitiveBuiltins are listed in builtin_classes but map to Go types
var primitiveBuiltins = map[string]bool{
	"Nil":   true,
	"bool":  true,
	"int":   true,
	"float": true,
}

var _ gen.Generator = (*Generator)(nil)

// Generator generates Go bindings
type Generator struct {
	// Package is the package clause of generated files
	Package string
}

// NewGenerator creates a generator for the given package name
func NewGenerator(pkg string) *Generator {
	if pkg == "" {
		pkg = DefaultPackage
	}
	return &Generator{Package: pkg}
}

// Language returns "go"
func (g *Generator) Language() string {
	return "go"
}

// FileExtension returns "go"
func (g *Generator) FileExtension() string {
	return "go"
}

// Generate produces the binding files for every class in ctx
func (g *Generator) Generate(snapshot *api.ExtensionAPI, ctx *codegen.Context, meta gen.Metadata) (*gen.Result, error) {
	log := logger.ComponentLogger("gen.golang")
	mapper := typemap.New(ctx)
	result := &gen.Result{SourceVersion: meta.SourceVersion}

	shared, err := g.generateShared(snapshot, ctx, meta)
	if err != nil {
		return nil, err
	}
	result.Files = append(result.Files, shared...)

	for _, class := range ctx.Classes() {
		body, skipped, err := g.generateClass(ctx, mapper, class)
		if err != nil {
			return nil, errors.Wrapf(err, "class %s", class.Description())
		}
		if skipped > 0 {
			logger.ChildLogger(log, logger.FieldClass, class.Description()).
				Warnw("Skipped methods with unmappable types", logger.FieldCount, skipped)
		}

		file, err := g.format(fileName(class), g.header(meta)+body)
		if err != nil {
			return nil, errors.Wrapf(err, "class %s", class.Description())
		}
		result.Files = append(result.Files, file)
		result.Classes++
		if _, owned := ctx.NotificationEnumName(class).OwnName(); owned {
			result.OwnEnums++
		}
	}

	result.Sort()
	return result, nil
}

// generateShared produces the declarations every class file relies on
func (g *Generator) generateShared(snapshot *api.ExtensionAPI, ctx *codegen.Context, meta gen.Metadata) ([]gen.File, error) {
	var files []gen.File

	runtime, err := g.format("gdbind_runtime.go", g.header(meta)+generateRuntime())
	if err != nil {
		return nil, err
	}
	files = append(files, runtime)

	builtins, err := g.format("gdbind_builtins.go", g.header(meta)+generateBuiltins(snapshot, ctx))
	if err != nil {
		return nil, err
	}
	files = append(files, builtins)

	enums, err := g.format("gdbind_global_enums.go", g.header(meta)+generateGlobalEnums(snapshot.GlobalEnums, ctx))
	if err != nil {
		return nil, err
	}
	files = append(files, enums)

	return files, nil
}

// header returns the file header and package clause
func (g *Generator) header(meta gen.Metadata) string {
	var sb strings.Builder
	sb.WriteString(gen.GeneratedHeader + "\n")
	if meta.SourceVersion != "" {
		sb.WriteString(fmt.Sprintf("// Source version: %s\n", meta.SourceVersion))
	}
	if meta.GeneratorVersion != "" {
		sb.WriteString(fmt.Sprintf("// Generator version: %s\n", meta.GeneratorVersion))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("package %s\n\n", g.Package))
	return sb.String()
}

// format runs the source through goimports
func (g *Generator) format(name, src string) (gen.File, error) {
	formatted, err := imports.Process(name, []byte(src), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return gen.File{}, errors.WithDetail(
			errors.Wrapf(err, "generated %s does not parse", name),
			src)
	}
	return gen.File{Path: name, Content: formatted}, nil
}

func fileName(class codegen.TyName) string {
	return strings.ToLower(class.Go()) + ".go"
}

// enumValueIdent strips the enum's own SHOUT_CASE prefix from a value name
// ("PROCESS_MODE_INHERIT" in ProcessMode -> "Inherit")
func enumValueIdent(enumName, valueName string) string {
	if i := strings.LastIndex(enumName, "."); i >= 0 {
		enumName = enumName[i+1:]
	}
	prefix := strings.ToUpper(util.ToSnakeCase(enumName)) + "_"
	if rest, ok := strings.CutPrefix(valueName, prefix); ok && rest != "" {
		return util.ShoutToPascal(rest)
	}
	return util.ShoutToPascal(valueName)
}
