package golang

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/gdbind/api"
	"github.com/teranos/gdbind/codegen"
	"github.com/teranos/gdbind/gen"
	"github.com/teranos/gdbind/special"
)

const fixture = `
header:
  version_major: 4
  version_minor: 2
  version_patch: 0
  version_status: stable
global_enums:
  - name: Error
    values:
      - {name: OK, value: 0}
      - {name: FAILED, value: 1}
  - name: Variant.Type
    values:
      - {name: TYPE_NIL, value: 0}
      - {name: TYPE_BOOL, value: 1}
builtin_classes:
  - name: int
  - name: String
  - name: StringName
  - name: Vector2
native_structures:
  - name: AudioFrame
    format: float left;float right
singletons:
  - name: Engine
    type: Engine
classes:
  - name: Object
    constants:
      - {name: NOTIFICATION_POSTINITIALIZE, value: 0}
      - {name: NOTIFICATION_PREDELETE, value: 1}
  - name: Node
    inherits: Object
    constants:
      - {name: NOTIFICATION_ENTER_TREE, value: 10}
    enums:
      - name: ProcessMode
        values:
          - {name: PROCESS_MODE_INHERIT, value: 0}
          - {name: PROCESS_MODE_ALWAYS, value: 3}
    methods:
      - name: get_child
        is_const: true
        arguments:
          - {name: idx, type: int, meta: int32}
          - {name: include_internal, type: bool}
        return_value: {type: Node}
      - name: set_process_mode
        arguments:
          - {name: mode, type: enum::Node.ProcessMode}
      - name: _ready
        is_virtual: true
      - name: get_mystery
        return_value: {type: Mystery}
  - name: Node2D
    inherits: Node
    methods:
      - name: rpc
        is_vararg: true
        arguments:
          - {name: method, type: StringName}
        return_value: {type: enum::Error}
  - name: Engine
    inherits: Object
    methods:
      - name: get_version_info
        return_value: {type: Variant}
  - name: AudioEffect
    inherits: Object
    methods:
      - name: process
        arguments:
          - {name: frames, type: const AudioFrame*}
          - {name: type, type: int}
`

func generateFixture(t *testing.T) *gen.Result {
	t.Helper()
	snapshot, err := api.LoadYAML(fixture)
	require.NoError(t, err)

	ctx, err := codegen.Build(snapshot, special.Default())
	require.NoError(t, err)

	result, err := NewGenerator("").Generate(snapshot, ctx, gen.Metadata{
		SourceVersion:    "4.2.0",
		GeneratorVersion: "test",
	})
	require.NoError(t, err)
	return result
}

func fileContent(t *testing.T, result *gen.Result, path string) string {
	t.Helper()
	for _, f := range result.Files {
		if f.Path == path {
			return string(f.Content)
		}
	}
	t.Fatalf("no generated file %s", path)
	return ""
}

func TestGenerateFiles(t *testing.T) {
	result := generateFixture(t)

	var paths []string
	for _, f := range result.Files {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{
		"audioeffect.go",
		"engine.go",
		"gdbind_builtins.go",
		"gdbind_global_enums.go",
		"gdbind_runtime.go",
		"node.go",
		"node2d.go",
		"object.go",
	}, paths)
	assert.Equal(t, 5, result.Classes)
	assert.Equal(t, 2, result.OwnEnums)
}

func TestGeneratedFilesParse(t *testing.T) {
	result := generateFixture(t)

	for _, f := range result.Files {
		t.Run(f.Path, func(t *testing.T) {
			file, err := parser.ParseFile(token.NewFileSet(), f.Path, f.Content, parser.ParseComments)
			require.NoError(t, err)
			assert.Equal(t, DefaultPackage, file.Name.Name)
			assert.Contains(t, string(f.Content), "// Code generated by gdbind. DO NOT EDIT.\n")
			assert.Contains(t, string(f.Content), "// Source version: 4.2.0\n")
		})
	}
}

func TestGenerateNotificationEnums(t *testing.T) {
	result := generateFixture(t)

	object := fileContent(t, result, "object.go")
	assert.Contains(t, object, "type ObjectNotification int32")
	assert.Regexp(t, `ObjectNotificationPredelete\s+ObjectNotification = 1`, object)
	assert.Contains(t, object, "type Object struct {\n\tobjectHandle\n}")

	node := fileContent(t, result, "node.go")
	assert.Contains(t, node, "type NodeNotification int32")
	assert.Regexp(t, `NodeNotificationPostinitialize\s+NodeNotification = 0`, node, "inherited notifications are repeated")
	assert.Regexp(t, `NodeNotificationEnterTree\s+NodeNotification = 10`, node)
	assert.Contains(t, node, "func (c *Node) Notify(what NodeNotification)")

	node2d := fileContent(t, result, "node2d.go")
	assert.NotContains(t, node2d, "type Node2DNotification")
	assert.Contains(t, node2d, "func (c *Node2D) Notify(what NodeNotification)")
	assert.Contains(t, node2d, "type Node2D struct {\n\tNode\n}")

	engine := fileContent(t, result, "engine.go")
	assert.Contains(t, engine, "func (c *Engine) Notify(what ObjectNotification)")
}

func TestGenerateClassMembers(t *testing.T) {
	result := generateFixture(t)

	node := fileContent(t, result, "node.go")
	assert.Contains(t, node, "type NodeProcessMode int64")
	assert.Regexp(t, `NodeProcessModeAlways\s+NodeProcessMode = 3`, node)
	assert.Contains(t, node, "GetChild(idx int32, includeInternal bool) *Node")
	assert.Contains(t, node, "SetProcessMode(mode NodeProcessMode)")
	assert.NotContains(t, node, "Ready(", "virtual methods are not part of the interface")
	assert.NotContains(t, node, "GetMystery", "methods with unknown types are skipped")
	assert.Contains(t, node, "func (*Node) Exportable() {}")

	node2d := fileContent(t, result, "node2d.go")
	assert.Contains(t, node2d, "Rpc(method StringName, args ...Variant) Error")

	engine := fileContent(t, result, "engine.go")
	assert.Contains(t, engine, "var EngineSingleton *Engine")
	assert.NotContains(t, engine, "Exportable")

	effect := fileContent(t, result, "audioeffect.go")
	assert.Contains(t, effect, "Process(frames *AudioFrame, type_ int64)")
}

func TestGenerateClassWithExcludedBase(t *testing.T) {
	snapshot, err := api.LoadYAML(`
header: {version_major: 4, version_minor: 2, version_patch: 0}
classes:
  - name: Object
    constants:
      - {name: NOTIFICATION_POSTINITIALIZE, value: 0}
  - name: Hidden
    inherits: Object
  - name: Child
    inherits: Hidden
    constants:
      - {name: NOTIFICATION_WAKE, value: 5}
`)
	require.NoError(t, err)
	policy, err := special.ParseManifest(`excluded_classes = ["Hidden"]`)
	require.NoError(t, err)

	ctx, err := codegen.Build(snapshot, policy)
	require.NoError(t, err)
	result, err := NewGenerator("").Generate(snapshot, ctx, gen.Metadata{})
	require.NoError(t, err)

	child := fileContent(t, result, "child.go")
	assert.Contains(t, child, "type Child struct {\n\tobjectHandle\n}")
	assert.NotContains(t, child, "Hidden\n")
	assert.Contains(t, child, "func (c *Child) Notify(what ChildNotification)")
	for _, f := range result.Files {
		assert.NotEqual(t, "hidden.go", f.Path)
	}
}

func TestGenerateShared(t *testing.T) {
	result := generateFixture(t)

	runtime := fileContent(t, result, "gdbind_runtime.go")
	assert.Contains(t, runtime, `import "unsafe"`)
	assert.Contains(t, runtime, "type TypedArray[T any] struct")

	builtins := fileContent(t, result, "gdbind_builtins.go")
	assert.Contains(t, builtins, "type Vector2 struct")
	assert.Contains(t, builtins, "type AudioFrame struct")
	assert.NotContains(t, builtins, "type Int struct")

	enums := fileContent(t, result, "gdbind_global_enums.go")
	assert.Regexp(t, `ErrorFailed\s+Error = 1`, enums)
	assert.Regexp(t, `VariantTypeBool\s+VariantType = 1`, enums)
}

func TestEnumValueIdent(t *testing.T) {
	tests := []struct {
		enum, value, want string
	}{
		{"ProcessMode", "PROCESS_MODE_INHERIT", "Inherit"},
		{"Variant.Type", "TYPE_NIL", "Nil"},
		{"Error", "ERR_UNAVAILABLE", "ErrUnavailable"},
		{"ProcessMode", "PROCESS_MODE_", "ProcessMode"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, enumValueIdent(tt.enum, tt.value))
		})
	}
}
