package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/gdbind/am"
	"github.com/teranos/gdbind/errors"
)

const snapshotYAML = `
header:
  version_major: 4
  version_minor: 2
  version_patch: 1
  version_status: stable
builtin_classes:
  - name: String
classes:
  - name: Object
    constants:
      - {name: NOTIFICATION_POSTINITIALIZE, value: 0}
  - name: Node
    inherits: Object
    constants:
      - {name: NOTIFICATION_READY, value: 13}
  - name: Control
    inherits: Node
`

func testConfig(t *testing.T) *am.Config {
	t.Helper()
	dir := t.TempDir()
	apiPath := filepath.Join(dir, "extension_api.yaml")
	require.NoError(t, os.WriteFile(apiPath, []byte(snapshotYAML), 0644))

	cfg := am.Defaults()
	cfg.API.Path = apiPath
	cfg.Output.Dir = filepath.Join(dir, "godot")
	return cfg
}

func TestRunAndCheck(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	result, err := Run(ctx, cfg, cfg.Output.Dir)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Classes)
	assert.Equal(t, 2, result.OwnEnums)

	data, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "control.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "// Source version: 4.2.1\n")
	assert.Contains(t, string(data), "func (c *Control) Notify(what NodeNotification)")

	check, err := Check(ctx, cfg)
	require.NoError(t, err)
	assert.True(t, check.UpToDate)

	require.NoError(t, os.WriteFile(filepath.Join(cfg.Output.Dir, "control.go"), []byte("package godot\n"), 0644))
	check, err = Check(ctx, cfg)
	require.NoError(t, err)
	assert.False(t, check.UpToDate)
	assert.Equal(t, []string{"control.go"}, check.Changed)
}

func TestRunRemovesStaleBindings(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	_, err := Run(ctx, cfg, cfg.Output.Dir)
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(cfg.Output.Dir, "control.go"))
	handwritten := filepath.Join(cfg.Output.Dir, "extra.go")
	require.NoError(t, os.WriteFile(handwritten, []byte("package godot\n"), 0644))

	withoutControl := strings.Replace(snapshotYAML, "  - name: Control\n    inherits: Node\n", "", 1)
	require.NotEqual(t, snapshotYAML, withoutControl)
	require.NoError(t, os.WriteFile(cfg.API.Path, []byte(withoutControl), 0644))

	result, err := Run(ctx, cfg, cfg.Output.Dir)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Classes)
	assert.NoFileExists(t, filepath.Join(cfg.Output.Dir, "control.go"))
	assert.FileExists(t, filepath.Join(cfg.Output.Dir, "node.go"))
	assert.FileExists(t, handwritten)

	check, err := Check(ctx, cfg)
	require.NoError(t, err)
	assert.True(t, check.UpToDate)
	assert.Empty(t, check.Stale)
}

func TestLoadAppliesConfig(t *testing.T) {
	cfg := testConfig(t)

	manifestPath := filepath.Join(t.TempDir(), "special.toml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`excluded_classes = ["Control"]`), 0644))
	cfg.Codegen.SpecialCases = manifestPath
	cfg.Codegen.NotificationPrefix = "NOTIF_"

	inputs, err := Load(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, inputs.Manifest.IsClassExcluded("Control"))
	assert.Equal(t, "NOTIF_", inputs.Manifest.NotificationPrefix)
}

func TestBuildErrors(t *testing.T) {
	t.Run("incompatible version", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.API.VersionConstraint = ">= 5.0"
		_, _, err := Build(context.Background(), cfg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrIncompatibleAPI))
	})

	t.Run("missing snapshot", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.API.Path = filepath.Join(t.TempDir(), "absent.json")
		_, _, err := Build(context.Background(), cfg)
		assert.Error(t, err)
	})

	t.Run("no notification root", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Codegen.NotificationPrefix = "NOTIF_"
		_, _, err := Build(context.Background(), cfg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrNoNotificationAncestor))
	})
}
