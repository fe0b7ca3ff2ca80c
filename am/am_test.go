package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIPath, cfg.API.Path)
	assert.Equal(t, DefaultVersionConstraint, cfg.API.VersionConstraint)
	assert.Equal(t, DefaultOutputDir, cfg.Output.Dir)
	assert.Equal(t, DefaultPackage, cfg.Output.Package)
	assert.Empty(t, cfg.Codegen.SpecialCases)
	assert.Equal(t, DefaultLogTheme, cfg.Log.Theme)
	assert.Equal(t, cfg, Defaults())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
path = "api/extension_api.json"
version_constraint = "~4.2"

[output]
package = "engine"
format_command = "gofumpt -w ."

[codegen]
special_cases = "/abs/special.toml"
`), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "api/extension_api.json"), cfg.API.Path, "relative paths resolve against the file")
	assert.Equal(t, "~4.2", cfg.API.VersionConstraint)
	assert.Equal(t, "engine", cfg.Output.Package)
	assert.Equal(t, DefaultOutputDir, cfg.Output.Dir, "unset keys keep defaults")
	assert.Equal(t, "gofumpt -w .", cfg.Output.FormatCommand)
	assert.Equal(t, "/abs/special.toml", cfg.Codegen.SpecialCases)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("[output]\npackage = \"fromfile\"\n"), 0644))
	t.Setenv("GDBIND_OUTPUT_PACKAGE", "fromenv")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fromenv", cfg.Output.Package)
}

func TestLoadFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFromFile(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[output\n"), 0644))
	_, err = LoadFromFile(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalid, []byte("[output]\npackage = \"func\"\n"), 0644))
	_, err = LoadFromFile(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.package")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"empty constraint means any version", func(c *Config) { c.API.VersionConstraint = "" }, ""},
		{"empty api path", func(c *Config) { c.API.Path = "" }, "api.path"},
		{"bad constraint", func(c *Config) { c.API.VersionConstraint = "not a version" }, "api.version_constraint"},
		{"empty output dir", func(c *Config) { c.Output.Dir = "" }, "output.dir"},
		{"package with dash", func(c *Config) { c.Output.Package = "my-pkg" }, "output.package"},
		{"package keyword", func(c *Config) { c.Output.Package = "type" }, "output.package"},
		{"unknown theme", func(c *Config) { c.Log.Theme = "solarized" }, "log.theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveRoundTripAndBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Defaults()
	cfg.Output.Package = "first"
	require.NoError(t, Save(cfg, path))

	for _, pkg := range []string{"second", "third", "fourth", "fifth"} {
		cfg.Output.Package = pkg
		require.NoError(t, Save(cfg, path))
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var saved Config
	require.NoError(t, toml.Unmarshal(data, &saved))
	assert.Equal(t, "fifth", saved.Output.Package)

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fifth", loaded.Output.Package)

	for suffix, want := range map[string]string{".back1": "fourth", ".back2": "third", ".back3": "second"} {
		data, err := os.ReadFile(path + suffix)
		require.NoError(t, err, suffix)
		var backup Config
		require.NoError(t, toml.Unmarshal(data, &backup))
		assert.Equal(t, want, backup.Output.Package, suffix)
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	cfg := Defaults()
	cfg.Output.Dir = ""
	err := Save(cfg, filepath.Join(t.TempDir(), FileName))
	assert.Error(t, err)
}

func TestFindProjectConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("[output]\ndir = \"bindings\"\n"), 0644))

	t.Chdir(nested)
	found := findProjectConfig()
	// Temp dirs may be behind a symlink (macOS /var -> /private/var)
	assert.Equal(t, FileName, filepath.Base(found))
	assert.Equal(t, filepath.Base(root), filepath.Base(filepath.Dir(found)))
}
