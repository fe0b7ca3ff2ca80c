package am

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/gdbind/api"
	"github.com/teranos/gdbind/errors"
)

// EnvPrefix prefixes environment overrides (GDBIND_OUTPUT_DIR, ...)
const EnvPrefix = "GDBIND"

// Load reads the configuration from all sources. The result is validated.
func Load() (*Config, error) {
	v, err := newViper(ConfigFiles())
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// LoadFromFile loads configuration from a specific file on top of the
// defaults and environment, ignoring the user and project files. The file
// must exist.
func LoadFromFile(configPath string) (*Config, error) {
	v, err := newViper([]string{configPath})
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// LoadWithViper unmarshals and validates configuration from a Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// ConfigFiles returns the config files Load would read, in precedence order
func ConfigFiles() []string {
	var files []string
	if user := UserConfigPath(); user != "" {
		if _, err := os.Stat(user); err == nil {
			files = append(files, user)
		}
	}
	if project := findProjectConfig(); project != "" {
		files = append(files, project)
	}
	return files
}

// UserConfigPath returns ~/.config/gdbind/gdbind.toml, or "" without a home directory
func UserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gdbind", FileName)
}

// newViper sets up defaults, env binding, and the given files in
// precedence order
func newViper(files []string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	for _, path := range files {
		if err := mergeFile(v, path); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// mergeFile merges one TOML file into v. Relative paths inside a project
// file are resolved against the file's directory.
func mergeFile(v *viper.Viper, configPath string) error {
	fileViper := viper.New()
	fileViper.SetConfigFile(configPath)
	fileViper.SetConfigType("toml")

	if err := fileViper.ReadInConfig(); err != nil {
		return errors.WithHint(
			errors.Wrapf(err, "failed to read config file %s", configPath),
			"run 'gdbind config show' to see the effective configuration")
	}

	settings := fileViper.AllSettings()
	base := filepath.Dir(configPath)
	for _, key := range pathKeys {
		if s := fileViper.GetString(key); s != "" && !filepath.IsAbs(s) && !api.IsRemote(s) {
			setNested(settings, key, filepath.Join(base, s))
		}
	}

	// MergeConfigMap keeps environment variables above file values
	if err := v.MergeConfigMap(settings); err != nil {
		return errors.Wrapf(err, "failed to merge config file %s", configPath)
	}
	return nil
}

// pathKeys hold file paths that are relative to the config file
var pathKeys = []string{"api.path", "output.dir", "codegen.special_cases"}

func setNested(settings map[string]interface{}, key string, value interface{}) {
	parts := strings.Split(key, ".")
	current := settings
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]interface{})
		if !ok {
			return
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// findProjectConfig searches for gdbind.toml by walking up the directory tree.
// Returns the path to the first config file found, or empty string if none found
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
