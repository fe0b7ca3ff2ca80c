// Package am loads the gdbind configuration.
//
// Configuration is layered, lowest precedence first: built-in defaults,
// the user file (~/.config/gdbind/gdbind.toml), the project file (the
// first gdbind.toml found walking up from the working directory), and
// GDBIND_* environment variables. Command-line flags are applied on top by
// the CLI.
package am

// FileName is the project config file searched for in the working
// directory and its parents
const FileName = "gdbind.toml"

// Config represents the gdbind configuration
type Config struct {
	API     APIConfig     `mapstructure:"api" toml:"api"`
	Output  OutputConfig  `mapstructure:"output" toml:"output"`
	Codegen CodegenConfig `mapstructure:"codegen" toml:"codegen"`
	Log     LogConfig     `mapstructure:"log" toml:"log"`
}

// APIConfig locates the engine API snapshot
type APIConfig struct {
	Path              string `mapstructure:"path" toml:"path"`                             // extension_api.json (or .yaml fixture)
	VersionConstraint string `mapstructure:"version_constraint" toml:"version_constraint"` // semver constraint, empty = any
}

// OutputConfig controls where and how bindings are written
type OutputConfig struct {
	Dir           string `mapstructure:"dir" toml:"dir"`
	Package       string `mapstructure:"package" toml:"package"`
	FormatCommand string `mapstructure:"format_command" toml:"format_command"` // run in Dir after generation, empty = none
}

// CodegenConfig tunes the context builder
type CodegenConfig struct {
	SpecialCases       string `mapstructure:"special_cases" toml:"special_cases"`             // special-cases manifest, empty = built-in
	NotificationPrefix string `mapstructure:"notification_prefix" toml:"notification_prefix"` // overrides the manifest when set
}

// LogConfig configures logging
type LogConfig struct {
	JSON  bool   `mapstructure:"json" toml:"json"`
	Theme string `mapstructure:"theme" toml:"theme"` // gruvbox, everforest
}
