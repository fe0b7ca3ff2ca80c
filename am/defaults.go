package am

import (
	"github.com/spf13/viper"
)

// Default values
const (
	DefaultAPIPath           = "extension_api.json"
	DefaultVersionConstraint = ">= 4.0"
	DefaultOutputDir         = "godot"
	DefaultPackage           = "godot"
	DefaultLogTheme          = "everforest"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.path", DefaultAPIPath)
	v.SetDefault("api.version_constraint", DefaultVersionConstraint)

	v.SetDefault("output.dir", DefaultOutputDir)
	v.SetDefault("output.package", DefaultPackage)
	v.SetDefault("output.format_command", "")

	v.SetDefault("codegen.special_cases", "")
	v.SetDefault("codegen.notification_prefix", "")

	v.SetDefault("log.json", false)
	v.SetDefault("log.theme", DefaultLogTheme)
}

// Defaults returns the configuration with only defaults applied
func Defaults() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// Defaults always unmarshal
		panic(err)
	}
	return cfg
}
