package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/gdbind/am"
	"github.com/teranos/gdbind/display"
	"github.com/teranos/gdbind/errors"
	"github.com/teranos/gdbind/logger"
)

// AddGlobalFlags registers the flags every command understands
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	root.PersistentFlags().Bool("json", false, "Output results as JSON")
	root.PersistentFlags().StringP("config", "c", "", "Config file (default: ./gdbind.toml, searched upwards)")
}

// loadConfig loads the configuration named by --config, or from all
// sources, and applies its log settings
func loadConfig(cmd *cobra.Command) (*am.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	var cfg *am.Config
	var err error
	if path != "" {
		cfg, err = am.LoadFromFile(path)
	} else {
		cfg, err = am.Load()
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	if cfg.Log.Theme != "" {
		logger.SetTheme(cfg.Log.Theme)
	}
	if cfg.Log.JSON && !logger.JSONOutput {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.InitializeWithVerbosity(true, verbosity); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// configFiles returns the files the loaded configuration came from
func configFiles(cmd *cobra.Command) []string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return []string{path}
	}
	return am.ConfigFiles()
}

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"am"},
	Short:   "Manage gdbind configuration",
	Long: `Display and manage gdbind configuration.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (GDBIND_* prefix, e.g. GDBIND_OUTPUT_DIR)
3. Project config (./gdbind.toml, searched upwards)
4. User config (~/.config/gdbind/gdbind.toml)
5. Default values

Relative paths in a config file are relative to that file.

Examples:
  gdbind config show              # Show effective configuration
  gdbind config where             # Show which files are read
  gdbind config init              # Write ./gdbind.toml with defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE:  runConfigShow,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show which configuration files are read",
	RunE:  runConfigWhere,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a configuration file with default values",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file (the previous one is kept as a backup)")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configWhereCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), cfg)
	}

	data, err := am.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "# gdbind configuration\n%s", data)
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	files := configFiles(cmd)

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), map[string]interface{}{
			"files":      files,
			"user":       am.UserConfigPath(),
			"env_prefix": am.EnvPrefix,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  1. [DEFAULT]  Built-in defaults")
	fmt.Fprintf(out, "  2. [USER]     %s\n", am.UserConfigPath())
	fmt.Fprintf(out, "  3. [PROJECT]  ./%s (searches up directories)\n", am.FileName)
	fmt.Fprintf(out, "  4. [ENV]      %s_* environment variables\n", am.EnvPrefix)
	fmt.Fprintln(out)

	if len(files) == 0 {
		fmt.Fprintln(out, "No configuration files found, using defaults")
		return nil
	}
	fmt.Fprintln(out, "Files read:")
	for _, f := range files {
		fmt.Fprintf(out, "  %s\n", f)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := am.FileName
	if len(args) == 1 {
		path = args[0]
	}

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return errors.WithHint(
			errors.Newf("%s already exists", path),
			"use --force to overwrite it")
	}

	if err := am.Save(am.Defaults(), path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
	return nil
}
