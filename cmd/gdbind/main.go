package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/gdbind/cmd/gdbind/commands"
	"github.com/teranos/gdbind/errors"
	"github.com/teranos/gdbind/logger"
)

var rootCmd = &cobra.Command{
	Use:   "gdbind",
	Short: "gdbind - Go bindings for the Godot engine API",
	Long: `gdbind - Go bindings for the Godot engine API.

gdbind reads the engine's extension_api.json and generates Go bindings:
one file per engine class with its inheritance, enums, methods and
notification enum, plus shared builtin and global enum declarations.

Available commands:
  generate - Generate bindings into the output directory
  check    - Verify generated bindings are up to date
  inspect  - Show how a class is bound
  config   - Manage gdbind configuration
  version  - Show version information

Examples:
  gdbind generate                      # Generate using gdbind.toml
  gdbind generate --watch              # Regenerate when inputs change
  gdbind check                         # Fail if bindings are stale
  gdbind inspect Node2D                # Show bases and notifications`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if err := logger.InitializeWithVerbosity(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	commands.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.InspectCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		logger.Cleanup()
		os.Exit(1)
	}
}
