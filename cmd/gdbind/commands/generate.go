package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/gdbind/am"
	"github.com/teranos/gdbind/api"
	"github.com/teranos/gdbind/display"
	"github.com/teranos/gdbind/gen"
	"github.com/teranos/gdbind/logger"
	"github.com/teranos/gdbind/pipeline"
	"github.com/teranos/gdbind/watch"
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate Go bindings from the engine API",
	Long: `Generate Go bindings from extension_api.json.

Every engine class becomes one file in the output directory holding:
  - A struct embedding its base class
  - Its enums, and its notification enum if it declares notifications
  - A Notify method taking the nearest notification enum
  - An interface listing its methods

Flags override the configuration file.

Examples:
  gdbind generate                                  # Use gdbind.toml
  gdbind generate --api extension_api.json -o godot
  gdbind generate --watch                          # Regenerate on change`,
	RunE: runGenerate,
}

func init() {
	GenerateCmd.Flags().StringP("out", "o", "", "Output directory")
	GenerateCmd.Flags().String("api", "", "Path to extension_api.json")
	GenerateCmd.Flags().String("special-cases", "", "Path to the special-cases manifest")
	GenerateCmd.Flags().String("package", "", "Package name of generated files")
	GenerateCmd.Flags().BoolP("watch", "w", false, "Regenerate when the API, manifest or config changes")
	GenerateCmd.Flags().Duration("debounce", watch.DefaultDebounce, "Delay before regenerating after a change")
}

// generateConfig loads the configuration and applies generate flags to it
func generateConfig(cmd *cobra.Command) (*am.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		cfg.Output.Dir = out
	}
	if apiPath, _ := cmd.Flags().GetString("api"); apiPath != "" {
		cfg.API.Path = apiPath
	}
	if special, _ := cmd.Flags().GetString("special-cases"); special != "" {
		cfg.Codegen.SpecialCases = special
	}
	if pkg, _ := cmd.Flags().GetString("package"); pkg != "" {
		cfg.Output.Package = pkg
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type generateOutput struct {
	Dir      string `json:"dir"`
	Files    int    `json:"files"`
	Classes  int    `json:"classes"`
	OwnEnums int    `json:"own_notification_enums"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := generateConfig(cmd)
	if err != nil {
		return err
	}

	if err := generateOnce(ctx, cmd, cfg); err != nil {
		return err
	}

	if watchFlag, _ := cmd.Flags().GetBool("watch"); !watchFlag {
		return nil
	}
	return watchAndGenerate(ctx, cmd, cfg)
}

func generateOnce(ctx context.Context, cmd *cobra.Command, cfg *am.Config) error {
	result, err := pipeline.Run(ctx, cfg, cfg.Output.Dir)
	if err != nil {
		return err
	}
	return reportGenerate(cmd, cfg.Output.Dir, result)
}

func reportGenerate(cmd *cobra.Command, dir string, result *gen.Result) error {
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), generateOutput{
			Dir:      dir,
			Files:    len(result.Files),
			Classes:  result.Classes,
			OwnEnums: result.OwnEnums,
		})
	}

	pterm.Success.Printf("Generated %d files in %s (%d classes, %d notification enums)\n",
		len(result.Files), dir, result.Classes, result.OwnEnums)
	return nil
}

// watchAndGenerate regenerates whenever an input file changes. The
// configuration is reloaded on every change so edits to gdbind.toml apply.
func watchAndGenerate(ctx context.Context, cmd *cobra.Command, cfg *am.Config) error {
	files := configFiles(cmd)
	if !api.IsRemote(cfg.API.Path) {
		files = append(files, cfg.API.Path)
	}
	if cfg.Codegen.SpecialCases != "" {
		files = append(files, cfg.Codegen.SpecialCases)
	}

	w, err := watch.New(files, func(ctx context.Context, changed []string) error {
		logger.Infow("Inputs changed, regenerating", logger.FieldFile, changed)

		cfg, err := generateConfig(cmd)
		if err != nil {
			return err
		}
		return generateOnce(ctx, cmd, cfg)
	})
	if err != nil {
		return err
	}

	debounce, _ := cmd.Flags().GetDuration("debounce")
	w.SetDebounce(debounce)

	pterm.Info.Printf("Watching %d files, press Ctrl+C to stop\n", len(files))
	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	pterm.Info.Println("Stopped watching")
	return nil
}
