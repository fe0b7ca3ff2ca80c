package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/gdbind/display"
	"github.com/teranos/gdbind/errors"
	"github.com/teranos/gdbind/pipeline"
)

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify generated bindings are up to date",
	Long: `Regenerate bindings into a temporary directory and compare them with
the output directory. Exits non-zero if any file differs, is missing, or
is no longer generated. Source and generator version lines are ignored.

Examples:
  gdbind check             # Use gdbind.toml
  gdbind check --json      # Machine-readable result for CI`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	result, err := pipeline.Check(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		if err := display.OutputJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else if result.UpToDate {
		pterm.Success.Printf("Bindings in %s are up to date\n", cfg.Output.Dir)
	} else {
		out := cmd.OutOrStdout()
		for _, f := range result.Changed {
			fmt.Fprintf(out, "  %s %s\n", pterm.Yellow("changed"), f)
		}
		for _, f := range result.Missing {
			fmt.Fprintf(out, "  %s %s\n", pterm.Red("missing"), f)
		}
		for _, f := range result.Stale {
			fmt.Fprintf(out, "  %s %s\n", pterm.Gray("stale  "), f)
		}
	}

	if !result.UpToDate {
		return errors.WithHint(
			errors.Newf("bindings in %s are out of date (%d changed, %d missing, %d stale)",
				cfg.Output.Dir, len(result.Changed), len(result.Missing), len(result.Stale)),
			"run: gdbind generate")
	}
	return nil
}
