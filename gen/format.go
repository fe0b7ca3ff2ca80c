package gen

import (
	"context"
	"os/exec"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/gdbind/errors"
	"github.com/teranos/gdbind/logger"
)

// RunFormatCommand runs a post-generation formatter (e.g. "gofumpt -w .")
// in dir. The command line is split with shell quoting rules but is not
// run through a shell.
func RunFormatCommand(ctx context.Context, command, dir string) error {
	if command == "" {
		return nil
	}

	args, err := shellquote.Split(command)
	if err != nil {
		return errors.Wrapf(err, "invalid format command %q", command)
	}
	if len(args) == 0 {
		return nil
	}

	logger.Debugw("Running format command", "command", args, logger.FieldDir, dir)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errors.WithDetail(
			errors.Wrapf(err, "format command %q failed", command),
			string(output))
	}
	return nil
}
