package am

import (
	"go/token"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/gdbind/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.API.Path == "" {
		return errors.WithHint(errors.New("api.path cannot be empty"),
			"dump it with: godot --headless --dump-extension-api")
	}
	if c.API.VersionConstraint != "" {
		if _, err := semver.NewConstraint(c.API.VersionConstraint); err != nil {
			return errors.Wrapf(err, "api.version_constraint %q is not a valid constraint", c.API.VersionConstraint)
		}
	}

	if c.Output.Dir == "" {
		return errors.New("output.dir cannot be empty")
	}
	if !token.IsIdentifier(c.Output.Package) || token.IsKeyword(c.Output.Package) {
		return errors.Newf("output.package must be a Go identifier, got %q", c.Output.Package)
	}

	switch c.Log.Theme {
	case "", "gruvbox", "everforest":
	default:
		return errors.Newf("log.theme must be gruvbox or everforest, got %q", c.Log.Theme)
	}

	return nil
}
