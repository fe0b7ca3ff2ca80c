package api

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/teranos/gdbind/errors"
)

// Version returns the engine version of the snapshot as a semantic version.
// Non-stable builds carry their status as prerelease ("4.3.0-beta2").
func (h Header) Version() (*semver.Version, error) {
	raw := fmt.Sprintf("%d.%d.%d", h.VersionMajor, h.VersionMinor, h.VersionPatch)
	if h.VersionStatus != "" && h.VersionStatus != "stable" {
		raw += "-" + h.VersionStatus
	}

	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid API header version %s", raw)
	}
	return v, nil
}

// CheckCompatible verifies the snapshot's engine version satisfies the
// given semver constraint (e.g. ">= 4.1, < 5"). An empty constraint
// accepts every version.
func (a *ExtensionAPI) CheckCompatible(constraint string) error {
	if constraint == "" {
		return nil
	}

	v, err := a.Header.Version()
	if err != nil {
		return err
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.Wrapf(err, "invalid version constraint %s", constraint)
	}

	if !c.Check(v) {
		return errors.WithHintf(
			errors.Wrapf(errors.ErrIncompatibleAPI, "snapshot is %s (%s), generator requires %s",
				v.String(), a.Header.VersionFullName, constraint),
			"dump a matching snapshot with: godot --dump-extension-api, or adjust api.version_constraint")
	}

	return nil
}
