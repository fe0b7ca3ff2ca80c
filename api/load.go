package api

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/teranos/gdbind/errors"
	"gopkg.in/yaml.v3"
)

// Format is the serialization format of a snapshot file
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the snapshot format from a file extension.
// Anything that is not .yaml/.yml is treated as JSON, which is what the
// engine dumps.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads a snapshot from disk
func Load(path string) (*ExtensionAPI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read API snapshot %s", path)
	}

	a, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse API snapshot %s", path)
	}
	return a, nil
}

// Parse decodes a snapshot in the given format
func Parse(data []byte, format Format) (*ExtensionAPI, error) {
	var a ExtensionAPI

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, errors.Wrap(err, "invalid JSON")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &a); err != nil {
			return nil, errors.Wrap(err, "invalid YAML")
		}
	default:
		return nil, errors.Newf("unsupported snapshot format: %s", format)
	}

	if err := a.validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// LoadYAML decodes a YAML snapshot; used for hand-written fixtures
func LoadYAML(data string) (*ExtensionAPI, error) {
	return Parse([]byte(data), FormatYAML)
}

// validate performs the structural checks a loader can do without building
// the hierarchy. Hierarchy consistency is enforced by codegen.Build.
func (a *ExtensionAPI) validate() error {
	for i, class := range a.Classes {
		if class.Name == "" {
			return errors.Newf("class #%d has no name", i)
		}
		if class.Inherits == class.Name {
			return errors.WithHint(
				errors.Newf("class %s inherits from itself", class.Name),
				"the snapshot is malformed; re-dump it from the engine")
		}
	}
	return nil
}
