// Package special holds the per-class policies the context builder consults
// but does not own: which classes are excluded from generation, which are
// the exportable roots, how engine names map to Go names, and which class
// constants count as notifications.
//
// Policies come from a special-cases manifest (TOML). Default() returns the
// built-in policy; LoadManifest layers a file on top of it.
package special

import (
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/teranos/gdbind/api"
	"github.com/teranos/gdbind/errors"
	"github.com/teranos/gdbind/gen/util"
)

// DefaultNotificationPrefix marks notification constants in the engine API
const DefaultNotificationPrefix = "NOTIFICATION_"

// Manifest is the special-cases policy
type Manifest struct {
	// NotificationPrefix selects notification constants by name prefix
	NotificationPrefix string `toml:"notification_prefix"`

	// ExcludedClasses are skipped entirely: no lookup, no hierarchy edge, no notifications
	ExcludedClasses []string `toml:"excluded_classes"`

	// ExportableRoots are classes whose descendants may be exported as properties
	ExportableRoots []string `toml:"exportable_roots"`

	// NameOverrides maps engine class names to Go names where folding acronyms reads badly
	NameOverrides map[string]string `toml:"name_overrides"`

	excluded   map[string]bool
	exportable map[string]bool
}

// Default returns the built-in policy
func Default() *Manifest {
	m := &Manifest{
		NotificationPrefix: DefaultNotificationPrefix,
		ExcludedClasses: []string{
			// Platform-specific classes that don't exist on every target
			"JavaClass",
			"JavaClassWrapper",
			"JavaScriptBridge",
			"JavaScriptObject",
			// Engine-internal helpers exposed by accident
			"GDScriptNativeClass",
			"IP_Unix",
			"ThemeDB",
			"MovieWriterMJPEG",
			"MovieWriterPNGWAV",
		},
		ExportableRoots: []string{"Node", "Resource"},
		NameOverrides: map[string]string{
			"JSONRPC":         "JsonRpc",
			"OpenXRIPBinding": "OpenXrIpBinding",
		},
	}
	m.index()
	return m
}

// LoadManifest reads a special-cases manifest. Fields present in the file
// replace the defaults; name overrides are merged. Unknown keys are an
// error so that typos don't silently change generation.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read special cases %s", path)
	}
	return ParseManifest(string(data))
}

// ParseManifest decodes a manifest from TOML text
func ParseManifest(data string) (*Manifest, error) {
	var file Manifest
	md, err := toml.Decode(data, &file)
	if err != nil {
		return nil, errors.Wrap(err, "invalid special cases manifest")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.WithHint(
			errors.Newf("unknown special cases keys: %s", strings.Join(keys, ", ")),
			"supported keys: notification_prefix, excluded_classes, exportable_roots, name_overrides")
	}

	m := Default()
	if md.IsDefined("notification_prefix") {
		m.NotificationPrefix = file.NotificationPrefix
	}
	if md.IsDefined("excluded_classes") {
		m.ExcludedClasses = file.ExcludedClasses
	}
	if md.IsDefined("exportable_roots") {
		m.ExportableRoots = file.ExportableRoots
	}
	for godotName, goName := range file.NameOverrides {
		m.NameOverrides[godotName] = goName
	}

	if m.NotificationPrefix == "" {
		return nil, errors.New("notification_prefix must not be empty")
	}

	m.index()
	return m, nil
}

func (m *Manifest) index() {
	m.excluded = make(map[string]bool, len(m.ExcludedClasses))
	for _, name := range m.ExcludedClasses {
		m.excluded[name] = true
	}
	m.exportable = make(map[string]bool, len(m.ExportableRoots))
	for _, name := range m.ExportableRoots {
		m.exportable[name] = true
	}
}

// IsClassExcluded reports whether the engine class is skipped entirely
func (m *Manifest) IsClassExcluded(godotName string) bool {
	return m.excluded[godotName]
}

// IsExportableRoot reports whether the engine class is an exportable root
func (m *Manifest) IsExportableRoot(godotName string) bool {
	return m.exportable[godotName]
}

// GoName converts an engine class name to its Go name
func (m *Manifest) GoName(godotName string) string {
	if goName, ok := m.NameOverrides[godotName]; ok {
		return goName
	}
	return util.ToGoName(godotName)
}

// TryToNotification reports whether a class constant is a notification and
// returns its enumerator identifier ("NOTIFICATION_ENTER_TREE" -> "EnterTree").
func (m *Manifest) TryToNotification(constant api.ClassConstant) (string, bool) {
	rest, ok := strings.CutPrefix(constant.Name, m.NotificationPrefix)
	if !ok || rest == "" {
		return "", false
	}
	return util.ShoutToPascal(rest), true
}

// NarrowNotificationValue converts a notification constant value to the
// int32 the engine passes to notification callbacks.
func NarrowNotificationValue(constant api.ClassConstant) (int32, error) {
	if constant.Value < math.MinInt32 || constant.Value > math.MaxInt32 {
		return 0, errors.Newf("notification constant %s = %d does not fit in int32",
			constant.Name, constant.Value)
	}
	return int32(constant.Value), nil
}
