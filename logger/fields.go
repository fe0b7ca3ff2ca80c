package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across gdbind.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"
	FieldOperation = "operation"

	// Snapshot model
	FieldClass      = "class"
	FieldGodotClass = "godot_class"
	FieldBase       = "base"
	FieldEnum       = "enum"
	FieldOwned      = "owned"
	FieldType       = "type"
	FieldMeta       = "meta"
	FieldGoType     = "go_type"
	FieldAPIVersion = "api_version"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount      = "count"
	FieldClasses    = "classes"
	FieldOwnEnums   = "own_enums"
	FieldSharedEnum = "shared_enums"

	// Files and paths
	FieldFile = "file"
	FieldPath = "path"
	FieldDir  = "dir"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Generator struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewGenerator() *Generator {
//	    return &Generator{
//	        logger: logger.ComponentLogger("gen.golang"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
// Example:
//
//	classLogger := logger.ChildLogger(baseLogger, logger.FieldClass, name)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
