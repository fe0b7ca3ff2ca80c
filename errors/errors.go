// Package errors provides error handling for gdbind.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints attached to generation failures
//
// Every condition that aborts a generation run has a sentinel below, so
// callers and tests can tell them apart with errors.Is:
//
//	ctx, err := codegen.Build(snapshot, opts)
//	if errors.Is(err, errors.ErrNoNotificationAncestor) {
//	    // the snapshot has no root class declaring notifications
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions and panics
var (
	AssertionFailedf                 = crdb.AssertionFailedf
	NewAssertionErrorWithWrappedErrf = crdb.NewAssertionErrorWithWrappedErrf
	IsAssertionFailure               = crdb.IsAssertionFailure
	WithAssertionFailure             = crdb.WithAssertionFailure
)

// Sentinel errors for the conditions that abort a generation run.
// Wrap these with errors.Wrapf() to name the offending class or type.
var (
	// ErrDuplicateInheritance indicates a class was given a second base class
	ErrDuplicateInheritance = New("duplicate inheritance insert")

	// ErrUnknownClass indicates a query for a class that is not part of the snapshot
	ErrUnknownClass = New("unknown class")

	// ErrInheritanceCycle indicates a class is its own ancestor
	ErrInheritanceCycle = New("inheritance cycle")

	// ErrNoNotificationAncestor indicates no base class declares notification constants
	ErrNoNotificationAncestor = New("no base class has notifications")

	// ErrTypeOverwrite indicates a second write to a resolved type cache entry
	ErrTypeOverwrite = New("resolved type already cached")

	// ErrUnknownType indicates a type descriptor the type mapping cannot resolve
	ErrUnknownType = New("unknown type")

	// ErrIncompatibleAPI indicates the snapshot's engine version fails the configured constraint
	ErrIncompatibleAPI = New("incompatible API version")
)

// IsFatal reports whether err is one of the invariant violations that
// must abort generation.
func IsFatal(err error) bool {
	return err != nil && IsAny(err,
		ErrDuplicateInheritance,
		ErrUnknownClass,
		ErrInheritanceCycle,
		ErrNoNotificationAncestor,
		ErrTypeOverwrite,
	)
}

// NewUnknownClassError creates an unknown-class error naming the class
func NewUnknownClassError(class string) error {
	return Wrapf(ErrUnknownClass, "class %s", class)
}
