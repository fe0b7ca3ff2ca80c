// Package gen turns a finished generation context into output files.
//
// The context builder (package codegen) decides what is bound and how;
// generators only format those decisions for one target. Output must be
// deterministic so that a regenerated tree can be compared with the
// committed one (see CompareDirectories).
package gen

import (
	"github.com/teranos/gdbind/api"
	"github.com/teranos/gdbind/codegen"
)

// Generator defines the interface for target-specific binding generators
type Generator interface {
	// Language returns the target name (e.g., "go")
	Language() string

	// FileExtension returns the extension of generated files (e.g., "go")
	FileExtension() string

	// Generate produces every output file for the context. The snapshot
	// supplies declarations that are not part of the context (global enums).
	Generate(snapshot *api.ExtensionAPI, ctx *codegen.Context, meta Metadata) (*Result, error)
}

// Metadata is written into the header of every generated file
type Metadata struct {
	// SourceVersion identifies the engine the snapshot was dumped from
	SourceVersion string

	// GeneratorVersion identifies the gdbind build
	GeneratorVersion string
}
