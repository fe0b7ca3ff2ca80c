// Package pipeline runs one generation: load the snapshot and special
// cases, build the context, emit bindings.
package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/teranos/gdbind/am"
	"github.com/teranos/gdbind/api"
	"github.com/teranos/gdbind/codegen"
	"github.com/teranos/gdbind/errors"
	"github.com/teranos/gdbind/gen"
	"github.com/teranos/gdbind/gen/golang"
	"github.com/teranos/gdbind/logger"
	"github.com/teranos/gdbind/special"
	"github.com/teranos/gdbind/version"
)

// Inputs is everything a run reads
type Inputs struct {
	Snapshot *api.ExtensionAPI
	Manifest *special.Manifest
}

// Load reads and checks the snapshot and special-cases manifest named by
// cfg. Remote snapshots are fetched first.
func Load(ctx context.Context, cfg *am.Config) (*Inputs, error) {
	source, err := api.Resolve(ctx, cfg.API.Path)
	if err != nil {
		return nil, err
	}
	defer source.Cleanup()

	snapshot, err := api.Load(source.LocalPath)
	if err != nil {
		return nil, err
	}
	if err := snapshot.CheckCompatible(cfg.API.VersionConstraint); err != nil {
		return nil, err
	}

	manifest := special.Default()
	if cfg.Codegen.SpecialCases != "" {
		manifest, err = special.LoadManifest(cfg.Codegen.SpecialCases)
		if err != nil {
			return nil, err
		}
	}
	if cfg.Codegen.NotificationPrefix != "" {
		manifest.NotificationPrefix = cfg.Codegen.NotificationPrefix
	}

	return &Inputs{Snapshot: snapshot, Manifest: manifest}, nil
}

// Build loads the inputs and builds the generation context
func Build(ctx context.Context, cfg *am.Config) (*Inputs, *codegen.Context, error) {
	inputs, err := Load(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	genCtx, err := codegen.Build(inputs.Snapshot, inputs.Manifest)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "building context from %s", cfg.API.Path)
	}
	return inputs, genCtx, nil
}

// Generate builds the context and produces the binding files without
// writing them
func Generate(ctx context.Context, cfg *am.Config) (*gen.Result, error) {
	inputs, genCtx, err := Build(ctx, cfg)
	if err != nil {
		return nil, err
	}

	result, err := newGenerator(cfg).Generate(inputs.Snapshot, genCtx, gen.Metadata{
		SourceVersion:    sourceVersion(inputs.Snapshot.Header),
		GeneratorVersion: version.Get().Generator(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "generating bindings")
	}
	return result, nil
}

// Run generates bindings into dir and runs the configured format command
func Run(ctx context.Context, cfg *am.Config, dir string) (*gen.Result, error) {
	start := time.Now()

	result, err := Generate(ctx, cfg)
	if err != nil {
		return nil, err
	}
	removed, err := result.Prune(dir, newGenerator(cfg).FileExtension())
	if err != nil {
		return nil, err
	}
	for _, name := range removed {
		logger.Infow("Removed stale binding", logger.FieldFile, name)
	}
	if err := result.Write(dir); err != nil {
		return nil, err
	}
	if err := gen.RunFormatCommand(ctx, cfg.Output.FormatCommand, dir); err != nil {
		return nil, err
	}

	logger.Infow("Generated bindings",
		logger.FieldDir, dir,
		logger.FieldAPIVersion, result.SourceVersion,
		logger.FieldCount, len(result.Files),
		logger.FieldClasses, result.Classes,
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return result, nil
}

// Check regenerates into a temporary directory and compares it with the
// configured output directory
func Check(ctx context.Context, cfg *am.Config) (*gen.CheckResult, error) {
	tempDir, err := os.MkdirTemp("", "gdbind-check-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	if _, err := Run(ctx, cfg, tempDir); err != nil {
		return nil, err
	}

	result, err := gen.CompareDirectories(tempDir, cfg.Output.Dir, newGenerator(cfg).FileExtension())
	if err != nil {
		return nil, errors.Wrap(err, "failed to compare directories")
	}

	logger.Infow("Compared bindings",
		logger.FieldOperation, "check",
		logger.FieldDir, cfg.Output.Dir,
		"up_to_date", result.UpToDate,
		"changed", len(result.Changed),
		"missing", len(result.Missing),
		"stale", len(result.Stale))
	return result, nil
}

func newGenerator(cfg *am.Config) gen.Generator {
	return golang.NewGenerator(cfg.Output.Package)
}

// sourceVersion is the engine version written into file headers
func sourceVersion(h api.Header) string {
	if v, err := h.Version(); err == nil {
		return v.String()
	}
	return h.VersionFullName
}
