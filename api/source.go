package api

// Snapshot source resolution. A snapshot path is either a local file or
// anything go-getter understands:
//   - HTTP(S) URLs: https://example.com/extension_api.json
//   - Git sources: git::https://github.com/godotengine/godot-cpp//gdextension/extension_api.json
//   - Object storage: s3::..., gcs::...
//   - Archives, auto-extracted

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter"

	"github.com/teranos/gdbind/errors"
	"github.com/teranos/gdbind/logger"
)

// snapshotNames are looked up when a source fetches a directory
var snapshotNames = []string{"extension_api.json", "extension_api.yaml", "extension_api.yml"}

// Source is a snapshot resolved to a local file
type Source struct {
	// LocalPath is the file to load
	LocalPath string
	// Input is the path or URL as configured
	Input string
	// Fetched is true if the snapshot was downloaded
	Fetched bool

	cleanup func()
}

// Cleanup removes anything fetched for this source. Safe to call multiple times.
func (s *Source) Cleanup() {
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
}

// IsRemote reports whether input names a source that has to be fetched
func IsRemote(input string) bool {
	if strings.HasPrefix(input, "file://") {
		return false
	}
	return strings.Contains(input, "::") || strings.Contains(input, "://")
}

// Resolve makes the snapshot named by input available locally. Local paths
// are returned as they are; remote sources are fetched into a temporary
// directory that Cleanup removes.
func Resolve(ctx context.Context, input string) (*Source, error) {
	if !IsRemote(input) {
		return &Source{
			LocalPath: strings.TrimPrefix(input, "file://"),
			Input:     input,
		}, nil
	}

	pwd, err := os.Getwd()
	if err != nil {
		pwd = "."
	}
	detected, err := getter.Detect(input, pwd, getter.Detectors)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to detect source type of %s", input)
	}

	log := logger.ComponentLogger("api.source")
	log.Infow("Fetching API snapshot", logger.FieldPath, input, "detected", detected)

	tempDir, err := os.MkdirTemp("", "gdbind-api-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}
	cleanup := func() {
		log.Debugw("Cleaning up fetched snapshot", logger.FieldDir, tempDir)
		os.RemoveAll(tempDir)
	}

	dst := filepath.Join(tempDir, "extension_api"+sourceExt(detected))
	client := &getter.Client{
		Ctx:     ctx,
		Src:     detected,
		Dst:     dst,
		Pwd:     pwd,
		Mode:    getter.ClientModeAny,
		Getters: getter.Getters,
	}
	if err := client.Get(); err != nil {
		cleanup()
		return nil, errors.WithHint(
			errors.Wrapf(err, "failed to fetch API snapshot %s", input),
			"api.path accepts a local file, an HTTP(S) URL or a go-getter source such as git::https://...")
	}

	local, err := snapshotFile(dst)
	if err != nil {
		cleanup()
		return nil, err
	}

	return &Source{
		LocalPath: local,
		Input:     input,
		Fetched:   true,
		cleanup:   cleanup,
	}, nil
}

// sourceExt keeps the snapshot extension of a URL so the format is detected
func sourceExt(detected string) string {
	if i := strings.Index(detected, "::"); i >= 0 {
		detected = detected[i+2:]
	}
	u, err := url.Parse(detected)
	if err != nil {
		return ".json"
	}
	p := u.Path
	if i := strings.Index(p, "//"); i >= 0 {
		p = p[i+2:]
	}
	switch ext := strings.ToLower(path.Ext(p)); ext {
	case ".json", ".yaml", ".yml":
		return ext
	}
	return ".json"
}

// snapshotFile returns dst itself, or the snapshot inside dst if a
// directory was fetched
func snapshotFile(dst string) (string, error) {
	info, err := os.Stat(dst)
	if err != nil {
		return "", errors.Wrapf(err, "fetched snapshot missing at %s", dst)
	}
	if !info.IsDir() {
		return dst, nil
	}
	for _, name := range snapshotNames {
		candidate := filepath.Join(dst, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errors.Newf("fetched directory contains none of %s", strings.Join(snapshotNames, ", "))
}
