package gen

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/gdbind/errors"
)

// GeneratedHeader is the first line of every generated file. Prune only
// removes files that start with it.
const GeneratedHeader = "// Code generated by gdbind. DO NOT EDIT."

// File is one generated output file
type File struct {
	// Path is relative to the output directory (e.g., "node.go")
	Path string
	// Content is the final, formatted source
	Content []byte
}

// Result holds everything a generator produced in one run
type Result struct {
	Files []File

	// Classes is the number of classes bound
	Classes int

	// OwnEnums is the number of notification enums declared
	OwnEnums int

	// SourceVersion is the engine version the files were generated from
	SourceVersion string
}

// Sort orders files by path for deterministic output
func (r *Result) Sort() {
	sort.Slice(r.Files, func(i, j int) bool {
		return r.Files[i].Path < r.Files[j].Path
	})
}

// Write writes all files under dir, creating it if needed
func (r *Result) Write(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create output directory %s", dir)
	}
	for _, f := range r.Files {
		path := filepath.Join(dir, f.Path)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return errors.Wrapf(err, "failed to create directory for %s", f.Path)
		}
		if err := os.WriteFile(path, f.Content, 0644); err != nil {
			return errors.Wrapf(err, "failed to write %s", path)
		}
	}
	return nil
}

// Prune removes generated files with the given extension from dir that
// are not part of r, such as the file of a class that was removed or
// excluded. Files without GeneratedHeader are left alone. A missing dir is
// not an error. Returns the removed file names.
func (r *Result) Prune(dir, extension string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read output directory %s", dir)
	}

	produced := make(map[string]bool, len(r.Files))
	for _, f := range r.Files {
		produced[filepath.ToSlash(f.Path)] = true
	}

	var removed []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || produced[name] || !strings.HasSuffix(name, "."+extension) {
			continue
		}
		path := filepath.Join(dir, name)
		generated, err := hasGeneratedHeader(path)
		if err != nil {
			return removed, err
		}
		if !generated {
			continue
		}
		if err := os.Remove(path); err != nil {
			return removed, errors.Wrapf(err, "failed to remove stale %s", path)
		}
		removed = append(removed, name)
	}
	return removed, nil
}

func hasGeneratedHeader(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	return strings.TrimRight(scanner.Text(), "\r") == GeneratedHeader, nil
}
