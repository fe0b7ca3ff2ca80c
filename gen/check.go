package gen

import (
	"bufio"
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/gdbind/errors"
)

// metadataPrefixes mark header lines that change between runs without the
// bindings themselves changing
var metadataPrefixes = []string{
	"// Source version:",
	"// Generator version:",
}

// CheckResult holds the result of an up-to-date check
type CheckResult struct {
	UpToDate bool `json:"up_to_date"`
	// Changed lists files whose content differs
	Changed []string `json:"changed,omitempty"`
	// Missing lists generated files absent from the existing directory
	Missing []string `json:"missing,omitempty"`
	// Stale lists existing generated files that generation no longer produces
	Stale []string `json:"stale,omitempty"`
}

// CompareDirectories compares freshly generated output in generatedDir with
// existingDir. Metadata header lines are ignored.
func CompareDirectories(generatedDir, existingDir, extension string) (*CheckResult, error) {
	generated, err := listFiles(generatedDir, extension)
	if err != nil {
		return nil, err
	}
	existing, err := listFiles(existingDir, extension)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	result := &CheckResult{}
	for rel := range generated {
		if !existing[rel] {
			result.Missing = append(result.Missing, rel)
			continue
		}
		different, err := filesAreDifferent(filepath.Join(generatedDir, rel), filepath.Join(existingDir, rel))
		if err != nil {
			return nil, err
		}
		if different {
			result.Changed = append(result.Changed, rel)
		}
	}
	// Only generated files can be stale; Prune removes exactly these
	for rel := range existing {
		if generated[rel] {
			continue
		}
		isGenerated, err := hasGeneratedHeader(filepath.Join(existingDir, rel))
		if err != nil {
			return nil, err
		}
		if isGenerated {
			result.Stale = append(result.Stale, rel)
		}
	}

	sort.Strings(result.Changed)
	sort.Strings(result.Missing)
	sort.Strings(result.Stale)
	result.UpToDate = len(result.Changed) == 0 && len(result.Missing) == 0 && len(result.Stale) == 0
	return result, nil
}

// listFiles returns the relative paths of files with the given extension
func listFiles(dir, extension string) (map[string]bool, error) {
	files := make(map[string]bool)
	if _, err := os.Stat(dir); err != nil {
		return files, errors.Wrapf(err, "cannot read %s", dir)
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if extension != "" && filepath.Ext(path) != "."+extension {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = true
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk %s", dir)
	}
	return files, nil
}

// filesAreDifferent compares two files, ignoring metadata lines
func filesAreDifferent(file1, file2 string) (bool, error) {
	content1, err := os.ReadFile(file1)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", file1)
	}
	content2, err := os.ReadFile(file2)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", file2)
	}

	lines1, err := filterMetadataLines(content1)
	if err != nil {
		return false, errors.Wrapf(err, "failed to scan %s", file1)
	}
	lines2, err := filterMetadataLines(content2)
	if err != nil {
		return false, errors.Wrapf(err, "failed to scan %s", file2)
	}
	return lines1 != lines2, nil
}

// filterMetadataLines removes metadata comment lines from content
func filterMetadataLines(content []byte) (string, error) {
	var result strings.Builder
	scanner := bufio.NewScanner(bytes.NewReader(content))

	for scanner.Scan() {
		line := scanner.Text()
		if isMetadataLine(line) {
			continue
		}
		result.WriteString(line)
		result.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return result.String(), nil
}

func isMetadataLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range metadataPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}
