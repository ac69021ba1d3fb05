package installer

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrManifestNotFound is returned when the dependency manifest file is
// missing. Absence is fatal for both the installer and the packager.
var ErrManifestNotFound = errors.New("dependency manifest not found")

// Manifest is the declared dependency set, loaded from a plain-text file
// with one specifier per line.
type Manifest struct {
	// Path is the manifest file location.
	Path string
	// Requirements are the parsed entries in file order.
	Requirements []Requirement
}

// Requirement is a single dependency specifier.
type Requirement struct {
	// Name is the bare package name.
	Name string
	// Constraint is the version constraint portion, empty when unpinned.
	Constraint string
	// Raw is the full specifier line as written.
	Raw string
}

// constraintOperators are the specifier operators recognized when splitting a
// requirement line into name and constraint.
//
//nolint:gochecknoglobals
var constraintOperators = []string{"==", ">=", "<=", "~=", "!=", ">", "<"}

// LoadManifest reads and parses the dependency manifest. Comment lines and
// blank lines are skipped.
func LoadManifest(path string) (Manifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}

		return Manifest{}, fmt.Errorf("read dependency manifest: %w", err)
	}

	manifest := Manifest{Path: path}

	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		manifest.Requirements = append(manifest.Requirements, parseRequirement(line))
	}

	return manifest, nil
}

// parseRequirement splits a specifier line at the earliest constraint
// operator occurrence.
func parseRequirement(line string) Requirement {
	splitAt := -1

	for _, operator := range constraintOperators {
		index := strings.Index(line, operator)
		if index >= 0 && (splitAt < 0 || index < splitAt) {
			splitAt = index
		}
	}

	if splitAt < 0 {
		return Requirement{Name: line, Raw: line}
	}

	return Requirement{
		Name:       strings.TrimSpace(line[:splitAt]),
		Constraint: strings.TrimSpace(line[splitAt:]),
		Raw:        line,
	}
}
