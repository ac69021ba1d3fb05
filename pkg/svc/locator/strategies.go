package locator

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dadyar-ai/dadyarctl/pkg/utils/runner"
)

// knownVersions lists supported interpreter minor versions, newest first, so
// known-path probing is version-descending.
//
//nolint:gochecknoglobals
var knownVersions = []string{"3.13", "3.12", "3.11", "3.10", "3.9"}

// DefaultStrategies returns the platform's strategy list in search order:
// known install paths, PATH resolution, launcher alias, and (Windows only)
// the pinned-installer download fallback.
func DefaultStrategies(goos string, procRunner runner.Runner, writer io.Writer) []Strategy {
	strategies := []Strategy{
		NewKnownPathsStrategy(KnownInstallPaths(goos, os.Getenv)),
		NewSearchPathStrategy([]string{"python3", "python"}, exec.LookPath),
	}

	if goos == "windows" {
		strategies = append(strategies,
			NewLauncherAliasStrategy(procRunner, exec.LookPath),
			NewInstallerFallbackStrategy(procRunner, writer),
		)
	}

	return strategies
}

// KnownInstallPaths returns the well-known interpreter locations for the
// platform, most recent version first. env resolves environment variables so
// tests can supply fixed values.
func KnownInstallPaths(goos string, env func(string) string) []string {
	switch goos {
	case "windows":
		return windowsInstallPaths(env)
	case "darwin":
		return darwinInstallPaths()
	default:
		return unixInstallPaths()
	}
}

func windowsInstallPaths(env func(string) string) []string {
	var paths []string

	localAppData := env("LOCALAPPDATA")
	programFiles := env("ProgramFiles")

	for _, version := range knownVersions {
		// Per-user installs land under %LOCALAPPDATA%\Programs\Python.
		dirName := "Python" + strings.ReplaceAll(version, ".", "")

		if localAppData != "" {
			paths = append(paths,
				filepath.Join(localAppData, "Programs", "Python", dirName, "python.exe"))
		}

		if programFiles != "" {
			paths = append(paths, filepath.Join(programFiles, dirName, "python.exe"))
		}

		paths = append(paths, filepath.Join(`C:\`, dirName, "python.exe"))
	}

	return paths
}

func darwinInstallPaths() []string {
	paths := []string{
		"/opt/homebrew/bin/python3",
		"/usr/local/bin/python3",
	}

	for _, version := range knownVersions {
		paths = append(paths,
			filepath.Join("/Library/Frameworks/Python.framework/Versions", version, "bin", "python3"))
	}

	return paths
}

func unixInstallPaths() []string {
	paths := make([]string, 0, len(knownVersions)+2)

	for _, version := range knownVersions {
		paths = append(paths, "/usr/local/bin/python"+version)
	}

	return append(paths, "/usr/local/bin/python3", "/usr/bin/python3")
}

// KnownPathsStrategy probes a fixed list of well-known install locations.
type KnownPathsStrategy struct {
	paths []string
}

// NewKnownPathsStrategy creates a strategy over the given candidate paths.
func NewKnownPathsStrategy(paths []string) *KnownPathsStrategy {
	return &KnownPathsStrategy{paths: paths}
}

// Name implements Strategy.
func (s *KnownPathsStrategy) Name() string { return "known install paths" }

// Locate returns the first existing path.
func (s *KnownPathsStrategy) Locate(_ context.Context) (Candidate, error) {
	for _, path := range s.paths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}

		return Candidate{Path: path, Source: KnownInstallPath}, nil
	}

	return Candidate{}, ErrNotFound
}

// SearchPathStrategy resolves canonical command names through the process
// search path.
type SearchPathStrategy struct {
	names    []string
	lookPath func(string) (string, error)
}

// NewSearchPathStrategy creates a strategy over the given command names.
// lookPath defaults to exec.LookPath when nil.
func NewSearchPathStrategy(names []string, lookPath func(string) (string, error)) *SearchPathStrategy {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	return &SearchPathStrategy{names: names, lookPath: lookPath}
}

// Name implements Strategy.
func (s *SearchPathStrategy) Name() string { return "search path" }

// Locate returns the first resolvable command name.
func (s *SearchPathStrategy) Locate(_ context.Context) (Candidate, error) {
	for _, name := range s.names {
		path, err := s.lookPath(name)
		if err != nil {
			continue
		}

		return Candidate{Path: path, Source: SearchPath}, nil
	}

	return Candidate{}, ErrNotFound
}

// LauncherAliasStrategy asks the platform's version-selecting launcher alias
// (the Windows "py" launcher) for the interpreter it would run.
type LauncherAliasStrategy struct {
	runner   runner.Runner
	lookPath func(string) (string, error)
}

// NewLauncherAliasStrategy creates the launcher-alias strategy.
// lookPath defaults to exec.LookPath when nil.
func NewLauncherAliasStrategy(
	procRunner runner.Runner,
	lookPath func(string) (string, error),
) *LauncherAliasStrategy {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	return &LauncherAliasStrategy{runner: procRunner, lookPath: lookPath}
}

// Name implements Strategy.
func (s *LauncherAliasStrategy) Name() string { return "launcher alias" }

// Locate resolves the alias and asks it for the real interpreter path.
func (s *LauncherAliasStrategy) Locate(ctx context.Context) (Candidate, error) {
	aliasPath, err := s.lookPath("py")
	if err != nil {
		return Candidate{}, ErrNotFound
	}

	output, err := s.runner.Capture(ctx, runner.Command{
		Path: aliasPath,
		Args: []string{"-3", "-c", "import sys; print(sys.executable)"},
	})
	if err != nil {
		return Candidate{}, fmt.Errorf("query launcher alias: %w", err)
	}

	interpreterPath := strings.TrimSpace(output)
	if interpreterPath == "" {
		return Candidate{}, ErrNotFound
	}

	return Candidate{Path: interpreterPath, Source: LauncherAlias}, nil
}
