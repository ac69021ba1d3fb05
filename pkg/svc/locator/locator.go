// Package locator finds or acquires a compatible Python interpreter for the
// bootstrap pipeline.
package locator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/dadyar-ai/dadyarctl/pkg/utils/notify"
	"github.com/dadyar-ai/dadyarctl/pkg/utils/runner"
)

// Source identifies how a runtime candidate was discovered.
type Source int

// Candidate sources, in search order.
const (
	// KnownInstallPath means the candidate was found in a well-known install
	// directory for the current platform.
	KnownInstallPath Source = iota
	// SearchPath means the candidate was resolved through the process PATH.
	SearchPath
	// LauncherAlias means the candidate was reported by a version-selecting
	// launcher such as the Windows "py" alias.
	LauncherAlias
	// UserSupplied means the candidate path was provided by the operator.
	UserSupplied
)

// String returns a human-readable source name.
func (s Source) String() string {
	switch s {
	case KnownInstallPath:
		return "known install path"
	case SearchPath:
		return "search path"
	case LauncherAlias:
		return "launcher alias"
	case UserSupplied:
		return "user supplied"
	default:
		return "unknown"
	}
}

// Candidate is a located interpreter binary.
type Candidate struct {
	// Path is the interpreter executable.
	Path string
	// Source records which strategy produced the candidate.
	Source Source
	// Version is the interpreter version reported by the binary, when known.
	Version *semver.Version
}

// Strategy produces a runtime candidate. Strategies are tried in order and
// the first usable candidate wins.
type Strategy interface {
	// Name identifies the strategy in operator output.
	Name() string

	// Locate returns a candidate or ErrNotFound when the strategy has none.
	Locate(ctx context.Context) (Candidate, error)
}

var (
	// ErrNotFound signals that a single strategy produced no candidate.
	ErrNotFound = errors.New("no interpreter candidate found")

	// ErrRuntimeNotFound is returned when every strategy, including the
	// fallback installer, has been exhausted.
	ErrRuntimeNotFound = errors.New("no compatible interpreter found")

	// ErrVersionReport is returned when a candidate cannot report its version.
	ErrVersionReport = errors.New("interpreter did not report a usable version")
)

// Locator runs the ordered strategy list and gates candidates on the minimum
// supported interpreter version.
type Locator struct {
	strategies []Strategy
	runner     runner.Runner
	minVersion *semver.Constraints
	writer     io.Writer
}

// NewLocator creates a locator over the given strategies. minVersion is a
// major.minor floor such as "3.9".
func NewLocator(
	strategies []Strategy,
	procRunner runner.Runner,
	minVersion string,
	writer io.Writer,
) (*Locator, error) {
	constraint, err := semver.NewConstraint(">= " + minVersion)
	if err != nil {
		return nil, fmt.Errorf("parse minimum runtime version %q: %w", minVersion, err)
	}

	return &Locator{
		strategies: strategies,
		runner:     procRunner,
		minVersion: constraint,
		writer:     writer,
	}, nil
}

// Locate tries each strategy in order and returns the first candidate whose
// reported version meets the minimum supported range. It never assumes a
// default interpreter: full exhaustion is ErrRuntimeNotFound.
func (l *Locator) Locate(ctx context.Context) (Candidate, error) {
	for _, strategy := range l.strategies {
		candidate, err := strategy.Locate(ctx)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				notify.Warningf(l.writer, "%s strategy failed: %v", strategy.Name(), err)
			}

			continue
		}

		verified, err := l.verify(ctx, candidate)
		if err != nil {
			notify.Warningf(l.writer, "%s candidate %s rejected: %v",
				strategy.Name(), candidate.Path, err)

			continue
		}

		notify.Activityf(l.writer, "using interpreter %s (%s, %s)",
			verified.Path, verified.Version, verified.Source)

		return verified, nil
	}

	return Candidate{}, ErrRuntimeNotFound
}

// verify runs the candidate binary and checks its reported version against
// the minimum supported range. A candidate that cannot be executed is
// rejected the same way as one that is too old.
func (l *Locator) verify(ctx context.Context, candidate Candidate) (Candidate, error) {
	output, err := l.runner.Capture(ctx, runner.Command{
		Path: candidate.Path,
		Args: []string{"--version"},
	})
	if err != nil {
		return Candidate{}, fmt.Errorf("execute candidate: %w", err)
	}

	version, err := ParseVersionOutput(output)
	if err != nil {
		return Candidate{}, err
	}

	if !l.minVersion.Check(version) {
		return Candidate{}, fmt.Errorf("%w: version %s below supported range",
			ErrVersionReport, version)
	}

	candidate.Version = version

	return candidate, nil
}

// ParseVersionOutput extracts a semantic version from interpreter version
// output such as "Python 3.12.4".
func ParseVersionOutput(output string) (*semver.Version, error) {
	fields := strings.Fields(strings.TrimSpace(output))
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: output %q", ErrVersionReport, output)
	}

	version, err := semver.NewVersion(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: output %q: %w", ErrVersionReport, output, err)
	}

	return version, nil
}
