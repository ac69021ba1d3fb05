package locator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dadyar-ai/dadyarctl/pkg/client/netretry"
	"github.com/dadyar-ai/dadyarctl/pkg/utils/notify"
	"github.com/dadyar-ai/dadyarctl/pkg/utils/runner"
	"github.com/siderolabs/go-retry/retry"
)

const (
	// pinnedInstallerURL is the trusted download location for the fallback
	// interpreter installer.
	pinnedInstallerURL = "https://www.python.org/ftp/python/3.12.6/python-3.12.6-amd64.exe"

	// downloadTimeout bounds the network download. This is the only timed
	// step in the pipeline; expiry is treated as failure.
	downloadTimeout = 10 * time.Minute

	// downloadAttempts is the number of download tries for transient errors.
	downloadAttempts = 3

	// installPollTimeout bounds the wait for the silent installer to
	// materialize an interpreter in a known install directory.
	installPollTimeout = 5 * time.Minute

	installPollInterval = 2 * time.Second
)

// errTransientStatus marks HTTP responses worth another download attempt.
var errTransientStatus = errors.New("transient HTTP status")

// InstallerFallbackStrategy downloads a pinned interpreter installer and runs
// it silently with per-user, non-elevated, PATH-registering options. It is
// the last strategy in the Windows search order.
type InstallerFallbackStrategy struct {
	runner       runner.Runner
	writer       io.Writer
	httpClient   *http.Client
	installerURL string
	knownPaths   []string
}

// NewInstallerFallbackStrategy creates the Windows installer fallback.
func NewInstallerFallbackStrategy(procRunner runner.Runner, writer io.Writer) *InstallerFallbackStrategy {
	return &InstallerFallbackStrategy{
		runner:       procRunner,
		writer:       writer,
		httpClient:   http.DefaultClient,
		installerURL: pinnedInstallerURL,
		knownPaths:   KnownInstallPaths("windows", os.Getenv),
	}
}

// Name implements Strategy.
func (s *InstallerFallbackStrategy) Name() string { return "installer fallback" }

// Locate downloads the pinned installer, runs it silently, polls the known
// install directories for completion, and returns the freshly installed
// interpreter. The transient installer artifact is removed after use
// regardless of install outcome.
func (s *InstallerFallbackStrategy) Locate(ctx context.Context) (Candidate, error) {
	notify.Activityf(s.writer, "no interpreter found, downloading installer")

	installerPath, err := s.downloadInstaller(ctx)
	if err != nil {
		return Candidate{}, fmt.Errorf("download installer: %w", err)
	}

	// Cleanup is best-effort and unconditional.
	defer func() { _ = os.Remove(installerPath) }()

	err = s.runInstaller(ctx, installerPath)
	if err != nil {
		return Candidate{}, fmt.Errorf("run installer: %w", err)
	}

	return s.waitForInstalledInterpreter(ctx)
}

// downloadInstaller fetches the pinned installer to a temporary file,
// retrying transient network failures with exponential backoff.
func (s *InstallerFallbackStrategy) downloadInstaller(ctx context.Context) (string, error) {
	downloadCtx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	var lastErr error

	for attempt := 1; attempt <= downloadAttempts; attempt++ {
		path, err := s.fetchOnce(downloadCtx)
		if err == nil {
			return path, nil
		}

		lastErr = err

		if !netretry.IsRetryable(err) && !errors.Is(err, errTransientStatus) {
			return "", err
		}

		select {
		case <-downloadCtx.Done():
			return "", fmt.Errorf("download timed out: %w", downloadCtx.Err())
		case <-time.After(netretry.ExponentialDelay(attempt, time.Second, 30*time.Second)):
		}
	}

	return "", fmt.Errorf("download failed after %d attempts: %w", downloadAttempts, lastErr)
}

// fetchOnce performs a single download attempt into a fresh temp file.
func (s *InstallerFallbackStrategy) fetchOnce(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.installerURL, nil)
	if err != nil {
		return "", fmt.Errorf("create HTTP request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch installer: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		if netretry.IsRetryableStatus(resp.StatusCode) {
			return "", fmt.Errorf("%w: status code %d", errTransientStatus, resp.StatusCode)
		}

		return "", fmt.Errorf("fetch installer: unexpected status code %d", resp.StatusCode)
	}

	tempFile, err := os.CreateTemp("", "python-installer-*.exe")
	if err != nil {
		return "", fmt.Errorf("create temp installer file: %w", err)
	}

	_, err = io.Copy(tempFile, resp.Body)
	closeErr := tempFile.Close()

	if err != nil {
		_ = os.Remove(tempFile.Name())

		return "", fmt.Errorf("write installer artifact: %w", err)
	}

	if closeErr != nil {
		_ = os.Remove(tempFile.Name())

		return "", fmt.Errorf("close installer artifact: %w", closeErr)
	}

	return tempFile.Name(), nil
}

// runInstaller executes the installer silently: per-user, non-elevated, and
// PATH-registering.
func (s *InstallerFallbackStrategy) runInstaller(ctx context.Context, installerPath string) error {
	notify.Activityf(s.writer, "running interpreter installer silently")

	_, err := s.runner.Capture(ctx, runner.Command{
		Path: installerPath,
		Args: []string{"/quiet", "InstallAllUsers=0", "PrependPath=1", "Include_launcher=1"},
	})
	if err != nil {
		return err
	}

	return nil
}

// waitForInstalledInterpreter polls the known install directories until the
// silent install has materialized an interpreter.
func (s *InstallerFallbackStrategy) waitForInstalledInterpreter(ctx context.Context) (Candidate, error) {
	var found Candidate

	probe := NewKnownPathsStrategy(s.knownPaths)

	err := retry.Constant(installPollTimeout, retry.WithUnits(installPollInterval)).
		RetryWithContext(ctx, func(retryCtx context.Context) error {
			candidate, probeErr := probe.Locate(retryCtx)
			if probeErr != nil {
				return retry.ExpectedError(probeErr)
			}

			found = candidate

			return nil
		})
	if err != nil {
		return Candidate{}, fmt.Errorf("interpreter did not appear after install: %w", err)
	}

	return found, nil
}
