package locator

import (
	"io"
	"net/http"

	"github.com/dadyar-ai/dadyarctl/pkg/utils/runner"
)

// NewInstallerFallbackStrategyForTest builds the fallback strategy with an
// injected HTTP client, installer URL, and known-paths list.
func NewInstallerFallbackStrategyForTest(
	procRunner runner.Runner,
	writer io.Writer,
	httpClient *http.Client,
	installerURL string,
	knownPaths []string,
) *InstallerFallbackStrategy {
	return &InstallerFallbackStrategy{
		runner:       procRunner,
		writer:       writer,
		httpClient:   httpClient,
		installerURL: installerURL,
		knownPaths:   knownPaths,
	}
}
