package update

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-cleanhttp"
)

const UserAgent = "hrdesk-cli"

// GitHubAPIURL is the latest-release endpoint. Overridden in tests.
var GitHubAPIURL = "https://api.github.com/repos/hrdesk-dev/hrdesk/releases/latest"

// Release represents a GitHub release
type Release struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// GetLatestRelease fetches the latest release from GitHub
func GetLatestRelease() (*Release, error) {
	client := cleanhttp.DefaultClient()
	client.Timeout = 3 * time.Second

	req, err := http.NewRequest(http.MethodGet, GitHubAPIURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var release Release
	if err := json.Unmarshal(body, &release); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &release, nil
}

// CheckForUpdate reports whether a release newer than currentVersion exists
func CheckForUpdate(currentVersion string) (bool, *Release, error) {
	release, err := GetLatestRelease()
	if err != nil {
		return false, nil, err
	}

	return isNewer(currentVersion, release.TagName), release, nil
}

// isNewer returns true if latest is a newer semver than current.
// Development builds never nag.
func isNewer(current, latest string) bool {
	if current == "" || current == "dev" {
		return false
	}

	currentVersion, err := semver.NewVersion(strings.TrimSpace(current))
	if err != nil {
		return false
	}
	latestVersion, err := semver.NewVersion(strings.TrimSpace(latest))
	if err != nil {
		return false
	}

	return latestVersion.GreaterThan(currentVersion)
}

// PrintUpdateNotification prints a message if an update is available
func PrintUpdateNotification(out io.Writer, currentVersion string) {
	updateAvailable, release, err := CheckForUpdate(currentVersion)
	if err != nil {
		// Silently ignore errors - update check is optional
		return
	}

	if updateAvailable {
		fmt.Fprintf(out, "New version %s -> %s. Download: %s\n\n", currentVersion, release.TagName, release.HTMLURL)
	}
}
