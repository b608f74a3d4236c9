// Package selfupdate implements the -u flag: check the GitHub
// releases of this project for a newer version and, with the user's
// confirmation, swap the running binary for it.
package selfupdate

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"regexp"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

// Repo is the GitHub repository slug releases are checked against.
const Repo = "wb4/sgcreate"

var semverPattern = regexp.MustCompile(`v?\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`)

type releaseCandidate struct {
	version  semver.Version
	tag      string
	assetURL string
}

// detectLatest queries the GitHub Releases API directly rather than
// selfupdate.DetectLatest, which requires release tags to already be
// bare semver; this tolerates tags like "sgcreate-v1.2.3".
func detectLatest(repo string) (*selfupdate.Release, bool, error) {
	apiURL := fmt.Sprintf("https://api.github.com/repos/%s/releases", repo)
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(apiURL)
	if err != nil {
		return nil, false, fmt.Errorf("github API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, false, fmt.Errorf("github API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed reading github response: %w", err)
	}

	var releases []struct {
		TagName    string `json:"tag_name"`
		Name       string `json:"name"`
		Draft      bool   `json:"draft"`
		Prerelease bool   `json:"prerelease"`
		Assets     []struct {
			Name               string `json:"name"`
			BrowserDownloadURL string `json:"browser_download_url"`
		} `json:"assets"`
	}
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, false, fmt.Errorf("failed to decode github releases: %w", err)
	}

	var candidates []releaseCandidate
	for _, r := range releases {
		if r.Draft || r.Prerelease {
			continue
		}
		match := semverPattern.FindString(r.TagName)
		if match == "" {
			match = semverPattern.FindString(r.Name)
			if match == "" {
				continue
			}
		}
		v, err := semver.Parse(match)
		if err != nil {
			v, err = semver.Parse(strings.TrimPrefix(match, "v"))
			if err != nil {
				continue
			}
		}

		var assetURL string
		for _, a := range r.Assets {
			name := strings.ToLower(a.Name)
			if strings.Contains(name, "darwin") || strings.Contains(name, "linux") ||
				strings.Contains(name, "windows") || strings.Contains(name, "amd64") || strings.Contains(name, "arm64") {
				assetURL = a.BrowserDownloadURL
				break
			}
			if assetURL == "" {
				assetURL = a.BrowserDownloadURL
			}
		}
		candidates = append(candidates, releaseCandidate{version: v, tag: r.TagName, assetURL: assetURL})
	}

	if len(candidates) == 0 {
		return nil, false, nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].version.GT(candidates[j].version)
	})
	best := candidates[0]

	return &selfupdate.Release{Version: best.version, AssetURL: best.assetURL}, true, nil
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Check compares currentVersion against the latest published release
// of Repo and, if the user confirms, downloads and installs it,
// re-executing the process in place.
func Check(currentVersion string) error {
	latest, found, err := detectLatest(Repo)
	fmt.Printf("Current version: %s\n", currentVersion)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}

	currentVer, parseErr := semver.Parse(currentVersion)
	if parseErr != nil {
		fmt.Printf("warning: could not parse current version %q: %v\n", currentVersion, parseErr)
	}

	if !found || latest == nil {
		fmt.Printf("No releases found for %s.\n", Repo)
		return nil
	}
	fmt.Printf("Latest version: %s\n", latest.Version)

	if latest.Version.Equals(currentVer) {
		fmt.Printf("You are already running the latest version: %s.\n", currentVer)
		return nil
	}

	if latest.AssetURL == "" {
		fmt.Printf("A new version (%s) is available but there is no downloadable asset.\n", latest.Version)
		fmt.Println("Please visit the project releases page to download the new version.")
		return nil
	}

	answer, err := promptLine(fmt.Sprintf("A new version (%s) is available. Update now? (y/N): ", latest.Version))
	if err != nil {
		return fmt.Errorf("failed reading input: %w", err)
	}
	answer = strings.TrimSpace(strings.ToLower(answer))
	if answer != "y" && answer != "yes" {
		fmt.Println("Update cancelled.")
		return nil
	}

	fmt.Println("Updating...")
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}

	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	argv := append([]string{exe}, os.Args[1:]...)
	if err := syscall.Exec(exe, argv, os.Environ()); err != nil {
		cmd := exec.Command(exe, os.Args[1:]...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if startErr := cmd.Start(); startErr != nil {
			fmt.Printf("Updated to version %s, but failed to restart automatically: %v; fallback start error: %v\n", latest.Version, err, startErr)
			fmt.Println("Please restart the application manually.")
			return nil
		}
		os.Exit(0)
	}

	return nil
}
