package installer

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"fmm-setup/internal/fsutil"
)

// Validation failures. They are shown to the user as-is, so the messages read as sentences.
var (
	ErrPathRequired        = errors.New("please select a folder")
	ErrNotDirectory        = errors.New("the selected path is not a folder")
	ErrMarkerMissing       = errors.New("marker file not found in this folder")
	ErrURLRequired         = errors.New("please enter your WordPress URL")
	ErrInvalidURL          = errors.New("the address must start with http:// or https:// and include a host name")
	ErrCredentialsRequired = errors.New("both Client ID and Client Secret are required")
)

// ValidateWordPressRoot accepts dir only if marker (normally wp-config.php)
// exists inside it as a regular file. It returns the cleaned absolute path.
func ValidateWordPressRoot(dir, marker string) (string, error) {
	dir, err := cleanDir(dir)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotDirectory, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	markerInfo, err := os.Stat(filepath.Join(dir, marker))
	if err != nil || !markerInfo.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s is missing from %s", ErrMarkerMissing, marker, dir)
	}
	return dir, nil
}

// ValidateTargetDir checks a folder the user picked for the mobile app. The
// folder does not need to exist yet, but if it does it must be a directory.
func ValidateTargetDir(dir string) (string, error) {
	dir, err := cleanDir(dir)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}
	return dir, nil
}

func cleanDir(dir string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return "", ErrPathRequired
	}
	dir, err := fsutil.ExpandHome(dir)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	return abs, nil
}

// NormalizeURL trims the site address and strips trailing slashes. The bare
// "https://" prefix the URL field starts with counts as empty.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "https://" || raw == "http://" {
		return "", ErrURLRequired
	}
	raw = strings.TrimRight(raw, "/")

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return raw, nil
}

// ValidateCredentials trims both OAuth values and requires each to be non-empty.
func ValidateCredentials(clientID, clientSecret string) (string, string, error) {
	clientID = strings.TrimSpace(clientID)
	clientSecret = strings.TrimSpace(clientSecret)
	if clientID == "" || clientSecret == "" {
		return "", "", ErrCredentialsRequired
	}
	return clientID, clientSecret, nil
}
