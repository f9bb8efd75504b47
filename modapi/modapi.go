// Package modapi talks to the mod database: it finds the newest release of a
// mod and downloads its archive.
package modapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"golang.org/x/mod/semver"
)

const (
	DefaultBaseURL = "https://mods.vintagestory.at"

	maxResponseBytes = 4 << 20
	maxArchiveBytes  = 200 << 20
)

var (
	ErrNoRelease = errors.New("no stable release")
	ErrStatus    = errors.New("unexpected status")
)

type Release struct {
	ModVersion string `yaml:"modversion"`
	MainFile   string `yaml:"mainfile"`
	FileName   string `yaml:"filename"`
}

type modResponse struct {
	StatusCode string `yaml:"statuscode"`
	Mod        struct {
		Releases []Release `yaml:"releases"`
	} `yaml:"mod"`
}

type Client struct {
	BaseURL string
	// CacheDir keeps downloaded archives; an archive already there is not
	// fetched again.
	CacheDir string
	HTTP     *http.Client
	Log      *slog.Logger
}

func NewClient(baseURL, cacheDir string, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		CacheDir: cacheDir,
		HTTP:     &http.Client{Timeout: 60 * time.Second},
		Log:      log,
	}
}

// Releases returns the releases of modID, newest first.
func (c *Client) Releases(ctx context.Context, modID string) ([]Release, error) {
	u := c.BaseURL + "/api/mod/" + url.PathEscape(modID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: mod %s: %s: %s", ErrStatus, modID, resp.Status, strings.TrimSpace(string(body)))
	}
	var mr modResponse
	if err := yaml.Unmarshal(body, &mr); err != nil {
		return nil, fmt.Errorf("could not decode mod %s: %w", modID, err)
	}
	if mr.StatusCode != "200" {
		return nil, fmt.Errorf("%w: mod %s: api status %q", ErrStatus, modID, mr.StatusCode)
	}
	return mr.Mod.Releases, nil
}

// Latest returns the first release that is not a prerelease.
func Latest(releases []Release) (Release, error) {
	for _, r := range releases {
		if !strings.Contains(r.ModVersion, "pre") {
			return r, nil
		}
	}
	return Release{}, ErrNoRelease
}

func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// Newer reports whether version next is later than current. Any version is
// newer than an empty current.
func Newer(next, current string) (bool, error) {
	if current == "" {
		return true, nil
	}
	n, c := canonical(next), canonical(current)
	if !semver.IsValid(n) {
		return false, fmt.Errorf("invalid version %q", next)
	}
	if !semver.IsValid(c) {
		return false, fmt.Errorf("invalid version %q", current)
	}
	return semver.Compare(n, c) > 0, nil
}

// Download stores the archive of r in the cache directory and returns its
// path.
func (c *Client) Download(ctx context.Context, r Release) (string, error) {
	name := path.Base(r.FileName)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("release %s has no file name", r.ModVersion)
	}
	dest := filepath.Join(c.CacheDir, name)
	if _, err := os.Stat(dest); err == nil {
		c.Log.Debug("using cached archive", "file", dest)
		return dest, nil
	}
	u, err := url.Parse(r.MainFile)
	if err != nil {
		return "", err
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
	}
	if err := os.MkdirAll(c.CacheDir, 0755); err != nil {
		return "", err
	}
	c.Log.Info("fetching", "url", r.MainFile)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: download %s: %s", ErrStatus, r.MainFile, resp.Status)
	}
	tmp, err := os.CreateTemp(c.CacheDir, name+".*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	n, err := io.Copy(tmp, io.LimitReader(resp.Body, maxArchiveBytes+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}
	if n > maxArchiveBytes {
		return "", fmt.Errorf("download exceeded max size (%d bytes)", maxArchiveBytes)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", err
	}
	return dest, nil
}

// Update is a newer release, downloaded.
type Update struct {
	ModID   string
	Release Release
	Archive string
}

// Check fetches the newest stable release of modID and downloads it when it
// is newer than current. It returns nil when current is up to date.
func (c *Client) Check(ctx context.Context, modID, current string) (*Update, error) {
	releases, err := c.Releases(ctx, modID)
	if err != nil {
		return nil, err
	}
	latest, err := Latest(releases)
	if err != nil {
		return nil, fmt.Errorf("mod %s: %w", modID, err)
	}
	newer, err := Newer(latest.ModVersion, current)
	if err != nil {
		return nil, fmt.Errorf("mod %s: %w", modID, err)
	}
	if !newer {
		c.Log.Debug("up to date", "mod", modID, "version", current)
		return nil, nil
	}
	c.Log.Info("fetching newer release", "mod", modID, "from", current, "to", latest.ModVersion)
	archive, err := c.Download(ctx, latest)
	if err != nil {
		return nil, err
	}
	return &Update{ModID: modID, Release: latest, Archive: archive}, nil
}
