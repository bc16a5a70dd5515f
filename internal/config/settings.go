package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "allofart"

// Settings holds all configuration options.
type Settings struct {
	// Endpoints
	APIURL    string  `koanf:"api_url"`
	AssetURL  string  `koanf:"asset_url"` // base for image paths; empty means api_url
	ShareURL  string  `koanf:"share_url"` // analysis result pages, result id is appended
	UserAgent string  `koanf:"user_agent"`
	Timeout   float64 `koanf:"timeout"` // seconds

	// Breakpoints, in width-units. One terminal column is cell_width units.
	CellWidth           int `koanf:"cell_width"`
	RemSize             int `koanf:"rem_size"`
	NavBreakpoint       int `koanf:"nav_breakpoint"`
	DetailBreakpointRem int `koanf:"detail_breakpoint_rem"`

	// Gallery export
	GalleryDir         string `koanf:"gallery_dir"`
	GalleryConcurrency int    `koanf:"gallery_concurrency"`
	GalleryMaxSize     int    `koanf:"gallery_max_size"` // 0 keeps originals
	GalleryRetries     int    `koanf:"gallery_retries"`

	// Logging
	LogPath string `koanf:"log_path"` // empty means the XDG state dir
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		APIURL:    "http://localhost:5000",
		ShareURL:  "http://elice-kdt-2nd-team1.koreacentral.cloudapp.azure.com/analysis/",
		UserAgent: "allofart-tui",
		Timeout:   15,

		CellWidth:           8,
		RemSize:             16,
		NavBreakpoint:       900,
		DetailBreakpointRem: 45,

		GalleryDir:         filepath.Join(xdg.UserDirs.Pictures, "AllOfArt"),
		GalleryConcurrency: 4,
		GalleryMaxSize:     0,
		GalleryRetries:     3,
	}
}

// DefaultPath returns the user config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// searchPaths lists config files in increasing priority.
func searchPaths() []string {
	return []string{DefaultPath(), "config.toml"}
}

// Load reads settings from path. With an empty path, the user config file
// and ./config.toml are read in that order (last wins). Missing files leave
// the defaults in place.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")

	paths := searchPaths()
	if path != "" {
		paths = []string{path}
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		if err := k.Load(file.Provider(p), toml.Parser()); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
	}

	settings := DefaultSettings()
	if err := k.Unmarshal("", settings); err != nil {
		return nil, err
	}

	settings.APIURL = strings.TrimSuffix(settings.APIURL, "/")
	settings.AssetURL = strings.TrimSuffix(settings.AssetURL, "/")
	settings.GalleryDir = expandPath(settings.GalleryDir)
	settings.LogPath = expandPath(settings.LogPath)

	return settings, nil
}

// Save writes settings to a TOML file.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Parser().Marshal(s.toMap())
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func (s *Settings) toMap() map[string]any {
	return map[string]any{
		"api_url":               s.APIURL,
		"asset_url":             s.AssetURL,
		"share_url":             s.ShareURL,
		"user_agent":            s.UserAgent,
		"timeout":               s.Timeout,
		"cell_width":            s.CellWidth,
		"rem_size":              s.RemSize,
		"nav_breakpoint":        s.NavBreakpoint,
		"detail_breakpoint_rem": s.DetailBreakpointRem,
		"gallery_dir":           s.GalleryDir,
		"gallery_concurrency":   s.GalleryConcurrency,
		"gallery_max_size":      s.GalleryMaxSize,
		"gallery_retries":       s.GalleryRetries,
		"log_path":              s.LogPath,
	}
}

// Validate reports settings that cannot work.
func (s *Settings) Validate() error {
	var errs []error
	if _, err := url.ParseRequestURI(s.APIURL); err != nil {
		errs = append(errs, fmt.Errorf("api_url: %w", err))
	}
	for name, v := range map[string]int{
		"cell_width":            s.CellWidth,
		"rem_size":              s.RemSize,
		"nav_breakpoint":        s.NavBreakpoint,
		"detail_breakpoint_rem": s.DetailBreakpointRem,
		"gallery_concurrency":   s.GalleryConcurrency,
	} {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, v))
		}
	}
	if s.GalleryMaxSize < 0 {
		errs = append(errs, fmt.Errorf("gallery_max_size must not be negative, got %d", s.GalleryMaxSize))
	}
	return errors.Join(errs...)
}

// DetailBreakpoint returns the artist page breakpoint in width-units.
func (s *Settings) DetailBreakpoint() int {
	return s.DetailBreakpointRem * s.RemSize
}

// AssetBase returns the base URL for image paths.
func (s *Settings) AssetBase() string {
	if s.AssetURL != "" {
		return s.AssetURL
	}
	return s.APIURL
}

// HTTPTimeout returns Timeout as a duration.
func (s *Settings) HTTPTimeout() time.Duration {
	return time.Duration(s.Timeout * float64(time.Second))
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
