package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appName                  = "tilawa"
	defaultAPIBaseURL        = "https://quranapi.pages.dev/api"
	defaultSkipSeconds       = 10
	defaultRequestsPerSecond = 4.0
)

type Config struct {
	APIBaseURL     string `koanf:"api_base_url" validate:"omitempty,url"`
	DefaultReciter string `koanf:"default_reciter"` // narrator id, e.g. "1"
	SkipSeconds    int    `koanf:"skip_seconds" validate:"gte=0,lte=600"`
	Icons          string `koanf:"icons" validate:"omitempty,oneof=nerd unicode none"`
	ShowEnglish    *bool  `koanf:"show_english"` // default: true
	ShowUrdu       *bool  `koanf:"show_urdu"`    // default: true
	DownloadDir    string `koanf:"download_dir"`
	CacheDir       string `koanf:"cache_dir"`

	LogLevel  string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat string `koanf:"log_format" validate:"omitempty,oneof=text json"`
	LogFile   string `koanf:"log_file"`

	// Outbound request rate to the chapter API, 0 disables limiting.
	RequestsPerSecond *float64 `koanf:"requests_per_second" validate:"omitempty,gte=0"`
}

var validate = validator.New()

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom loads the given config files in order; later files override
// earlier ones. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.APIBaseURL = strings.TrimSuffix(cfg.APIBaseURL, "/")
	cfg.DownloadDir = expandPath(cfg.DownloadDir)
	cfg.CacheDir = expandPath(cfg.CacheDir)
	cfg.LogFile = expandPath(cfg.LogFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges and enumerations.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), friendlyMessage(e)))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	default:
		return "is invalid"
	}
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/tilawa/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetAPIBaseURL returns the chapter API base URL.
func (c *Config) GetAPIBaseURL() string {
	if c.APIBaseURL == "" {
		return defaultAPIBaseURL
	}
	return c.APIBaseURL
}

// Skip returns the skip forward/back step.
func (c *Config) Skip() time.Duration {
	if c.SkipSeconds <= 0 {
		return defaultSkipSeconds * time.Second
	}
	return time.Duration(c.SkipSeconds) * time.Second
}

// EnglishShown returns whether the English translation starts visible.
func (c *Config) EnglishShown() bool {
	return c.ShowEnglish == nil || *c.ShowEnglish
}

// UrduShown returns whether the Urdu translation starts visible.
func (c *Config) UrduShown() bool {
	return c.ShowUrdu == nil || *c.ShowUrdu
}

// GetDownloadDir returns where downloaded recitations are written.
func (c *Config) GetDownloadDir() string {
	if c.DownloadDir != "" {
		return c.DownloadDir
	}
	if xdg.UserDirs.Download != "" {
		return filepath.Join(xdg.UserDirs.Download, appName)
	}
	return filepath.Join(xdg.DataHome, appName, "downloads")
}

// GetCacheDir returns the root cache directory.
func (c *Config) GetCacheDir() string {
	if c.CacheDir != "" {
		return c.CacheDir
	}
	return filepath.Join(xdg.CacheHome, appName)
}

// GetLogFile returns the log file path.
func (c *Config) GetLogFile() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

// GetRequestsPerSecond returns the API rate limit.
func (c *Config) GetRequestsPerSecond() float64 {
	if c.RequestsPerSecond == nil {
		return defaultRequestsPerSecond
	}
	return *c.RequestsPerSecond
}
