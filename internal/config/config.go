package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains working area, log, and output locations.
type Paths struct {
	WorkDir     string `toml:"work_dir"`
	LogDir      string `toml:"log_dir"`
	OutputDir   string `toml:"output_dir"`
	KeepWorkDir bool   `toml:"keep_work_dir"`
}

// Encoding contains the normalization profile shared by every input.
type Encoding struct {
	Codec           string `toml:"codec"`
	Bitrate         string `toml:"bitrate"`
	IntermediateExt string `toml:"intermediate_ext"`
	OutputExt       string `toml:"output_ext"`
	Overwrite       bool   `toml:"overwrite"`
}

// Tools names the external executables audiobind shells out to.
type Tools struct {
	FFmpeg     string `toml:"ffmpeg"`
	FFprobe    string `toml:"ffprobe"`
	CDDiscID   string `toml:"cd_discid"`
	CDParanoia string `toml:"cdparanoia"`
}

// Rip contains optical drive settings.
type Rip struct {
	Device       string `toml:"device"`
	WaitForMedia bool   `toml:"wait_for_media"`
}

// Chapters controls how chapter titles are derived.
type Chapters struct {
	// UseTags reads embedded title tags before falling back to file names.
	UseTags bool `toml:"use_tags"`
	// CleanNames strips track-number prefixes and title-cases file names.
	CleanNames bool `toml:"clean_names"`
	// ApplyDiscTitles feeds MusicBrainz track titles into chapter overrides.
	ApplyDiscTitles bool `toml:"apply_disc_titles"`
}

// MusicBrainz contains configuration for the disc metadata lookup.
type MusicBrainz struct {
	Enabled        bool   `toml:"enabled"`
	BaseURL        string `toml:"base_url"`
	UserAgent      string `toml:"user_agent"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// DiscIDCache contains configuration for the disc ID to release cache.
type DiscIDCache struct {
	Enabled bool   `toml:"enabled"` // Default: false
	Path    string `toml:"path"`    // Default: ~/.cache/audiobind/discid_cache.json
}

// History contains configuration for the conversion run ledger.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Notifications contains configuration for ntfy run notifications.
type Notifications struct {
	// NtfyTopic is the full topic URL (e.g. https://ntfy.sh/my-books); empty disables notifications.
	NtfyTopic             string `toml:"ntfy_topic"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for audiobind.
//
// Configuration sections by subsystem:
//   - Paths: working area, pipeline log relocation, and output directories
//   - Encoding: the single transcode profile and output extension
//   - Tools: ffmpeg/ffprobe/cd-discid/cdparanoia executables
//   - Rip: optical drive device and media wait behaviour
//   - Chapters: chapter title derivation
//   - MusicBrainz: best-effort disc metadata lookup
//   - DiscIDCache: disc ID to release mapping cache
//   - History: SQLite ledger of conversion runs
//   - Notifications: ntfy push messages when a run ends
//   - Logging: log format, level, and retention
type Config struct {
	Paths         Paths         `toml:"paths"`
	Encoding      Encoding      `toml:"encoding"`
	Tools         Tools         `toml:"tools"`
	Rip           Rip           `toml:"rip"`
	Chapters      Chapters      `toml:"chapters"`
	MusicBrainz   MusicBrainz   `toml:"musicbrainz"`
	DiscIDCache   DiscIDCache   `toml:"disc_id_cache"`
	History       History       `toml:"history"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("audiobind.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a conversion run writes into.
// The output directory is left alone when empty so books land in the
// current working directory.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir}
	if strings.TrimSpace(c.Paths.WorkDir) != "" {
		dirs = append(dirs, c.Paths.WorkDir)
	}
	if strings.TrimSpace(c.Paths.OutputDir) != "" {
		dirs = append(dirs, c.Paths.OutputDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// OutputPath resolves the book path for a base name such as a folder name.
func (c *Config) OutputPath(baseName string) string {
	name := strings.TrimSpace(baseName) + c.Encoding.OutputExt
	if dir := strings.TrimSpace(c.Paths.OutputDir); dir != "" {
		return filepath.Join(dir, name)
	}
	return name
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultCacheDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "audiobind")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/audiobind"
	}
	return filepath.Join(home, ".cache", "audiobind")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// SampleConfig returns the embedded sample configuration.
func SampleConfig() string {
	return sampleConfig
}
