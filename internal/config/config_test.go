package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"audiobind/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CACHE_HOME", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "audiobind", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if cfg.Paths.WorkDir != "" {
		t.Fatalf("expected empty work dir to stay empty, got %q", cfg.Paths.WorkDir)
	}
	if cfg.Encoding.Codec != "aac" || cfg.Encoding.Bitrate != "64k" {
		t.Fatalf("unexpected encoding defaults: %+v", cfg.Encoding)
	}
	if cfg.Encoding.OutputExt != ".m4b" {
		t.Fatalf("unexpected output ext: %q", cfg.Encoding.OutputExt)
	}
	if cfg.Rip.Device != "/dev/cdrom" {
		t.Fatalf("unexpected rip device: %q", cfg.Rip.Device)
	}
	if cfg.Chapters.ApplyDiscTitles {
		t.Fatal("expected disc titles to stay out of chapter overrides by default")
	}
	if !cfg.MusicBrainz.Enabled {
		t.Fatal("expected MusicBrainz lookup enabled by default")
	}
	if cfg.DiscIDCache.Enabled {
		t.Fatal("expected disc ID cache disabled by default")
	}
	wantCache := filepath.Join(tempHome, ".cache", "audiobind", "discid_cache.json")
	if cfg.DiscIDCache.Path != wantCache {
		t.Fatalf("unexpected cache path: got %q want %q", cfg.DiscIDCache.Path, wantCache)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if info, err := os.Stat(cfg.Paths.LogDir); err != nil || !info.IsDir() {
		t.Fatalf("expected log dir to exist: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "audiobind.toml")

	type payload struct {
		Paths struct {
			OutputDir string `toml:"output_dir"`
		} `toml:"paths"`
		Encoding struct {
			Bitrate   string `toml:"bitrate"`
			OutputExt string `toml:"output_ext"`
		} `toml:"encoding"`
		MusicBrainz struct {
			Enabled bool   `toml:"enabled"`
			BaseURL string `toml:"base_url"`
		} `toml:"musicbrainz"`
	}
	custom := payload{}
	custom.Paths.OutputDir = filepath.Join(tempDir, "books")
	custom.Encoding.Bitrate = "96K"
	custom.Encoding.OutputExt = "m4a"
	custom.MusicBrainz.Enabled = true
	custom.MusicBrainz.BaseURL = "https://mb.example.com/ws/2/"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Encoding.Bitrate != "96k" {
		t.Fatalf("expected lower-cased bitrate, got %q", cfg.Encoding.Bitrate)
	}
	if cfg.Encoding.OutputExt != ".m4a" {
		t.Fatalf("expected dotted output ext, got %q", cfg.Encoding.OutputExt)
	}
	if cfg.MusicBrainz.BaseURL != "https://mb.example.com/ws/2" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.MusicBrainz.BaseURL)
	}
	if got, want := cfg.OutputPath("Dune"), filepath.Join(tempDir, "books", "Dune.m4a"); got != want {
		t.Fatalf("unexpected output path: got %q want %q", got, want)
	}
}

func TestEnvOverridesUserAgentAndLevel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MUSICBRAINZ_USER_AGENT", "audiobind-test/1.0 ( test@example.com )")
	t.Setenv("AUDIOBIND_LOG_LEVEL", "DEBUG")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.MusicBrainz.UserAgent != "audiobind-test/1.0 ( test@example.com )" {
		t.Errorf("expected user agent from env, got %q", cfg.MusicBrainz.UserAgent)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level from env, got %q", cfg.Logging.Level)
	}
}

func TestOutputPathDefaultsToWorkingDirectory(t *testing.T) {
	cfg := config.Default()
	if got := cfg.OutputPath("My Book"); got != "My Book.m4b" {
		t.Fatalf("unexpected output path: %q", got)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "[musicbrainz]") {
		t.Fatalf("sample config missing musicbrainz section: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Encoding.Codec != "aac" {
		t.Fatalf("expected sample codec aac, got %q", cfg.Encoding.Codec)
	}
	if !strings.Contains(cfg.Paths.LogDir, "audiobind") {
		t.Fatalf("expected log dir to contain audiobind, got %q", cfg.Paths.LogDir)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Encoding.Bitrate = "fast"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-numeric bitrate")
	}

	cfg = config.Default()
	cfg.Encoding.IntermediateExt = ".m4b"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when intermediate and output extensions collide")
	}

	cfg = config.Default()
	cfg.MusicBrainz.BaseURL = "musicbrainz.org"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for base url without scheme")
	}

	cfg = config.Default()
	cfg.MusicBrainz.Enabled = false
	cfg.MusicBrainz.BaseURL = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected disabled MusicBrainz to skip validation, got %v", err)
	}

	cfg = config.Default()
	cfg.Notifications.NtfyTopic = "ntfy.sh/books"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for ntfy topic without scheme")
	}

	cfg = config.Default()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}
