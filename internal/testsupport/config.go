package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"audiobind/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// MusicBrainz is disabled and the history ledger lives under the temp root.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.WorkDir = filepath.Join(base, "work")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.OutputDir = filepath.Join(base, "books")
	cfgVal.MusicBrainz.Enabled = false
	cfgVal.DiscIDCache.Path = filepath.Join(base, "cache", "discid_cache.json")
	cfgVal.History.Path = filepath.Join(base, "history.db")
	cfgVal.Rip.Device = filepath.Join(base, "sr0")

	builder := &configBuilder{t: t, baseDir: base, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithMusicBrainz enables the lookup against baseURL (usually an httptest server).
func WithMusicBrainz(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.MusicBrainz.Enabled = true
		b.cfg.MusicBrainz.BaseURL = baseURL
		b.cfg.MusicBrainz.UserAgent = "audiobind-test/0"
	}
}

// WithDiscIDCache enables the disc ID cache under the temp root.
func WithDiscIDCache() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.DiscIDCache.Enabled = true
	}
}

// WithoutHistory disables the run ledger.
func WithoutHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = false
	}
}

// WithStubbedMediaTools points the ffmpeg and ffprobe settings at stub
// scripts. ffmpeg writes a placeholder to its last argument; ffprobe prints
// duration for every file.
func WithStubbedMediaTools(duration string) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		b.cfg.Tools.FFmpeg = StubFFmpeg(b.t, binDir)
		b.cfg.Tools.FFprobe = StubFFprobe(b.t, binDir, duration)
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, the media tools are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffmpeg", "ffprobe"}
		}
		binDir := filepath.Join(b.baseDir, "path-bin")
		for _, name := range names {
			WriteScript(b.t, binDir, name, "exit 0")
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
