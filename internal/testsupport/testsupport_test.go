package testsupport

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewConfigUsesTempDirs(t *testing.T) {
	cfg := NewConfig(t, WithDiscIDCache(), WithoutHistory())
	base := BaseDir(cfg)
	for _, dir := range []string{cfg.Paths.LogDir, cfg.Paths.WorkDir, cfg.Paths.OutputDir} {
		if !strings.HasPrefix(dir, base) {
			t.Fatalf("%s is outside %s", dir, base)
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected %s to exist: %v", dir, err)
		}
	}
	if cfg.MusicBrainz.Enabled || cfg.History.Enabled || !cfg.DiscIDCache.Enabled {
		t.Fatalf("unexpected toggles: %+v %+v %+v", cfg.MusicBrainz, cfg.History, cfg.DiscIDCache)
	}
}

func TestStubbedMediaTools(t *testing.T) {
	cfg := NewConfig(t, WithStubbedMediaTools("4.5"))

	out, err := exec.Command(cfg.Tools.FFprobe, "anything.m4a").Output()
	if err != nil {
		t.Fatalf("run ffprobe stub: %v", err)
	}
	if strings.TrimSpace(string(out)) != "4.5" {
		t.Fatalf("unexpected ffprobe output %q", out)
	}

	target := filepath.Join(t.TempDir(), "out.m4a")
	if err := exec.Command(cfg.Tools.FFmpeg, "-i", "in.mp3", target).Run(); err != nil {
		t.Fatalf("run ffmpeg stub: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("ffmpeg stub did not write output: %v", err)
	}
}

func TestWithStubbedBinariesPrependsPath(t *testing.T) {
	NewConfig(t, WithStubbedBinaries("cd-discid"))
	if _, err := exec.LookPath("cd-discid"); err != nil {
		t.Fatalf("expected cd-discid on PATH: %v", err)
	}
}

func TestWriteInputs(t *testing.T) {
	dir := t.TempDir()
	paths := WriteInputs(t, dir, "b.mp3", "disc1/a.ogg")
	if len(paths) != 2 || paths[1] != filepath.Join(dir, "disc1", "a.ogg") {
		t.Fatalf("unexpected paths %v", paths)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("missing %s: %v", p, err)
		}
	}
}
