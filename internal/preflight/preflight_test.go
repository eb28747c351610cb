package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"audiobind/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	result := CheckDirectoryAccess("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed || result.Detail == "" {
		t.Fatalf("expected failure with detail for missing dir, got %+v", result)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckDirectoryAccess("test", f); result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDirectoryAccess_Empty(t *testing.T) {
	if result := CheckDirectoryAccess("test", ""); result.Passed {
		t.Fatal("expected failure for empty path")
	}
}

func TestCheckDevice(t *testing.T) {
	dev := filepath.Join(t.TempDir(), "sr0")
	if err := os.WriteFile(dev, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckDevice("drive", dev); !result.Passed {
		t.Fatalf("expected readable device to pass: %s", result.Detail)
	}
	if result := CheckDevice("drive", dev+"-missing"); result.Passed {
		t.Fatal("expected missing device to fail")
	}
	if result := CheckDevice("drive", ""); result.Passed {
		t.Fatal("expected empty device to fail")
	}
}

func TestCheckMusicBrainz(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	result := CheckMusicBrainz(context.Background(), srv.URL+"/ws/2/", "audiobind-test/1.0")
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if gotUA != "audiobind-test/1.0" {
		t.Fatalf("unexpected user agent %q", gotUA)
	}
}

func TestCheckMusicBrainz_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if result := CheckMusicBrainz(context.Background(), srv.URL, "ua"); result.Passed {
		t.Fatal("expected failure for 503")
	}
}

func TestCheckMusicBrainz_MissingURL(t *testing.T) {
	if result := CheckMusicBrainz(context.Background(), "", "ua"); result.Passed {
		t.Fatal("expected failure for missing URL")
	}
}

func TestRunAllSkipsRipChecksForConvert(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Paths.WorkDir = t.TempDir()

	results := RunAll(context.Background(), &cfg, Options{})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %+v", len(results), results)
	}
	for _, r := range results {
		if !r.Passed {
			t.Fatalf("expected %s to pass: %s", r.Name, r.Detail)
		}
	}
}

func TestRunAllRipAddsDriveAndMusicBrainz(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Paths.OutputDir = t.TempDir()
	cfg.Rip.Device = filepath.Join(t.TempDir(), "missing-drive")
	cfg.MusicBrainz.BaseURL = srv.URL

	results := RunAll(context.Background(), &cfg, Options{Rip: true})
	names := make(map[string]Result, len(results))
	for _, r := range results {
		names[r.Name] = r
	}
	if _, ok := names["Output directory"]; !ok {
		t.Fatal("expected output directory check")
	}
	if names["Optical drive"].Passed {
		t.Fatal("expected missing drive to fail")
	}
	if !names["MusicBrainz"].Passed {
		t.Fatalf("expected MusicBrainz to pass: %s", names["MusicBrainz"].Detail)
	}
}

func TestCheckSystemDepsRipMakesToolsRequired(t *testing.T) {
	cfg := config.Default()
	cfg.Tools.CDDiscID = "definitely-missing-cd-discid"
	cfg.Tools.CDParanoia = "definitely-missing-cdparanoia"

	convert := CheckSystemDeps(context.Background(), &cfg, Options{})
	rip := CheckSystemDeps(context.Background(), &cfg, Options{Rip: true})
	if len(convert) != 4 || len(rip) != 4 {
		t.Fatalf("expected 4 statuses, got %d and %d", len(convert), len(rip))
	}
	if !convert[2].Optional || !convert[3].Optional {
		t.Fatal("ripping tools should be optional in convert mode")
	}
	if rip[2].Optional || rip[3].Optional {
		t.Fatal("ripping tools should be required in rip mode")
	}
	if rip[3].Available {
		t.Fatal("expected missing cdparanoia to be unavailable")
	}
}
