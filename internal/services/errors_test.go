package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"audiobind/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrIO, "merging", "write manifest", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrIO) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"merging", "write manifest", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutMarkerDefaultsToExecution(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrExecution) {
		t.Fatalf("expected execution marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "pipeline failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestFailureKindMapping(t *testing.T) {
	cases := map[string]error{
		"":                   nil,
		"no_media":           services.Wrap(services.ErrNoMediaFiles, "discover", "", "", nil),
		"unsupported_format": fmt.Errorf("transcoding: %w", services.ErrUnsupportedFormat),
		"spawn":              services.Wrap(services.ErrSpawn, "", "ffmpeg", "", nil),
		"parse":              services.Wrap(services.ErrParse, "probing", "", "", nil),
		"execution":          services.Wrap(services.ErrExecution, "merging", "", "", nil),
		"io":                 services.Wrap(services.ErrIO, "", "", "", nil),
		"unknown":            errors.New("other"),
	}
	for want, err := range cases {
		if got := services.FailureKind(err); got != want {
			t.Errorf("FailureKind(%v) = %q, want %q", err, got, want)
		}
	}
}
