package services_test

import (
	"context"
	"testing"

	"audiobind/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-123")
	ctx = services.WithStage(ctx, "transcoding")
	ctx = services.WithInput(ctx, "/books/01.mp3")

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "transcoding" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if input, ok := services.InputFromContext(ctx); !ok || input != "/books/01.mp3" {
		t.Fatalf("unexpected input: %v %v", input, ok)
	}
}

func TestStageBlankPreservesContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
}
