package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestUploader_Upload(t *testing.T) {
	dir := t.TempDir()
	up, err := NewUploader(dir, "/uploads/", zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ref, err := up.Upload(context.Background(), strings.NewReader("png-bytes"), "shot.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(ref, "/uploads/") {
		t.Errorf("expected public path prefix, got %s", ref)
	}
	if !strings.HasSuffix(ref, ".png") {
		t.Errorf("expected extension kept, got %s", ref)
	}

	// The returned path maps onto a file under the base dir.
	rel := strings.TrimPrefix(ref, "/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("unexpected stored content: %q", data)
	}
}

func TestUploader_UniqueNames(t *testing.T) {
	dir := t.TempDir()
	up, err := NewUploader(dir, "/uploads", zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	first, err := up.Upload(ctx, strings.NewReader("a"), "same.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := up.Upload(ctx, strings.NewReader("b"), "same.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first == second {
		t.Error("expected distinct references for repeated filenames")
	}
}

func TestSanitizeExt(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"shot.png", ".png"},
		{"SHOT.PNG", ".png"},
		{"archive.tar.gz", ".gz"},
		{"noext", ""},
		{"weird.reallylongextension", ""},
	}

	for _, tt := range tests {
		if got := sanitizeExt(tt.filename); got != tt.want {
			t.Errorf("sanitizeExt(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestUploader_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	up, err := NewUploader(dir, "/uploads", zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := up.Upload(ctx, strings.NewReader("a"), "shot.png"); err == nil {
		t.Error("expected error for cancelled context")
	}
}
