package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "key")
	if err := os.WriteFile(keyFile, []byte("  from-file\n"), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}

	t.Setenv("TEST_SECRET_KEY", "from-env")

	tests := []struct {
		name   string
		src    Source
		expect string
	}{
		{name: "file wins", src: Source{File: keyFile, Value: "inline", Env: "TEST_SECRET_KEY"}, expect: "from-file"},
		{name: "value over env", src: Source{Value: " inline ", Env: "TEST_SECRET_KEY"}, expect: "inline"},
		{name: "env fallback", src: Source{Env: "TEST_SECRET_KEY"}, expect: "from-env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestLoadRejectsPlaceholder(t *testing.T) {
	_, err := Load(Source{Name: "openai api key", Value: "your_openai_api_key_here"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(keyFile, []byte("\n"), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}

	if _, err := Load(Source{File: keyFile}); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(Source{Name: "gemini api key"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
