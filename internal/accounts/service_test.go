package accounts

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newSeeded(t *testing.T) *Service {
	t.Helper()

	s := NewService(NewMemoryRepository(), nil)
	if err := s.EnsureSeed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// seeding twice is harmless
	if err := s.EnsureSeed(context.Background()); err != nil {
		t.Fatalf("seed again: %v", err)
	}
	return s
}

func TestLoginSeedUser(t *testing.T) {
	s := newSeeded(t)
	ctx := context.Background()

	token, user, err := s.Login(ctx, SeedEmail, SeedPassword)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "1" || token == "" {
		t.Fatalf("unexpected login result: %q %+v", token, user)
	}

	verified, err := s.Verify(ctx, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verified.Profile() != (Profile{ID: "1", Email: SeedEmail}) {
		t.Fatalf("unexpected profile: %+v", verified.Profile())
	}

	if err := s.Logout(ctx, token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Authenticate(ctx, token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after logout, got %v", err)
	}
}

func TestLoginFailures(t *testing.T) {
	s := newSeeded(t)
	ctx := context.Background()

	if _, _, err := s.Login(ctx, SeedEmail, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := s.Login(ctx, "nobody@example.com", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Authenticate(ctx, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRegister(t *testing.T) {
	s := newSeeded(t)
	ctx := context.Background()

	token, user, err := s.Register(ctx, " new@example.com ", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "2" || user.Email != "new@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if id, err := s.Authenticate(ctx, token); err != nil || id != "2" {
		t.Fatalf("unexpected session: %q %v", id, err)
	}

	if _, _, err := s.Register(ctx, "new@example.com", "other"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if _, _, err := s.Register(ctx, "", "x"); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestResumeLifecycle(t *testing.T) {
	s := newSeeded(t)
	ctx := context.Background()

	if text := s.ResumeText(ctx, "1"); text != "" {
		t.Fatalf("expected empty resume text, got %q", text)
	}
	if _, err := s.Resume(ctx, "1"); !errors.Is(err, ErrNoResume) {
		t.Fatalf("expected ErrNoResume, got %v", err)
	}

	first := Resume{Filename: "cv.txt", Path: "/tmp/a", Text: "Go developer", UploadedAt: time.Now()}
	prev, err := s.SetResume(ctx, "1", first)
	if err != nil || prev != nil {
		t.Fatalf("unexpected first upload result: %v %v", prev, err)
	}

	prev, err = s.SetResume(ctx, "1", Resume{Filename: "cv.pdf", Path: "/tmp/b", Text: "Rust developer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prev == nil || prev.Path != "/tmp/a" {
		t.Fatalf("expected the replaced resume, got %+v", prev)
	}
	if text := s.ResumeText(ctx, "1"); text != "Rust developer" {
		t.Fatalf("unexpected resume text %q", text)
	}

	removed, err := s.DeleteResume(ctx, "1")
	if err != nil || removed == nil || removed.Filename != "cv.pdf" {
		t.Fatalf("unexpected delete result: %+v %v", removed, err)
	}

	removed, err = s.DeleteResume(ctx, "1")
	if err != nil || removed != nil {
		t.Fatalf("deleting twice must be a no-op: %+v %v", removed, err)
	}

	if _, err := s.SetResume(ctx, "42", first); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
