package applications

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func newTestService() *Service {
	s := NewService(NewMemoryRepository(), nil)

	clock := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	var seq int
	s.newID = func() string {
		seq++
		return fmt.Sprintf("app_%d", seq)
	}
	return s
}

func TestCreateApplication(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	app, err := s.Create(ctx, "1", NewApplication{JobID: "job1", JobTitle: "Go Developer", Company: "Gophers"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if app.ID != "app_1" || app.Status != StatusApplied || app.AppliedVia != "direct" {
		t.Fatalf("unexpected application: %+v", app)
	}
	if len(app.Timeline) != 1 || app.Timeline[0].Note != "Application submitted" || app.Timeline[0].Status != StatusApplied {
		t.Fatalf("unexpected timeline: %+v", app.Timeline)
	}

	if _, err := s.Create(ctx, "1", NewApplication{JobID: "job1", JobTitle: "Changed"}); !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}

	stored, err := s.GetByJob(ctx, "1", "job1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.JobTitle != "Go Developer" || stored.ID != "app_1" {
		t.Fatalf("duplicate must leave the original unchanged: %+v", stored)
	}

	// another user may apply to the same job
	if _, err := s.Create(ctx, "2", NewApplication{JobID: "job1", AppliedVia: "linkedin"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := s.Create(ctx, "1", NewApplication{JobID: "  "}); !errors.Is(err, ErrJobRequired) {
		t.Fatalf("expected ErrJobRequired, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	app, err := s.Create(ctx, "1", NewApplication{JobID: "job1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	steps := []struct {
		status string
		note   string
		expect string
	}{
		{status: "interview", expect: "Status updated to interview"},
		{status: "Rejected", note: "no budget", expect: "no budget"},
		{status: "offer", expect: "Status updated to offer"},
	}

	for i, step := range steps {
		updated, err := s.UpdateStatus(ctx, "1", app.ID, step.status, step.note)
		if err != nil {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}

		if len(updated.Timeline) != i+2 {
			t.Fatalf("step %d: expected %d timeline entries, got %d", i, i+2, len(updated.Timeline))
		}

		last := updated.Timeline[len(updated.Timeline)-1]
		if last.Note != step.expect || updated.Status != last.Status {
			t.Fatalf("step %d: unexpected entry %+v, status %s", i, last, updated.Status)
		}
		if !updated.UpdatedAt.Equal(last.Date) {
			t.Fatalf("step %d: updatedAt not moved", i)
		}
	}
}

func TestUpdateStatusErrors(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	app, _ := s.Create(ctx, "1", NewApplication{JobID: "job1"})

	if _, err := s.UpdateStatus(ctx, "1", app.ID, "hired", ""); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := s.UpdateStatus(ctx, "2", app.ID, "offer", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another user, got %v", err)
	}
	if _, err := s.UpdateStatus(ctx, "1", "missing", "offer", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	stored, _ := s.GetByJob(ctx, "1", "job1")
	if len(stored.Timeline) != 1 {
		t.Fatalf("failed updates must not touch the timeline: %+v", stored.Timeline)
	}
}

func TestListIsPerUser(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	for _, job := range []string{"job1", "job2"} {
		if _, err := s.Create(ctx, "1", NewApplication{JobID: job}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := s.Create(ctx, "2", NewApplication{JobID: "job3"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, err := s.List(ctx, "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 || list[0].JobID != "job1" || list[1].JobID != "job2" {
		t.Fatalf("unexpected list: %+v", list)
	}

	empty, _ := s.List(ctx, "nobody")
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", empty)
	}

	if _, err := s.GetByJob(ctx, "2", "job1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
