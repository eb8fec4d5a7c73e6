package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spigell/job-tracker/internal/accounts"
	"github.com/spigell/job-tracker/internal/applications"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data", "tracker.db")
	store, err := Open(context.Background(), path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, path
}

func TestAccountsRoundTrip(t *testing.T) {
	store, path := openTestStore(t)
	ctx := context.Background()

	svc := accounts.NewService(store.Accounts(), nil)
	require.NoError(t, svc.EnsureSeed(ctx))
	require.NoError(t, svc.EnsureSeed(ctx))

	token, user, err := svc.Login(ctx, accounts.SeedEmail, accounts.SeedPassword)
	require.NoError(t, err)
	require.Equal(t, "1", user.ID)

	_, _, err = svc.Register(ctx, accounts.SeedEmail, "x")
	require.ErrorIs(t, err, accounts.ErrUserExists)

	uploaded := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	prev, err := svc.SetResume(ctx, "1", accounts.Resume{Filename: "cv.txt", Path: "/tmp/cv.txt", Text: "Go", UploadedAt: uploaded})
	require.NoError(t, err)
	require.Nil(t, prev)

	// state survives a reopen
	require.NoError(t, store.Close())
	reopened, err := Open(ctx, path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })

	svc = accounts.NewService(reopened.Accounts(), nil)

	verified, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	require.True(t, verified.Profile().HasResume)

	resume, err := svc.Resume(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "cv.txt", resume.Filename)
	require.True(t, resume.UploadedAt.Equal(uploaded))

	removed, err := svc.DeleteResume(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, removed)
	require.Empty(t, svc.ResumeText(ctx, "1"))

	require.NoError(t, svc.Logout(ctx, token))
	_, err = svc.Authenticate(ctx, token)
	require.ErrorIs(t, err, accounts.ErrUnauthorized)

	err = reopened.Accounts().SetResume(ctx, "404", nil)
	require.ErrorIs(t, err, accounts.ErrUserNotFound)
}

func TestApplicationsRoundTrip(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	svc := applications.NewService(store.Applications(), nil)

	app, err := svc.Create(ctx, "1", applications.NewApplication{JobID: "job1", JobTitle: "Go Developer", Company: "Gophers"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, "1", applications.NewApplication{JobID: "job1"})
	require.ErrorIs(t, err, applications.ErrAlreadyApplied)

	updated, err := svc.UpdateStatus(ctx, "1", app.ID, "interview", "")
	require.NoError(t, err)
	require.Equal(t, applications.StatusInterview, updated.Status)
	require.Len(t, updated.Timeline, 2)
	require.Equal(t, "Application submitted", updated.Timeline[0].Note)
	require.Equal(t, "Status updated to interview", updated.Timeline[1].Note)

	updated, err = svc.UpdateStatus(ctx, "1", app.ID, "applied", "back to start")
	require.NoError(t, err)
	require.Len(t, updated.Timeline, 3)

	_, err = svc.UpdateStatus(ctx, "2", app.ID, "offer", "")
	require.True(t, errors.Is(err, applications.ErrNotFound))

	_, err = svc.Create(ctx, "1", applications.NewApplication{JobID: "job2"})
	require.NoError(t, err)

	list, err := svc.List(ctx, "1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "job1", list[0].JobID)
	require.Len(t, list[0].Timeline, 3)
	require.Len(t, list[1].Timeline, 1)

	got, err := svc.GetByJob(ctx, "1", "job1")
	require.NoError(t, err)
	require.Equal(t, "Gophers", got.Company)
	require.Equal(t, "direct", got.AppliedVia)

	_, err = svc.GetByJob(ctx, "1", "job9")
	require.ErrorIs(t, err, applications.ErrNotFound)

	empty, err := svc.List(ctx, "2")
	require.NoError(t, err)
	require.Empty(t, empty)
}
