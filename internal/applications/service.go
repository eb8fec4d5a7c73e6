// Package applications tracks job applications and their status timelines.
package applications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/job-tracker/internal/logger"
)

// Service applies the application rules on top of a Repository.
type Service struct {
	repo   Repository
	now    func() time.Time
	newID  func() string
	logger *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  func() string { return "app_" + uuid.NewString() },
		logger: logger.Named(log, "applications"),
	}
}

// Create records a new application with an initial "applied" timeline entry.
func (s *Service) Create(ctx context.Context, userID string, in NewApplication) (Application, error) {
	jobID := strings.TrimSpace(in.JobID)
	if jobID == "" {
		return Application{}, ErrJobRequired
	}

	via := strings.TrimSpace(in.AppliedVia)
	if via == "" {
		via = defaultAppliedVia
	}

	now := s.now()
	app := Application{
		ID:         s.newID(),
		UserID:     userID,
		JobID:      jobID,
		JobTitle:   strings.TrimSpace(in.JobTitle),
		Company:    strings.TrimSpace(in.Company),
		AppliedVia: via,
		Status:     StatusApplied,
		AppliedAt:  now,
		UpdatedAt:  now,
		Timeline: []TimelineEntry{
			{Status: StatusApplied, Date: now, Note: "Application submitted"},
		},
	}

	if err := s.repo.Create(ctx, app); err != nil {
		return Application{}, err
	}

	s.logger.Info("application created",
		zap.String(logger.FieldUserID, userID),
		zap.String("application_id", app.ID),
		zap.String("job_id", jobID),
	)

	return app, nil
}

// UpdateStatus moves the application to status and appends one timeline entry.
// Any known status may follow any other.
func (s *Service) UpdateStatus(ctx context.Context, userID, id, status, note string) (Application, error) {
	st, err := ParseStatus(status)
	if err != nil {
		return Application{}, fmt.Errorf("%w: %q", err, status)
	}

	note = strings.TrimSpace(note)
	if note == "" {
		note = fmt.Sprintf("Status updated to %s", st)
	}

	app, err := s.repo.AppendTimeline(ctx, userID, id, TimelineEntry{Status: st, Date: s.now(), Note: note})
	if err != nil {
		return Application{}, err
	}

	s.logger.Info("application status updated",
		zap.String(logger.FieldUserID, userID),
		zap.String("application_id", id),
		zap.String("status", string(st)),
	)

	return app, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Application, error) {
	return s.repo.List(ctx, userID)
}

// GetByJob returns ErrNotFound when the user has not applied to the job.
func (s *Service) GetByJob(ctx context.Context, userID, jobID string) (Application, error) {
	return s.repo.GetByJob(ctx, userID, strings.TrimSpace(jobID))
}
