package applications

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound       = errors.New("application not found")
	ErrAlreadyApplied = errors.New("already applied to this job")
	ErrInvalidStatus  = errors.New("invalid application status")
	ErrJobRequired    = errors.New("job id is required")
)

type Status string

const (
	StatusApplied   Status = "applied"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
)

const defaultAppliedVia = "direct"

// ParseStatus accepts the known statuses case-insensitively.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	switch status {
	case StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return status, nil
	}
	return "", ErrInvalidStatus
}

// TimelineEntry records one status change. Entries are never edited or removed.
type TimelineEntry struct {
	Status Status    `json:"status"`
	Date   time.Time `json:"date"`
	Note   string    `json:"note"`
}

// Application tracks a user's application to one job.
type Application struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	JobID      string          `json:"jobId"`
	JobTitle   string          `json:"jobTitle"`
	Company    string          `json:"company"`
	AppliedVia string          `json:"appliedVia"`
	Status     Status          `json:"status"`
	AppliedAt  time.Time       `json:"appliedAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	Timeline   []TimelineEntry `json:"timeline"`
}

// NewApplication is the user's input when applying.
type NewApplication struct {
	JobID      string `json:"jobId"`
	JobTitle   string `json:"jobTitle"`
	Company    string `json:"company"`
	AppliedVia string `json:"appliedVia"`
}
