package jobs

import (
	"context"
	"time"

	"github.com/spigell/job-tracker/internal/util"
)

// Source fetches the current job feed. No pagination is exposed to callers.
type Source interface {
	Fetch(ctx context.Context) ([]Job, error)
}

// MockSource serves the built-in demo feed. Posting dates are relative to the clock.
type MockSource struct {
	// Latency simulates a round trip to an external provider.
	Latency time.Duration
	Now     func() time.Time
}

// NewMockSource returns the built-in feed with the given simulated latency.
func NewMockSource(latency time.Duration) *MockSource {
	return &MockSource{Latency: latency, Now: time.Now}
}

func (s *MockSource) Fetch(ctx context.Context) ([]Job, error) {
	if err := util.WaitFor(ctx, s.Latency); err != nil {
		return nil, err
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	return mockFeed(now().UTC()), nil
}
