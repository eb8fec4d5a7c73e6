package matching

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/job-tracker/internal/jobs"
)

// Fallback tries Primary and answers with Secondary when it fails.
// Callers never see Primary's errors.
type Fallback struct {
	Primary   Matcher
	Secondary Matcher
	Logger    *zap.Logger
}

func NewFallback(primary, secondary Matcher, logger *zap.Logger) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fallback{Primary: primary, Secondary: secondary, Logger: logger}
}

func (f *Fallback) Match(ctx context.Context, job jobs.Job, resumeText string) (Result, error) {
	if f.Primary != nil {
		result, err := f.Primary.Match(ctx, job, resumeText)
		if err == nil {
			return result, nil
		}

		f.Logger.Warn("primary matcher failed, using fallback",
			zap.String("job_id", job.ID),
			zap.Error(err),
		)
	}

	return f.Secondary.Match(ctx, job, resumeText)
}
