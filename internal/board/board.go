// Package board assembles the job list a user sees: it fetches the feed,
// applies filters and scores every remaining job against the user's resume.
package board

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/job-tracker/internal/jobs"
	"github.com/spigell/job-tracker/internal/logger"
	"github.com/spigell/job-tracker/internal/matching"
)

// Board combines a job source with a matcher.
type Board struct {
	source      jobs.Source
	matcher     matching.Matcher
	concurrency int
	now         func() time.Time
	logger      *zap.Logger
}

type Option func(*Board)

// WithConcurrency bounds the number of matches in flight.
func WithConcurrency(n int) Option {
	return func(b *Board) { b.concurrency = n }
}

// WithClock overrides the clock used by the datePosted filter.
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

func New(source jobs.Source, matcher matching.Matcher, log *zap.Logger, opts ...Option) *Board {
	if matcher == nil {
		matcher = matching.NewKeywordMatcher()
	}

	b := &Board{
		source:  source,
		matcher: matcher,
		now:     time.Now,
		logger:  logger.Named(log, "board"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// List returns the filtered feed, scored and sorted by match score.
func (b *Board) List(ctx context.Context, resumeText string, filters jobs.Filters) ([]jobs.Listing, error) {
	feed, err := b.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch jobs: %w", err)
	}

	listings, err := jobs.Run(ctx, b.logger, jobs.PreScoring(filters, b.now()), jobs.ToListings(feed))
	if err != nil {
		return nil, err
	}

	if err := matching.ScoreAll(ctx, b.matcher, listings, resumeText, b.concurrency); err != nil {
		return nil, fmt.Errorf("score jobs: %w", err)
	}

	listings, err = jobs.Run(ctx, b.logger, jobs.PostScoring(filters), listings)
	if err != nil {
		return nil, err
	}

	jobs.SortByScore(listings)

	b.logger.Debug("job list assembled",
		zap.Int("feed", len(feed)),
		zap.Int("listed", len(listings)),
		zap.Bool("has_resume", strings.TrimSpace(resumeText) != ""),
	)

	return listings, nil
}

// BestMatches returns the top scored jobs for the resume. Empty resume yields nothing.
func (b *Board) BestMatches(ctx context.Context, resumeText string) ([]jobs.Listing, error) {
	if strings.TrimSpace(resumeText) == "" {
		return []jobs.Listing{}, nil
	}

	feed, err := b.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch jobs: %w", err)
	}

	return matching.BestMatches(ctx, b.matcher, feed, resumeText, b.concurrency)
}

// Job looks up a single job in the current feed.
func (b *Board) Job(ctx context.Context, id string) (jobs.Job, error) {
	feed, err := b.source.Fetch(ctx)
	if err != nil {
		return jobs.Job{}, fmt.Errorf("fetch jobs: %w", err)
	}
	return jobs.FindByID(feed, id)
}

// Score matches a single job from the feed against the resume.
func (b *Board) Score(ctx context.Context, id, resumeText string) (jobs.Listing, error) {
	job, err := b.Job(ctx, id)
	if err != nil {
		return jobs.Listing{}, err
	}

	result, err := b.matcher.Match(ctx, job, resumeText)
	if err != nil {
		return jobs.Listing{}, fmt.Errorf("score job %s: %w", id, err)
	}

	listing := jobs.Listing{Job: job}
	matching.Apply(&listing, result)
	return listing, nil
}
