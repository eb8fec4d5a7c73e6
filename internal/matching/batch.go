package matching

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/spigell/job-tracker/internal/jobs"
)

const (
	// BestMatchesLimit is the size of the best matches list.
	BestMatchesLimit   = 8
	defaultConcurrency = 4
)

// ScoreAll matches every listing concurrently. Results land in the listing at the
// same index, so input order is preserved.
func ScoreAll(ctx context.Context, m Matcher, listings []jobs.Listing, resumeText string, concurrency int) error {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range listings {
		g.Go(func() error {
			result, err := m.Match(gctx, listings[i].Job, resumeText)
			if err != nil {
				return err
			}
			Apply(&listings[i], result)
			return nil
		})
	}

	return g.Wait()
}

// BestMatches scores the feed and returns the top entries, highest first.
// An empty resume yields nothing.
func BestMatches(ctx context.Context, m Matcher, feed []jobs.Job, resumeText string, concurrency int) ([]jobs.Listing, error) {
	if strings.TrimSpace(resumeText) == "" {
		return []jobs.Listing{}, nil
	}

	listings := jobs.ToListings(feed)
	if err := ScoreAll(ctx, m, listings, resumeText, concurrency); err != nil {
		return nil, err
	}

	jobs.SortByScore(listings)
	return jobs.Top(listings, BestMatchesLimit), nil
}
