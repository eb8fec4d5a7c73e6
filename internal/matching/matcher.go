package matching

import (
	"context"

	"github.com/spigell/job-tracker/internal/jobs"
)

// Result is the match of a single job against a resume.
type Result struct {
	Score          int      `json:"score"`
	Explanation    string   `json:"explanation"`
	MatchingSkills []string `json:"matchingSkills"`
}

// Matcher scores a job against resume text.
type Matcher interface {
	Match(ctx context.Context, job jobs.Job, resumeText string) (Result, error)
}

const (
	maxExplanationLength = 100
	maxListedSkills      = 3
)

func clampScore(score float64) int {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return int(score + 0.5)
	}
}

// Apply copies the match into the listing.
func Apply(l *jobs.Listing, r Result) {
	l.MatchScore = r.Score
	l.MatchExplanation = r.Explanation
	l.MatchingSkills = r.MatchingSkills
	if l.MatchingSkills == nil {
		l.MatchingSkills = []string{}
	}
}
