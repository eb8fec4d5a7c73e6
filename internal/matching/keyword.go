package matching

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/spigell/job-tracker/internal/jobs"
)

const (
	skillWeight       = 60
	titleWeight       = 20
	descriptionWeight = 20

	minTitleTokenLen       = 4
	minDescriptionTokenLen = 5
	maxDescriptionTokens   = 10
)

// NoResumeExplanation is returned for every job when the resume is empty.
const NoResumeExplanation = "No resume uploaded"

// KeywordMatcher scores jobs by plain substring overlap with the resume.
// It never fails and needs no network.
type KeywordMatcher struct{}

func NewKeywordMatcher() *KeywordMatcher {
	return &KeywordMatcher{}
}

func (KeywordMatcher) Match(_ context.Context, job jobs.Job, resumeText string) (Result, error) {
	return Keyword(job, resumeText), nil
}

// Keyword computes the keyword match synchronously.
func Keyword(job jobs.Job, resumeText string) Result {
	if strings.TrimSpace(resumeText) == "" {
		return Result{Score: 0, Explanation: NoResumeExplanation, MatchingSkills: []string{}}
	}

	resume := strings.ToLower(resumeText)

	matching := make([]string, 0, len(job.Skills))
	for _, skill := range job.Skills {
		if strings.Contains(resume, strings.ToLower(skill)) {
			matching = append(matching, skill)
		}
	}

	var skillScore float64
	if len(job.Skills) > 0 {
		skillScore = float64(len(matching)) / float64(len(job.Skills)) * skillWeight
	}

	titleScore := tokenScore(resume, tokens(job.Title, minTitleTokenLen, 0), titleWeight)
	descScore := tokenScore(resume, tokens(job.Description, minDescriptionTokenLen, maxDescriptionTokens), descriptionWeight)

	score := int(math.Min(math.Round(skillScore+titleScore+descScore), 100))
	if score < 0 {
		score = 0
	}

	return Result{
		Score:          score,
		Explanation:    explain(score, matching, job.Skills),
		MatchingSkills: matching,
	}
}

// tokens splits s on whitespace and keeps lowercase tokens of at least minLen runes.
// limit > 0 caps the number of tokens kept.
func tokens(s string, minLen, limit int) []string {
	var out []string
	for _, field := range strings.Fields(strings.ToLower(s)) {
		if len([]rune(field)) < minLen {
			continue
		}
		out = append(out, field)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func tokenScore(resume string, words []string, weight float64) float64 {
	if len(words) == 0 {
		return 0
	}

	var found int
	for _, w := range words {
		if strings.Contains(resume, w) {
			found++
		}
	}
	return float64(found) / float64(len(words)) * weight
}

func explain(score int, matching, jobSkills []string) string {
	switch {
	case score > 70:
		return fmt.Sprintf("Strong match! %d matching skills: %s", len(matching), strings.Join(head(matching, maxListedSkills), ", "))
	case score >= 40:
		listed := strings.Join(head(matching, maxListedSkills), ", ")
		if listed == "" {
			listed = "some relevant experience"
		}
		return fmt.Sprintf("Moderate match. %d matching skills: %s", len(matching), listed)
	default:
		return "Low match. Consider building skills: " + strings.Join(head(jobSkills, maxListedSkills), ", ")
	}
}

func head(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
