package jobs

import (
	"context"
	"strings"
	"time"
)

// datePostedWindows maps the datePosted filter to the maximum posting age.
var datePostedWindows = map[string]time.Duration{
	"24h":   24 * time.Hour,
	"week":  7 * 24 * time.Hour,
	"month": 30 * 24 * time.Hour,
}

// PreScoring returns the steps that only look at job fields.
func PreScoring(f Filters, now time.Time) []Filter {
	return []Filter{
		NewSearch(f.Get(KeySearch)),
		NewSkills(f.Get(KeySkills)),
		NewDatePosted(f.Get(KeyDatePosted), now),
		NewJobType(f.Get(KeyJobType)),
		NewWorkMode(f.Get(KeyWorkMode)),
		NewLocation(f.Get(KeyLocation)),
	}
}

// PostScoring returns the steps that need match scores.
func PostScoring(f Filters) []Filter {
	return []Filter{NewMatchScore(f.Get(KeyMatchScore))}
}

type searchFilter struct {
	term string
}

// NewSearch keeps jobs whose title or description contains term.
func NewSearch(term string) Filter {
	return &searchFilter{term: strings.ToLower(strings.TrimSpace(term))}
}

func (f *searchFilter) Name() string { return KeySearch }

func (f *searchFilter) IsEnabled() bool { return f.term != "" }

func (f *searchFilter) Apply(_ context.Context, items []Listing) ([]Listing, Step, error) {
	out, step := keep(items, func(l Listing) bool {
		return strings.Contains(strings.ToLower(l.Title), f.term) ||
			strings.Contains(strings.ToLower(l.Description), f.term)
	})
	return out, step, nil
}

type skillsFilter struct {
	skills map[string]struct{}
}

// NewSkills keeps jobs that require any of the comma separated skills.
func NewSkills(list string) Filter {
	skills := make(map[string]struct{})
	for _, s := range strings.Split(list, ",") {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			skills[s] = struct{}{}
		}
	}
	return &skillsFilter{skills: skills}
}

func (f *skillsFilter) Name() string { return KeySkills }

func (f *skillsFilter) IsEnabled() bool { return len(f.skills) > 0 }

func (f *skillsFilter) Apply(_ context.Context, items []Listing) ([]Listing, Step, error) {
	out, step := keep(items, func(l Listing) bool {
		for _, skill := range l.Skills {
			if _, ok := f.skills[strings.ToLower(skill)]; ok {
				return true
			}
		}
		return false
	})
	return out, step, nil
}

type datePostedFilter struct {
	window time.Duration
	now    time.Time
}

// NewDatePosted keeps jobs posted within the named window (24h, week, month).
// "any" and unknown values disable the step.
func NewDatePosted(value string, now time.Time) Filter {
	return &datePostedFilter{window: datePostedWindows[strings.ToLower(strings.TrimSpace(value))], now: now}
}

func (f *datePostedFilter) Name() string { return KeyDatePosted }

func (f *datePostedFilter) IsEnabled() bool { return f.window > 0 }

func (f *datePostedFilter) Apply(_ context.Context, items []Listing) ([]Listing, Step, error) {
	out, step := keep(items, func(l Listing) bool {
		return f.now.Sub(l.PostedDate) <= f.window
	})
	return out, step, nil
}

type exactFilter struct {
	name  string
	value string
	field func(Job) string
}

// NewJobType keeps jobs with exactly the given job type.
func NewJobType(value string) Filter {
	return &exactFilter{name: KeyJobType, value: strings.TrimSpace(value), field: func(j Job) string { return j.JobType }}
}

// NewWorkMode keeps jobs with exactly the given work mode.
func NewWorkMode(value string) Filter {
	return &exactFilter{name: KeyWorkMode, value: strings.TrimSpace(value), field: func(j Job) string { return j.WorkMode }}
}

func (f *exactFilter) Name() string { return f.name }

func (f *exactFilter) IsEnabled() bool { return f.value != "" }

func (f *exactFilter) Apply(_ context.Context, items []Listing) ([]Listing, Step, error) {
	out, step := keep(items, func(l Listing) bool { return f.field(l.Job) == f.value })
	return out, step, nil
}

type locationFilter struct {
	location string
}

// NewLocation keeps jobs whose location contains the value.
func NewLocation(value string) Filter {
	return &locationFilter{location: strings.ToLower(strings.TrimSpace(value))}
}

func (f *locationFilter) Name() string { return KeyLocation }

func (f *locationFilter) IsEnabled() bool { return f.location != "" }

func (f *locationFilter) Apply(_ context.Context, items []Listing) ([]Listing, Step, error) {
	out, step := keep(items, func(l Listing) bool {
		return strings.Contains(strings.ToLower(l.Location), f.location)
	})
	return out, step, nil
}

type matchScoreFilter struct {
	bucket string
}

// NewMatchScore keeps scored listings in the bucket: high is above 70, medium is 40 to 70.
func NewMatchScore(bucket string) Filter {
	return &matchScoreFilter{bucket: strings.ToLower(strings.TrimSpace(bucket))}
}

func (f *matchScoreFilter) Name() string { return KeyMatchScore }

func (f *matchScoreFilter) IsEnabled() bool {
	return f.bucket == MatchHigh || f.bucket == MatchMedium
}

func (f *matchScoreFilter) Apply(_ context.Context, items []Listing) ([]Listing, Step, error) {
	out, step := keep(items, func(l Listing) bool {
		if f.bucket == MatchHigh {
			return l.MatchScore > 70
		}
		return l.MatchScore >= 40 && l.MatchScore <= 70
	})
	return out, step, nil
}
