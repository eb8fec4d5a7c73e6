package jobs

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// ErrNotFound is returned when a job id is not part of the feed.
var ErrNotFound = errors.New("job not found")

// Job is a posting fetched from the external feed. Jobs are never mutated after fetch.
type Job struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Company     string    `json:"company" yaml:"company"`
	Location    string    `json:"location" yaml:"location"`
	Description string    `json:"description" yaml:"description"`
	JobType     string    `json:"jobType" yaml:"jobType"`
	WorkMode    string    `json:"workMode" yaml:"workMode"`
	PostedDate  time.Time `json:"postedDate" yaml:"postedDate"`
	Skills      []string  `json:"skills" yaml:"skills"`
	ApplyURL    string    `json:"applyUrl" yaml:"applyUrl"`
}

// Listing is a job enriched with its match against the current user's resume.
type Listing struct {
	Job
	MatchScore       int      `json:"matchScore"`
	MatchExplanation string   `json:"matchExplanation"`
	MatchingSkills   []string `json:"matchingSkills"`
}

// FindByID returns the job with the given id.
func FindByID(jobs []Job, id string) (Job, error) {
	id = strings.TrimSpace(id)
	for _, job := range jobs {
		if job.ID == id {
			return job, nil
		}
	}
	return Job{}, ErrNotFound
}

// ToListings wraps jobs into unscored listings.
func ToListings(jobs []Job) []Listing {
	listings := make([]Listing, 0, len(jobs))
	for _, job := range jobs {
		listings = append(listings, Listing{Job: job, MatchingSkills: []string{}})
	}
	return listings
}

// Jobs unwraps listings.
func Jobs(listings []Listing) []Job {
	out := make([]Job, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.Job)
	}
	return out
}

// SortByScore orders listings by match score, highest first. Ties keep feed order.
func SortByScore(listings []Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].MatchScore > listings[j].MatchScore
	})
}

// Top returns at most n listings.
func Top(listings []Listing, n int) []Listing {
	if n < 0 || len(listings) <= n {
		return listings
	}
	return listings[:n]
}
