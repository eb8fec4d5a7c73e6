package jobs

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileSource reads the feed from a YAML document on every fetch.
//
//	jobs:
//	  - id: job1
//	    title: Go Developer
//	    postedDate: 2026-10-01T09:00:00Z
//	    skills: [Go, PostgreSQL]
type FileSource struct {
	Path string
}

type fileFeed struct {
	Jobs []Job `yaml:"jobs"`
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: strings.TrimSpace(path)}
}

func (s *FileSource) Fetch(ctx context.Context) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.Path == "" {
		return nil, fmt.Errorf("job feed file is not configured")
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading job feed %q: %w", s.Path, err)
	}

	var feed fileFeed
	if err := yaml.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("parsing job feed %q: %w", s.Path, err)
	}

	for i, job := range feed.Jobs {
		if strings.TrimSpace(job.ID) == "" {
			return nil, fmt.Errorf("job feed %q: entry %d has no id", s.Path, i)
		}
	}

	return feed.Jobs, nil
}
