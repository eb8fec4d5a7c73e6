package matching

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/job-tracker/internal/jobs"
)

type stubCompleter struct {
	response string
	err      error
	prompts  []string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

var goJob = jobs.Job{
	ID:          "go1",
	Title:       "Go Developer",
	Description: "Write Go services",
	Skills:      []string{"Go", "gRPC"},
}

func TestLLMMatcherParsesFencedResponse(t *testing.T) {
	stub := &stubCompleter{response: "```json\n{\"score\": 150, \"explanation\": \"" + strings.Repeat("a", 140) + "\", \"matchingSkills\": [\"Go\", null]}\n```"}

	got, err := NewLLMMatcher(stub, zap.NewNop(), 0).Match(context.Background(), goJob, "I write Go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Score != 100 {
		t.Fatalf("expected score clamped to 100, got %d", got.Score)
	}
	if len([]rune(got.Explanation)) != 100 {
		t.Fatalf("expected explanation truncated to 100 runes, got %d", len([]rune(got.Explanation)))
	}
	if len(got.MatchingSkills) != 1 || got.MatchingSkills[0] != "Go" {
		t.Fatalf("unexpected skills: %v", got.MatchingSkills)
	}
}

func TestLLMMatcherDefaults(t *testing.T) {
	stub := &stubCompleter{response: `Here you go: {"score": "-5"}`}

	got, err := NewLLMMatcher(stub, nil, 0).Match(context.Background(), goJob, "resume")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Score != 0 || got.Explanation != "AI analysis completed" || got.MatchingSkills == nil {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestLLMMatcherErrors(t *testing.T) {
	tests := []struct {
		name string
		stub *stubCompleter
	}{
		{name: "provider error", stub: &stubCompleter{err: errors.New("quota")}},
		{name: "no json", stub: &stubCompleter{response: "I cannot help"}},
		{name: "missing score", stub: &stubCompleter{response: `{"explanation": "ok"}`}},
		{name: "non numeric score", stub: &stubCompleter{response: `{"score": "high"}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLLMMatcher(tt.stub, nil, 0).Match(context.Background(), goJob, "resume"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLLMMatcherPrompt(t *testing.T) {
	stub := &stubCompleter{response: `{"score": 50}`}
	resume := strings.Repeat("ж", 3000)

	if _, err := NewLLMMatcher(stub, nil, 0).Match(context.Background(), goJob, resume); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stub.prompts) != 1 {
		t.Fatalf("expected a single call, got %d", len(stub.prompts))
	}

	prompt := stub.prompts[0]
	if strings.Count(prompt, "ж") != maxResumeRunes {
		t.Fatalf("expected resume truncated to %d runes, got %d", maxResumeRunes, strings.Count(prompt, "ж"))
	}
	for _, want := range []string{"Go Developer", "Write Go services", "Go, gRPC"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt does not contain %q", want)
		}
	}
}

func TestLLMMatcherSkipsEmptyResume(t *testing.T) {
	stub := &stubCompleter{response: `{"score": 99}`}

	got, err := NewLLMMatcher(stub, nil, 0).Match(context.Background(), goJob, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stub.prompts) != 0 {
		t.Fatal("llm must not be called without a resume")
	}
	if got.Explanation != NoResumeExplanation {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestFallbackUsesSecondaryAndLogs(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	primary := NewLLMMatcher(&stubCompleter{err: errors.New("boom")}, nil, 0)

	m := NewFallback(primary, NewKeywordMatcher(), zap.New(core))
	got, err := m.Match(context.Background(), goJob, "Go developer writing services with gRPC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Score == 0 {
		t.Fatalf("expected keyword score, got %+v", got)
	}

	if observed.FilterMessage("primary matcher failed, using fallback").Len() != 1 {
		t.Fatalf("expected fallback warning, got %v", observed.All())
	}
}

func TestFallbackPrefersPrimary(t *testing.T) {
	primary := NewLLMMatcher(&stubCompleter{response: `{"score": 12, "explanation": "llm"}`}, nil, 0)

	got, err := NewFallback(primary, NewKeywordMatcher(), nil).Match(context.Background(), goJob, "Go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Score != 12 || got.Explanation != "llm" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestLLMMatcherRestrictsSkillsToJob(t *testing.T) {
	stub := &stubCompleter{response: `{"score": 70, "matchingSkills": ["go", "Kotlin", "GRPC", "Go"]}`}

	got, err := NewLLMMatcher(stub, nil, 0).Match(context.Background(), goJob, "Go and gRPC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.MatchingSkills) != 2 || got.MatchingSkills[0] != "Go" || got.MatchingSkills[1] != "gRPC" {
		t.Fatalf("unexpected skills: %v", got.MatchingSkills)
	}
}
