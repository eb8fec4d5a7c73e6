package matching

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/job-tracker/internal/ai"
	"github.com/spigell/job-tracker/internal/jobs"
	"github.com/spigell/job-tracker/internal/logger"
	"github.com/spigell/job-tracker/internal/util"
)

//go:embed prompt.md
var promptTemplate string

const (
	maxResumeRunes        = 2000
	defaultMaxLogLength   = 200
	defaultLLMExplanation = "AI analysis completed"
)

// LLMMatcher asks a language model to score the match.
type LLMMatcher struct {
	completer ai.Completer
	logger    *zap.Logger
	maxLogLen int
}

func NewLLMMatcher(completer ai.Completer, log *zap.Logger, maxLogLength int) *LLMMatcher {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	provider, model := ai.Describe(completer)

	return &LLMMatcher{
		completer: completer,
		logger:    logger.WithCommonFields(logger.Named(log, "llm_matcher"), provider, model),
		maxLogLen: maxLogLength,
	}
}

func (m *LLMMatcher) Match(ctx context.Context, job jobs.Job, resumeText string) (Result, error) {
	if strings.TrimSpace(resumeText) == "" {
		return Keyword(job, resumeText), nil
	}
	if m.completer == nil {
		return Result{}, fmt.Errorf("llm completer is not configured")
	}

	prompt := buildPrompt(job, resumeText)

	m.logger.Debug("match request",
		zap.String("job_id", job.ID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, m.maxLogLen)),
	)

	raw, err := m.completer.Complete(ctx, prompt)
	if err != nil {
		return Result{}, err
	}

	m.logger.Debug("match response",
		zap.String("job_id", job.ID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, m.maxLogLen)),
	)

	result, err := parseResponse(raw)
	if err != nil {
		return Result{}, err
	}

	result.MatchingSkills = restrictSkills(result.MatchingSkills, job.Skills, resumeText)
	return result, nil
}

// restrictSkills keeps the reported skills that are job skills present in the resume,
// spelled as the job spells them.
func restrictSkills(reported, jobSkills []string, resumeText string) []string {
	resume := strings.ToLower(resumeText)
	out := make([]string, 0, len(reported))
	seen := make(map[string]struct{}, len(reported))

	for _, r := range reported {
		for _, skill := range jobSkills {
			key := strings.ToLower(skill)
			if !strings.EqualFold(strings.TrimSpace(r), skill) || !strings.Contains(resume, key) {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, skill)
		}
	}
	return out
}

func buildPrompt(job jobs.Job, resumeText string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Job: {{JOB_TITLE}}\n{{JOB_DESCRIPTION}}\nSkills: {{JOB_SKILLS}}\n\nResume:\n{{RESUME}}\n\nJSON Response:"
	}

	return strings.NewReplacer(
		"{{JOB_TITLE}}", job.Title,
		"{{JOB_DESCRIPTION}}", job.Description,
		"{{JOB_SKILLS}}", strings.Join(job.Skills, ", "),
		"{{RESUME}}", util.TruncateRunes(resumeText, maxResumeRunes),
	).Replace(template)
}

func parseResponse(raw string) (Result, error) {
	data, err := ai.DecodeObject(raw)
	if err != nil {
		return Result{}, err
	}

	rawScore, ok := data["score"]
	if !ok {
		return Result{}, fmt.Errorf("llm response has no score")
	}

	score := ai.CoerceFloat(rawScore)
	if math.IsNaN(score) {
		return Result{}, fmt.Errorf("llm response score %v is not a number", rawScore)
	}

	explanation := util.TruncateRunes(ai.CoerceString(data["explanation"]), maxExplanationLength)
	if explanation == "" {
		explanation = defaultLLMExplanation
	}

	skills := ai.CoerceStrings(data["matchingSkills"])
	if skills == nil {
		skills = []string{}
	}

	return Result{
		Score:          clampScore(score),
		Explanation:    explanation,
		MatchingSkills: skills,
	}, nil
}
