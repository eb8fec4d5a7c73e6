package assistant

import (
	"context"
	"fmt"
	"strings"

	_ "embed"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spigell/job-tracker/internal/ai"
	"github.com/spigell/job-tracker/internal/jobs"
	"github.com/spigell/job-tracker/internal/util"
)

//go:embed filters_prompt.md
var filtersPrompt string

// extractable lists the filter keys the assistant may set, in summary order.
var extractable = []struct {
	key   string
	label string
}{
	{jobs.KeyWorkMode, "work mode"},
	{jobs.KeyJobType, "job type"},
	{jobs.KeyLocation, "location"},
	{jobs.KeySearch, "role/skill"},
	{jobs.KeyMatchScore, "match score"},
}

var cities = []string{"bangalore", "mumbai", "delhi", "hyderabad", "pune"}

// keywordRule sets key to value when any of the words occurs in the message.
// Rules are applied in order, so later rules win for the same key.
type keywordRule struct {
	key   string
	value string
	words []string
}

var keywordRules = []keywordRule{
	{jobs.KeyWorkMode, "remote", []string{"remote"}},
	{jobs.KeyWorkMode, "hybrid", []string{"hybrid"}},
	{jobs.KeyWorkMode, "on-site", []string{"onsite", "on-site"}},
	{jobs.KeyJobType, "full-time", []string{"full-time", "full time"}},
	{jobs.KeyJobType, "part-time", []string{"part-time", "part time"}},
	{jobs.KeyJobType, "contract", []string{"contract"}},
	{jobs.KeyMatchScore, jobs.MatchHigh, []string{"high match"}},
}

// Extractor pulls filters out of free text.
type Extractor struct {
	completer ai.Completer
	logger    *zap.Logger
	maxLogLen int
}

func NewExtractor(completer ai.Completer, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		completer: completer,
		logger:    logger,
		maxLogLen: defaultMaxLogLength,
	}
}

// Extract returns the filters found in message. Keyword rules are used only
// when the LLM yields nothing.
func (e *Extractor) Extract(ctx context.Context, message string) jobs.Filters {
	if e.completer != nil {
		if f := e.extractLLM(ctx, message); len(f) > 0 {
			return f
		}
	}
	return e.ExtractKeywords(message)
}

func (e *Extractor) extractLLM(ctx context.Context, message string) jobs.Filters {
	raw, err := e.completer.Complete(ctx, render(filtersPrompt, message))
	if err != nil {
		e.logger.Warn("llm filter extraction failed", zap.Error(err))
		return nil
	}

	data, err := ai.DecodeObject(raw)
	if err != nil {
		e.logger.Warn("llm filter extraction returned malformed output",
			zap.Error(err),
			zap.String("response_preview", util.TruncateForLog(raw, e.maxLogLen)),
		)
		return nil
	}

	filters := jobs.Filters{}
	for _, field := range extractable {
		filters.Set(field.key, ai.CoerceString(data[field.key]))
	}
	return filters
}

// ExtractKeywords is the deterministic extractor.
func (e *Extractor) ExtractKeywords(message string) jobs.Filters {
	msg := strings.ToLower(message)
	filters := jobs.Filters{}

	for _, rule := range keywordRules {
		for _, w := range rule.words {
			if strings.Contains(msg, w) {
				filters.Set(rule.key, rule.value)
				break
			}
		}
	}

	// Casers are stateful, so each call gets its own.
	title := cases.Title(language.English)
	for _, city := range cities {
		if strings.Contains(msg, city) {
			filters.Set(jobs.KeyLocation, title.String(city))
		}
	}

	return filters
}

// Summarize describes the extracted filters, or asks for clarification when there are none.
func Summarize(filters jobs.Filters) string {
	parts := make([]string, 0, len(extractable))
	for _, field := range extractable {
		if v := filters.Get(field.key); v != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", field.label, v))
		}
	}

	if len(parts) == 0 {
		return noFiltersResponse
	}

	return fmt.Sprintf("I've updated the filters: %s. The job list will refresh automatically.", strings.Join(parts, ", "))
}
