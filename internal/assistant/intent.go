package assistant

import (
	"context"
	"regexp"
	"strings"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/job-tracker/internal/ai"
	"github.com/spigell/job-tracker/internal/util"
)

// Intent is the classified purpose of a user message.
type Intent string

const (
	IntentFilterUpdate Intent = "filter_update"
	IntentClearFilters Intent = "clear_filters"
	IntentHelp         Intent = "help"
	IntentJobSearch    Intent = "job_search"
)

// Valid reports whether i is one of the known intents.
func (i Intent) Valid() bool {
	switch i {
	case IntentFilterUpdate, IntentClearFilters, IntentHelp, IntentJobSearch:
		return true
	}
	return false
}

//go:embed intent_prompt.md
var intentPrompt string

var filterWords = regexp.MustCompile(`remote|hybrid|onsite|location|filter|show|find|search|only|with|score`)

// Classifier maps a message to an intent. The LLM is optional.
type Classifier struct {
	completer ai.Completer
	logger    *zap.Logger
	maxLogLen int
}

func NewClassifier(completer ai.Completer, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{completer: completer, logger: logger, maxLogLen: defaultMaxLogLength}
}

func (c *Classifier) Classify(ctx context.Context, message string) Intent {
	if c.completer != nil {
		if intent, ok := c.classifyLLM(ctx, message); ok {
			return intent
		}
	}
	return ClassifyRules(message)
}

func (c *Classifier) classifyLLM(ctx context.Context, message string) (Intent, bool) {
	raw, err := c.completer.Complete(ctx, render(intentPrompt, message))
	if err != nil {
		c.logger.Warn("llm intent detection failed", zap.Error(err))
		return "", false
	}

	intent := Intent(strings.ToLower(strings.Trim(raw, " \t\r\n\"'`.")))
	if !intent.Valid() {
		c.logger.Debug("llm returned unknown intent",
			zap.String("response_preview", util.TruncateForLog(raw, c.maxLogLen)),
		)
		return "", false
	}

	return intent, true
}

// ClassifyRules is the deterministic classifier. The first matching rule wins.
func ClassifyRules(message string) Intent {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "clear") || strings.Contains(msg, "reset"):
		return IntentClearFilters
	case filterWords.MatchString(msg):
		return IntentFilterUpdate
	case strings.Contains(msg, "help") || strings.Contains(msg, "how"):
		return IntentHelp
	default:
		return IntentJobSearch
	}
}

func render(template, message string) string {
	return strings.ReplaceAll(template, "{{MESSAGE}}", message)
}
