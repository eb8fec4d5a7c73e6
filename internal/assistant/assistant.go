// Package assistant turns chat messages into job list filters.
//
// Every message goes through exactly one classification and one terminal
// handler. Only the latest message drives the outcome; history is accepted
// for context and logging.
package assistant

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/job-tracker/internal/ai"
	"github.com/spigell/job-tracker/internal/jobs"
	"github.com/spigell/job-tracker/internal/logger"
)

const defaultMaxLogLength = 200

// FilterClear is the filters key telling clients to drop every filter.
const FilterClear = "clear"

const (
	noFiltersResponse = "I understood your request, but couldn't find specific filters. Try saying 'show remote jobs' or 'React roles in Bangalore'."
	clearedResponse   = "I've cleared all filters. You'll now see all available jobs."
	searchResponse    = `I can help you search for jobs! Try saying things like:
- "Show me remote frontend jobs"
- "Find Python roles in Bangalore"
- "Only high match score jobs"
- "Clear all filters"`
	helpResponse = `I'm your AI job search assistant! I can help you:

🔍 Search jobs: "Find React developer roles"
🎯 Filter by location: "Show jobs in Bangalore"
💼 Filter by work mode: "Only remote positions"
⭐ Filter by match: "High match score only"
🧹 Reset: "Clear all filters"

Just tell me what you're looking for!`
)

// Reply is the outcome of a single assistant turn.
type Reply struct {
	Intent   Intent         `json:"intent"`
	Filters  map[string]any `json:"filters"`
	Response string         `json:"response"`
}

type handler func(ctx context.Context, message string) Reply

// Assistant classifies a message and dispatches it to one handler.
type Assistant struct {
	classifier *Classifier
	extractor  *Extractor
	handlers   map[Intent]handler
	logger     *zap.Logger
}

// New builds an assistant. A nil completer leaves only the keyword rules.
func New(completer ai.Completer, log *zap.Logger) *Assistant {
	provider, model := ai.Describe(completer)
	log = logger.WithCommonFields(logger.Named(log, "assistant"), provider, model)

	a := &Assistant{
		classifier: NewClassifier(completer, log),
		extractor:  NewExtractor(completer, log),
		logger:     log,
	}

	a.handlers = map[Intent]handler{
		IntentFilterUpdate: a.updateFilters,
		IntentClearFilters: clearFilters,
		IntentJobSearch:    jobSearch,
		IntentHelp:         help,
	}

	return a
}

// Respond answers message. It never fails: LLM problems degrade to keyword rules.
func (a *Assistant) Respond(ctx context.Context, message string, history []string) Reply {
	intent := a.classifier.Classify(ctx, message)

	h, ok := a.handlers[intent]
	if !ok {
		intent = IntentJobSearch
		h = jobSearch
	}

	reply := h(ctx, message)
	reply.Intent = intent

	a.logger.Debug("assistant turn",
		zap.String("intent", string(intent)),
		zap.Int("history", len(history)),
		zap.Int("filters", len(reply.Filters)),
	)

	return reply
}

func (a *Assistant) updateFilters(ctx context.Context, message string) Reply {
	filters := a.extractor.Extract(ctx, message)

	out := make(map[string]any, len(filters))
	for k, v := range filters {
		out[k] = v
	}

	return Reply{Filters: out, Response: Summarize(filters)}
}

func clearFilters(context.Context, string) Reply {
	return Reply{Filters: map[string]any{FilterClear: true}, Response: clearedResponse}
}

func jobSearch(context.Context, string) Reply {
	return Reply{Filters: map[string]any{}, Response: searchResponse}
}

func help(context.Context, string) Reply {
	return Reply{Filters: map[string]any{}, Response: helpResponse}
}

// ToFilters converts reply filters back to job filters. The clear marker is dropped.
func ToFilters(m map[string]any) jobs.Filters {
	out := jobs.Filters{}
	for k, v := range m {
		if s, ok := v.(string); ok {
			out.Set(k, s)
		}
	}
	return out
}
