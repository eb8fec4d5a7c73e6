package jobs

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Filter represents a single filtering step applied to listings.
type Filter interface {
	Name() string
	IsEnabled() bool
	Apply(ctx context.Context, items []Listing) ([]Listing, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Run executes the supplied filters sequentially and returns the surviving listings.
func Run(ctx context.Context, logger *zap.Logger, steps []Filter, items []Listing) ([]Listing, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}

		next, info, err := step.Apply(ctx, items)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		logger.Debug("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		items = next
	}

	return items, nil
}

// keep returns the listings matching pred together with the step summary.
func keep(items []Listing, pred func(Listing) bool) ([]Listing, Step) {
	out := make([]Listing, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out, Step{Initial: len(items), Dropped: len(items) - len(out), Left: len(out)}
}
