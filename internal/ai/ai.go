package ai

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned by completers when the provider answered with no text.
var ErrEmptyResponse = errors.New("llm returned empty response")

// Completer sends a single-turn prompt to a language model and returns its text answer.
// Callers must treat any error as "no answer".
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Describer is implemented by completers that can name their backend for logging.
type Describer interface {
	Provider() string
	Model() string
}

// Describe returns provider and model of c when it implements Describer.
func Describe(c Completer) (provider, model string) {
	if d, ok := c.(Describer); ok {
		return d.Provider(), d.Model()
	}
	return "", ""
}
