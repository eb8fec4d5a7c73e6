package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotConfigured is returned when no source yields a value.
var ErrNotConfigured = errors.New("secret is not configured")

// placeholders are values shipped in example configs that must never reach a provider.
var placeholders = map[string]struct{}{
	"your_openai_api_key_here": {},
	"your_gemini_api_key_here": {},
	"changeme":                 {},
}

// Source describes how to load a secret value.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// Value is an inline secret value provided via configuration or flags.
	Value string
	// File points to a file containing the secret value. When set it takes
	// precedence over Value.
	File string
	// Env is consulted last, when neither File nor Value are set.
	Env string
}

// Load returns the resolved secret value. Precedence is File, Value, Env.
// The returned secret is always trimmed.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return secret, nil
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" && strings.TrimSpace(src.Env) != "" {
		secret = strings.TrimSpace(os.Getenv(strings.TrimSpace(src.Env)))
	}

	if _, ok := placeholders[strings.ToLower(secret)]; ok {
		secret = ""
	}

	if secret == "" {
		return "", fmt.Errorf("%s: %w", name, ErrNotConfigured)
	}

	return secret, nil
}
