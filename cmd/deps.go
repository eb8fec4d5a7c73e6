package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-tracker/internal/accounts"
	"github.com/spigell/job-tracker/internal/ai"
	"github.com/spigell/job-tracker/internal/ai/gemini"
	"github.com/spigell/job-tracker/internal/ai/openai"
	"github.com/spigell/job-tracker/internal/applications"
	"github.com/spigell/job-tracker/internal/assistant"
	"github.com/spigell/job-tracker/internal/board"
	"github.com/spigell/job-tracker/internal/jobs"
	"github.com/spigell/job-tracker/internal/logger"
	"github.com/spigell/job-tracker/internal/matching"
	"github.com/spigell/job-tracker/internal/resume"
	"github.com/spigell/job-tracker/internal/secrets"
	"github.com/spigell/job-tracker/internal/storage/sqlite"
)

// deps is everything a subcommand may need. Services are built lazily by
// the helpers below so that e.g. `match` never touches storage.
type deps struct {
	config *Config
	logger *zap.Logger

	completer ai.Completer
	board     *board.Board
	assistant *assistant.Assistant

	closers []func() error
}

// setup builds the logger, the config and the job board with its matcher.
func setup(ctx context.Context) (*deps, error) {
	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	config, err := getConfig()
	if err != nil {
		return nil, fmt.Errorf("getting a config: %w", err)
	}
	if config == nil || config.Jobs == nil || config.AI == nil || config.Matching == nil {
		return nil, errors.New("config is incomplete")
	}

	d := &deps{config: config, logger: log}

	// Matching and the assistant both work without a model.
	d.completer, err = newCompleter(ctx, config.AI, log)
	switch {
	case err != nil && config.AI.Enabled:
		log.Warn("ai is unavailable, using keyword rules", zap.Error(err))
	case err != nil:
		log.Debug("ai is disabled, using keyword rules")
	}

	source, err := newSource(config.Jobs, log)
	if err != nil {
		return nil, err
	}

	var matcher matching.Matcher = matching.NewKeywordMatcher()
	if d.completer != nil {
		llm := matching.NewLLMMatcher(d.completer, log, config.AI.MaxLogLength)
		matcher = matching.NewFallback(llm, matching.NewKeywordMatcher(), log)
	}

	d.board = board.New(source, matcher, log, board.WithConcurrency(config.Matching.Concurrency))
	d.assistant = assistant.New(d.completer, log)

	return d, nil
}

// stores opens account and application storage for the configured driver
// and makes sure the demo account exists.
func (d *deps) stores(ctx context.Context) (*accounts.Service, *applications.Service, error) {
	var (
		accountRepo     accounts.Repository
		applicationRepo applications.Repository
	)

	cfg := d.config.Storage
	if cfg == nil {
		cfg = &StorageConfig{Driver: "memory"}
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "memory":
		accountRepo = accounts.NewMemoryRepository()
		applicationRepo = applications.NewMemoryRepository()
	case "sqlite":
		db, err := sqlite.Open(ctx, cfg.SQLitePath, d.logger)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite storage: %w", err)
		}
		d.closers = append(d.closers, db.Close)
		accountRepo = db.Accounts()
		applicationRepo = db.Applications()
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}

	d.logger.Info("storage is ready", zap.String("driver", cfg.Driver))

	accountSvc := accounts.NewService(accountRepo, d.logger)
	if err := accountSvc.EnsureSeed(ctx); err != nil {
		return nil, nil, fmt.Errorf("seeding the demo account: %w", err)
	}

	return accountSvc, applications.NewService(applicationRepo, d.logger), nil
}

func (d *deps) resumes() *resume.Store {
	cfg := d.config.Resume
	if cfg == nil {
		cfg = &ResumeConfig{UploadDir: "uploads"}
	}
	return resume.NewStore(cfg.UploadDir, cfg.MaxSize, d.logger)
}

func (d *deps) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			d.logger.Warn("closing a resource", zap.Error(err))
		}
	}
	_ = d.logger.Sync()
}

// newCompleter returns nil (and a reason) whenever the model cannot be used.
func newCompleter(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Completer, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("ai.enabled is false")
	}

	switch provider := strings.TrimSpace(strings.ToLower(cfg.Provider)); provider {
	case "", "openai":
		if cfg.OpenAI == nil {
			return nil, fmt.Errorf("ai.openai section is required")
		}
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "openai api key",
			Value: cfg.OpenAI.APIKey,
			File:  cfg.OpenAI.APIKeyFile,
			Env:   "OPENAI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.openai.api-key-file or OPENAI_API_KEY)", err)
		}

		client, err := openai.New(openai.Options{
			APIKey:      apiKey,
			Model:       cfg.OpenAI.Model,
			BaseURL:     cfg.OpenAI.BaseURL,
			Temperature: cfg.OpenAI.Temperature,
		}, log)
		if err != nil {
			return nil, err
		}
		return client, nil

	case "gemini":
		if cfg.Gemini == nil {
			return nil, fmt.Errorf("ai.gemini section is required")
		}
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: cfg.Gemini.APIKey,
			File:  cfg.Gemini.APIKeyFile,
			Env:   "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
		}

		genLogger := log.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))

		generator, err := gemini.NewGenerator(ctx, gemini.Options{
			APIKey:      apiKey,
			Model:       cfg.Gemini.Model,
			MaxRetries:  cfg.Gemini.MaxRetries,
			Temperature: cfg.Gemini.Temperature,
		}, genLogger)
		if err != nil {
			return nil, err
		}
		return generator, nil

	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

func newSource(cfg *JobsConfig, log *zap.Logger) (jobs.Source, error) {
	switch strings.TrimSpace(strings.ToLower(cfg.Source)) {
	case "", "mock":
		return jobs.NewMockSource(cfg.Latency), nil
	case "file":
		if cfg.FeedFile == "" {
			return nil, fmt.Errorf("jobs.feed-file is required for the file source")
		}
		return jobs.NewFileSource(cfg.FeedFile), nil
	case "remote":
		if cfg.FeedURL == "" {
			return nil, fmt.Errorf("jobs.feed-url is required for the remote source")
		}
		return jobs.NewRemoteSource(cfg.FeedURL, cfg.FeedToken, logger.Named(log, "feed")), nil
	default:
		return nil, fmt.Errorf("unsupported jobs source: %s", cfg.Source)
	}
}
