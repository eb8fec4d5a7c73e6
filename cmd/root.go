package cmd

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "job-tracker"
	envPrefix = "JOB_TRACKER"
)

type Config struct {
	Server   *ServerConfig   `mapstructure:"server"`
	Storage  *StorageConfig  `mapstructure:"storage"`
	Resume   *ResumeConfig   `mapstructure:"resume"`
	Jobs     *JobsConfig     `mapstructure:"jobs"`
	Matching *MatchingConfig `mapstructure:"matching"`
	AI       *AIConfig       `mapstructure:"ai"`
}

type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed-origins"`
	StaticDir      string   `mapstructure:"static-dir"`
}

type StorageConfig struct {
	// Driver is either memory or sqlite.
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite-path"`
}

type ResumeConfig struct {
	UploadDir string `mapstructure:"upload-dir"`
	MaxSize   int64  `mapstructure:"max-size"`
}

type JobsConfig struct {
	// Source is one of mock, file or remote.
	Source    string        `mapstructure:"source"`
	FeedFile  string        `mapstructure:"feed-file"`
	FeedURL   string        `mapstructure:"feed-url"`
	FeedToken string        `mapstructure:"feed-token"`
	Latency   time.Duration `mapstructure:"latency"`
}

type MatchingConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

type AIConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Provider     string        `mapstructure:"provider"`
	MaxLogLength int           `mapstructure:"max-log-length"`
	OpenAI       *OpenAIConfig `mapstructure:"openai"`
	Gemini       *GeminiConfig `mapstructure:"gemini"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api-key"`
	APIKeyFile  string  `mapstructure:"api-key-file"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
	BaseURL     string  `mapstructure:"base-url"`
}

type GeminiConfig struct {
	APIKey      string  `mapstructure:"api-key"`
	APIKeyFile  string  `mapstructure:"api-key-file"`
	Model       string  `mapstructure:"model"`
	MaxRetries  int     `mapstructure:"max-retries"`
	Temperature float32 `mapstructure:"temperature"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-tracker matches job listings against your resume and tracks your applications",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-tracker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults()
}

// setDefaults registers every key so that environment overrides work even
// without a config file.
func setDefaults() {
	viper.SetDefault("server.addr", ":3001")
	viper.SetDefault("server.allowed-origins", []string{"http://localhost:5173"})
	viper.SetDefault("server.static-dir", "")

	viper.SetDefault("storage.driver", "memory")
	viper.SetDefault("storage.sqlite-path", "data/job-tracker.db")

	viper.SetDefault("resume.upload-dir", "uploads")
	viper.SetDefault("resume.max-size", 5<<20)

	viper.SetDefault("jobs.source", "mock")
	viper.SetDefault("jobs.feed-file", "")
	viper.SetDefault("jobs.feed-url", "")
	viper.SetDefault("jobs.feed-token", "")
	viper.SetDefault("jobs.latency", "500ms")

	viper.SetDefault("matching.concurrency", 4)

	viper.SetDefault("ai.enabled", false)
	viper.SetDefault("ai.provider", "openai")
	viper.SetDefault("ai.max-log-length", 200)
	viper.SetDefault("ai.openai.api-key", "")
	viper.SetDefault("ai.openai.api-key-file", "")
	viper.SetDefault("ai.openai.model", "gpt-3.5-turbo")
	viper.SetDefault("ai.openai.temperature", 0.3)
	viper.SetDefault("ai.openai.base-url", "")
	viper.SetDefault("ai.gemini.api-key", "")
	viper.SetDefault("ai.gemini.api-key-file", "")
	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("ai.gemini.max-retries", 3)
	viper.SetDefault("ai.gemini.temperature", 0.3)
}

func initConfig() {
	// A missing .env is fine, the variables may come from the environment itself.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Defaults are enough to start, but a broken config file is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
