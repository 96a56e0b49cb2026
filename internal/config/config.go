package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Gemini  GeminiConfig  `mapstructure:"gemini"`
	Upload  UploadConfig  `mapstructure:"upload"`
	Worker  WorkerConfig  `mapstructure:"worker"`
	Scoring ScoringConfig `mapstructure:"scoring"`
	Report  ReportConfig  `mapstructure:"report"`
	Session SessionConfig `mapstructure:"session"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	Model      string `mapstructure:"model"`
	EmbedModel string `mapstructure:"embed-model"`
}

type UploadConfig struct {
	MaxFileSize int64 `mapstructure:"max-file-size"`
	MaxFiles    int   `mapstructure:"max-files"`
}

type WorkerConfig struct {
	Concurrency       int           `mapstructure:"concurrency"`
	RetryMaxAttempts  int           `mapstructure:"retry-max-attempts"`
	RetryInitialDelay time.Duration `mapstructure:"retry-initial-delay"`
}

type ScoringConfig struct {
	Strategy        string `mapstructure:"strategy"`
	ResumeChars     int    `mapstructure:"resume-chars"`
	VocabularyFile  string `mapstructure:"vocabulary-file"`
	NameRecognition bool   `mapstructure:"name-recognition"`
	NameWindow      int    `mapstructure:"name-window"`
}

type ReportConfig struct {
	Layout string `mapstructure:"layout"`
	Sort   bool   `mapstructure:"sort"`
}

type SessionConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep-interval"`
}

type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

type setting struct {
	key      string
	env      string
	fallback any
}

var settings = []setting{
	{key: "server.port", env: "PORT", fallback: "3000"},
	{key: "server.env", env: "ENV", fallback: "development"},
	{key: "gemini.api-key", env: "GEMINI_API_KEY", fallback: ""},
	{key: "gemini.model", env: "GEMINI_MODEL", fallback: "gemini-2.5-flash"},
	{key: "gemini.embed-model", env: "GEMINI_EMBED_MODEL", fallback: "text-embedding-004"},
	{key: "upload.max-file-size", env: "MAX_FILE_SIZE", fallback: int64(10485760)},
	{key: "upload.max-files", env: "MAX_FILES", fallback: 50},
	{key: "worker.concurrency", env: "WORKER_CONCURRENCY", fallback: 3},
	{key: "worker.retry-max-attempts", env: "RETRY_MAX_ATTEMPTS", fallback: 3},
	{key: "worker.retry-initial-delay", env: "RETRY_INITIAL_DELAY", fallback: 2 * time.Second},
	{key: "scoring.strategy", env: "SCORING_STRATEGY", fallback: "rule"},
	{key: "scoring.resume-chars", env: "RESUME_CHARS", fallback: 2500},
	{key: "scoring.vocabulary-file", env: "VOCABULARY_FILE", fallback: ""},
	{key: "scoring.name-recognition", env: "NAME_RECOGNITION", fallback: false},
	{key: "scoring.name-window", env: "NAME_WINDOW", fallback: 2500},
	{key: "report.layout", env: "REPORT_LAYOUT", fallback: "full"},
	{key: "report.sort", env: "REPORT_SORT", fallback: true},
	{key: "session.ttl", env: "SESSION_TTL", fallback: 30 * time.Minute},
	{key: "session.sweep-interval", env: "SESSION_SWEEP_INTERVAL", fallback: time.Minute},
	{key: "log.json", env: "LOG_JSON", fallback: false},
	{key: "log.debug", env: "LOG_DEBUG", fallback: false},
}

// flagKeys maps command line flag names to configuration keys.
var flagKeys = map[string]string{
	"strategy":         "scoring.strategy",
	"vocabulary":       "scoring.vocabulary-file",
	"name-recognition": "scoring.name-recognition",
	"layout":           "report.layout",
	"concurrency":      "worker.concurrency",
	"json":             "log.json",
	"debug":            "log.debug",
}

// Load reads the configuration from a .env file, if present, and the
// environment.
func Load() (*Config, error) {
	return LoadWithFlags(nil)
}

// LoadWithFlags is Load with command line overrides. Only flags set on the
// command line take precedence over the environment.
func LoadWithFlags(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	for _, s := range settings {
		v.SetDefault(s.key, s.fallback)
		if err := v.BindEnv(s.key, s.env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", s.env, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Scoring.Strategy = strings.ToLower(strings.TrimSpace(cfg.Scoring.Strategy))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the services cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Server.Port == "":
		return errors.New("config: PORT must not be empty")
	case c.Upload.MaxFileSize <= 0:
		return errors.New("config: MAX_FILE_SIZE must be positive")
	case c.Upload.MaxFiles <= 0:
		return errors.New("config: MAX_FILES must be positive")
	case c.Worker.Concurrency <= 0:
		return errors.New("config: WORKER_CONCURRENCY must be positive")
	case c.Worker.RetryMaxAttempts <= 0:
		return errors.New("config: RETRY_MAX_ATTEMPTS must be positive")
	case c.Session.TTL <= 0 || c.Session.SweepInterval <= 0:
		return errors.New("config: SESSION_TTL and SESSION_SWEEP_INTERVAL must be positive")
	}
	return nil
}

// GeminiEnabled reports whether a Gemini API key is configured.
func (c *Config) GeminiEnabled() bool {
	return strings.TrimSpace(c.Gemini.APIKey) != ""
}

// IsProduction reports whether the server runs with ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Env, "production")
}
