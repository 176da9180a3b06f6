package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	ServerAddr  string
	FrontendDir string

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	GeminiKey   string
	GeminiModel string

	WikiLanguage  string
	WikiUserAgent string
	WikiBaseURL   string
	WikiTimeout   time.Duration

	LogLevel  string
	LogFormat string
	LogFile   string
}

const defaultUserAgent = "GenAI-Guidance/1.0 (https://github.com/katakuxiko/guidance)"

// New returns a viper instance with defaults and environment binding set
// up. Flags may be bound onto it before Load is called.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("SERVER_ADDR", ":5000")
	v.SetDefault("FRONTEND_DIR", "frontend")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("WIKIPEDIA_LANGUAGE", "en")
	v.SetDefault("WIKIPEDIA_USER_AGENT", defaultUserAgent)
	v.SetDefault("WIKIPEDIA_TIMEOUT", "15s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	// Keys without defaults still need a binding for AutomaticEnv to see them.
	for _, k := range []string{"OPENAI_API_KEY", "OPENAI_BASE_URL", "GEMINI_API_KEY", "WIKIPEDIA_BASE_URL", "LOG_FILE"} {
		_ = v.BindEnv(k)
	}
	v.AutomaticEnv()
	return v
}

// Load reads .env (if present), the optional config file and the
// environment. Missing API keys are not an error: provider calls fail
// when they are made.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	_ = godotenv.Load()

	if v == nil {
		v = New()
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", configFile)
		}
	}

	cfg := &Config{
		ServerAddr:    v.GetString("SERVER_ADDR"),
		FrontendDir:   v.GetString("FRONTEND_DIR"),
		OpenAIKey:     v.GetString("OPENAI_API_KEY"),
		OpenAIModel:   v.GetString("OPENAI_MODEL"),
		OpenAIBaseURL: v.GetString("OPENAI_BASE_URL"),
		GeminiKey:     v.GetString("GEMINI_API_KEY"),
		GeminiModel:   v.GetString("GEMINI_MODEL"),
		WikiLanguage:  strings.ToLower(v.GetString("WIKIPEDIA_LANGUAGE")),
		WikiUserAgent: v.GetString("WIKIPEDIA_USER_AGENT"),
		WikiBaseURL:   v.GetString("WIKIPEDIA_BASE_URL"),
		WikiTimeout:   v.GetDuration("WIKIPEDIA_TIMEOUT"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFormat:     v.GetString("LOG_FORMAT"),
		LogFile:       v.GetString("LOG_FILE"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ServerAddr == "" {
		return errors.New("SERVER_ADDR must not be empty")
	}
	if c.WikiLanguage == "" && c.WikiBaseURL == "" {
		return errors.New("WIKIPEDIA_LANGUAGE or WIKIPEDIA_BASE_URL is required")
	}
	if c.WikiTimeout < 0 {
		return errors.New("WIKIPEDIA_TIMEOUT must not be negative")
	}
	return nil
}

// WikipediaEndpoint is the action API URL for the configured language.
func (c *Config) WikipediaEndpoint() string {
	if c.WikiBaseURL != "" {
		return c.WikiBaseURL
	}
	return "https://" + c.WikiLanguage + ".wikipedia.org/w/api.php"
}
