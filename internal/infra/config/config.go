package config

import (
	"log"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig describes the service configuration.
type AppConfig struct {
	AppEnv      string `envconfig:"APP_ENV" default:"dev"`
	Port        int    `envconfig:"PORT" default:"8080"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9090"`
	DataDir     string `envconfig:"DATA_DIR" default:"data"`

	Model struct {
		Provider     string        `envconfig:"MODEL_PROVIDER" default:"anthropic"`
		Name         string        `envconfig:"MODEL_NAME"`
		Timeout      time.Duration `envconfig:"MODEL_TIMEOUT" default:"60s"`
		AnthropicKey string        `envconfig:"ANTHROPIC_API_KEY"`
		AnthropicURL string        `envconfig:"ANTHROPIC_BASE_URL"`
		OpenAIKey    string        `envconfig:"OPENAI_API_KEY"`
		OpenAIURL    string        `envconfig:"OPENAI_BASE_URL"`
	} `envconfig:""`

	Research struct {
		Provider  string        `envconfig:"RESEARCH_PROVIDER"`
		APIKey    string        `envconfig:"RESEARCH_API_KEY"`
		TavilyKey string        `envconfig:"TAVILY_API_KEY"`
		SerperKey string        `envconfig:"SERPER_API_KEY"`
		BraveKey  string        `envconfig:"BRAVE_API_KEY"`
		Timeout   time.Duration `envconfig:"RESEARCH_TIMEOUT" default:"20s"`
	} `envconfig:""`
}

// Load reads the config from the environment.
func Load() AppConfig {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// ResearchKey resolves the effective search API key, honoring the
// provider-specific fallbacks.
func (c AppConfig) ResearchKey() string {
	if c.Research.APIKey != "" {
		return c.Research.APIKey
	}
	switch c.Research.Provider {
	case "tavily":
		return c.Research.TavilyKey
	case "serper":
		return c.Research.SerperKey
	case "brave":
		return c.Research.BraveKey
	}
	return ""
}

// StyleProfilePath returns the style-guide location under the data dir.
func (c AppConfig) StyleProfilePath() string {
	return filepath.Join(c.DataDir, "style_guide.json")
}

// CorpusPath returns the corpus location under the data dir.
func (c AppConfig) CorpusPath() string {
	return filepath.Join(c.DataDir, "corpus.jsonl")
}
