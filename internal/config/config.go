package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      App      `mapstructure:"app"`
	Store    Store    `mapstructure:"store"`
	AI       AI       `mapstructure:"ai"`
	Search   Search   `mapstructure:"search"`
	Fetch    Fetch    `mapstructure:"fetch"`
	Pipeline Pipeline `mapstructure:"pipeline"`
}

// App holds general application configuration
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// Store holds article store configuration
type Store struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout string `mapstructure:"timeout"`
}

// AI holds AI/LLM configuration
type AI struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int32   `mapstructure:"max_tokens"`
	Temperature float32 `mapstructure:"temperature"`
}

// Search holds reference discovery configuration
type Search struct {
	Provider   string `mapstructure:"provider"`
	MaxResults int    `mapstructure:"max_results"`
	RateLimit  string `mapstructure:"rate_limit"`
}

// Fetch holds content extraction configuration
type Fetch struct {
	Timeout    string `mapstructure:"timeout"`
	UserAgent  string `mapstructure:"user_agent"`
	MaxContent int    `mapstructure:"max_content"`
}

// Pipeline holds sweep orchestration configuration
type Pipeline struct {
	ArticleDelay  string `mapstructure:"article_delay"`
	MaxReferences int    `mapstructure:"max_references"`
	TitlePrefix   string `mapstructure:"title_prefix"`
}

var globalConfig *Config

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	// Configure viper
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".enhancer")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset clears the global configuration. Intended for tests.
func Reset() {
	globalConfig = nil
	viper.Reset()
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")

	// Store defaults
	viper.SetDefault("store.base_url", "http://localhost:8000/api")
	viper.SetDefault("store.timeout", "15s")

	// AI defaults
	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("ai.gemini.max_tokens", 2000)
	viper.SetDefault("ai.gemini.temperature", 0.7)

	// Search defaults
	viper.SetDefault("search.provider", "static")
	viper.SetDefault("search.max_results", 2)
	viper.SetDefault("search.rate_limit", "2s")

	// Fetch defaults
	viper.SetDefault("fetch.timeout", "30s")
	viper.SetDefault("fetch.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	viper.SetDefault("fetch.max_content", 5000)

	// Pipeline defaults
	viper.SetDefault("pipeline.article_delay", "2s")
	viper.SetDefault("pipeline.max_references", 2)
	viper.SetDefault("pipeline.title_prefix", "[UPDATED] ")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	// Gemini API key - support multiple formats
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	bindEnvKeys("store.base_url", []string{
		"ARTICLE_STORE_URL",
		"ENHANCER_STORE_URL",
	})

	bindEnvKeys("search.provider", []string{
		"SEARCH_PROVIDER",
	})

	bindEnvKeys("app.debug", []string{
		"DEBUG",
		"ENHANCER_DEBUG",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// validateConfig checks configuration values that would otherwise fail deep
// inside a sweep.
func validateConfig(config *Config) error {
	if config.Store.BaseURL == "" {
		return fmt.Errorf("store.base_url is required")
	}
	if config.Pipeline.MaxReferences <= 0 {
		return fmt.Errorf("pipeline.max_references must be positive")
	}
	for _, d := range []struct {
		key, value string
	}{
		{"store.timeout", config.Store.Timeout},
		{"fetch.timeout", config.Fetch.Timeout},
		{"search.rate_limit", config.Search.RateLimit},
		{"pipeline.article_delay", config.Pipeline.ArticleDelay},
	} {
		if _, err := time.ParseDuration(d.value); err != nil {
			return fmt.Errorf("invalid duration for %s: %w", d.key, err)
		}
	}
	return nil
}

// GetDuration parses a duration config value with a fallback.
func GetDuration(value string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return fallback
}
