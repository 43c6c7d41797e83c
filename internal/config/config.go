package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	VariantReview  = "review"
	VariantWeather = "weather"
	VariantAll     = "all"

	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderFake   = "fake"
)

type Config struct {
	// Server
	Port            string
	Env             string
	ShutdownTimeout int

	// Agents
	AgentVariant  string
	AgentProvider string

	// Gemini AI
	GeminiAPIKey string
	GeminiModel  string

	// OpenAI-compatible endpoint
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Observability
	LogLevel    string
	LogFormat   string
	MetricsAddr string
}

// Load reads the environment (and .env when present). API keys are not
// checked here because the provider can still be overridden from the CLI;
// call RequireCredentials once the provider is final.
func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:            getEnvOrDefault("PORT", "8080"),
		Env:             getEnvOrDefault("ENV", "development"),
		ShutdownTimeout: getEnvAsIntOrDefault("SHUTDOWN_TIMEOUT_SECONDS", 30),
		AgentVariant:    strings.ToLower(getEnvOrDefault("AGENT_VARIANT", VariantAll)),
		AgentProvider:   strings.ToLower(getEnvOrDefault("AGENT_PROVIDER", ProviderGemini)),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIModel:     getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       getEnvOrDefault("LOG_FORMAT", "console"),
		MetricsAddr:     os.Getenv("METRICS_ADDR"),
	}

	return cfg
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch c.AgentVariant {
	case VariantReview, VariantWeather, VariantAll:
	default:
		return fmt.Errorf("unknown agent variant %q (want review, weather or all)", c.AgentVariant)
	}
	switch c.AgentProvider {
	case ProviderGemini, ProviderOpenAI, ProviderFake:
	default:
		return fmt.Errorf("unknown agent provider %q (want gemini, openai or fake)", c.AgentProvider)
	}
	return nil
}

// RequireCredentials panics when the selected provider has no API key.
func (c *Config) RequireCredentials() {
	switch c.AgentProvider {
	case ProviderGemini:
		c.GeminiAPIKey = mustGetEnv("GEMINI_API_KEY")
	case ProviderOpenAI:
		c.OpenAIAPIKey = mustGetEnv("OPENAI_API_KEY")
	}
}

// ServesReview reports whether the review endpoint should be mounted.
func (c *Config) ServesReview() bool {
	return c.AgentVariant == VariantReview || c.AgentVariant == VariantAll
}

// ServesWeather reports whether the weather endpoint should be mounted.
func (c *Config) ServesWeather() bool {
	return c.AgentVariant == VariantWeather || c.AgentVariant == VariantAll
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
