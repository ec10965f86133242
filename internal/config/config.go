// Package config loads application configuration from environment variables,
// after an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	Port   string
	AppEnv string
	// LogLevel is one of debug, info, warn, error.
	LogLevel    string
	PostgresURL string
	CORSOrigins []string

	LLM LLMConfig

	// ModelTimeout bounds a single upstream model call.
	ModelTimeout time.Duration
	// PersistTimeout bounds the best-effort save of a generated itinerary.
	PersistTimeout time.Duration

	// PlanCacheTTL of zero disables the generated-plan cache.
	PlanCacheTTL time.Duration
	// RedisAddr selects the redis plan cache; empty keeps it in memory.
	RedisAddr     string
	RedisPassword string

	ItineraryListLimit int
}

type LLMConfig struct {
	Provider      string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiAPIKey  string
	GeminiModel   string
	Temperature   float32
}

func (c Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Load reads the environment and returns a Config. Every missing or invalid
// variable is reported in a single error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	p := &parser{}
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "production"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		PostgresURL: p.required("POSTGRES_URL"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "*")),
		LLM: LLMConfig{
			Provider:      strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI)),
			OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o"),
			OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
			GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Temperature:   p.float32("LLM_TEMPERATURE", 0.7),
		},
		ModelTimeout:       p.duration("MODEL_TIMEOUT", 90*time.Second),
		PersistTimeout:     p.duration("PERSIST_TIMEOUT", 5*time.Second),
		PlanCacheTTL:       p.duration("PLAN_CACHE_TTL", 0),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		ItineraryListLimit: p.int("ITINERARY_LIST_LIMIT", 100),
	}

	switch cfg.LLM.Provider {
	case ProviderOpenAI:
		cfg.LLM.OpenAIAPIKey = p.required("OPENAI_API_KEY")
	case ProviderGemini:
		cfg.LLM.GeminiAPIKey = p.required("GEMINI_API_KEY")
	default:
		p.invalid("LLM_PROVIDER", fmt.Sprintf("unsupported provider %q", cfg.LLM.Provider))
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		p.invalid("LOG_LEVEL", fmt.Sprintf("unknown level %q", cfg.LogLevel))
	}

	if cfg.ModelTimeout <= 0 {
		p.invalid("MODEL_TIMEOUT", "must be positive")
	}
	if cfg.PersistTimeout <= 0 {
		p.invalid("PERSIST_TIMEOUT", "must be positive")
	}
	if cfg.ItineraryListLimit <= 0 {
		p.invalid("ITINERARY_LIST_LIMIT", "must be positive")
	}

	if err := p.err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// parser collects problems so Load can report all of them at once.
type parser struct {
	missing []string
	bad     []string
}

func (p *parser) required(key string) string {
	v := os.Getenv(key)
	if v == "" {
		p.missing = append(p.missing, key)
	}
	return v
}

func (p *parser) invalid(key, reason string) {
	p.bad = append(p.bad, key+": "+reason)
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.invalid(key, err.Error())
		return fallback
	}
	return d
}

func (p *parser) int(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.invalid(key, err.Error())
		return fallback
	}
	return n
}

func (p *parser) float32(key string, fallback float32) float32 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		p.invalid(key, err.Error())
		return fallback
	}
	return float32(f)
}

func (p *parser) err() error {
	var parts []string
	if len(p.missing) > 0 {
		parts = append(parts, "required environment variables not set: "+strings.Join(p.missing, ", "))
	}
	if len(p.bad) > 0 {
		parts = append(parts, "invalid environment variables: "+strings.Join(p.bad, "; "))
	}
	if len(parts) == 0 {
		return nil
	}
	return errors.New(strings.Join(parts, "; "))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
