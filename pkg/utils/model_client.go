package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ItineraryModelClient returns the raw text a language model produced for
// the given prompts. Implementations map provider failures onto
// ErrModelUnavailable, ErrModelTimeout and ErrModelBlocked.
type ItineraryModelClient interface {
	GenerateItineraryText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type ModelClientConfig struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
}

// NewItineraryModelClient builds the client for the configured provider.
func NewItineraryModelClient(ctx context.Context, cfg ModelClientConfig) (ItineraryModelClient, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIItineraryClient(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.Temperature), nil
	case "gemini":
		return NewGeminiItineraryClient(ctx, cfg.APIKey, cfg.Model, cfg.Temperature)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.Provider)
	}
}

// modelCallError classifies a transport-level failure of a model call.
func modelCallError(ctx context.Context, provider string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %w", ErrModelTimeout, provider, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrModelUnavailable, provider, err)
}
